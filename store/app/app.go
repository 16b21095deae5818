package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/store-service/pkg/kafka"
	"github.com/Astemirdum/store-service/pkg/logger"
	"github.com/Astemirdum/store-service/pkg/postgres"
	"github.com/Astemirdum/store-service/store/config"
	"github.com/Astemirdum/store-service/store/internal/handler"
	"github.com/Astemirdum/store-service/store/internal/repository"
	"github.com/Astemirdum/store-service/store/internal/server"
	"github.com/Astemirdum/store-service/store/internal/service"
	"github.com/Astemirdum/store-service/store/migrations"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "store")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var enq service.Enqueuer
	if cfg.Kafka.Enable {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close()
		enq = service.NewEnqueuer(producer)
	}

	svc := service.NewService(repo, enq, log)

	consumeCtx, consumeCancel := context.WithCancel(context.Background())
	defer consumeCancel()
	if cfg.Kafka.Enable {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.ActivityConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		go func() {
			if err := kafka.Consume(consumeCtx, consumer, handler.NewConsumer(svc.RecordActivity, log), kafka.ActivityTopic); err != nil {
				log.Error("kafka consume", zap.Error(err))
			}
		}()
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	consumeCancel()
	db.Close()
	log.Info("Graceful shutdown finished")
}
