package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

const (
	ActivityTopic         = "store.activity"
	ActivityConsumerGroup = "store-activity"
)

type Config struct {
	Enable bool     `yaml:"enable" envconfig:"KAFKA_ENABLE"`
	Addrs  []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume claims topics in a loop until the context is canceled. Consume is
// re-entered on rebalance per sarama's consumer-group contract.
func Consume(ctx context.Context, cg sarama.ConsumerGroup, h sarama.ConsumerGroupHandler, topics ...string) error {
	for {
		if err := cg.Consume(ctx, topics, h); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
