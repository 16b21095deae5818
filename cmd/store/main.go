package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/store-service/store/app"
	"github.com/Astemirdum/store-service/store/config"
)

// @title       Store Service API
// @version     1.0
// @description Book catalog with per-user likes, bookmarks and ratings.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Printf("load envs from .env: %v", err)
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
