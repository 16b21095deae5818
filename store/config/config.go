package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/store-service/pkg/kafka"
	"github.com/Astemirdum/store-service/pkg/logger"
	"github.com/Astemirdum/store-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"STORE_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"STORE_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"5s"`
	WriteTimeout time.Duration
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Kafka    kafka.Config `yaml:"kafka"`
	Database postgres.DB  `yaml:"db"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = timeout
	}
}

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
