package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a named zap logger. An empty sink writes to stdout.
func NewLogger(cfg Log, name string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.AddSync(os.Stdout)
	if cfg.Sink != "" {
		f, err := os.OpenFile(cfg.Sink, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			sink = zapcore.AddSync(f)
		}
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, cfg.LogLevel)
	return zap.New(core, zap.AddCaller()).Named(name)
}
