package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Setup builds the global logger for the given environment and returns it.
// Local and dev get a development config with debug level, prod gets the
// production config.
func Setup(env string) *zap.Logger {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)

		switch env {
		case envLocal, envDev:
			cfg := zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			l, err = cfg.Build()
		case envProd:
			l, err = zap.NewProduction()
		default:
			l, err = zap.NewProduction()
		}
		if err != nil {
			log.Fatalf("logger setup failed: %s", err)
		}

		global = l
	})

	return global
}

// Logger returns the global logger. Setup must have been called first.
func Logger() *zap.Logger {
	if global == nil {
		global = zap.NewNop()
	}
	return global
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}
