package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Init builds the process-wide logger. Local env gets a development config,
// everything else structured JSON.
func Init(env string, level string) *zap.Logger {
	once.Do(func() {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			lvl = zapcore.InfoLevel
		}

		var cfg zap.Config
		if env == "local" {
			cfg = zap.NewDevelopmentConfig()
		} else {
			cfg = zap.NewProductionConfig()
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)

		global, err = cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			log.Fatalf("logger build failed: %s", err)
		}
	})

	return global
}

// Logger returns the process-wide logger, initializing a default one if
// Init was never called (tests).
func Logger() *zap.Logger {
	if global == nil {
		return Init("local", "debug")
	}
	return global
}

func Debug(msg string, fields ...zap.Field) { Logger().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { Logger().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { Logger().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { Logger().Error(msg, fields...) }
