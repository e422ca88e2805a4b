package log

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

type Option func(config *zap.Config) []zap.Option

// WithFile tees every entry into a rotated json log file.
func WithFile(path string) Option {
	return func(config *zap.Config) []zap.Option {
		if path == "" {
			return nil
		}
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			sink,
			config.Level,
		)
		return []zap.Option{zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		})}
	}
}

// Console makes the dev config readable in a terminal session.
func Console() Option {
	return func(config *zap.Config) []zap.Option {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.ConsoleSeparator = " "
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
		return []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
	}
}

func Level(level zapcore.Level) Option {
	return func(config *zap.Config) []zap.Option {
		config.Level = zap.NewAtomicLevelAt(level)
		return nil
	}
}

func InitProd(options ...Option) *zap.Logger {
	return initLogger(zap.NewProductionConfig(), options...)
}

func InitDev(options ...Option) *zap.Logger {
	return initLogger(zap.NewDevelopmentConfig(), options...)
}

func initLogger(config zap.Config, options ...Option) *zap.Logger {
	zapOptions := []zap.Option{zap.AddStacktrace(zap.WarnLevel)}
	for _, option := range options {
		zapOptions = append(zapOptions, option(&config)...)
	}

	var err error
	logger, err = config.Build(zapOptions...)
	if err != nil {
		fmt.Printf("Failed to init zap logger: %v", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
