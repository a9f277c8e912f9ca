package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the service logger: JSON in production, coloured console otherwise.
// An empty level keeps the preset's default.
func New(env, level string) (*zap.Logger, error) {
	config, err := newConfig(env, level)
	if err != nil {
		return nil, err
	}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}

	return logger.Named("catalog"), nil
}

func newConfig(env, level string) (zap.Config, error) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.Encoding = "json"
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	// Always log to stdout for container compatibility
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config, nil
}

// NewWithDefaults builds a logger from SERVER_ENV and LOG_LEVEL, falling back
// to a production logger if those are unusable
func NewWithDefaults() *zap.Logger {
	env := os.Getenv("SERVER_ENV")
	if env == "" {
		env = "development"
	}

	logger, err := New(env, os.Getenv("LOG_LEVEL"))
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return logger
}
