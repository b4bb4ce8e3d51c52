package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// New builds a logger for the given environment and level.
// "production" gets the JSON encoder, anything else the console one.
func New(environment, level string) (*zap.Logger, error) {
	config, err := newConfig(environment, level)
	if err != nil {
		return nil, err
	}
	return config.Build()
}

func newConfig(environment, level string) (zap.Config, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	// stdout belongs to command output
	config.OutputPaths = []string{"stderr"}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	return config, nil
}

// Init initializes the global logger
func Init(environment, level string) error {
	l, err := New(environment, level)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// Get returns the global logger instance
func Get() *zap.Logger {
	if log == nil {
		// Fallback to a basic logger if Init wasn't called
		log, _ = zap.NewDevelopment()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}
