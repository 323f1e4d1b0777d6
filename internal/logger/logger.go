package logger

import (
	"go.uber.org/zap"
)

// Log is package-level logger. It is no-op until Initialize is called.
var Log *zap.Logger = zap.NewNop()

// Initialize builds production logger with given level and sets Log
func Initialize(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	Log = logger

	return Log, nil
}
