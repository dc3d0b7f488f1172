// Package logger builds the process-wide zap logger.  Production runs
// log JSON to stderr and to logs/server.log so operator-facing errors
// (persistence failures in particular) land in a durable sink; dev
// runs log human-readable console output to stderr only.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a zap logger for the given environment ("prod" gets
// JSON + file sink, anything else gets console output) at the given
// level (debug/info/warn/error; unknown values fall back to info).
func New(env, level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	if env != "prod" && env != "production" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		return cfg.Build()
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr", "logs/server.log"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
