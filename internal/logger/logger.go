// Package logger provides structured logging with zap.
package logger

import "go.uber.org/zap"

// New creates a new zap.Logger depending on the environment. Production
// and staging get the JSON production config; everything else gets the
// human-readable development config with debug enabled.
func New(env string) *zap.Logger {
	switch env {
	case "production", "staging":
		logger, _ := zap.NewProduction()
		return logger
	default:
		logger, _ := zap.NewDevelopment()
		return logger
	}
}
