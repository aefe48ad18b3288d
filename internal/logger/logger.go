package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger. "development" (or "dev") gives console output at
// debug level; anything else gets the JSON production config.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "dev", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}
	return cfg.Build()
}
