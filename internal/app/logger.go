package app

import (
	"os"

	"service-courier-tracking/internal/config"
	"service-courier-tracking/internal/logx"
)

// NewLogger returns the process JSON logger on stdout.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel).With(logx.String("service", "service-courier"))
}
