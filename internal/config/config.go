// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultCycleRate is the default amount of executed instructions per second.
	DefaultCycleRate = 700
	// DefaultScale is the default magnification of a pixel in the window frontend.
	DefaultScale = 10
	// DefaultFrontend is the frontend used when none is given.
	DefaultFrontend = options.FrontendSDL
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
