// Package config holds settings shared by the command-line tools.
package config

import (
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger writing to stderr, so listings on stdout
// stay clean. Debug enables debug messages; quiet limits output to errors.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = os.Stderr
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
