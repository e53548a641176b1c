// Package logger constructs the zerolog loggers used across the service.
// Request-scoped loggers travel on the context via zerolog's WithContext
// and are recovered with FromContext.
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// New builds a JSON logger writing to stdout. The level string comes from
// configuration; an unknown value falls back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger when none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
