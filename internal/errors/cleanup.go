// Package errors provides cleanup helpers that log instead of dropping errors.
package errors

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// DeferClose properly closes an io.Closer with logging.
// Use this in defer statements to avoid suppressing close errors.
func DeferClose(logger zerolog.Logger, closer io.Closer, msg string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Msg(msg)
	}
}

// Shutdowner is anything with a graceful, context-bounded stop.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// DeferShutdown stops s within timeout and logs a failure.
// The parent context is detached so an already-cancelled caller still gets a
// graceful stop.
func DeferShutdown(logger zerolog.Logger, s Shutdowner, timeout time.Duration, msg string) {
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg(msg)
	}
}
