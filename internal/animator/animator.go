// Package animator drives the pending-reply indicator: a cancellable periodic
// task that cycles a placeholder through ".", ".." and "...".
package animator

import (
	"context"
	"strings"
	"time"

	"github.com/analyst-desk/analyst/internal/constants"
)

// Frame returns the indicator text for the given dot count, clamped to 1..3.
func Frame(dots int) string {
	if dots < 1 {
		dots = 1
	}
	if dots > constants.MaxAnimationDots {
		dots = constants.MaxAnimationDots
	}
	return strings.Repeat(".", dots)
}

// Next advances a dot count, wrapping from three back to one.
func Next(dots int) int {
	if dots >= constants.MaxAnimationDots {
		return 1
	}
	return dots + 1
}

// Animator is a running indicator. The zero value is not usable; use Start.
type Animator struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start emits a frame every interval until Stop is called or ctx is cancelled.
// The placeholder is assumed to already show a single dot, so the first frame
// is "..". onFrame runs on the animator goroutine and must not call Stop.
func Start(ctx context.Context, interval time.Duration, onFrame func(frame string)) *Animator {
	if interval <= 0 {
		interval = constants.DefaultAnimationInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &Animator{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go a.run(ctx, interval, onFrame)

	return a
}

func (a *Animator) run(ctx context.Context, interval time.Duration, onFrame func(string)) {
	defer close(a.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dots := 1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A tick and a stop can be ready together; stopping wins.
			if ctx.Err() != nil {
				return
			}
			dots = Next(dots)
			onFrame(Frame(dots))
		}
	}
}

// Stop cancels the timer and waits for the goroutine to exit. No frame is
// delivered after Stop returns. Calling Stop more than once is safe.
func (a *Animator) Stop() {
	a.cancel()
	<-a.done
}

