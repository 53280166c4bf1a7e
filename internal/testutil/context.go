// Package testutil provides testing utilities shared by analyst packages.
package testutil

import (
	"context"
	"testing"
	"time"
)

// NewTestContext creates a test context with a 10-second timeout that is
// cancelled when the test ends.
func NewTestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Eventually polls cond every tick until it returns true or the timeout
// elapses, and reports whether it succeeded.
func Eventually(timeout, tick time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(tick)
	}
}
