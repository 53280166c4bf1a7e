package exchange

import (
	"errors"
	"fmt"
)

// ErrExchangeFailed is the single failure class of an exchange. Network
// errors, non-2xx statuses and undecodable bodies all match it with errors.Is.
var ErrExchangeFailed = errors.New("exchange failed")

// Error carries the cause of a failed exchange for logging. Callers that only
// need the user-visible outcome test for ErrExchangeFailed.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", ErrExchangeFailed, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrExchangeFailed, e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{ErrExchangeFailed, e.Err}
}

func failure(op string, status int, err error) error {
	return &Error{Op: op, Status: status, Err: err}
}
