// Package errx provides small helpers for attaching a sentinel error to an
// underlying cause so that errors.Is matches both.
package errx

import "fmt"

// Wrap joins a sentinel error with its cause.
func Wrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// With joins a sentinel error with formatted context. The format string is
// appended directly after the sentinel's message.
func With(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w"+format, append([]any{sentinel}, args...)...)
}
