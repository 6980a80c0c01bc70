package services

import (
	"errors"
	"fmt"
)

// ErrDispatchFailed marks provider or network failures during email
// dispatch. The handler maps it to a 500 without leaking provider detail.
var ErrDispatchFailed = errors.New("email dispatch failed")

// ValidationError carries the first failing field of a submission. The
// server-side contract reports a single message; the full field map stays a
// client-side concern (see DESIGN.md).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
