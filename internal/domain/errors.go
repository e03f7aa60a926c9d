package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the booking core. Services wrap them with %w so
// handlers can branch with errors.Is.
var (
	// ErrInvalidInput marks a structurally malformed seat/route parameter.
	// This is a collaborator contract violation, not a user mistake.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSeatNotAvailable means another booking won the reservation race.
	ErrSeatNotAvailable = errors.New("seat no longer available")

	// ErrAlreadyCancelled signals an idempotent repeat cancel. Informational.
	ErrAlreadyCancelled = errors.New("booking already cancelled")

	// ErrCancellationWindowClosed rejects cancels after departure.
	ErrCancellationWindowClosed = errors.New("cancellation window closed")

	// ErrPaymentFailed covers a failed external payment confirmation.
	ErrPaymentFailed = errors.New("payment confirmation failed")
)

// FieldError is one unmet requirement on one passenger.
type FieldError struct {
	Index int    `json:"index"` // roster position, 0-based
	Field string `json:"field"`
	Msg   string `json:"message"`
}

// ValidationError enumerates the first unmet field per passenger.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("passenger %d: %s %s", f.Index+1, f.Field, f.Msg)
	}
	return "roster validation failed: " + strings.Join(msgs, "; ")
}
