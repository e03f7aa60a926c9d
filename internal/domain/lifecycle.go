package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus is a parallel axis, loosely coupled to the booking status.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// CancelGuard enforces the cancellation preconditions before any mutation:
// the booking must not already be cancelled, and departure must be strictly
// in the future at cancellation time. There is no buffer window.
func CancelGuard(status BookingStatus, departure, now time.Time) error {
	if status == BookingStatusCancelled {
		return ErrAlreadyCancelled
	}
	if !departure.After(now) {
		return fmt.Errorf("%w: departure was %s", ErrCancellationWindowClosed, departure.Format(time.RFC3339))
	}
	return nil
}

// CancellableAt reports whether a booking in the given status can still be
// cancelled at the given time.
func CancellableAt(status BookingStatus, departure, now time.Time) bool {
	return CancelGuard(status, departure, now) == nil
}
