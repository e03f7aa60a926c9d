package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCancelGuard(t *testing.T) {
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		status    BookingStatus
		departure time.Time
		wantErr   error
	}{
		{"pending before departure", BookingStatusPending, now.Add(2 * time.Hour), nil},
		{"confirmed before departure", BookingStatusConfirmed, now.Add(2 * time.Hour), nil},
		{"already cancelled", BookingStatusCancelled, now.Add(2 * time.Hour), ErrAlreadyCancelled},
		{"departure passed", BookingStatusConfirmed, now.Add(-time.Minute), ErrCancellationWindowClosed},
		{"departure exactly now", BookingStatusConfirmed, now, ErrCancellationWindowClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CancelGuard(tc.status, tc.departure, now)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("want nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCancelledBookingStaysCancelled(t *testing.T) {
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	departure := now.Add(24 * time.Hour)

	// The already-cancelled guard outranks the window check, even when the
	// departure is long gone.
	err := CancelGuard(BookingStatusCancelled, now.Add(-time.Hour), now)
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("want ErrAlreadyCancelled, got %v", err)
	}

	if CancellableAt(BookingStatusCancelled, departure, now) {
		t.Error("a cancelled booking must not be cancellable again")
	}
	if !CancellableAt(BookingStatusPending, departure, now) {
		t.Error("a pending booking before departure should be cancellable")
	}
}
