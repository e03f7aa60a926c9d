package entity

import (
	"github.com/google/uuid"

	"bus-booking/internal/domain"
)

// Passenger rows are persisted in roster order, one per booked seat.
type Passenger struct {
	BaseSimple
	BookingID  uuid.UUID     `db:"booking_id"`
	FullName   string        `db:"full_name"`
	Age        int           `db:"age"`
	Gender     domain.Gender `db:"gender"`
	SeatNumber int           `db:"seat_number"`
}
