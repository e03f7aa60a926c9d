package entity

import (
	"time"

	"github.com/google/uuid"
)

// Route is one scheduled trip of a bus. AvailableSeats shrinks as bookings
// reserve seats and grows back when bookings cancel; the repository owns
// both mutations atomically.
type Route struct {
	Base
	BusID          uuid.UUID `db:"bus_id"`
	Source         string    `db:"source"`
	Destination    string    `db:"destination"`
	DepartureTime  time.Time `db:"departure_time"`
	ArrivalTime    time.Time `db:"arrival_time"`
	Fare           float64   `db:"fare"` // per seat
	TotalSeats     int       `db:"total_seats"`
	AvailableSeats []int     `db:"available_seats"`
	IsActive       bool      `db:"is_active"`
}
