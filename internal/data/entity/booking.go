package entity

import (
	"time"

	"github.com/google/uuid"

	"bus-booking/internal/domain"
)

// Booking is the committed record of a reservation. The route fields are a
// snapshot materialized at creation time: later route edits must never leak
// into what a historical booking shows, so nothing here is re-read from the
// live route.
type Booking struct {
	Base
	OrderID       string               `db:"order_id"`
	UserID        uuid.UUID            `db:"user_id"`
	RouteID       uuid.UUID            `db:"route_id"`
	Seats         []int                `db:"seats"` // roster order
	TotalAmount   float64              `db:"total_amount"`
	Status        domain.BookingStatus `db:"status"`
	PaymentStatus domain.PaymentStatus `db:"payment_status"`

	// Route snapshot
	BusName       string    `db:"bus_name"`
	Source        string    `db:"source"`
	Destination   string    `db:"destination"`
	DepartureTime time.Time `db:"departure_time"`
	ArrivalTime   time.Time `db:"arrival_time"`
	FarePerSeat   float64   `db:"fare_per_seat"`
}
