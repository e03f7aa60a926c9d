package entity

import (
	"github.com/google/uuid"

	"bus-booking/internal/domain"
)

type Payment struct {
	Base
	BookingID        uuid.UUID            `db:"booking_id"`
	Amount           float64              `db:"amount"`
	Status           domain.PaymentStatus `db:"status"`
	PaymentReference *string              `db:"payment_reference"`
}
