package repository

import (
	"bus-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Bus       BusRepository
	Route     RouteRepository
	Booking   BookingRepository
	Passenger PassengerRepository
	Payment   PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Bus:       NewBusRepository(db, log),
		Route:     NewRouteRepository(db, log),
		Booking:   NewBookingRepository(db, log),
		Passenger: NewPassengerRepository(db, log),
		Payment:   NewPaymentRepository(db, log),
	}
}
