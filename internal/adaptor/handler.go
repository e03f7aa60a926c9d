package adaptor

import (
	"bus-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Bus     *BusHandler
	Route   *RouteHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Bus:     NewBusHandler(service.Bus, log),
		Route:   NewRouteHandler(service.Route, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
