package usecase

import (
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service aggregates all business logic services
type Service struct {
	Auth    AuthService
	User    UserService
	Bus     BusService
	Route   RouteService
	Booking BookingService
}

// NewService creates all services with their dependencies
func NewService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Bus:     NewBusService(repo, log),
		Route:   NewRouteService(repo, log),
		Booking: NewBookingService(repo, log),
	}
}
