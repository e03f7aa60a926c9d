package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBus configures the bus catalog and route discovery endpoints.
// Browsing buses, searching routes and viewing seat maps is public;
// fleet management is admin only.
func wireBus(
	r chi.Router,
	busHandler *adaptor.BusHandler,
	routeHandler *adaptor.RouteHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/buses", busHandler.GetBuses)
	r.Get("/api/buses/{id}", busHandler.GetBusByID)
	r.Get("/api/buses/{id}/routes", busHandler.GetBusRoutes)

	r.Get("/api/routes/search", routeHandler.SearchRoutes)
	r.Get("/api/routes/{id}", routeHandler.GetRouteByID)
	r.Get("/api/routes/{id}/seats", routeHandler.GetSeatMap)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(repo.User, log),
	).Route("/api/admin/buses", func(r chi.Router) {
		r.Post("/", busHandler.AddBus)
		r.Put("/{id}", busHandler.UpdateBus)
		r.Delete("/{id}", busHandler.DeleteBus)
		r.Post("/{id}/routes", routeHandler.AddRoute)
	})

	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(repo.User, log),
	).Delete("/api/admin/routes/{id}", routeHandler.DeleteRoute)
}
