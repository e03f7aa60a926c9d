package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/domain"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RouteService interface {
	SearchRoutes(ctx context.Context, source, destination, dateStr string) ([]response.RouteResponse, error)
	GetRouteByID(ctx context.Context, routeID string) (*response.RouteResponse, error)
	GetSeatMap(ctx context.Context, routeID string) (*response.SeatMapResponse, error)

	// Admin
	AddRoute(ctx context.Context, busID string, req *request.RouteRequest) (*response.RouteResponse, error)
	DeleteRoute(ctx context.Context, routeID string) error
}

type routeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRouteService(repo *repository.Repository, log *zap.Logger) RouteService {
	return &routeService{
		repo: repo,
		log:  log.With(zap.String("service", "route")),
	}
}

// SearchRoutes filters routes by endpoints and travel day. The date string
// is a calendar day (2006-01-02); the departure time-of-day is ignored.
func (s *routeService) SearchRoutes(ctx context.Context, source, destination, dateStr string) ([]response.RouteResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid travel date %q, want YYYY-MM-DD", domain.ErrInvalidInput, dateStr)
	}

	query, err := domain.NewRouteQuery(source, destination, date)
	if err != nil {
		return nil, err
	}

	routes, err := s.repo.Route.Search(ctx, query.Source, query.Destination, query.Date)
	if err != nil {
		s.log.Error("Failed to search routes",
			zap.Error(err),
			zap.String("source", query.Source),
			zap.String("destination", query.Destination),
			zap.String("date", dateStr),
		)
		return nil, fmt.Errorf("search routes: %w", err)
	}

	// Empty result is a valid outcome, not an error.
	responses := make([]response.RouteResponse, 0, len(routes))
	for _, route := range routes {
		bus, err := s.repo.Bus.FindByID(ctx, route.BusID)
		if err != nil {
			s.log.Warn("Failed to load bus for route",
				zap.Error(err),
				zap.String("route_id", route.ID.String()),
			)
		}
		responses = append(responses, response.RouteToResponse(route, bus))
	}

	s.log.Info("Routes searched",
		zap.String("source", query.Source),
		zap.String("destination", query.Destination),
		zap.String("date", dateStr),
		zap.Int("count", len(responses)),
	)

	return responses, nil
}

func (s *routeService) GetRouteByID(ctx context.Context, routeID string) (*response.RouteResponse, error) {
	route, err := s.findRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}

	bus, err := s.repo.Bus.FindByID(ctx, route.BusID)
	if err != nil {
		s.log.Warn("Failed to load bus for route",
			zap.Error(err),
			zap.String("route_id", routeID),
		)
	}

	resp := response.RouteToResponse(route, bus)
	return &resp, nil
}

// GetSeatMap derives the renderable layout grid from the route's live
// availability. Pure derivation: same route state, same grid.
func (s *routeService) GetSeatMap(ctx context.Context, routeID string) (*response.SeatMapResponse, error) {
	route, err := s.findRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}

	seatMap, err := domain.NewSeatMap(route.TotalSeats, route.AvailableSeats)
	if err != nil {
		s.log.Error("Route has inconsistent seat data",
			zap.Error(err),
			zap.String("route_id", routeID),
		)
		return nil, fmt.Errorf("route seat data: %w", err)
	}

	return &response.SeatMapResponse{
		RouteID:    route.ID.String(),
		TotalSeats: route.TotalSeats,
		Rows:       seatMap.Layout(nil),
	}, nil
}

// ==================== ADMIN METHODS ====================

func (s *routeService) AddRoute(ctx context.Context, busID string, req *request.RouteRequest) (*response.RouteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add route validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	busUUID, err := uuid.Parse(busID)
	if err != nil {
		return nil, fmt.Errorf("invalid bus ID format %s: %w", busID, err)
	}

	bus, err := s.repo.Bus.FindByID(ctx, busUUID)
	if err != nil || bus == nil {
		return nil, fmt.Errorf("bus %s not found", busID)
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid departure time %q", domain.ErrInvalidInput, req.DepartureTime)
	}
	arrival, err := time.Parse(time.RFC3339, req.ArrivalTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid arrival time %q", domain.ErrInvalidInput, req.ArrivalTime)
	}
	if !arrival.After(departure) {
		return nil, fmt.Errorf("%w: arrival must be after departure", domain.ErrInvalidInput)
	}

	// A new route opens with every seat of the bus available.
	available := make([]int, bus.TotalSeats)
	for i := range available {
		available[i] = i + 1
	}

	now := time.Now()
	route := &entity.Route{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusID:          bus.ID,
		Source:         req.Source,
		Destination:    req.Destination,
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		Fare:           req.Fare,
		TotalSeats:     bus.TotalSeats,
		AvailableSeats: available,
		IsActive:       true,
	}

	if err := s.repo.Route.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("add route: %w", err)
	}

	s.log.Info("Route added",
		zap.String("route_id", route.ID.String()),
		zap.String("bus_id", busID),
		zap.String("source", route.Source),
		zap.String("destination", route.Destination),
		zap.Time("departure_time", departure),
	)

	resp := response.RouteToResponse(route, bus)
	return &resp, nil
}

func (s *routeService) DeleteRoute(ctx context.Context, routeID string) error {
	route, err := s.findRoute(ctx, routeID)
	if err != nil {
		return err
	}

	if err := s.repo.Route.Delete(ctx, route.ID); err != nil {
		return fmt.Errorf("delete route %s: %w", routeID, err)
	}

	s.log.Info("Route deleted", zap.String("route_id", routeID))
	return nil
}

func (s *routeService) findRoute(ctx context.Context, routeID string) (*entity.Route, error) {
	id, err := uuid.Parse(routeID)
	if err != nil {
		return nil, fmt.Errorf("invalid route ID format %s: %w", routeID, err)
	}

	route, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find route %s: %w", routeID, err)
	}
	if route == nil {
		return nil, fmt.Errorf("route %s not found", routeID)
	}

	return route, nil
}
