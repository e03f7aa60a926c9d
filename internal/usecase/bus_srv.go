package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BusService interface {
	GetBuses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BusResponse], error)
	GetBusByID(ctx context.Context, busID string) (*response.BusResponse, error)
	GetBusRoutes(ctx context.Context, busID string) ([]response.RouteResponse, error)

	// Admin
	AddBus(ctx context.Context, req *request.BusRequest) (*response.BusResponse, error)
	UpdateBus(ctx context.Context, busID string, req *request.BusUpdateRequest) (*response.BusResponse, error)
	DeleteBus(ctx context.Context, busID string) error
}

type busService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBusService(repo *repository.Repository, log *zap.Logger) BusService {
	return &busService{
		repo: repo,
		log:  log.With(zap.String("service", "bus")),
	}
}

func (s *busService) GetBuses(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BusResponse], error) {
	buses, err := s.repo.Bus.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get buses",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get buses: %w", err)
	}

	total, err := s.repo.Bus.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count buses", zap.Error(err))
		return nil, fmt.Errorf("count buses: %w", err)
	}

	busResponses := make([]response.BusResponse, len(buses))
	for i, bus := range buses {
		busResponses[i] = response.BusToResponse(bus)
	}

	s.log.Info("Buses retrieved",
		zap.Int("count", len(buses)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(busResponses, req.Page, req.PerPage, total), nil
}

func (s *busService) GetBusByID(ctx context.Context, busID string) (*response.BusResponse, error) {
	bus, err := s.findBus(ctx, busID)
	if err != nil {
		return nil, err
	}

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) GetBusRoutes(ctx context.Context, busID string) ([]response.RouteResponse, error) {
	bus, err := s.findBus(ctx, busID)
	if err != nil {
		return nil, err
	}

	routes, err := s.repo.Route.FindByBusID(ctx, bus.ID)
	if err != nil {
		s.log.Error("Failed to get routes for bus",
			zap.Error(err),
			zap.String("bus_id", busID),
		)
		return nil, fmt.Errorf("get routes for bus %s: %w", busID, err)
	}

	routeResponses := make([]response.RouteResponse, len(routes))
	for i, route := range routes {
		routeResponses[i] = response.RouteToResponse(route, bus)
	}

	return routeResponses, nil
}

// ==================== ADMIN METHODS ====================

func (s *busService) AddBus(ctx context.Context, req *request.BusRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add bus validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	bus := &entity.Bus{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusNumber:  req.BusNumber,
		BusName:    req.BusName,
		BusType:    entity.BusType(req.BusType),
		TotalSeats: req.TotalSeats,
		Amenities:  req.Amenities,
	}

	if err := s.repo.Bus.Create(ctx, bus); err != nil {
		return nil, fmt.Errorf("add bus: %w", err)
	}

	s.log.Info("Bus added",
		zap.String("bus_id", bus.ID.String()),
		zap.String("bus_number", bus.BusNumber),
		zap.Int("total_seats", bus.TotalSeats),
	)

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) UpdateBus(ctx context.Context, busID string, req *request.BusUpdateRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update bus validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bus, err := s.findBus(ctx, busID)
	if err != nil {
		return nil, err
	}

	// Seat capacity is fixed for the bus's lifetime; routes derive their
	// seat pool from it at creation.
	if req.BusNumber != nil {
		bus.BusNumber = *req.BusNumber
	}
	if req.BusName != nil {
		bus.BusName = *req.BusName
	}
	if req.BusType != nil {
		bus.BusType = entity.BusType(*req.BusType)
	}
	if req.Amenities != nil {
		bus.Amenities = *req.Amenities
	}
	bus.UpdatedAt = time.Now()

	if err := s.repo.Bus.Update(ctx, bus); err != nil {
		return nil, fmt.Errorf("update bus %s: %w", busID, err)
	}

	s.log.Info("Bus updated", zap.String("bus_id", busID))

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) DeleteBus(ctx context.Context, busID string) error {
	bus, err := s.findBus(ctx, busID)
	if err != nil {
		return err
	}

	if err := s.repo.Bus.Delete(ctx, bus.ID); err != nil {
		return fmt.Errorf("delete bus %s: %w", busID, err)
	}

	s.log.Info("Bus deleted", zap.String("bus_id", busID))
	return nil
}

func (s *busService) findBus(ctx context.Context, busID string) (*entity.Bus, error) {
	id, err := uuid.Parse(busID)
	if err != nil {
		return nil, fmt.Errorf("invalid bus ID format %s: %w", busID, err)
	}

	bus, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find bus %s: %w", busID, err)
	}
	if bus == nil {
		return nil, fmt.Errorf("bus %s not found", busID)
	}

	return bus, nil
}
