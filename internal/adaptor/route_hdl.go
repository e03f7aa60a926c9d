package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bus-booking/internal/domain"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RouteHandler struct {
	service usecase.RouteService
	log     *zap.Logger
}

func NewRouteHandler(service usecase.RouteService, log *zap.Logger) *RouteHandler {
	return &RouteHandler{
		service: service,
		log:     log,
	}
}

// SearchRoutes handles GET /api/routes/search?source=X&destination=Y&date=2006-01-02
func (h *RouteHandler) SearchRoutes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	source := query.Get("source")
	destination := query.Get("destination")
	date := query.Get("date")

	if source == "" || destination == "" || date == "" {
		utils.ResponseBadRequest(w, "source, destination and date are required", nil)
		return
	}

	routes, err := h.service.SearchRoutes(r.Context(), source, destination, date)
	if err != nil {
		h.handleServiceError(w, err, "search routes")
		return
	}

	utils.ResponseSuccess(w, "Routes retrieved successfully", routes)
}

// GetRouteByID handles GET /api/routes/{id}
func (h *RouteHandler) GetRouteByID(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	route, err := h.service.GetRouteByID(r.Context(), routeID)
	if err != nil {
		h.handleServiceError(w, err, "get route")
		return
	}

	utils.ResponseSuccess(w, "Route retrieved successfully", route)
}

// GetSeatMap handles GET /api/routes/{id}/seats
func (h *RouteHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	seatMap, err := h.service.GetSeatMap(r.Context(), routeID)
	if err != nil {
		h.handleServiceError(w, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "Seat map retrieved successfully", seatMap)
}

// AddRoute handles POST /api/admin/buses/{id}/routes (admin only)
func (h *RouteHandler) AddRoute(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	var req request.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	route, err := h.service.AddRoute(r.Context(), busID, &req)
	if err != nil {
		h.handleServiceError(w, err, "add route")
		return
	}

	utils.ResponseCreated(w, "Route added successfully", route)
}

// DeleteRoute handles DELETE /api/admin/routes/{id} (admin only)
func (h *RouteHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	if err := h.service.DeleteRoute(r.Context(), routeID); err != nil {
		h.handleServiceError(w, err, "delete route")
		return
	}

	utils.ResponseSuccess(w, "Route deleted successfully", nil)
}

// handleServiceError handles errors for route operations
func (h *RouteHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, err)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
