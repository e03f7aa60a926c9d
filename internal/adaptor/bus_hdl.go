package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BusHandler struct {
	service usecase.BusService
	log     *zap.Logger
}

func NewBusHandler(service usecase.BusService, log *zap.Logger) *BusHandler {
	return &BusHandler{
		service: service,
		log:     log,
	}
}

// GetBuses handles GET /api/buses?page=1&per_page=10
func (h *BusHandler) GetBuses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	buses, err := h.service.GetBuses(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get buses")
		return
	}

	utils.ResponseSuccess(w, "Buses retrieved successfully", buses)
}

// GetBusByID handles GET /api/buses/{id}
func (h *BusHandler) GetBusByID(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	bus, err := h.service.GetBusByID(r.Context(), busID)
	if err != nil {
		h.handleServiceError(w, err, "get bus")
		return
	}

	utils.ResponseSuccess(w, "Bus retrieved successfully", bus)
}

// GetBusRoutes handles GET /api/buses/{id}/routes
func (h *BusHandler) GetBusRoutes(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	routes, err := h.service.GetBusRoutes(r.Context(), busID)
	if err != nil {
		h.handleServiceError(w, err, "get bus routes")
		return
	}

	utils.ResponseSuccess(w, "Routes retrieved successfully", routes)
}

// AddBus handles POST /api/admin/buses (admin only)
func (h *BusHandler) AddBus(w http.ResponseWriter, r *http.Request) {
	var req request.BusRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	bus, err := h.service.AddBus(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add bus")
		return
	}

	utils.ResponseCreated(w, "Bus added successfully", bus)
}

// UpdateBus handles PUT /api/admin/buses/{id} (admin only)
func (h *BusHandler) UpdateBus(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	var req request.BusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	bus, err := h.service.UpdateBus(r.Context(), busID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update bus")
		return
	}

	utils.ResponseSuccess(w, "Bus updated successfully", bus)
}

// DeleteBus handles DELETE /api/admin/buses/{id} (admin only)
func (h *BusHandler) DeleteBus(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	if err := h.service.DeleteBus(r.Context(), busID); err != nil {
		h.handleServiceError(w, err, "delete bus")
		return
	}

	utils.ResponseSuccess(w, "Bus deleted successfully", nil)
}

// handleServiceError handles errors for bus operations
func (h *BusHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
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
