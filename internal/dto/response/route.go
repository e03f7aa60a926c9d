package response

import (
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/domain"
)

type RouteResponse struct {
	ID             string       `json:"id"`
	BusID          string       `json:"bus_id"`
	Bus            *BusResponse `json:"bus,omitempty"`
	Source         string       `json:"source"`
	Destination    string       `json:"destination"`
	DepartureTime  time.Time    `json:"departure_time"`
	ArrivalTime    time.Time    `json:"arrival_time"`
	Fare           float64      `json:"fare"`
	TotalSeats     int          `json:"total_seats"`
	AvailableSeats []int        `json:"available_seats"`
	IsActive       bool         `json:"is_active"`
}

// SeatMapResponse is the renderable layout grid for one route: rows of 4
// logical slots with the aisle marker at column 2.
type SeatMapResponse struct {
	RouteID    string              `json:"route_id"`
	TotalSeats int                 `json:"total_seats"`
	Rows       [][]domain.SeatCell `json:"rows"`
}

func RouteToResponse(route *entity.Route, bus *entity.Bus) RouteResponse {
	resp := RouteResponse{
		ID:             route.ID.String(),
		BusID:          route.BusID.String(),
		Source:         route.Source,
		Destination:    route.Destination,
		DepartureTime:  route.DepartureTime,
		ArrivalTime:    route.ArrivalTime,
		Fare:           route.Fare,
		TotalSeats:     route.TotalSeats,
		AvailableSeats: route.AvailableSeats,
		IsActive:       route.IsActive,
	}

	if bus != nil {
		busResp := BusToResponse(bus)
		resp.Bus = &busResp
	}

	return resp
}
