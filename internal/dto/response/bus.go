package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BusResponse struct {
	ID         string         `json:"id"`
	BusNumber  string         `json:"bus_number"`
	BusName    string         `json:"bus_name"`
	BusType    entity.BusType `json:"bus_type"`
	TotalSeats int            `json:"total_seats"`
	Amenities  []string       `json:"amenities"`
	CreatedAt  time.Time      `json:"created_at"`
}

func BusToResponse(bus *entity.Bus) BusResponse {
	return BusResponse{
		ID:         bus.ID.String(),
		BusNumber:  bus.BusNumber,
		BusName:    bus.BusName,
		BusType:    bus.BusType,
		TotalSeats: bus.TotalSeats,
		Amenities:  bus.Amenities,
		CreatedAt:  bus.CreatedAt,
	}
}
