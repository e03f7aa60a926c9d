package request

type BusRequest struct {
	BusNumber  string   `json:"bus_number" validate:"required,min=2,max=20"`
	BusName    string   `json:"bus_name" validate:"required,min=2,max=100"`
	BusType    string   `json:"bus_type" validate:"required,oneof=AC Non-AC Sleeper Semi-Sleeper"`
	TotalSeats int      `json:"total_seats" validate:"required,min=1,max=100"`
	Amenities  []string `json:"amenities,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

type BusUpdateRequest struct {
	BusNumber *string   `json:"bus_number,omitempty" validate:"omitempty,min=2,max=20"`
	BusName   *string   `json:"bus_name,omitempty" validate:"omitempty,min=2,max=100"`
	BusType   *string   `json:"bus_type,omitempty" validate:"omitempty,oneof=AC Non-AC Sleeper Semi-Sleeper"`
	Amenities *[]string `json:"amenities,omitempty" validate:"omitempty,dive,min=1,max=50"`
}

type RouteRequest struct {
	Source        string  `json:"source" validate:"required,min=2,max=100"`
	Destination   string  `json:"destination" validate:"required,min=2,max=100"`
	DepartureTime string  `json:"departure_time" validate:"required"` // RFC3339
	ArrivalTime   string  `json:"arrival_time" validate:"required"`   // RFC3339, after departure
	Fare          float64 `json:"fare" validate:"required,gt=0"`
}
