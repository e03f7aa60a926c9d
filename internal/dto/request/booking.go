package request

type PassengerRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// CreateBookingRequest carries the selected seats in selection order; the
// passengers list binds to the seats positionally. Field-level checks on
// the passengers (trimmed name, age bounds, gender enum) belong to the
// domain roster, not to struct tags, so the error can name the passenger.
type CreateBookingRequest struct {
	RouteID    string             `json:"route_id" validate:"required,uuid4"`
	Seats      []int              `json:"seats" validate:"required,min=1,dive,min=1"`
	Passengers []PassengerRequest `json:"passengers" validate:"required,min=1"`
}

type ConfirmPaymentRequest struct {
	BookingID        string `json:"booking_id" validate:"required,uuid4"`
	PaymentReference string `json:"payment_reference" validate:"required,min=4,max=100"`
}
