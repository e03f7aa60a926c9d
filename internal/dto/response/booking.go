package response

import (
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/domain"
)

type PassengerResponse struct {
	Name       string        `json:"name"`
	Age        int           `json:"age"`
	Gender     domain.Gender `json:"gender"`
	SeatNumber int           `json:"seat_number"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	OrderID       string               `json:"order_id"`
	UserID        string               `json:"user_id"`
	RouteID       string               `json:"route_id"`
	BusName       string               `json:"bus_name"`
	Source        string               `json:"source"`
	Destination   string               `json:"destination"`
	DepartureTime time.Time            `json:"departure_time"`
	ArrivalTime   time.Time            `json:"arrival_time"`
	Seats         []int                `json:"seats"`
	FarePerSeat   float64              `json:"fare_per_seat"`
	TotalAmount   float64              `json:"total_amount"`
	Status        domain.BookingStatus `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Cancellable   bool                 `json:"cancellable"`
	Passengers    []PassengerResponse  `json:"passengers,omitempty"`
	Payment       *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID               string               `json:"id"`
	BookingID        string               `json:"booking_id"`
	Amount           float64              `json:"amount"`
	Status           domain.PaymentStatus `json:"status"`
	PaymentReference *string              `json:"payment_reference,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// BookingToResponse renders a booking from its own snapshot columns; the
// live route is never consulted. Passengers are reordered to the seat
// sequence the booking was created with.
func BookingToResponse(booking *entity.Booking, passengers []*entity.Passenger, payment *entity.Payment, now time.Time) BookingResponse {
	resp := BookingResponse{
		ID:            booking.ID.String(),
		OrderID:       booking.OrderID,
		UserID:        booking.UserID.String(),
		RouteID:       booking.RouteID.String(),
		BusName:       booking.BusName,
		Source:        booking.Source,
		Destination:   booking.Destination,
		DepartureTime: booking.DepartureTime,
		ArrivalTime:   booking.ArrivalTime,
		Seats:         booking.Seats,
		FarePerSeat:   booking.FarePerSeat,
		TotalAmount:   booking.TotalAmount,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		Cancellable:   domain.CancellableAt(booking.Status, booking.DepartureTime, now),
		CreatedAt:     booking.CreatedAt,
	}

	if len(passengers) > 0 {
		bySeat := make(map[int]*entity.Passenger, len(passengers))
		for _, p := range passengers {
			bySeat[p.SeatNumber] = p
		}

		resp.Passengers = make([]PassengerResponse, 0, len(passengers))
		for _, seat := range booking.Seats {
			if p, ok := bySeat[seat]; ok {
				resp.Passengers = append(resp.Passengers, PassengerResponse{
					Name:       p.FullName,
					Age:        p.Age,
					Gender:     p.Gender,
					SeatNumber: p.SeatNumber,
				})
			}
		}
	}

	if payment != nil {
		paymentResp := PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}

	return resp
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               payment.ID.String(),
		BookingID:        payment.BookingID.String(),
		Amount:           payment.Amount,
		Status:           payment.Status,
		PaymentReference: payment.PaymentReference,
		CreatedAt:        payment.CreatedAt,
	}
}
