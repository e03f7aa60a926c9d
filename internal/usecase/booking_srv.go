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

type BookingService interface {
	// Public endpoints (need auth)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetUserBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)

	// Payment
	ConfirmPayment(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.PaymentResponse, error)

	// Admin endpoints
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	AdminCancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository // grouping all booking-related repos
	log  *zap.Logger
	now  func() time.Time // injectable clock for the cancellation window
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
		now:  time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, fmt.Errorf("invalid route ID format %s: %w", req.RouteID, err)
	}

	// Fetch live route snapshot
	route, err := s.repo.Route.FindByID(ctx, routeID)
	if err != nil {
		s.log.Error("Failed to fetch route", zap.Error(err), zap.String("route_id", req.RouteID))
		return nil, fmt.Errorf("fetch route: %w", err)
	}
	if route == nil || !route.IsActive {
		return nil, fmt.Errorf("route %s not found", req.RouteID)
	}

	now := s.now()
	if !route.DepartureTime.After(now) {
		return nil, fmt.Errorf("cannot book route %s: already departed", req.RouteID)
	}

	// Replay the requested seats through the domain core. Any seat the map
	// marks booked means the client selection is stale.
	seatMap, err := domain.NewSeatMap(route.TotalSeats, route.AvailableSeats)
	if err != nil {
		s.log.Error("Route has inconsistent seat data",
			zap.Error(err),
			zap.String("route_id", req.RouteID),
		)
		return nil, fmt.Errorf("route seat data: %w", err)
	}

	selection := domain.NewSelection(seatMap)
	for _, seat := range req.Seats {
		if seat < 1 || seat > route.TotalSeats {
			return nil, fmt.Errorf("%w: seat %d outside range 1..%d", domain.ErrInvalidInput, seat, route.TotalSeats)
		}
		if !selection.Toggle(seat) {
			return nil, fmt.Errorf("seat %d on route %s: %w", seat, req.RouteID, domain.ErrSeatNotAvailable)
		}
	}
	if selection.Count() != len(req.Seats) {
		// A duplicate seat number toggles itself back off.
		return nil, fmt.Errorf("%w: duplicate seat numbers in selection", domain.ErrInvalidInput)
	}

	// Bind passengers to the selection positionally and validate the roster.
	if len(req.Passengers) != selection.Count() {
		return nil, fmt.Errorf("%w: %d passengers for %d seats", domain.ErrInvalidInput, len(req.Passengers), selection.Count())
	}

	roster := domain.NewRoster(selection.Seats())
	for i, p := range req.Passengers {
		if err := roster.Update(i, p.Name, p.Age, domain.Gender(p.Gender)); err != nil {
			return nil, err
		}
	}
	if verr := roster.Validate(); verr != nil {
		s.log.Warn("Incomplete passenger roster",
			zap.String("route_id", req.RouteID),
			zap.Int("passenger_count", roster.Len()),
		)
		return nil, verr
	}

	totalAmount := domain.TotalFare(route.Fare, selection.Count())

	// Reserve the seats atomically. A lost race surfaces here as
	// domain.ErrSeatNotAvailable before anything is persisted.
	if err := s.repo.Route.ReserveSeats(ctx, route.ID, selection.Seats()); err != nil {
		return nil, fmt.Errorf("reserve seats on route %s: %w", req.RouteID, err)
	}

	// Snapshot the route into the booking record.
	var busName string
	if bus, err := s.repo.Bus.FindByID(ctx, route.BusID); err == nil && bus != nil {
		busName = bus.BusName
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:       utils.GenerateOrderID(),
		UserID:        userUUID,
		RouteID:       route.ID,
		Seats:         selection.Seats(),
		TotalAmount:   totalAmount,
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		BusName:       busName,
		Source:        route.Source,
		Destination:   route.Destination,
		DepartureTime: route.DepartureTime,
		ArrivalTime:   route.ArrivalTime,
		FarePerSeat:   route.Fare,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Give the seats back; the reservation must not outlive the booking.
		if relErr := s.repo.Route.ReleaseSeats(ctx, route.ID, booking.Seats); relErr != nil {
			s.log.Error("Failed to release seats after booking create failure",
				zap.Error(relErr),
				zap.String("route_id", req.RouteID),
				zap.Ints("seats", booking.Seats),
			)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Persist passengers in roster order
	passengers := make([]*entity.Passenger, roster.Len())
	for i, p := range roster.Passengers() {
		passengers[i] = &entity.Passenger{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:  booking.ID,
			FullName:   p.Name,
			Age:        p.Age,
			Gender:     p.Gender,
			SeatNumber: p.SeatNumber,
		}
	}

	if err := s.repo.Passenger.CreateBatch(ctx, passengers); err != nil {
		// Rollback: delete booking and release seats
		s.repo.Booking.Delete(ctx, booking.ID)
		if relErr := s.repo.Route.ReleaseSeats(ctx, route.ID, booking.Seats); relErr != nil {
			s.log.Error("Failed to release seats after passenger create failure",
				zap.Error(relErr),
				zap.String("route_id", req.RouteID),
			)
		}
		return nil, fmt.Errorf("create passengers: %w", err)
	}

	// Open the payment leg
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: booking.ID,
		Amount:    totalAmount,
		Status:    domain.PaymentStatusPending,
	}
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment record",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		// Booking stands; payment can be retried via ConfirmPayment.
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", userID),
		zap.String("route_id", req.RouteID),
		zap.Ints("seats", booking.Seats),
		zap.Float64("total_amount", totalAmount),
	)

	resp := response.BookingToResponse(booking, passengers, payment, s.now())
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	responses := s.buildBookingResponses(ctx, bookings)

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetUserBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	if booking.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to view booking %s", bookingID)
	}

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

// CancelBooking cancels the caller's own booking.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	if booking.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to cancel booking %s", bookingID)
	}

	return s.cancel(ctx, booking)
}

// AdminCancelBooking cancels any booking, same guards.
func (s *bookingService) AdminCancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, booking)
}

func (s *bookingService) cancel(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	now := s.now()

	// Both guards run against the departure snapshot before any mutation.
	if err := domain.CancelGuard(booking.Status, booking.DepartureTime, now); err != nil {
		s.log.Warn("Booking cancel rejected",
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", string(booking.Status)),
			zap.Time("departure_time", booking.DepartureTime),
			zap.Error(err),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", booking.ID.String(), err)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, domain.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", booking.ID.String(), err)
	}
	booking.Status = domain.BookingStatusCancelled
	booking.UpdatedAt = now

	// Release the held seats back into the route's pool.
	if err := s.repo.Route.ReleaseSeats(ctx, booking.RouteID, booking.Seats); err != nil {
		s.log.Error("Failed to release seats for cancelled booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("route_id", booking.RouteID.String()),
			zap.Ints("seats", booking.Seats),
		)
		return nil, fmt.Errorf("release seats for booking %s: %w", booking.ID.String(), err)
	}

	// A completed payment flips to refunded on cancellation.
	if booking.PaymentStatus == domain.PaymentStatusCompleted {
		if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentStatusRefunded); err != nil {
			s.log.Error("Failed to mark payment refunded",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
		} else {
			booking.PaymentStatus = domain.PaymentStatusRefunded
			if payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID); payment != nil {
				s.repo.Payment.UpdateStatus(ctx, payment.ID, domain.PaymentStatusRefunded, nil)
			}
		}
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.Ints("released_seats", booking.Seats),
	)

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

// ConfirmPayment marks the booking's payment completed and confirms the
// booking. Idempotent per (booking, reference): replaying the same
// reference returns success without a second transition.
func (s *bookingService) ConfirmPayment(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	if booking.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to pay for booking %s", req.BookingID)
	}

	if booking.Status == domain.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %s is cancelled, cannot confirm payment", req.BookingID)
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find payment for booking %s: %w", req.BookingID, err)
	}
	if payment == nil {
		return nil, fmt.Errorf("payment for booking %s not found", req.BookingID)
	}

	if payment.Status == domain.PaymentStatusCompleted {
		if payment.PaymentReference != nil && *payment.PaymentReference == req.PaymentReference {
			// Idempotent replay
			resp := response.PaymentToResponse(payment)
			return &resp, nil
		}
		return nil, fmt.Errorf("booking %s already paid with a different reference: %w", req.BookingID, domain.ErrPaymentFailed)
	}

	reference := req.PaymentReference
	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, domain.PaymentStatusCompleted, &reference); err != nil {
		return nil, fmt.Errorf("confirm payment for booking %s: %w", req.BookingID, domain.ErrPaymentFailed)
	}
	payment.Status = domain.PaymentStatusCompleted
	payment.PaymentReference = &reference

	// Seats were held at create time; payment only flips the status axes.
	if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentStatusCompleted); err != nil {
		s.log.Error("Failed to update booking payment status",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
	}
	if booking.Status == domain.BookingStatusPending {
		if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, domain.BookingStatusConfirmed); err != nil {
			s.log.Error("Failed to confirm booking after payment",
				zap.Error(err),
				zap.String("booking_id", req.BookingID),
			)
		}
	}

	s.log.Info("Payment confirmed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.String("payment_reference", reference),
		zap.Float64("amount", payment.Amount),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	responses := s.buildBookingResponses(ctx, bookings)
	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	return booking, nil
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	passengers, err := s.repo.Passenger.FindByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Warn("Failed to load passengers for booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		s.log.Warn("Failed to load payment for booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	return response.BookingToResponse(booking, passengers, payment, s.now())
}

func (s *bookingService) buildBookingResponses(ctx context.Context, bookings []*entity.Booking) []response.BookingResponse {
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = s.buildBookingResponse(ctx, booking)
	}
	return responses
}
