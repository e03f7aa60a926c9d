package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireBooking configures booking and payment routes. Everything here
// requires an authenticated session; the admin block also requires the
// admin role.
func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, log)).Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/my-bookings", bookingHandler.GetMyBookings)
		r.Get("/{id}", bookingHandler.GetMyBookingByID)
		r.Patch("/{id}/cancel", bookingHandler.CancelBooking)
	})

	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/payments/confirm", bookingHandler.ConfirmPayment)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, log),
		middleware.Admin(repo.User, log),
	).Route("/api/admin/bookings", func(r chi.Router) {
		r.Get("/", bookingHandler.GetAllBookings)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Patch("/{id}/cancel", bookingHandler.AdminCancelBooking)
	})
}
