package usecase

import (
	"context"
	"errors"
	"testing"

	"bus-booking/internal/domain"

	"go.uber.org/zap"
)

func newRouteService(f *bookingFixture) *routeService {
	return &routeService{
		repo: f.service.repo,
		log:  zap.NewNop(),
	}
}

func TestSearchRoutesMatchesCalendarDay(t *testing.T) {
	f := newBookingFixture(t)
	svc := newRouteService(f)
	ctx := context.Background()

	day := f.route.DepartureTime.Format("2006-01-02")

	routes, err := svc.SearchRoutes(ctx, "chicago", "DETROIT", day)
	if err != nil {
		t.Fatalf("SearchRoutes: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(routes))
	}
	if routes[0].ID != f.route.ID.String() {
		t.Errorf("matched route %s, want %s", routes[0].ID, f.route.ID)
	}
}

func TestSearchRoutesEmptyResultIsNotAnError(t *testing.T) {
	f := newBookingFixture(t)
	svc := newRouteService(f)

	routes, err := svc.SearchRoutes(context.Background(), "Chicago", "Cleveland", "2025-06-17")
	if err != nil {
		t.Fatalf("SearchRoutes: %v", err)
	}
	if len(routes) != 0 {
		t.Fatalf("got %d routes, want 0", len(routes))
	}
}

func TestSearchRoutesRejectsBadDate(t *testing.T) {
	f := newBookingFixture(t)
	svc := newRouteService(f)

	_, err := svc.SearchRoutes(context.Background(), "Chicago", "Detroit", "17-06-2025")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestGetSeatMapReflectsBookings(t *testing.T) {
	f := newBookingFixture(t)
	svc := newRouteService(f)
	ctx := context.Background()

	if _, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{2})); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	seatMap, err := svc.GetSeatMap(ctx, f.route.ID.String())
	if err != nil {
		t.Fatalf("GetSeatMap: %v", err)
	}
	if seatMap.TotalSeats != 4 {
		t.Fatalf("TotalSeats = %d, want 4", seatMap.TotalSeats)
	}

	statuses := make(map[int]domain.SeatStatus)
	for _, row := range seatMap.Rows {
		for _, cell := range row {
			if cell.Number != 0 {
				statuses[cell.Number] = cell.Status
			}
		}
	}

	if statuses[2] != domain.SeatBooked {
		t.Errorf("seat 2 = %q, want booked", statuses[2])
	}
	for _, seat := range []int{1, 3, 4} {
		if statuses[seat] != domain.SeatAvailable {
			t.Errorf("seat %d = %q, want available", seat, statuses[seat])
		}
	}
}
