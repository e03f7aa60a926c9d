package usecase

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/domain"
	"bus-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ==================== IN-MEMORY FAKES ====================
// The repositories are interfaces, so the service can run end-to-end
// against plain maps. Reservation semantics mirror the SQL: all-or-nothing
// removal from the available pool, distinct union on release.

type fakeRouteRepo struct {
	routes map[uuid.UUID]*entity.Route
}

func (f *fakeRouteRepo) Create(_ context.Context, route *entity.Route) error {
	f.routes[route.ID] = route
	return nil
}

func (f *fakeRouteRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Route, error) {
	return f.routes[id], nil
}

func (f *fakeRouteRepo) FindByBusID(_ context.Context, busID uuid.UUID) ([]*entity.Route, error) {
	var out []*entity.Route
	for _, r := range f.routes {
		if r.BusID == busID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRouteRepo) Search(_ context.Context, source, destination string, date time.Time) ([]*entity.Route, error) {
	query, err := domain.NewRouteQuery(source, destination, date)
	if err != nil {
		return nil, err
	}
	var out []*entity.Route
	for _, r := range f.routes {
		if r.IsActive && query.Matches(r.Source, r.Destination, r.DepartureTime) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRouteRepo) Update(_ context.Context, route *entity.Route) error {
	f.routes[route.ID] = route
	return nil
}

func (f *fakeRouteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.routes, id)
	return nil
}

func (f *fakeRouteRepo) ReserveSeats(_ context.Context, routeID uuid.UUID, seats []int) error {
	route, ok := f.routes[routeID]
	if !ok {
		return domain.ErrSeatNotAvailable
	}

	available := make(map[int]bool, len(route.AvailableSeats))
	for _, s := range route.AvailableSeats {
		available[s] = true
	}
	for _, s := range seats {
		if !available[s] {
			return domain.ErrSeatNotAvailable
		}
	}
	for _, s := range seats {
		delete(available, s)
	}

	route.AvailableSeats = sortedKeys(available)
	return nil
}

func (f *fakeRouteRepo) ReleaseSeats(_ context.Context, routeID uuid.UUID, seats []int) error {
	route, ok := f.routes[routeID]
	if !ok {
		return nil
	}

	available := make(map[int]bool, len(route.AvailableSeats)+len(seats))
	for _, s := range route.AvailableSeats {
		available[s] = true
	}
	for _, s := range seats {
		available[s] = true
	}

	route.AvailableSeats = sortedKeys(available)
	return nil
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) FindByOrderID(_ context.Context, orderID string) (*entity.Booking, error) {
	for _, b := range f.bookings {
		if b.OrderID == orderID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context, _, _ int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	if b, ok := f.bookings[bookingID]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, bookingID uuid.UUID, status domain.PaymentStatus) error {
	if b, ok := f.bookings[bookingID]; ok {
		b.PaymentStatus = status
	}
	return nil
}

type fakePassengerRepo struct {
	passengers map[uuid.UUID][]*entity.Passenger // keyed by booking ID
}

func (f *fakePassengerRepo) CreateBatch(_ context.Context, passengers []*entity.Passenger) error {
	for _, p := range passengers {
		f.passengers[p.BookingID] = append(f.passengers[p.BookingID], p)
	}
	return nil
}

func (f *fakePassengerRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Passenger, error) {
	return f.passengers[bookingID], nil
}

func (f *fakePassengerRepo) DeleteByBookingID(_ context.Context, bookingID uuid.UUID) error {
	delete(f.passengers, bookingID)
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, paymentID uuid.UUID, status domain.PaymentStatus, reference *string) error {
	if p, ok := f.payments[paymentID]; ok {
		p.Status = status
		if reference != nil {
			p.PaymentReference = reference
		}
	}
	return nil
}

type fakeBusRepo struct {
	buses map[uuid.UUID]*entity.Bus
}

func (f *fakeBusRepo) Create(_ context.Context, bus *entity.Bus) error {
	f.buses[bus.ID] = bus
	return nil
}

func (f *fakeBusRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Bus, error) {
	return f.buses[id], nil
}

func (f *fakeBusRepo) FindAll(_ context.Context, _, _ int) ([]*entity.Bus, error) {
	var out []*entity.Bus
	for _, b := range f.buses {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBusRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.buses)), nil
}

func (f *fakeBusRepo) Update(_ context.Context, bus *entity.Bus) error {
	f.buses[bus.ID] = bus
	return nil
}

func (f *fakeBusRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.buses, id)
	return nil
}

// ==================== FIXTURE ====================

type bookingFixture struct {
	service *bookingService
	routes  *fakeRouteRepo
	route   *entity.Route
	userID  uuid.UUID
	now     time.Time
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	bus := &entity.Bus{
		Base:       entity.Base{ID: uuid.New()},
		BusNumber:  "MI-204",
		BusName:    "Lakeshore Express",
		BusType:    entity.BusTypeAC,
		TotalSeats: 4,
	}

	route := &entity.Route{
		Base:           entity.Base{ID: uuid.New()},
		BusID:          bus.ID,
		Source:         "Chicago",
		Destination:    "Detroit",
		DepartureTime:  now.Add(24 * time.Hour),
		ArrivalTime:    now.Add(29 * time.Hour),
		Fare:           20,
		TotalSeats:     4,
		AvailableSeats: []int{1, 2, 3, 4},
		IsActive:       true,
	}

	routes := &fakeRouteRepo{routes: map[uuid.UUID]*entity.Route{route.ID: route}}
	repo := &repository.Repository{
		Bus:       &fakeBusRepo{buses: map[uuid.UUID]*entity.Bus{bus.ID: bus}},
		Route:     routes,
		Booking:   &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}},
		Passenger: &fakePassengerRepo{passengers: map[uuid.UUID][]*entity.Passenger{}},
		Payment:   &fakePaymentRepo{payments: map[uuid.UUID]*entity.Payment{}},
	}

	return &bookingFixture{
		service: &bookingService{
			repo: repo,
			log:  zap.NewNop(),
			now:  func() time.Time { return now },
		},
		routes: routes,
		route:  route,
		userID: uuid.New(),
		now:    now,
	}
}

func (f *bookingFixture) createRequest(seats []int) *request.CreateBookingRequest {
	passengers := make([]request.PassengerRequest, len(seats))
	for i := range seats {
		passengers[i] = request.PassengerRequest{Name: "Passenger", Age: 30, Gender: "Female"}
	}
	return &request.CreateBookingRequest{
		RouteID:    f.route.ID.String(),
		Seats:      seats,
		Passengers: passengers,
	}
}

// ==================== TESTS ====================

func TestCreateBookingEndToEnd(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{2, 4}))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("Status = %q, want pending", booking.Status)
	}
	if booking.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("PaymentStatus = %q, want pending", booking.PaymentStatus)
	}
	if booking.TotalAmount != 40 {
		t.Errorf("TotalAmount = %v, want 40", booking.TotalAmount)
	}
	if !reflect.DeepEqual(booking.Seats, []int{2, 4}) {
		t.Errorf("Seats = %v, want [2 4]", booking.Seats)
	}
	if len(booking.Passengers) != 2 {
		t.Errorf("got %d passengers, want 2", len(booking.Passengers))
	}

	// The route's pool shrinks by exactly the reserved seats.
	if got := f.route.AvailableSeats; !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("AvailableSeats = %v, want [1 3]", got)
	}
}

func TestCreateBookingLosesRace(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	if _, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{2})); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Second booking wants a seat the first already holds.
	_, err := f.service.CreateBooking(ctx, uuid.New().String(), f.createRequest([]int{2, 3}))
	if !errors.Is(err, domain.ErrSeatNotAvailable) {
		t.Fatalf("want ErrSeatNotAvailable, got %v", err)
	}

	// Seat 3 must not be held by the failed attempt.
	if got := f.route.AvailableSeats; !reflect.DeepEqual(got, []int{1, 3, 4}) {
		t.Errorf("AvailableSeats = %v, want [1 3 4]", got)
	}
}

func TestCreateBookingRejectsDuplicateSeats(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest([]int{2, 2})
	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), req)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestCreateBookingRejectsIncompleteRoster(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest([]int{1, 2})
	req.Passengers[1].Age = 0

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), req)
	if err == nil {
		t.Fatal("want roster validation error")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *domain.ValidationError, got %T: %v", err, err)
	}
	if verr.Fields[0].Index != 1 || verr.Fields[0].Field != "age" {
		t.Errorf("flagged %+v, want passenger 1 age", verr.Fields[0])
	}

	// Nothing was reserved.
	if got := f.route.AvailableSeats; !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("AvailableSeats = %v, want untouched pool", got)
	}
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{2, 4}))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	cancelled, err := f.service.CancelBooking(ctx, f.userID.String(), created.ID)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != domain.BookingStatusCancelled {
		t.Errorf("Status = %q, want cancelled", cancelled.Status)
	}

	if got := f.route.AvailableSeats; !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("AvailableSeats = %v, want full pool back", got)
	}

	// Second cancel is rejected as already cancelled.
	_, err = f.service.CancelBooking(ctx, f.userID.String(), created.ID)
	if !errors.Is(err, domain.ErrAlreadyCancelled) {
		t.Fatalf("want ErrAlreadyCancelled, got %v", err)
	}
}

func TestCancelBookingAfterDeparture(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{1}))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Move the clock past departure.
	f.service.now = func() time.Time { return f.route.DepartureTime.Add(time.Minute) }

	_, err = f.service.CancelBooking(ctx, f.userID.String(), created.ID)
	if !errors.Is(err, domain.ErrCancellationWindowClosed) {
		t.Fatalf("want ErrCancellationWindowClosed, got %v", err)
	}
}

func TestCancelBookingOwnership(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{1}))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := f.service.CancelBooking(ctx, uuid.New().String(), created.ID); err == nil {
		t.Fatal("cancelling someone else's booking should fail")
	}
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{1, 2}))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	req := &request.ConfirmPaymentRequest{
		BookingID:        created.ID,
		PaymentReference: "TXN-12345",
	}

	payment, err := f.service.ConfirmPayment(ctx, f.userID.String(), req)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if payment.Status != domain.PaymentStatusCompleted {
		t.Errorf("payment Status = %q, want completed", payment.Status)
	}

	booking, err := f.service.GetUserBookingByID(ctx, f.userID.String(), created.ID)
	if err != nil {
		t.Fatalf("GetUserBookingByID: %v", err)
	}
	if booking.Status != domain.BookingStatusConfirmed {
		t.Errorf("booking Status = %q, want confirmed", booking.Status)
	}
	if booking.PaymentStatus != domain.PaymentStatusCompleted {
		t.Errorf("booking PaymentStatus = %q, want completed", booking.PaymentStatus)
	}

	// Replaying the same reference succeeds without a second transition.
	if _, err := f.service.ConfirmPayment(ctx, f.userID.String(), req); err != nil {
		t.Fatalf("idempotent replay: %v", err)
	}

	// A different reference on a completed payment is rejected.
	other := &request.ConfirmPaymentRequest{
		BookingID:        created.ID,
		PaymentReference: "TXN-99999",
	}
	if _, err := f.service.ConfirmPayment(ctx, f.userID.String(), other); !errors.Is(err, domain.ErrPaymentFailed) {
		t.Fatalf("want ErrPaymentFailed, got %v", err)
	}
}

func TestCancelRefundsCompletedPayment(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.userID.String(), f.createRequest([]int{3}))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := f.service.ConfirmPayment(ctx, f.userID.String(), &request.ConfirmPaymentRequest{
		BookingID:        created.ID,
		PaymentReference: "TXN-777",
	}); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	cancelled, err := f.service.CancelBooking(ctx, f.userID.String(), created.ID)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.PaymentStatus != domain.PaymentStatusRefunded {
		t.Errorf("PaymentStatus = %q, want refunded", cancelled.PaymentStatus)
	}
}

func TestCreateBookingOnDepartedRoute(t *testing.T) {
	f := newBookingFixture(t)

	f.route.DepartureTime = f.now.Add(-time.Hour)

	_, err := f.service.CreateBooking(context.Background(), f.userID.String(), f.createRequest([]int{1}))
	if err == nil {
		t.Fatal("booking a departed route should fail")
	}
}
