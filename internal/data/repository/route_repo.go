package repository

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/domain"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	FindByBusID(ctx context.Context, busID uuid.UUID) ([]*entity.Route, error)
	Search(ctx context.Context, source, destination string, date time.Time) ([]*entity.Route, error)
	Update(ctx context.Context, route *entity.Route) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Reservation primitives. Both mutate available_seats in a single
	// statement so concurrent bookings cannot double-book.
	ReserveSeats(ctx context.Context, routeID uuid.UUID, seats []int) error
	ReleaseSeats(ctx context.Context, routeID uuid.UUID, seats []int) error
}

type routeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteRepository(db database.PgxIface, log *zap.Logger) RouteRepository {
	return &routeRepository{
		db:  db,
		log: log.With(zap.String("repository", "route")),
	}
}

// available_seats is an int4[] column; pgx maps it to []int32.
func seatsToInt32(seats []int) []int32 {
	out := make([]int32, len(seats))
	for i, s := range seats {
		out[i] = int32(s)
	}
	return out
}

func seatsToInt(seats []int32) []int {
	out := make([]int, len(seats))
	for i, s := range seats {
		out[i] = int(s)
	}
	return out
}

func (r *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	query := `
		INSERT INTO routes (id, bus_id, source, destination, departure_time, arrival_time,
		                    fare, total_seats, available_seats, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		route.ID,
		route.BusID,
		route.Source,
		route.Destination,
		route.DepartureTime,
		route.ArrivalTime,
		route.Fare,
		route.TotalSeats,
		seatsToInt32(route.AvailableSeats),
		route.IsActive,
		route.CreatedAt,
		route.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create route",
			zap.Error(err),
			zap.String("bus_id", route.BusID.String()),
			zap.String("source", route.Source),
			zap.String("destination", route.Destination),
		)
		return fmt.Errorf("create route %s-%s: %w", route.Source, route.Destination, err)
	}

	return nil
}

func (r *routeRepository) scanRoute(row pgx.Row) (*entity.Route, error) {
	var route entity.Route
	var available []int32

	err := row.Scan(
		&route.ID,
		&route.BusID,
		&route.Source,
		&route.Destination,
		&route.DepartureTime,
		&route.ArrivalTime,
		&route.Fare,
		&route.TotalSeats,
		&available,
		&route.IsActive,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	route.AvailableSeats = seatsToInt(available)
	return &route, nil
}

const routeColumns = `id, bus_id, source, destination, departure_time, arrival_time,
	       fare, total_seats, available_seats, is_active, created_at, updated_at`

func (r *routeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	query := `
		SELECT ` + routeColumns + `
		FROM routes
		WHERE id = $1 AND deleted_at IS NULL
	`

	route, err := r.scanRoute(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by ID",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return nil, fmt.Errorf("find route by ID %s: %w", id.String(), err)
	}

	return route, nil
}

func (r *routeRepository) FindByBusID(ctx context.Context, busID uuid.UUID) ([]*entity.Route, error) {
	query := `
		SELECT ` + routeColumns + `
		FROM routes
		WHERE bus_id = $1 AND deleted_at IS NULL
		ORDER BY departure_time
	`

	rows, err := r.db.Query(ctx, query, busID)
	if err != nil {
		r.log.Error("Failed to find routes by bus ID",
			zap.Error(err),
			zap.String("bus_id", busID.String()),
		)
		return nil, fmt.Errorf("find routes by bus ID %s: %w", busID.String(), err)
	}
	defer rows.Close()

	return r.collectRoutes(rows)
}

// Search filters active routes on case-insensitive exact endpoints and the
// departure calendar day. An empty result is not an error.
func (r *routeRepository) Search(ctx context.Context, source, destination string, date time.Time) ([]*entity.Route, error) {
	query := `
		SELECT ` + routeColumns + `
		FROM routes
		WHERE LOWER(source) = LOWER($1)
		  AND LOWER(destination) = LOWER($2)
		  AND departure_time::date = $3::date
		  AND is_active = true
		  AND deleted_at IS NULL
		ORDER BY departure_time
	`

	rows, err := r.db.Query(ctx, query, source, destination, date)
	if err != nil {
		r.log.Error("Failed to search routes",
			zap.Error(err),
			zap.String("source", source),
			zap.String("destination", destination),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("search routes %s-%s: %w", source, destination, err)
	}
	defer rows.Close()

	return r.collectRoutes(rows)
}

func (r *routeRepository) collectRoutes(rows pgx.Rows) ([]*entity.Route, error) {
	var routes []*entity.Route
	for rows.Next() {
		route, err := r.scanRoute(rows)
		if err != nil {
			r.log.Error("Failed to scan route row", zap.Error(err))
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func (r *routeRepository) Update(ctx context.Context, route *entity.Route) error {
	query := `
		UPDATE routes
		SET source = $2, destination = $3, departure_time = $4, arrival_time = $5,
		    fare = $6, total_seats = $7, available_seats = $8, is_active = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		route.ID,
		route.Source,
		route.Destination,
		route.DepartureTime,
		route.ArrivalTime,
		route.Fare,
		route.TotalSeats,
		seatsToInt32(route.AvailableSeats),
		route.IsActive,
		route.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update route",
			zap.Error(err),
			zap.String("route_id", route.ID.String()),
		)
		return fmt.Errorf("update route %s: %w", route.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route %s not found", route.ID.String())
	}

	return nil
}

func (r *routeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE routes SET deleted_at = NOW(), is_active = false WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete route",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return fmt.Errorf("delete route %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route %s not found", id.String())
	}

	r.log.Info("Route soft deleted", zap.String("route_id", id.String()))
	return nil
}

// ReserveSeats removes the seats from the route's available pool iff all of
// them are still present (available_seats @> $2). The check and the removal
// happen in one statement, so of two racing bookings exactly one sees its
// row updated; the loser gets domain.ErrSeatNotAvailable.
func (r *routeRepository) ReserveSeats(ctx context.Context, routeID uuid.UUID, seats []int) error {
	if len(seats) == 0 {
		return fmt.Errorf("%w: no seats to reserve", domain.ErrInvalidInput)
	}

	query := `
		UPDATE routes
		SET available_seats = (
			SELECT COALESCE(array_agg(s ORDER BY s), '{}') FROM unnest(available_seats) AS s WHERE s <> ALL($2)
		), updated_at = NOW()
		WHERE id = $1 AND available_seats @> $2 AND is_active = true AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, routeID, seatsToInt32(seats))
	if err != nil {
		r.log.Error("Failed to reserve seats",
			zap.Error(err),
			zap.String("route_id", routeID.String()),
			zap.Ints("seats", seats),
		)
		return fmt.Errorf("reserve seats on route %s: %w", routeID.String(), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Seat reservation lost race",
			zap.String("route_id", routeID.String()),
			zap.Ints("seats", seats),
		)
		return domain.ErrSeatNotAvailable
	}

	return nil
}

// ReleaseSeats unions the seats back into the available pool. Duplicate-safe:
// a seat already present is not added twice.
func (r *routeRepository) ReleaseSeats(ctx context.Context, routeID uuid.UUID, seats []int) error {
	if len(seats) == 0 {
		return nil
	}

	query := `
		UPDATE routes
		SET available_seats = (
			SELECT array_agg(DISTINCT s ORDER BY s) FROM unnest(available_seats || $2) AS s
		), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, routeID, seatsToInt32(seats))
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("route_id", routeID.String()),
			zap.Ints("seats", seats),
		)
		return fmt.Errorf("release seats on route %s: %w", routeID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route %s not found", routeID.String())
	}

	return nil
}
