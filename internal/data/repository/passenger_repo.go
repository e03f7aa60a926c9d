package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PassengerRepository interface {
	CreateBatch(ctx context.Context, passengers []*entity.Passenger) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Passenger, error)
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error
}

type passengerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPassengerRepository(db database.PgxIface, log *zap.Logger) PassengerRepository {
	return &passengerRepository{
		db:  db,
		log: log.With(zap.String("repository", "passenger")),
	}
}

func (r *passengerRepository) CreateBatch(ctx context.Context, passengers []*entity.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}

	query := `INSERT INTO passengers (id, booking_id, full_name, age, gender, seat_number, created_at) VALUES `
	args := []interface{}{}

	for i, p := range passengers {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*7+1, i*7+2, i*7+3, i*7+4, i*7+5, i*7+6, i*7+7)

		args = append(args,
			p.ID,
			p.BookingID,
			p.FullName,
			p.Age,
			p.Gender,
			p.SeatNumber,
			p.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create passengers",
			zap.Error(err),
			zap.Int("count", len(passengers)),
			zap.String("booking_id", passengers[0].BookingID.String()),
		)
		return fmt.Errorf("create %d passengers: %w", len(passengers), err)
	}

	return nil
}

// FindByBookingID returns passengers in roster order (seat-binding order).
func (r *passengerRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Passenger, error) {
	query := `
		SELECT id, booking_id, full_name, age, gender, seat_number, created_at
		FROM passengers
		WHERE booking_id = $1
		ORDER BY created_at, seat_number
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find passengers by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find passengers by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var passengers []*entity.Passenger
	for rows.Next() {
		var p entity.Passenger
		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.FullName,
			&p.Age,
			&p.Gender,
			&p.SeatNumber,
			&p.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan passenger row", zap.Error(err))
			return nil, fmt.Errorf("scan passenger row: %w", err)
		}
		passengers = append(passengers, &p)
	}

	return passengers, nil
}

func (r *passengerRepository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	query := `DELETE FROM passengers WHERE booking_id = $1`

	_, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to delete passengers by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("delete passengers by booking ID %s: %w", bookingID.String(), err)
	}

	return nil
}
