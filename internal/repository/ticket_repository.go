package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ani232003/IRCTC/internal/model"
)

// TicketRepository is the Postgres implementation of the ticket store:
// an ordered sequence of confirmed bookings, appended on payment and
// overwritten wholesale on cancellation. Passengers and add-on options
// are persisted as JSONB.
type TicketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository creates a ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

// ListBookings returns all persisted bookings in insertion order.
func (r *TicketRepository) ListBookings(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, pnr, train_number, train_name, from_station, to_station,
		       departure_time, arrival_time, booking_date, class_type,
		       num_seats, fare, passengers, options, created_at
		FROM bookings
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("tickets: query: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tickets: rows: %w", err)
	}
	return bookings, nil
}

// AppendBooking inserts one confirmed booking at the end of the store.
func (r *TicketRepository) AppendBooking(ctx context.Context, b *model.Booking) error {
	passengers, options, err := marshalJSONB(b)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO bookings (
			id, pnr, train_number, train_name, from_station, to_station,
			departure_time, arrival_time, booking_date, class_type,
			num_seats, fare, passengers, options, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		b.ID, b.PNR, b.TrainNumber, b.TrainName, b.From, b.To,
		b.DepartureTime, b.ArrivalTime, b.BookingDate, b.ClassType,
		b.NumSeats, b.Fare, passengers, options, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("tickets: insert %s: %w", b.PNR, err)
	}
	return nil
}

// ReplaceBookings overwrites the full persisted set in one transaction,
// reassigning insertion order to match the given slice. This is the
// cancellation path: last writer wins, no cross-writer coordination.
func (r *TicketRepository) ReplaceBookings(ctx context.Context, bookings []model.Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("tickets: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("tickets: clear: %w", err)
	}
	for i := range bookings {
		b := &bookings[i]
		passengers, options, err := marshalJSONB(b)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO bookings (
				id, pnr, train_number, train_name, from_station, to_station,
				departure_time, arrival_time, booking_date, class_type,
				num_seats, fare, passengers, options, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`,
			b.ID, b.PNR, b.TrainNumber, b.TrainName, b.From, b.To,
			b.DepartureTime, b.ArrivalTime, b.BookingDate, b.ClassType,
			b.NumSeats, b.Fare, passengers, options, b.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("tickets: reinsert %s: %w", b.PNR, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tickets: commit: %w", err)
	}
	return nil
}

// PNRExists reports whether a booking with the given PNR is stored.
func (r *TicketRepository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE pnr = $1)`, pnr,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("tickets: pnr exists: %w", err)
	}
	return exists, nil
}

// ─── Helpers ────────────────────────────────────────────────

func marshalJSONB(b *model.Booking) (passengers, options []byte, err error) {
	passengers, err = json.Marshal(b.Passengers)
	if err != nil {
		return nil, nil, fmt.Errorf("tickets: marshal passengers: %w", err)
	}
	options, err = json.Marshal(b.Options)
	if err != nil {
		return nil, nil, fmt.Errorf("tickets: marshal options: %w", err)
	}
	return passengers, options, nil
}

func scanBooking(rows pgx.Rows) (*model.Booking, error) {
	var (
		b          model.Booking
		passengers []byte
		options    []byte
	)
	err := rows.Scan(
		&b.ID, &b.PNR, &b.TrainNumber, &b.TrainName, &b.From, &b.To,
		&b.DepartureTime, &b.ArrivalTime, &b.BookingDate, &b.ClassType,
		&b.NumSeats, &b.Fare, &passengers, &options, &b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("tickets: scan: %w", err)
	}
	if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
		return nil, fmt.Errorf("tickets: decode passengers: %w", err)
	}
	if err := json.Unmarshal(options, &b.Options); err != nil {
		return nil, fmt.Errorf("tickets: decode options: %w", err)
	}
	return &b, nil
}
