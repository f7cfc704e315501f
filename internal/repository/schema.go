// Package repository provides the Postgres-backed ticket and user stores.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables this service needs if they do not
// exist yet. Run once at startup, before any repository is used.
//
// bookings.seq is the insertion-order key: ticket listings and the
// cancellation overwrite both preserve it.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			full_name     TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			seq            BIGSERIAL PRIMARY KEY,
			id             UUID NOT NULL,
			pnr            TEXT NOT NULL UNIQUE,
			train_number   TEXT NOT NULL,
			train_name     TEXT NOT NULL,
			from_station   TEXT NOT NULL,
			to_station     TEXT NOT NULL,
			departure_time TEXT NOT NULL,
			arrival_time   TEXT NOT NULL,
			booking_date   TEXT NOT NULL,
			class_type     TEXT NOT NULL,
			num_seats      INT NOT NULL,
			fare           INT NOT NULL,
			passengers     JSONB NOT NULL,
			options        JSONB NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
