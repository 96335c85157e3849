package eventrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evanlin/lifeboard/internal/domain/caffeine"
	"github.com/evanlin/lifeboard/internal/domain/habits"
)

// PostgresRepository persists brew events in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores one brew event.
func (r *PostgresRepository) Insert(ctx context.Context, event caffeine.BrewEvent) (caffeine.BrewEvent, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO brew_events (id, ts, brew_type, amount_ml, mg)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, ts, brew_type, amount_ml, mg
	`, event.ID, event.Timestamp, event.Type, event.AmountML, event.MG)
	return scanEvent(row)
}

// ListRange returns events with ts in [from, to), oldest first.
func (r *PostgresRepository) ListRange(ctx context.Context, from, to time.Time) ([]caffeine.BrewEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ts, brew_type, amount_ml, mg
		FROM brew_events
		WHERE ts >= $1 AND ts < $2
		ORDER BY ts
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []caffeine.BrewEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Delete removes an event by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brew_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return habits.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (caffeine.BrewEvent, error) {
	var (
		event caffeine.BrewEvent
		ts    time.Time
	)
	if err := row.Scan(&event.ID, &ts, &event.Type, &event.AmountML, &event.MG); err != nil {
		return caffeine.BrewEvent{}, err
	}
	event.Timestamp = ts.UTC()
	return event, nil
}

var _ habits.Repository = (*PostgresRepository)(nil)
