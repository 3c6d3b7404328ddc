// Package availability implements the weekly availability ledger using
// PostgreSQL. The ledger is fixed at seven rows, one per weekday, seeded by
// the schema migration.
package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studyplan-backend/internal/domain"
)

// Repo provides availability persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new availability repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the full week. Missing rows read as zero hours, so a partially
// seeded ledger still yields a complete week.
func (r *Repo) Get(ctx context.Context) (domain.WeekAvailability, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var week domain.WeekAvailability
	rows, err := q.Query(ctx, `SELECT weekday, hours FROM availability ORDER BY weekday`)
	if err != nil {
		return week, fmt.Errorf("query availability: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var hours float64
		if err := rows.Scan(&weekday, &hours); err != nil {
			return week, fmt.Errorf("scan availability: %w", err)
		}
		if weekday >= 0 && weekday < domain.DaysPerWeek {
			week[weekday] = hours
		}
	}
	return week, rows.Err()
}

// SetHours writes the hours for one weekday.
func (r *Repo) SetHours(ctx context.Context, weekday int, hours float64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE availability SET hours = $1 WHERE weekday = $2`,
		hours, weekday,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("weekday %d: %w", weekday, domain.ErrNotFound)
		}
		return fmt.Errorf("update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("weekday %d: %w", weekday, domain.ErrNotFound)
	}
	return nil
}
