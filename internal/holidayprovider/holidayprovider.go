// Package holidayprovider supplies the holiday dates the roster core
// treats as a read-only input. Backed by a small Postgres table; the
// core itself never queries it directly.
package holidayprovider

import (
	"context"
	"fmt"

	"github.com/turnos/turnos/internal/store"
)

// Provider reads holidays from a `holidays(date DATE PRIMARY KEY,
// description TEXT)` table.
type Provider struct {
	db *store.DB
}

// New wraps db.
func New(db *store.DB) *Provider {
	return &Provider{db: db}
}

// HolidaysInRange returns every holiday date (YYYY-MM-DD) between
// startDate and endDate, inclusive, as a set.
func (p *Provider) HolidaysInRange(ctx context.Context, startDate, endDate string) (map[string]bool, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD') FROM holidays
		WHERE date BETWEEN $1 AND $2
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("querying holidays: %w", err)
	}
	defer rows.Close()

	holidays := make(map[string]bool)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning holiday row: %w", err)
		}
		holidays[date] = true
	}
	return holidays, rows.Err()
}
