package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/turnos/turnos/pkg/model"
)

// ScheduleStatus is a stored schedule's lifecycle stage.
type ScheduleStatus string

const (
	StatusDraft     ScheduleStatus = "draft"
	StatusPublished ScheduleStatus = "published"
	StatusArchived  ScheduleStatus = "archived"
)

// ScheduleKey identifies one (service, month) schedule slot.
type ScheduleKey struct {
	ServiceID uuid.UUID
	Year      int
	Month     int
}

// StoredSchedule is one persisted version of a schedule.
type StoredSchedule struct {
	Key            ScheduleKey
	Version        int
	Status         ScheduleStatus
	Shifts         []model.AssignedShift
	Score          float64
	ScoreBreakdown model.ScoreBreakdown
}

// ScheduleRepository persists generated/evaluated rosters, keyed by
// (serviceID, year, month), with monotonically incrementing versions.
// The roster core never calls this directly — see SaveDraft/Publish.
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository wraps db.
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// SaveDraft inserts a new draft version for key, returning the
// version number assigned.
func (r *ScheduleRepository) SaveDraft(ctx context.Context, key ScheduleKey, shifts []model.AssignedShift, score float64, breakdown model.ScoreBreakdown) (int, error) {
	shiftsJSON, err := json.Marshal(shifts)
	if err != nil {
		return 0, fmt.Errorf("marshaling shifts: %w", err)
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return 0, fmt.Errorf("marshaling score breakdown: %w", err)
	}

	var version int
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO schedules (service_id, year, month, version, status, shifts, score, score_breakdown)
		VALUES ($1, $2, $3,
			COALESCE((SELECT MAX(version) FROM schedules WHERE service_id = $1 AND year = $2 AND month = $3), 0) + 1,
			'draft', $4, $5, $6)
		RETURNING version
	`, key.ServiceID, key.Year, key.Month, shiftsJSON, score, breakdownJSON).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("saving draft: %w", err)
	}
	return version, nil
}

// Publish marks the given version of key as published, archiving any
// previously published version for that key.
func (r *ScheduleRepository) Publish(ctx context.Context, key ScheduleKey, version int) error {
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE schedules SET status = 'archived'
			WHERE service_id = $1 AND year = $2 AND month = $3 AND status = 'published'
		`, key.ServiceID, key.Year, key.Month); err != nil {
			return fmt.Errorf("archiving previous published version: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE schedules SET status = 'published'
			WHERE service_id = $1 AND year = $2 AND month = $3 AND version = $4
		`, key.ServiceID, key.Year, key.Month, version)
		if err != nil {
			return fmt.Errorf("publishing version %d: %w", version, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no schedule found for %+v version %d", key, version)
		}
		return nil
	})
}

// GetPreviousMonth returns the published shifts for the month
// immediately before (year, month), or an empty slice if none exist —
// the seed input to the history seeder.
func (r *ScheduleRepository) GetPreviousMonth(ctx context.Context, serviceID uuid.UUID, year, month int) ([]model.AssignedShift, error) {
	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevMonth = 12
		prevYear--
	}

	var shiftsJSON []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT shifts FROM schedules
		WHERE service_id = $1 AND year = $2 AND month = $3 AND status = 'published'
		LIMIT 1
	`, serviceID, prevYear, prevMonth).Scan(&shiftsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading previous month schedule: %w", err)
	}

	var shifts []model.AssignedShift
	if err := json.Unmarshal(shiftsJSON, &shifts); err != nil {
		return nil, fmt.Errorf("unmarshaling previous month shifts: %w", err)
	}
	return shifts, nil
}

// GetLatest returns the highest-version schedule for key, regardless
// of status.
func (r *ScheduleRepository) GetLatest(ctx context.Context, key ScheduleKey) (*StoredSchedule, error) {
	var (
		version       int
		status        string
		shiftsJSON    []byte
		score         float64
		breakdownJSON []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT version, status, shifts, score, score_breakdown FROM schedules
		WHERE service_id = $1 AND year = $2 AND month = $3
		ORDER BY version DESC LIMIT 1
	`, key.ServiceID, key.Year, key.Month).Scan(&version, &status, &shiftsJSON, &score, &breakdownJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest schedule: %w", err)
	}

	var shifts []model.AssignedShift
	if err := json.Unmarshal(shiftsJSON, &shifts); err != nil {
		return nil, fmt.Errorf("unmarshaling shifts: %w", err)
	}
	var breakdown model.ScoreBreakdown
	if err := json.Unmarshal(breakdownJSON, &breakdown); err != nil {
		return nil, fmt.Errorf("unmarshaling score breakdown: %w", err)
	}

	return &StoredSchedule{
		Key: key, Version: version, Status: ScheduleStatus(status),
		Shifts: shifts, Score: score, ScoreBreakdown: breakdown,
	}, nil
}
