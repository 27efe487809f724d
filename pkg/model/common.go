// Package model defines the shared data model for the roster engine.
package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel carries the fields every stored entity needs; value types
// without an identity of their own (AssignedShift, Violation,
// ScoreBreakdown) do not embed it. The store keeps AssignedShift and
// ScoreBreakdown only as JSON inside a schedule row.
type BaseModel struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewBaseModel stamps a base model with a fresh id and the current time.
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// DateRange is an inclusive YYYY-MM-DD span.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
