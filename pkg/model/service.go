// Package model defines the shared data model for the roster engine.
package model

import "github.com/google/uuid"

// DemandColumn selects which staffing-needs column applies to a day.
type DemandColumn int

const (
	Weekday DemandColumn = iota
	WeekendOrHoliday
)

// StaffingNeeds is the six integers {M,T,N} x {weekday, weekend_or_holiday}.
type StaffingNeeds struct {
	MorningWeekday         int
	AfternoonWeekday       int
	NightWeekday           int
	MorningWeekendHoliday  int
	AfternoonWeekendHoliday int
	NightWeekendHoliday     int
}

// For returns the demand for the given kind and column. Kinds other
// than M/T/N return 0.
func (s StaffingNeeds) For(kind ShiftKind, col DemandColumn) int {
	weekend := col == WeekendOrHoliday
	switch kind {
	case Morning:
		if weekend {
			return s.MorningWeekendHoliday
		}
		return s.MorningWeekday
	case Afternoon:
		if weekend {
			return s.AfternoonWeekendHoliday
		}
		return s.AfternoonWeekday
	case Night:
		if weekend {
			return s.NightWeekendHoliday
		}
		return s.NightWeekday
	default:
		return 0
	}
}

// ConsecutivenessRules bounds how many work/rest days may run together.
type ConsecutivenessRules struct {
	MaxConsecutiveWorkDays                   int
	PreferredConsecutiveWorkDays             int
	MaxConsecutiveDaysOff                    int
	PreferredConsecutiveDaysOff              int
	MinConsecutiveDaysOffRequiredBeforeWork  int
}

// Service is a demand-owning organizational unit (e.g. a ward).
type Service struct {
	BaseModel
	Name                      string
	EnableNightShift          bool
	StaffingNeeds             StaffingNeeds
	ConsecutivenessRules      ConsecutivenessRules
	TargetCompleteWeekendsOff *int // per-month, optional
}

// ServiceID is a convenience alias used where only the identifier
// (not the full Service) is needed, e.g. an Employee's service set.
type ServiceID = uuid.UUID
