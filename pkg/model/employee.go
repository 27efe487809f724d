// Package model defines the shared data model for the roster engine.
package model

import "github.com/google/uuid"

// WorkPattern is a whole-employee policy overriding per-day preferences.
type WorkPattern string

const (
	StandardRotation       WorkPattern = "standardRotation"
	MondayToFridayMorning  WorkPattern = "mondayToFridayMorning"
	MondayToFridayAfternoon WorkPattern = "mondayToFridayAfternoon"
)

// FixedWeeklyTiming is what a fixed weekly preference resolves to.
type FixedWeeklyTiming string

const (
	TimingNone      FixedWeeklyTiming = "none"
	TimingRestDay   FixedWeeklyTiming = "rest_day"
	TimingMorning   FixedWeeklyTiming = "morning"
	TimingAfternoon FixedWeeklyTiming = "afternoon"
	TimingNight     FixedWeeklyTiming = "night"
)

// EmployeePreferences is the per-employee preference set from spec.md §3.
type EmployeePreferences struct {
	EligibleForDayOffAfterDuty bool
	PrefersWeekendWork         bool
	// FixedWeeklyShiftDays holds normalized weekday keys (see
	// pkg/roster/calendar.NormalizeWeekday): lunes..domingo.
	FixedWeeklyShiftDays  map[string]bool
	FixedWeeklyShiftTiming FixedWeeklyTiming
	WorkPattern           *WorkPattern // nil means "null" per spec
}

// FixedAssignmentType is the closed set of fixed-assignment kinds.
type FixedAssignmentType string

const (
	FixedRestDay FixedAssignmentType = "D"
	FixedAnnual  FixedAssignmentType = "LAO"
	FixedMedical FixedAssignmentType = "LM"
)

// FixedAssignment is an employee-specified off-period on the covered
// days (inclusive of EndDate, if set). The engine places LAO and LM
// assignments on those days; a D-type assignment is not acted on.
type FixedAssignment struct {
	Type        FixedAssignmentType
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD, optional: empty means single day
	Description string
}

// Covers reports whether the fixed assignment applies on date
// (YYYY-MM-DD), inclusive of both bounds.
func (f FixedAssignment) Covers(date string) bool {
	end := f.EndDate
	if end == "" {
		end = f.StartDate
	}
	return date >= f.StartDate && date <= end
}

// Employee is a roster participant with preferences and fixed leave.
type Employee struct {
	BaseModel
	Name             string
	ServiceIDs       map[uuid.UUID]bool
	Preferences      EmployeePreferences
	FixedAssignments []FixedAssignment
}

// InService reports whether the employee belongs to the given service.
func (e *Employee) InService(id uuid.UUID) bool {
	return e.ServiceIDs[id]
}
