package roster

import (
	"time"

	"github.com/google/uuid"
	"github.com/turnos/turnos/pkg/model"
)

// EmployeeState is one employee's mutable tally during a single
// generation or evaluation pass. Created fresh per attempt and
// discarded; never persisted.
type EmployeeState struct {
	ConsecutiveWork int
	ConsecutiveRest int
	ShiftsThisMonth int
	LastKind        model.ShiftKind

	// LastWorkShiftEnd is the absolute instant the employee's most
	// recent work shift ended, zero if none yet recorded.
	LastWorkShiftEnd time.Time
	HasLastWorkEnd   bool

	// CompleteWeekendsOffThisMonth is not updated by applyKind or the
	// engine and stays zero; the evaluator counts complete weekends off
	// from the shifts themselves (countCompleteWeekendsOff).
	CompleteWeekendsOffThisMonth int
}

// World is the mutable per-attempt context threaded through the
// assignment engine's layers: employee states plus the scratch sets
// for the day currently being processed.
type World struct {
	States map[uuid.UUID]*EmployeeState

	// Per-day scratch state, reset at the top of each day.
	RemainingNeed map[model.ShiftKind]int
	Processed     map[uuid.UUID]bool
	AssignedWork  map[uuid.UUID]bool
}

// NewWorld allocates empty per-employee state for every id in ids.
func NewWorld(ids []uuid.UUID) *World {
	w := &World{States: make(map[uuid.UUID]*EmployeeState, len(ids))}
	for _, id := range ids {
		w.States[id] = &EmployeeState{}
	}
	return w
}

// ResetDay clears the per-day scratch sets and seeds remainingNeed
// from svc's staffing table for the given demand column.
func (w *World) ResetDay(svc model.Service, col model.DemandColumn) {
	need := map[model.ShiftKind]int{
		model.Morning:   svc.StaffingNeeds.For(model.Morning, col),
		model.Afternoon: svc.StaffingNeeds.For(model.Afternoon, col),
	}
	if svc.EnableNightShift {
		need[model.Night] = svc.StaffingNeeds.For(model.Night, col)
	} else {
		need[model.Night] = 0
	}
	w.RemainingNeed = need
	w.Processed = make(map[uuid.UUID]bool)
	w.AssignedWork = make(map[uuid.UUID]bool)
}

// applyKind updates an employee's state to reflect being assigned
// kind on date, per spec.md §4.3's counter-update rules.
func applyKind(st *EmployeeState, kind model.ShiftKind, date string) {
	switch {
	case kind.IsWork():
		if st.LastKind.IsWork() {
			st.ConsecutiveWork++
		} else {
			st.ConsecutiveWork = 1
		}
		st.ConsecutiveRest = 0
		if _, end := model.CanonicalWindow(kind); end != "" {
			if endInstant, err := ShiftEndInstant(date, end); err == nil {
				st.LastWorkShiftEnd = endInstant
				st.HasLastWorkEnd = true
			}
		}
		st.ShiftsThisMonth++
	case kind.IsOff():
		if st.LastKind.IsOff() || st.LastKind == model.NoShift {
			st.ConsecutiveRest++
		} else {
			st.ConsecutiveRest = 1
		}
		st.ConsecutiveWork = 0
	}
	st.LastKind = kind
}
