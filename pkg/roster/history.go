package roster

import (
	"github.com/turnos/turnos/pkg/model"
)

// previousKind looks up employee e's shift kind on date within
// previousShifts, falling back to RestDay when no record exists —
// per spec.md §4.3, absent previous-month data seeds as all-rest.
func previousKind(previousShifts []model.AssignedShift, employeeName, date string) model.ShiftKind {
	for _, s := range previousShifts {
		if s.EmployeeName == employeeName && s.Date == date {
			return ClassifyShift(s)
		}
	}
	return model.RestDay
}

// SeedHistory initializes world's employee states by walking back
// L = max(maxConsecutiveWork, maxConsecutiveOff, 7) days from the
// first day of the target month, replaying previousShifts (or
// treating missing days as rest) so continuity rules carry across
// the month boundary.
func SeedHistory(w *World, employees []model.Employee, previousShifts []model.AssignedShift, rules model.ConsecutivenessRules, firstDayOfMonth string) error {
	L := rules.MaxConsecutiveWorkDays
	if rules.MaxConsecutiveDaysOff > L {
		L = rules.MaxConsecutiveDaysOff
	}
	if L < 7 {
		L = 7
	}

	first, err := ParseDate(firstDayOfMonth)
	if err != nil {
		return err
	}
	start := first.AddDate(0, 0, -L)

	for _, emp := range employees {
		st := w.States[emp.ID]
		if st == nil {
			st = &EmployeeState{}
			w.States[emp.ID] = st
		}
		for d := start; d.Before(first); d = d.AddDate(0, 0, 1) {
			date := d.Format("2006-01-02")
			kind := previousKind(previousShifts, emp.Name, date)
			applyKind(st, kind, date)
		}
		// Previous-month work days count toward streaks, not toward
		// the target month's shift tally.
		st.ShiftsThisMonth = 0
	}
	return nil
}
