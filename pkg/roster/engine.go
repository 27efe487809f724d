package roster

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/turnos/turnos/pkg/model"
)

// place records kind as employee id's assignment for date, builds the
// AssignedShift with note, updates state, and marks the employee
// processed (and, for work kinds, assignedWork) for the day.
func place(w *World, emp model.Employee, date, serviceName string, kind model.ShiftKind, note string, out *[]model.AssignedShift) {
	start, end := model.CanonicalWindow(kind)
	*out = append(*out, model.AssignedShift{
		Date:         date,
		EmployeeName: emp.Name,
		ServiceName:  serviceName,
		StartTime:    start,
		EndTime:      end,
		Notes:        note,
	})
	applyKind(w.States[emp.ID], kind, date)
	w.Processed[emp.ID] = true
	if kind.IsWork() {
		w.AssignedWork[emp.ID] = true
	}
}

// restOK reports whether placing a work shift of kind on date for st
// respects the rest-hour rule against st's last recorded work end.
func restOK(st *EmployeeState, date string, kind model.ShiftKind, restHours int) bool {
	if !st.HasLastWorkEnd {
		return true
	}
	start, _ := model.CanonicalWindow(kind)
	hours, err := RestHours(st.LastWorkShiftEnd, date, start)
	if err != nil {
		return false
	}
	return hours >= float64(restHours)
}

// GenerateDay runs layers A-E for one day, appending shifts to out
// and returning the violations Layers A, C and D raised along the way (see
// spec.md §9's open question on surfacing pattern conflicts — this
// implementation surfaces a warning rather than silently dropping it).
func GenerateDay(w *World, svc model.Service, employees []model.Employee, date string, holidays map[string]bool, rules model.RulesConfig, rng *rand.Rand, out *[]model.AssignedShift) []model.Violation {
	var violations []model.Violation
	col := DemandColumnFor(date, holidays)
	isHoliday := holidays[date]
	isWeekend := IsWeekend(date)
	w.ResetDay(svc, col)
	// Consecutiveness thresholds are owned by the service (spec.md §3);
	// the engine reads only the rest-hour threshold from RulesConfig
	// (its DefaultTargetWeekendsOff is not read; Layer E uses
	// svc.TargetCompleteWeekendsOff alone). The evaluator reads the same
	// svc.ConsecutivenessRules so generator and evaluator agree.
	cr := svc.ConsecutivenessRules

	// Layer A — work patterns.
	for _, emp := range employees {
		if w.Processed[emp.ID] || emp.Preferences.WorkPattern == nil {
			continue
		}
		pattern := *emp.Preferences.WorkPattern
		if pattern != model.MondayToFridayMorning && pattern != model.MondayToFridayAfternoon {
			continue
		}
		st := w.States[emp.ID]
		if isWeekend {
			place(w, emp, date, svc.Name, model.RestDay, noteRestPatron(), out)
			continue
		}
		if isHoliday {
			place(w, emp, date, svc.Name, model.Holiday, noteHolidayPatron(), out)
			continue
		}
		kind := model.Morning
		if pattern == model.MondayToFridayAfternoon {
			kind = model.Afternoon
		}
		if restOK(st, date, kind, rules.RestHours) {
			place(w, emp, date, svc.Name, kind, noteWorkPattern(kind), out)
			w.RemainingNeed[kind]--
		} else {
			violations = append(violations, model.Violation{
				EmployeeName: emp.Name,
				Date:         date,
				ShiftType:    string(kind),
				Rule:         "Patrón Fijo Viola Descanso Mínimo",
				Details:      "el patrón de turno fijo no pudo aplicarse por el descanso mínimo entre turnos",
				Severity:     model.SeverityWarning,
				Category:     model.CategoryEmployeeWellbeing,
			})
		}
	}

	// Layer B — fixed absences (LAO/LM).
	for _, emp := range employees {
		if w.Processed[emp.ID] {
			continue
		}
		for _, fa := range emp.FixedAssignments {
			if (fa.Type != model.FixedAnnual && fa.Type != model.FixedMedical) || !fa.Covers(date) {
				continue
			}
			kind := model.AnnualLv
			if fa.Type == model.FixedMedical {
				kind = model.MedicalLv
			}
			place(w, emp, date, svc.Name, kind, noteFixedAbsence(fa.Type, fa.Description), out)
			break
		}
	}

	// Layer C — fixed weekly preferences.
	weekday := WeekdayKey(date)
	for _, emp := range employees {
		if w.Processed[emp.ID] {
			continue
		}
		if emp.Preferences.WorkPattern != nil && *emp.Preferences.WorkPattern != model.StandardRotation {
			continue
		}
		if !emp.Preferences.FixedWeeklyShiftDays[weekday] {
			continue
		}
		st := w.States[emp.ID]
		timing := emp.Preferences.FixedWeeklyShiftTiming

		if timing == model.TimingRestDay {
			if isHoliday {
				place(w, emp, date, svc.Name, model.Holiday, noteFixedRestHoliday(), out)
			} else {
				place(w, emp, date, svc.Name, model.RestDay, noteFixedRest(), out)
			}
			continue
		}

		var kind model.ShiftKind
		switch timing {
		case model.TimingMorning:
			kind = model.Morning
		case model.TimingAfternoon:
			kind = model.Afternoon
		case model.TimingNight:
			kind = model.Night
		default:
			continue
		}

		if kind == model.Night && !svc.EnableNightShift {
			violations = append(violations, model.Violation{
				EmployeeName: emp.Name,
				Date:         date,
				ShiftType:    string(kind),
				Rule:         "Preferencia Fija Turno Noche Deshabilitado",
				Details:      "el servicio tiene el turno noche deshabilitado",
				Severity:     model.SeverityError,
				Category:     model.CategoryServiceRule,
			})
			continue
		}
		if !restOK(st, date, kind, rules.RestHours) {
			violations = append(violations, model.Violation{
				EmployeeName: emp.Name,
				Date:         date,
				ShiftType:    string(kind),
				Rule:         "Preferencia Fija Viola Descanso Mínimo",
				Details:      "la preferencia fija semanal no respeta el descanso mínimo entre turnos",
				Severity:     model.SeverityError,
				Category:     model.CategoryEmployeeWellbeing,
			})
			continue
		}
		if isHoliday && !isWeekend {
			place(w, emp, date, svc.Name, model.Holiday, noteFixedWorkHoliday(kind), out)
			continue
		}

		place(w, emp, date, svc.Name, kind, noteFixedWork(kind), out)
		w.RemainingNeed[kind]--

		st = w.States[emp.ID]
		if st.ConsecutiveWork > cr.MaxConsecutiveWorkDays {
			violations = append(violations, model.Violation{
				EmployeeName: emp.Name, Date: date, ShiftType: string(kind),
				Rule: "Exceso Días Trabajo Consecutivos", Details: "la preferencia fija semanal excede el máximo de días consecutivos de trabajo",
				Severity: model.SeverityWarning, Category: model.CategoryServiceRule,
			})
		}
	}

	// Layer D — demand coverage, fixed kind order M, T, N.
	order := []model.ShiftKind{model.Morning, model.Afternoon}
	if svc.EnableNightShift {
		order = append(order, model.Night)
	}
	for _, kind := range order {
		fillDemand(w, svc, employees, date, kind, isWeekend, rules, cr, rng, out, &violations)
	}

	// Layer E — residual rest.
	for _, emp := range employees {
		if w.Processed[emp.ID] {
			continue
		}
		kind := model.RestDay
		note := noteResidualRest()
		if isHoliday {
			kind = model.Holiday
			note = noteResidualHoliday()
		}
		if svc.TargetCompleteWeekendsOff != nil && *svc.TargetCompleteWeekendsOff > 0 && isWeekend {
			if pairOffAlready(w, emp.ID, date, svc.Name) {
				if isHoliday {
					note = noteResidualHolidayWeekendTarget()
				} else {
					note = noteResidualRestWeekendTarget()
				}
			}
		}
		place(w, emp, date, svc.Name, kind, note, out)
	}

	return violations
}

// pairOffAlready reports whether the other day of date's Saturday or
// Sunday pair already carries an off kind for emp, per Layer E's
// weekend-target note upgrade.
func pairOffAlready(w *World, empID uuid.UUID, date, serviceName string) bool {
	if WeekdayKey(date) == "sabado" {
		// Days run in order, so Sunday is still unassigned on Saturday.
		return true
	}
	st := w.States[empID]
	return st.LastKind.IsOff() || st.LastKind == model.NoShift
}

// candidate is a Layer-D eligibility snapshot used to build the
// lexicographic sort key.
type candidate struct {
	emp model.Employee
	st  *EmployeeState
}

func fillDemand(w *World, svc model.Service, employees []model.Employee, date string, kind model.ShiftKind, isWeekend bool, rules model.RulesConfig, cr model.ConsecutivenessRules, rng *rand.Rand, out *[]model.AssignedShift, violations *[]model.Violation) {
	need := w.RemainingNeed[kind]
	if need <= 0 {
		return
	}

	var pool []candidate
	for _, emp := range employees {
		if w.Processed[emp.ID] || w.AssignedWork[emp.ID] {
			continue
		}
		st := w.States[emp.ID]
		if !restOK(st, date, kind, rules.RestHours) {
			continue
		}
		if st.ConsecutiveWork >= cr.MaxConsecutiveWorkDays {
			continue
		}
		if (st.LastKind.IsOff() || st.LastKind == model.NoShift) && st.ConsecutiveRest < cr.MinConsecutiveDaysOffRequiredBeforeWork {
			continue
		}
		pool = append(pool, candidate{emp: emp, st: st})
	}

	targetWeekends := svc.TargetCompleteWeekendsOff != nil && *svc.TargetCompleteWeekendsOff > 0

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if k := cmpBool(a.st.ConsecutiveRest >= cr.PreferredConsecutiveDaysOff, b.st.ConsecutiveRest >= cr.PreferredConsecutiveDaysOff); k != 0 {
			return k < 0
		}
		if k := cmpBool(a.st.ConsecutiveWork > 0 && a.st.ConsecutiveWork < cr.PreferredConsecutiveWorkDays, b.st.ConsecutiveWork > 0 && b.st.ConsecutiveWork < cr.PreferredConsecutiveWorkDays); k != 0 {
			return k > 0
		}
		if isWeekend && targetWeekends {
			if k := cmpBool(a.emp.Preferences.PrefersWeekendWork, b.emp.Preferences.PrefersWeekendWork); k != 0 {
				return k < 0
			}
		}
		if a.st.ShiftsThisMonth != b.st.ShiftsThisMonth {
			return a.st.ShiftsThisMonth < b.st.ShiftsThisMonth
		}
		if isWeekend {
			if k := cmpBool(a.emp.Preferences.PrefersWeekendWork, b.emp.Preferences.PrefersWeekendWork); k != 0 {
				return k < 0
			}
		}
		aResting, bResting := a.st.LastKind.IsOff() || a.st.LastKind == model.NoShift, b.st.LastKind.IsOff() || b.st.LastKind == model.NoShift
		if aResting != bResting {
			return aResting
		}
		if aResting && bResting && a.st.ConsecutiveRest != b.st.ConsecutiveRest {
			return a.st.ConsecutiveRest > b.st.ConsecutiveRest
		}
		if !aResting && !bResting && a.st.ConsecutiveWork != b.st.ConsecutiveWork {
			return a.st.ConsecutiveWork < b.st.ConsecutiveWork
		}
		return false
	})

	// Random tie-break within equal-key runs: shuffle each contiguous
	// run of candidates the stable sort left in original order.
	shuffleTiedRuns(pool, rng)

	for i := 0; i < need && i < len(pool); i++ {
		emp := pool[i].emp
		st := pool[i].st
		note := noteDemandNote(kind)
		if st.ConsecutiveWork >= cr.PreferredConsecutiveWorkDays || (st.ConsecutiveRest > 0 && st.ConsecutiveRest < cr.PreferredConsecutiveDaysOff) {
			*violations = append(*violations, model.Violation{
				EmployeeName: emp.Name, Date: date, ShiftType: string(kind),
				Rule: "Asignación Fuera de Bloque Preferido", Details: "la cobertura de demanda asignó un turno fuera de la ventana preferida de trabajo o descanso",
				Severity: model.SeverityWarning, Category: model.CategoryEmployeeWellbeing,
			})
		}
		place(w, emp, date, svc.Name, kind, note, out)
		w.RemainingNeed[kind]--
	}
}

func noteDemandNote(kind model.ShiftKind) string {
	return "Turno " + kindLabel(kind) + " (" + string(kind) + ")"
}

func kindLabel(kind model.ShiftKind) string {
	for _, e := range model.ShiftVocabulary {
		if e.Code == kind {
			return e.Label
		}
	}
	return string(kind)
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return -1
	}
	return 1
}

// shuffleTiedRuns randomly permutes each maximal run of adjacent
// candidates that sameKey reports as equal, leaving run boundaries
// (the real ranking) untouched. Used as Layer D's sole source of
// non-determinism across attempts.
func shuffleTiedRuns(pool []candidate, rng *rand.Rand) {
	if rng == nil || len(pool) < 2 {
		return
	}
	i := 0
	for i < len(pool) {
		j := i + 1
		for j < len(pool) && sameKey(pool[i], pool[j]) {
			j++
		}
		rng.Shuffle(j-i, func(a, b int) {
			pool[i+a], pool[i+b] = pool[i+b], pool[i+a]
		})
		i = j
	}
}

// sameKey reports whether two candidates are indistinguishable by
// every field the Layer D sort key inspects except random tie-break.
func sameKey(a, b candidate) bool {
	return a.st.ConsecutiveRest == b.st.ConsecutiveRest &&
		a.st.ConsecutiveWork == b.st.ConsecutiveWork &&
		a.st.ShiftsThisMonth == b.st.ShiftsThisMonth &&
		a.emp.Preferences.PrefersWeekendWork == b.emp.Preferences.PrefersWeekendWork &&
		(a.st.LastKind.IsOff() || a.st.LastKind == model.NoShift) == (b.st.LastKind.IsOff() || b.st.LastKind == model.NoShift)
}
