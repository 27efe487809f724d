package roster

import (
	"fmt"
	"strings"

	"github.com/turnos/turnos/pkg/model"
)

// EvaluateInput bundles everything one evaluation pass needs. Shifts
// may be generator output or an arbitrary externally-supplied set.
type EvaluateInput struct {
	Shifts             []model.AssignedShift
	Service            model.Service
	Month              int
	Year               int
	Employees          []model.Employee
	Holidays           []string
	PreviousMonthShifts []model.AssignedShift
	Rules              model.RulesConfig
}

// EvaluateResult is the full scored outcome of a single assignment.
type EvaluateResult struct {
	GeneratedShifts []model.AssignedShift
	ResponseText    string
	Violations      []model.Violation
	Score           float64
	ScoreBreakdown  model.ScoreBreakdown
}

// Evaluate replays in.Shifts against the same rules the generator
// uses, emitting violations, category scores, and a natural-language
// summary. It is deterministic: evaluating the same input twice
// yields bit-identical output.
func Evaluate(in EvaluateInput) EvaluateResult {
	eligible := eligibleEmployees(in.Service, in.Employees)
	if len(eligible) == 0 {
		return EvaluateResult{
			GeneratedShifts: in.Shifts,
			Score:           0,
			ScoreBreakdown:  model.ScoreBreakdown{ServiceRules: 0, EmployeeWellbeing: 100},
			Violations: []model.Violation{{
				ShiftType: model.GeneralShiftType,
				Rule:      "Sin Empleados",
				Details:   "el servicio no tiene empleados asignados",
				Severity:  model.SeverityError,
				Category:  model.CategoryServiceRule,
			}},
			ResponseText: fmt.Sprintf("Evaluación del horario para %s: sin empleados asignados.", in.Service.Name),
		}
	}

	holidaySet := make(map[string]bool, len(in.Holidays))
	for _, h := range in.Holidays {
		holidaySet[h] = true
	}

	byDate := make(map[string]map[string]model.AssignedShift, 31)
	for _, s := range in.Shifts {
		if _, ok := byDate[s.Date]; !ok {
			byDate[s.Date] = make(map[string]model.AssignedShift)
		}
		byDate[s.Date][s.EmployeeName] = s
	}

	w := NewWorld(employeeIDs(eligible))
	days := MonthDays(in.Year, in.Month)
	var violations []model.Violation
	penalties := in.Rules.Penalties

	if len(days) > 0 {
		if err := SeedHistory(w, eligible, in.PreviousMonthShifts, in.Service.ConsecutivenessRules, days[0]); err != nil {
			return EvaluateResult{
				GeneratedShifts: in.Shifts,
				Score:           0,
				ScoreBreakdown:  model.ScoreBreakdown{},
				ResponseText:    "Error de datos: no se pudo interpretar el rango de fechas.",
			}
		}
	}

	rules := in.Service.ConsecutivenessRules

	for _, date := range days {
		col := DemandColumnFor(date, holidaySet)
		counts := map[model.ShiftKind]int{model.Morning: 0, model.Afternoon: 0, model.Night: 0}

		for _, emp := range eligible {
			st := w.States[emp.ID]
			shift, present := byDate[date][emp.Name]
			var kind model.ShiftKind
			if present {
				kind = ClassifyShift(shift)
			} else {
				kind = model.RestDay
			}
			if kind.IsWork() {
				counts[kind]++
			}

			if kind.IsWork() {
				if st.HasLastWorkEnd {
					start, _ := model.CanonicalWindow(kind)
					hours, err := RestHours(st.LastWorkShiftEnd, date, start)
					if err == nil && hours < float64(in.Rules.RestHours) {
						violations = append(violations, model.Violation{
							EmployeeName: emp.Name, Date: date, ShiftType: string(kind),
							Rule:     "Violación Descanso Mínimo entre Turnos",
							Details:  fmt.Sprintf("solo %.0fh de descanso entre turnos, se requieren %d", hours, in.Rules.RestHours),
							Severity: model.SeverityError, Category: model.CategoryEmployeeWellbeing,
						})
					}
				}
				if (st.LastKind.IsOff() || st.LastKind == model.NoShift) && st.ConsecutiveRest < rules.MinConsecutiveDaysOffRequiredBeforeWork {
					violations = append(violations, model.Violation{
						EmployeeName: emp.Name, Date: date, ShiftType: string(kind),
						Rule:     "Violación Mínimo Descanso Antes de Trabajar",
						Details:  "el empleado retomó trabajo sin cumplir el descanso mínimo previo",
						Severity: model.SeverityError, Category: model.CategoryServiceRule,
					})
				}
			}

			applyKind(st, kind, date)

			if kind.IsWork() && st.ConsecutiveWork > rules.MaxConsecutiveWorkDays {
				violations = append(violations, model.Violation{
					EmployeeName: emp.Name, Date: date, ShiftType: string(kind),
					Rule:     "Exceso Días Trabajo Consecutivos",
					Details:  fmt.Sprintf("%d días consecutivos de trabajo, máximo %d", st.ConsecutiveWork, rules.MaxConsecutiveWorkDays),
					Severity: model.SeverityError, Category: model.CategoryServiceRule,
				})
			}
			if kind.IsOff() && st.ConsecutiveRest > rules.MaxConsecutiveDaysOff {
				violations = append(violations, model.Violation{
					EmployeeName: emp.Name, Date: date, ShiftType: string(kind),
					Rule:     "Exceso Días Descanso Consecutivos",
					Details:  fmt.Sprintf("%d días consecutivos de descanso, máximo %d", st.ConsecutiveRest, rules.MaxConsecutiveDaysOff),
					Severity: model.SeverityWarning, Category: model.CategoryEmployeeWellbeing,
				})
			}
		}

		for _, kind := range []model.ShiftKind{model.Morning, model.Afternoon, model.Night} {
			if kind == model.Night && !in.Service.EnableNightShift {
				continue
			}
			demand := in.Service.StaffingNeeds.For(kind, col)
			if shortfall := demand - counts[kind]; shortfall > 0 {
				violations = append(violations, model.Violation{
					Date: date, ShiftType: string(kind),
					Rule:     "Falta de Personal",
					Details:  fmt.Sprintf("faltan %d empleados para el turno %s", shortfall, kind),
					Severity: model.SeverityError, Category: model.CategoryServiceRule,
				})
			}
		}
	}

	// Weekend-off objective: absent unless the service sets one, matching
	// the generator's Layer E (engine.go), which only reads
	// svc.TargetCompleteWeekendsOff and never falls back to a rules
	// default.
	var target int
	if in.Service.TargetCompleteWeekendsOff != nil {
		target = *in.Service.TargetCompleteWeekendsOff
	}
	if target > 0 {
		for _, emp := range eligible {
			count := countCompleteWeekendsOff(emp.Name, days, in.Year, in.Month, byDate)
			if count < target {
				violations = append(violations, model.Violation{
					EmployeeName: emp.Name, Date: fmt.Sprintf("%04d-%02d", in.Year, in.Month),
					ShiftType: model.GeneralShiftType,
					Rule:      "Objetivo FDS Descanso No Alcanzado",
					Details:   fmt.Sprintf("%d de %d fines de semana completos libres", count, target),
					Severity:  model.SeverityWarning, Category: model.CategoryEmployeeWellbeing,
				})
			}
		}
	}

	score, breakdown := scoreViolations(violations, penalties, target)
	responseText := buildResponseText(in.Service.Name, in.Month, in.Year, score, breakdown, violations)

	return EvaluateResult{
		GeneratedShifts: in.Shifts,
		ResponseText:    responseText,
		Violations:      violations,
		Score:           score,
		ScoreBreakdown:  breakdown,
	}
}

// countCompleteWeekendsOff counts Saturday+Sunday pairs inside the
// target month where emp is off (or unrecorded) both days.
func countCompleteWeekendsOff(empName string, days []string, year, month int, byDate map[string]map[string]model.AssignedShift) int {
	count := 0
	for _, day := range days {
		if !IsWeekend(day) {
			continue
		}
		t, err := ParseDate(day)
		if err != nil || t.Weekday().String() != "Saturday" {
			continue
		}
		sunday, ok := SaturdaySundayPair(day, year, month)
		if !ok {
			continue
		}
		if isOffFor(empName, day, byDate) && isOffFor(empName, sunday, byDate) {
			count++
		}
	}
	return count
}

func isOffFor(empName, date string, byDate map[string]map[string]model.AssignedShift) bool {
	shift, present := byDate[date][empName]
	if !present {
		return true
	}
	kind := ClassifyShift(shift)
	return kind.IsOff()
}

// scoreViolations accumulates every violation's penalty into the
// total and its category bucket.
func scoreViolations(violations []model.Violation, penalties model.ScorePenalties, weekendTarget int) (float64, model.ScoreBreakdown) {
	total := 100.0
	serviceRules := 100.0
	employeeWellbeing := 100.0

	for _, v := range violations {
		var p int
		switch v.Rule {
		case "Violación Descanso Mínimo entre Turnos":
			p = penalties.RestBetweenShiftsViolation
		case "Violación Mínimo Descanso Antes de Trabajar":
			p = penalties.RestBeforeWorkViolation
		case "Exceso Días Trabajo Consecutivos":
			p = penalties.MaxConsecutiveWorkViolation
		case "Exceso Días Descanso Consecutivos":
			p = penalties.MaxConsecutiveOffViolation
		case "Falta de Personal":
			p = shortfallFromDetails(v.Details, penalties.StaffingShortagePerEmployee)
		case "Objetivo FDS Descanso No Alcanzado":
			p = weekendPenaltyFromDetails(v.Details, penalties)
		default:
			p = 0
		}

		total -= float64(p)
		if v.Category == model.CategoryServiceRule {
			serviceRules -= float64(p)
		} else if v.Category == model.CategoryEmployeeWellbeing {
			employeeWellbeing -= float64(p)
		}
	}

	serviceRules = clamp(serviceRules)
	employeeWellbeing = clamp(employeeWellbeing)
	total = clamp(total)

	return total, model.ScoreBreakdown{ServiceRules: serviceRules, EmployeeWellbeing: employeeWellbeing}
}

func shortfallFromDetails(details string, perSeat int) int {
	var shortfall int
	fmt.Sscanf(details, "faltan %d", &shortfall)
	return shortfall * perSeat
}

func weekendPenaltyFromDetails(details string, penalties model.ScorePenalties) int {
	var count, target int
	if _, err := fmt.Sscanf(details, "%d de %d", &count, &target); err != nil {
		return 0
	}
	p := (target - count) * penalties.WeekendTargetMissPerWeekend
	if p > penalties.MaxWeekendTargetPenalty {
		p = penalties.MaxWeekendTargetPenalty
	}
	if p < 0 {
		p = 0
	}
	return p
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

var spanishMonths = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

func buildResponseText(serviceName string, month, year int, score float64, breakdown model.ScoreBreakdown, violations []model.Violation) string {
	errors, warnings := 0, 0
	for _, v := range violations {
		if v.Severity == model.SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	monthName := "?"
	if month >= 1 && month <= 12 {
		monthName = spanishMonths[month]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Evaluación del horario para %s (%s %d). Puntuación General: %.0f/100. [Reglas Servicio: %.0f/100, Bienestar Personal: %.0f/100].",
		serviceName, monthName, year, score, breakdown.ServiceRules, breakdown.EmployeeWellbeing)

	if errors > 0 {
		fmt.Fprintf(&b, " Errores Críticos: %d.", errors)
	}
	if warnings > 0 {
		fmt.Fprintf(&b, " Advertencias: %d.", warnings)
	}
	if errors == 0 && warnings == 0 {
		b.WriteString(" ¡Sin errores ni advertencias notables!")
	}
	return b.String()
}
