package roster

import (
	"fmt"
	"sort"
	"testing"

	"github.com/turnos/turnos/pkg/model"
)

// S4 — Weekend-off objective penalty formula: with target=2 and only
// one complete weekend off recorded, the penalty is
// min(maxWeekendTargetPenalty, (target-count)*weekendTargetMissPerWeekend).
func TestS4_WeekendTargetPenaltyFormula(t *testing.T) {
	penalties := model.DefaultScorePenalties()
	details := fmt.Sprintf("%d de %d fines de semana completos libres", 1, 2)

	got := weekendPenaltyFromDetails(details, penalties)
	want := 2 // min(10, (2-1)*2)
	if got != want {
		t.Errorf("weekendPenaltyFromDetails(%q) = %d, want %d", details, got, want)
	}
}

func TestS4_WeekendTargetPenaltyCapsAtMax(t *testing.T) {
	penalties := model.DefaultScorePenalties()
	// A huge miss (target 10, count 0) should clamp to the cap, not
	// run away to (10-0)*2 = 20.
	details := fmt.Sprintf("%d de %d fines de semana completos libres", 0, 10)

	got := weekendPenaltyFromDetails(details, penalties)
	if got != penalties.MaxWeekendTargetPenalty {
		t.Errorf("expected penalty capped at %d, got %d", penalties.MaxWeekendTargetPenalty, got)
	}
}

// countCompleteWeekendsOff must count only Saturday+Sunday pairs where
// both days are off (or unrecorded), and only when the paired Sunday
// falls inside the same target month.
func TestCountCompleteWeekendsOff(t *testing.T) {
	days := MonthDays(2025, 2) // Feb 2025: Sat/Sun pairs 1-2, 8-9, 15-16, 22-23
	byDate := map[string]map[string]model.AssignedShift{
		"2025-02-01": {"Ana": {Date: "2025-02-01", EmployeeName: "Ana", Notes: "Turno Mañana (M)", StartTime: "07:00"}},
		"2025-02-02": {"Ana": {Date: "2025-02-02", EmployeeName: "Ana", Notes: "D"}},
		"2025-02-08": {"Ana": {Date: "2025-02-08", EmployeeName: "Ana", Notes: "D"}},
		"2025-02-09": {"Ana": {Date: "2025-02-09", EmployeeName: "Ana", Notes: "D"}},
		// 15-16 left unrecorded entirely: absence counts as implicit D.
		"2025-02-22": {"Ana": {Date: "2025-02-22", EmployeeName: "Ana", Notes: "Turno Mañana (M)", StartTime: "07:00"}},
		"2025-02-23": {"Ana": {Date: "2025-02-23", EmployeeName: "Ana", Notes: "D"}},
	}

	count := countCompleteWeekendsOff("Ana", days, 2025, 2, byDate)
	if count != 2 {
		t.Errorf("expected 2 complete weekends off (8-9 and 15-16), got %d", count)
	}
}

// S6 — Round-trip equivalence: feeding a generated schedule back
// through Evaluate with identical inputs reproduces the same score,
// breakdown, and violation multiset (the generator and evaluator
// agree on the same rules).
func TestS6_RoundTripEquivalence(t *testing.T) {
	svc := newTestService("Cardiología", false, model.StaffingNeeds{
		MorningWeekday: 1, AfternoonWeekday: 1,
		MorningWeekendHoliday: 1, AfternoonWeekendHoliday: 1,
	})
	a := newTestEmployee("Ana", svc.ID)
	b := newTestEmployee("Beatriz", svc.ID)
	employees := []model.Employee{a, b}

	rules := model.DefaultRulesConfig()
	rules.Seed = 99

	genResult := Generate(GenerateInput{
		Service: svc, Month: 2, Year: 2025, Employees: employees, Rules: rules,
	}, nil)

	replay := Evaluate(EvaluateInput{
		Shifts: genResult.GeneratedShifts, Service: svc, Month: 2, Year: 2025,
		Employees: employees, Rules: rules,
	})

	if replay.Score != genResult.Score {
		t.Errorf("score mismatch: generate=%v evaluate=%v", genResult.Score, replay.Score)
	}
	if replay.ScoreBreakdown != genResult.ScoreBreakdown {
		t.Errorf("breakdown mismatch: generate=%+v evaluate=%+v", genResult.ScoreBreakdown, replay.ScoreBreakdown)
	}
	if !sameViolationMultiset(genResult.Violations, replay.Violations) {
		t.Errorf("violation multiset mismatch:\ngenerate=%+v\nevaluate=%+v", genResult.Violations, replay.Violations)
	}
}

// TestEvaluate_Idempotent checks evaluating the same shifts twice
// yields bit-identical results.
func TestEvaluate_Idempotent(t *testing.T) {
	svc := newTestService("Cardiología", false, model.StaffingNeeds{
		MorningWeekday: 1, AfternoonWeekday: 1,
	})
	a := newTestEmployee("Ana", svc.ID)
	employees := []model.Employee{a}
	shifts := []model.AssignedShift{
		{Date: "2025-02-03", EmployeeName: "Ana", Notes: "Turno Mañana (M)", StartTime: "07:00", EndTime: "15:00"},
	}
	rules := model.DefaultRulesConfig()

	first := Evaluate(EvaluateInput{Shifts: shifts, Service: svc, Month: 2, Year: 2025, Employees: employees, Rules: rules})
	second := Evaluate(EvaluateInput{Shifts: shifts, Service: svc, Month: 2, Year: 2025, Employees: employees, Rules: rules})

	if first.Score != second.Score || first.ScoreBreakdown != second.ScoreBreakdown {
		t.Errorf("expected idempotent evaluation, got %v/%+v vs %v/%+v", first.Score, first.ScoreBreakdown, second.Score, second.ScoreBreakdown)
	}
	if len(first.Violations) != len(second.Violations) {
		t.Errorf("expected identical violation counts, got %d vs %d", len(first.Violations), len(second.Violations))
	}
}

// TestEvaluate_NoEmployees covers the configuration-fault early return.
func TestEvaluate_NoEmployees(t *testing.T) {
	svc := newTestService("Sin Personal", false, model.StaffingNeeds{MorningWeekday: 1})
	result := Evaluate(EvaluateInput{Service: svc, Month: 2, Year: 2025, Rules: model.DefaultRulesConfig()})

	if result.Score != 0 {
		t.Errorf("expected score 0, got %v", result.Score)
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "Sin Empleados" {
		t.Errorf("expected a single Sin Empleados violation, got %+v", result.Violations)
	}
}

func sameViolationMultiset(a, b []model.Violation) bool {
	if len(a) != len(b) {
		return false
	}
	key := func(v model.Violation) string {
		return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s", v.EmployeeName, v.Date, v.ShiftType, v.Rule, v.Details, v.Severity, v.Category)
	}
	ak := make([]string, len(a))
	bk := make([]string, len(b))
	for i, v := range a {
		ak[i] = key(v)
	}
	for i, v := range b {
		bk[i] = key(v)
	}
	sort.Strings(ak)
	sort.Strings(bk)
	for i := range ak {
		if ak[i] != bk[i] {
			return false
		}
	}
	return true
}
