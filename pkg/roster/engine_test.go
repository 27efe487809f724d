package roster

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/turnos/turnos/pkg/model"
)

// generousRules returns consecutiveness rules loose enough that the
// two-employee demand scenarios below (where every seat must be
// filled every day, leaving no room to rotate rest) never trip the
// max-consecutive-work/off guards — isolating the behavior each
// scenario actually targets.
func generousRules() model.ConsecutivenessRules {
	return model.ConsecutivenessRules{
		MaxConsecutiveWorkDays:                  31,
		PreferredConsecutiveWorkDays:             31,
		MaxConsecutiveDaysOff:                   31,
		PreferredConsecutiveDaysOff:              31,
		MinConsecutiveDaysOffRequiredBeforeWork:  0,
	}
}

func newTestService(name string, enableNight bool, needs model.StaffingNeeds) model.Service {
	return model.Service{
		BaseModel:            model.BaseModel{ID: uuid.New()},
		Name:                 name,
		EnableNightShift:     enableNight,
		StaffingNeeds:        needs,
		ConsecutivenessRules: generousRules(),
	}
}

func newTestEmployee(name string, svcID uuid.UUID) model.Employee {
	return model.Employee{
		BaseModel:  model.BaseModel{ID: uuid.New()},
		Name:       name,
		ServiceIDs: map[uuid.UUID]bool{svcID: true},
		Preferences: model.EmployeePreferences{
			FixedWeeklyShiftDays: map[string]bool{},
		},
	}
}

// S1 — Minimal single-weekday: night disabled, demand {M:1, T:1} every
// day, two standardRotation employees with no preferences. Every day
// of the month should be fully covered with a perfect score.
func TestS1_MinimalSingleWeekday(t *testing.T) {
	svc := newTestService("Cardiología", false, model.StaffingNeeds{
		MorningWeekday: 1, AfternoonWeekday: 1,
		MorningWeekendHoliday: 1, AfternoonWeekendHoliday: 1,
	})
	a := newTestEmployee("Ana", svc.ID)
	b := newTestEmployee("Beatriz", svc.ID)
	employees := []model.Employee{a, b}

	rules := model.DefaultRulesConfig()
	rules.Seed = 7

	result := Generate(GenerateInput{
		Service: svc, Month: 2, Year: 2025, Employees: employees, Rules: rules,
	}, nil)

	if result.Score != 100 {
		t.Errorf("expected score 100, got %v (violations: %+v)", result.Score, result.Violations)
	}
	if len(result.Violations) != 0 {
		t.Errorf("expected no violations, got %+v", result.Violations)
	}

	byDate := map[string]int{}
	for _, s := range result.GeneratedShifts {
		if ClassifyShift(s).IsWork() {
			byDate[s.Date]++
		}
	}
	for _, day := range MonthDays(2025, 2) {
		if byDate[day] != 2 {
			t.Errorf("day %s: expected 2 work shifts covered, got %d", day, byDate[day])
		}
	}
}

// S2 — Fixed LAO wins over demand: employee A is on LAO for a window;
// the sole remaining employee can only cover one of the two demanded
// kinds each of those days, so the uncovered kind must surface as a
// staffing shortfall once the result is evaluated.
func TestS2_FixedLAOWinsOverDemand(t *testing.T) {
	svc := newTestService("Cardiología", false, model.StaffingNeeds{
		MorningWeekday: 1, AfternoonWeekday: 1,
		MorningWeekendHoliday: 1, AfternoonWeekendHoliday: 1,
	})
	a := newTestEmployee("Ana", svc.ID)
	a.FixedAssignments = []model.FixedAssignment{
		{Type: model.FixedAnnual, StartDate: "2025-02-03", EndDate: "2025-02-07"},
	}
	b := newTestEmployee("Beatriz", svc.ID)
	employees := []model.Employee{a, b}

	rules := model.DefaultRulesConfig()
	rules.Seed = 3

	result := Generate(GenerateInput{
		Service: svc, Month: 2, Year: 2025, Employees: employees, Rules: rules,
	}, nil)

	byDate := make(map[string]model.AssignedShift)
	for _, s := range result.GeneratedShifts {
		if s.EmployeeName == "Ana" {
			byDate[s.Date] = s
		}
	}
	for d := 3; d <= 7; d++ {
		date := MonthDays(2025, 2)[d-1]
		shift, ok := byDate[date]
		if !ok || ClassifyShift(shift) != model.AnnualLv {
			t.Errorf("Ana on %s: expected LAO, got %+v", date, shift)
		}
	}

	shortfallDates := make(map[string]bool)
	for _, v := range result.Violations {
		if v.Rule == "Falta de Personal" {
			shortfallDates[v.Date] = true
		}
	}
	for d := 3; d <= 7; d++ {
		date := MonthDays(2025, 2)[d-1]
		if !shortfallDates[date] {
			t.Errorf("expected a staffing shortfall violation on %s while Ana is on LAO", date)
		}
	}
}

// S3 — Rest-hour guard: an employee who just finished a night shift
// ending 07:00 cannot be placed on a morning shift starting the same
// instant; the demand-coverage layer must skip her, leaving the seat
// unfilled rather than violating the 12-hour rest rule.
func TestS3_RestHourGuardBlocksImmediateMorning(t *testing.T) {
	svc := newTestService("Guardia", false, model.StaffingNeeds{
		MorningWeekday: 1, MorningWeekendHoliday: 1,
	})
	emp := newTestEmployee("Carla", svc.ID)
	employees := []model.Employee{emp}

	w := NewWorld([]uuid.UUID{emp.ID})
	nightEnd, err := ShiftEndInstant("2025-02-10", "07:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := w.States[emp.ID]
	st.LastWorkShiftEnd = nightEnd
	st.HasLastWorkEnd = true
	st.LastKind = model.Night
	st.ConsecutiveWork = 1

	rules := model.DefaultRulesConfig()
	var shifts []model.AssignedShift
	violations := GenerateDay(w, svc, employees, "2025-02-11", map[string]bool{}, rules, rand.New(rand.NewSource(1)), &shifts)

	if len(shifts) != 1 {
		t.Fatalf("expected exactly one shift placed, got %d", len(shifts))
	}
	if ClassifyShift(shifts[0]).IsWork() {
		t.Errorf("expected Carla to NOT be placed on a work shift, got %+v", shifts[0])
	}
	if w.RemainingNeed[model.Morning] != 1 {
		t.Errorf("expected the morning seat to remain unfilled, remainingNeed=%d", w.RemainingNeed[model.Morning])
	}
	for _, v := range violations {
		if v.Rule == "Violación Descanso Mínimo entre Turnos" {
			t.Errorf("expected no rest-violation to be raised by the engine itself, got %+v", v)
		}
	}
}

// S5 — Pattern on holiday: an employee on the mondayToFridayMorning
// pattern who lands on a holiday weekday is given F, not M, and the
// morning seat is left untouched for demand coverage to fill.
func TestS5_PatternOnHoliday(t *testing.T) {
	svc := newTestService("Cardiología", false, model.StaffingNeeds{
		MorningWeekday: 1, MorningWeekendHoliday: 1,
	})
	pattern := model.MondayToFridayMorning
	emp := newTestEmployee("Diego", svc.ID)
	emp.Preferences.WorkPattern = &pattern
	employees := []model.Employee{emp}

	// 2025-02-04 is a Tuesday.
	holidays := map[string]bool{"2025-02-04": true}

	w := NewWorld([]uuid.UUID{emp.ID})
	rules := model.DefaultRulesConfig()
	var shifts []model.AssignedShift
	GenerateDay(w, svc, employees, "2025-02-04", holidays, rules, rand.New(rand.NewSource(1)), &shifts)

	if len(shifts) != 1 {
		t.Fatalf("expected exactly one shift, got %d", len(shifts))
	}
	if shifts[0].Notes != "F (Feriado - Patrón Fijo)" {
		t.Errorf("expected holiday-pattern note, got %q", shifts[0].Notes)
	}
	if ClassifyShift(shifts[0]) != model.Holiday {
		t.Errorf("expected the classified kind to be Holiday, got %q", ClassifyShift(shifts[0]))
	}
	if w.RemainingNeed[model.Morning] != 1 {
		t.Errorf("expected the morning seat to remain undecremented, remainingNeed=%d", w.RemainingNeed[model.Morning])
	}
}
