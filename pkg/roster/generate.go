package roster

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/turnos/turnos/pkg/model"
)

// GenerateInput bundles everything one generator attempt needs.
type GenerateInput struct {
	Service            model.Service
	Month              int // 1..12
	Year               int
	Employees          []model.Employee
	Holidays           []string
	PreviousMonthShifts []model.AssignedShift
	Rules              model.RulesConfig

	// MaxAttempts and TargetScore override the driver's attempt budget
	// (defaultMaxAttempts/defaultTargetScore when zero).
	MaxAttempts int
	TargetScore float64
}

// GenerateResult is a single attempt's produced shifts plus the
// violations layers A, C and D raised while placing them (staffing
// shortfalls and most other violations surface only once the result
// is run back through Evaluate).
type GenerateResult struct {
	Shifts     []model.AssignedShift
	Violations []model.Violation
}

// GenerateOnce runs the layered assignment engine once over every day
// of in.Month/in.Year, returning one concrete monthly assignment. It
// does not score the result — callers run Evaluate on the output, or
// use the driver in driver.go to do both across several attempts.
func GenerateOnce(in GenerateInput, rng *rand.Rand) GenerateResult {
	holidaySet := make(map[string]bool, len(in.Holidays))
	for _, h := range in.Holidays {
		holidaySet[h] = true
	}

	eligible := eligibleEmployees(in.Service, in.Employees)
	if len(eligible) == 0 {
		return GenerateResult{}
	}

	w := NewWorld(employeeIDs(eligible))

	days := MonthDays(in.Year, in.Month)
	if len(days) == 0 {
		return GenerateResult{}
	}
	if err := SeedHistory(w, eligible, in.PreviousMonthShifts, in.Service.ConsecutivenessRules, days[0]); err != nil {
		return GenerateResult{}
	}

	var shifts []model.AssignedShift
	var violations []model.Violation
	for _, day := range days {
		dayViolations := GenerateDay(w, in.Service, eligible, day, holidaySet, in.Rules, rng, &shifts)
		violations = append(violations, dayViolations...)
	}

	return GenerateResult{Shifts: shifts, Violations: violations}
}

// eligibleEmployees filters to employees assigned to svc.
func eligibleEmployees(svc model.Service, employees []model.Employee) []model.Employee {
	var out []model.Employee
	for _, e := range employees {
		if e.InService(svc.ID) {
			out = append(out, e)
		}
	}
	return out
}

func employeeIDs(employees []model.Employee) []uuid.UUID {
	ids := make([]uuid.UUID, len(employees))
	for i, e := range employees {
		ids[i] = e.ID
	}
	return ids
}
