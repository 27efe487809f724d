// Package model defines the shared data model for the roster engine.
package model

// ScorePenalties is the per-violation penalty table (spec.md §4.2/§4.5).
type ScorePenalties struct {
	RestBetweenShiftsViolation int // per occurrence, employeeWellbeing
	RestBeforeWorkViolation    int // per occurrence, serviceRule
	MaxConsecutiveWorkViolation int // per occurrence, serviceRule
	MaxConsecutiveOffViolation  int // per occurrence, employeeWellbeing (warning)
	StaffingShortagePerEmployee int // per missing seat, serviceRule
	WeekendTargetMissPerWeekend int // per missed weekend, employeeWellbeing
	MaxWeekendTargetPenalty     int // cap per employee
}

// DefaultScorePenalties is the default penalty table.
func DefaultScorePenalties() ScorePenalties {
	return ScorePenalties{
		RestBetweenShiftsViolation:  10,
		RestBeforeWorkViolation:     5,
		MaxConsecutiveWorkViolation: 5,
		MaxConsecutiveOffViolation:  1,
		StaffingShortagePerEmployee: 5,
		WeekendTargetMissPerWeekend: 2,
		MaxWeekendTargetPenalty:     10,
	}
}

// RulesConfig carries hard limits, preferred limits, the rest-hour
// threshold, the default weekend-off target, and the penalty table.
// Supplied per run; DefaultRulesConfig provides spec.md §4.2's defaults.
type RulesConfig struct {
	RestHours                int
	MaxConsecutiveWork       int
	PreferredConsecutiveWork int
	MaxConsecutiveOff        int
	PreferredConsecutiveOff  int
	MinOffBeforeWork         int
	DefaultTargetWeekendsOff int
	Penalties                ScorePenalties

	// Seed makes the random tie-break in the assignment engine's
	// demand-coverage layer reproducible across attempts/tests. Zero
	// means "use a time-derived seed" at the driver boundary.
	Seed int64
}

// DefaultRulesConfig returns spec.md §4.2's default configuration.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		RestHours:                12,
		MaxConsecutiveWork:       7,
		PreferredConsecutiveWork: 5,
		MaxConsecutiveOff:        4,
		PreferredConsecutiveOff:  2,
		MinOffBeforeWork:         1,
		DefaultTargetWeekendsOff: 1,
		Penalties:                DefaultScorePenalties(),
	}
}

// AsConsecutivenessRules derives the service-level rules struct from
// the run's RulesConfig. The engine and evaluator do not call it: both
// read Service.ConsecutivenessRules directly, with no fallback to
// RulesConfig.
func (r RulesConfig) AsConsecutivenessRules() ConsecutivenessRules {
	return ConsecutivenessRules{
		MaxConsecutiveWorkDays:                  r.MaxConsecutiveWork,
		PreferredConsecutiveWorkDays:             r.PreferredConsecutiveWork,
		MaxConsecutiveDaysOff:                    r.MaxConsecutiveOff,
		PreferredConsecutiveDaysOff:              r.PreferredConsecutiveOff,
		MinConsecutiveDaysOffRequiredBeforeWork:  r.MinOffBeforeWork,
	}
}
