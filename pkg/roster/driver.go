package roster

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/turnos/turnos/pkg/rlog"
)

const (
	defaultMaxAttempts = 15
	defaultTargetScore = 80.0
)

// Generate runs the assignment engine up to in.MaxAttempts times (15
// if unset), scores each attempt with Evaluate, and returns the
// best-scoring one. It stops early once an attempt meets
// in.TargetScore (80 if unset).
func Generate(in GenerateInput, logger *rlog.RosterLogger) EvaluateResult {
	eligible := eligibleEmployees(in.Service, in.Employees)
	if len(eligible) == 0 {
		return Evaluate(EvaluateInput{
			Service: in.Service, Month: in.Month, Year: in.Year,
			Employees: in.Employees, Holidays: in.Holidays,
			PreviousMonthShifts: in.PreviousMonthShifts, Rules: in.Rules,
		})
	}

	maxAttempts := in.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	targetScore := in.TargetScore
	if targetScore <= 0 {
		targetScore = defaultTargetScore
	}

	seed := in.Rules.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if logger != nil {
		logger.StartGeneration(in.Service.Name, len(eligible), in.Year, in.Month)
	}
	start := time.Now()

	var best EvaluateResult
	attempts := 0
	for attempts = 1; attempts <= maxAttempts; attempts++ {
		result := GenerateOnce(in, rng)
		evaluation := Evaluate(EvaluateInput{
			Shifts: result.Shifts, Service: in.Service, Month: in.Month, Year: in.Year,
			Employees: in.Employees, Holidays: in.Holidays,
			PreviousMonthShifts: in.PreviousMonthShifts, Rules: in.Rules,
		})
		// evaluation.Violations is kept as Evaluate's own output, not
		// merged with result.Violations — the generator's layer A/C/D
		// warnings (pattern-conflict, fixed-preference, preferred-block) have no
		// equivalent in Evaluate, so merging them would make
		// Generate(x).Violations diverge from
		// Evaluate(Generate(x).shifts).Violations, breaking the
		// round-trip invariant.

		kept := attempts == 1 || evaluation.Score > best.Score
		if kept {
			best = evaluation
		}
		if logger != nil {
			logger.AttemptScored(attempts, evaluation.Score, kept)
		}
		if best.Score >= targetScore {
			break
		}
	}

	if attempts > maxAttempts && best.Score < targetScore {
		best.ResponseText += fmt.Sprintf(" (Se alcanzó el máximo de %d intentos sin superar el objetivo de %.0f puntos.)", maxAttempts, targetScore)
	}

	if logger != nil {
		logger.GenerationComplete(time.Since(start), attempts, best.Score)
	}

	return best
}
