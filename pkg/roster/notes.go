package roster

import (
	"strings"

	"github.com/turnos/turnos/pkg/model"
)

// Note builders. Every string here is part of the wire contract
// ClassifyShift must invert — see spec.md §9's "note vocabulary as
// contract" design note. Builders and classifier live in this file,
// except the demand-coverage note (noteDemandNote), which is built in
// engine.go from the shift vocabulary's labels.

func noteWorkPattern(kind model.ShiftKind) string {
	return "Turno Patrón (" + string(kind) + ")"
}

func noteRestPatron() string {
	return "D (Descanso - Patrón Fijo)"
}

func noteHolidayPatron() string {
	return "F (Feriado - Patrón Fijo)"
}

func noteFixedAbsence(kind model.FixedAssignmentType, description string) string {
	n := string(kind)
	if description != "" {
		n += " - " + description
	}
	return n
}

func noteFixedRest() string {
	return "D (Fijo Semanal)"
}

func noteFixedRestHoliday() string {
	return "F (Feriado - Descanso Fijo)"
}

func noteFixedWork(kind model.ShiftKind) string {
	return "Turno Fijo (" + string(kind) + ")"
}

func noteFixedWorkHoliday(kind model.ShiftKind) string {
	return "F (Feriado - Cubría " + string(kind) + ")"
}

func noteResidualRest() string {
	return "D"
}

func noteResidualHoliday() string {
	return "F"
}

func noteResidualRestWeekendTarget() string {
	return "D (FDS Objetivo)"
}

func noteResidualHolidayWeekendTarget() string {
	return "F (FDS Objetivo - Feriado)"
}

func noteCompDay() string {
	return "C"
}

// ClassifyShift re-derives a shift's kind from its notes, falling
// back to startTime, per spec.md §4.5 step 2. Any implementation that
// writes notes must keep every one of these substrings true of what
// it emits.
func ClassifyShift(s model.AssignedShift) model.ShiftKind {
	notes := strings.ToUpper(s.Notes)

	switch {
	case strings.HasPrefix(notes, "LAO"):
		return model.AnnualLv
	case strings.HasPrefix(notes, "LM"):
		return model.MedicalLv
	case strings.Contains(notes, "FRANCO COMP") || notes == "C":
		return model.CompDay
	case strings.Contains(notes, "FERIADO") || strings.HasPrefix(notes, "F"):
		return model.Holiday
	case strings.Contains(notes, "DESCANSO") || strings.HasPrefix(notes, "D"):
		return model.RestDay
	}

	switch s.StartTime {
	case "07:00", "08:00":
		return model.Morning
	case "14:00", "15:00":
		return model.Afternoon
	case "22:00", "23:00":
		return model.Night
	}

	switch {
	case strings.Contains(notes, "M"):
		return model.Morning
	case strings.Contains(notes, "T"):
		return model.Afternoon
	case strings.Contains(notes, "N"):
		return model.Night
	}

	return model.RestDay
}
