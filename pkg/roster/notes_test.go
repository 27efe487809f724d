package roster

import (
	"testing"

	"github.com/turnos/turnos/pkg/model"
)

func TestClassifyShift_BuilderRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		note  string
		start string
		want  model.ShiftKind
	}{
		{"work pattern morning", noteWorkPattern(model.Morning), "07:00", model.Morning},
		{"rest patron", noteRestPatron(), "", model.RestDay},
		{"holiday patron", noteHolidayPatron(), "", model.Holiday},
		{"fixed absence LAO", noteFixedAbsence(model.FixedAnnual, ""), "", model.AnnualLv},
		{"fixed absence LM with description", noteFixedAbsence(model.FixedMedical, "gripe"), "", model.MedicalLv},
		{"fixed rest", noteFixedRest(), "", model.RestDay},
		{"fixed rest holiday", noteFixedRestHoliday(), "", model.Holiday},
		{"fixed work night", noteFixedWork(model.Night), "23:00", model.Night},
		{"fixed work holiday covers afternoon", noteFixedWorkHoliday(model.Afternoon), "", model.Holiday},
		{"residual rest", noteResidualRest(), "", model.RestDay},
		{"residual holiday", noteResidualHoliday(), "", model.Holiday},
		{"residual rest weekend target", noteResidualRestWeekendTarget(), "", model.RestDay},
		{"residual holiday weekend target", noteResidualHolidayWeekendTarget(), "", model.Holiday},
		{"comp day", noteCompDay(), "", model.CompDay},
		{"demand morning", noteDemandNote(model.Morning), "07:00", model.Morning},
		{"demand afternoon", noteDemandNote(model.Afternoon), "15:00", model.Afternoon},
		{"demand night", noteDemandNote(model.Night), "23:00", model.Night},
	}

	for _, c := range cases {
		shift := model.AssignedShift{Notes: c.note, StartTime: c.start}
		got := ClassifyShift(shift)
		if got != c.want {
			t.Errorf("%s: ClassifyShift(%q) = %q, want %q", c.name, c.note, got, c.want)
		}
	}
}

func TestClassifyShift_StartTimeFallback(t *testing.T) {
	shift := model.AssignedShift{Notes: "", StartTime: "07:00"}
	if got := ClassifyShift(shift); got != model.Morning {
		t.Errorf("expected Morning fallback from startTime, got %q", got)
	}
}

func TestClassifyShift_DefaultsToRest(t *testing.T) {
	shift := model.AssignedShift{}
	if got := ClassifyShift(shift); got != model.RestDay {
		t.Errorf("expected RestDay default, got %q", got)
	}
}
