package roster

import "testing"

func TestMonthDays_February(t *testing.T) {
	days2024 := MonthDays(2024, 2) // leap year
	if len(days2024) != 29 {
		t.Errorf("expected 29 days for Feb 2024, got %d", len(days2024))
	}

	days2025 := MonthDays(2025, 2)
	if len(days2025) != 28 {
		t.Errorf("expected 28 days for Feb 2025, got %d", len(days2025))
	}
	if days2025[0] != "2025-02-01" || days2025[len(days2025)-1] != "2025-02-28" {
		t.Errorf("unexpected bounds: %v", []string{days2025[0], days2025[len(days2025)-1]})
	}
}

func TestIsWeekend(t *testing.T) {
	// 2025-02-01 is a Saturday.
	if !IsWeekend("2025-02-01") {
		t.Error("expected 2025-02-01 (Saturday) to be weekend")
	}
	if !IsWeekend("2025-02-02") {
		t.Error("expected 2025-02-02 (Sunday) to be weekend")
	}
	if IsWeekend("2025-02-03") {
		t.Error("expected 2025-02-03 (Monday) to not be weekend")
	}
}

func TestNormalizeWeekday(t *testing.T) {
	cases := map[string]string{
		"Miércoles": "miercoles",
		"MIÉRCOLES": "miercoles",
		"  lunes  ": "lunes",
		"Sábado":    "sabado",
	}
	for in, want := range cases {
		if got := NormalizeWeekday(in); got != want {
			t.Errorf("NormalizeWeekday(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShiftEndInstant_NightCrossesMidnight(t *testing.T) {
	end, err := ShiftEndInstant("2025-02-10", "07:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Format("2006-01-02") != "2025-02-11" {
		t.Errorf("expected night shift to end the next day, got %s", end.Format("2006-01-02"))
	}

	afternoonEnd, err := ShiftEndInstant("2025-02-10", "23:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if afternoonEnd.Format("2006-01-02") != "2025-02-10" {
		t.Errorf("expected afternoon-ending shift to end same day, got %s", afternoonEnd.Format("2006-01-02"))
	}
}

func TestRestHours_AcrossMidnight(t *testing.T) {
	nightEnd, err := ShiftEndInstant("2025-02-10", "07:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hours, err := RestHours(nightEnd, "2025-02-11", "07:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hours != 0 {
		t.Errorf("expected 0 hours rest, got %v", hours)
	}
}

func TestSaturdaySundayPair(t *testing.T) {
	sunday, ok := SaturdaySundayPair("2025-02-01", 2025, 2)
	if !ok || sunday != "2025-02-02" {
		t.Errorf("expected 2025-02-02, got %q ok=%v", sunday, ok)
	}

	// A month-final Saturday pairs with a Sunday outside the month.
	_, ok = SaturdaySundayPair("2025-05-31", 2025, 5)
	if ok {
		t.Error("expected no pair: 2025-05-31's Sunday (June 1) is out of month")
	}
}
