// Package roster implements the monthly shift generator and evaluator.
package roster

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/turnos/turnos/pkg/model"
)

// MonthDays returns every YYYY-MM-DD date in the given month, in order.
// Handles February's 28/29 days via time.Date's normalization.
func MonthDays(year, month int) []string {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	days := make([]string, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format("2006-01-02"))
	}
	return days
}

// ParseDate parses a YYYY-MM-DD string. Returns an error for malformed
// input; callers at the boundary should treat this as a data fault.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date string) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Sunday || wd == time.Saturday
}

// DemandColumnFor returns which staffing-needs column applies to date,
// treating any holiday as equivalent to weekend.
func DemandColumnFor(date string, holidays map[string]bool) model.DemandColumn {
	if IsWeekend(date) || holidays[date] {
		return model.WeekendOrHoliday
	}
	return model.Weekday
}

var weekdayKeys = [...]string{"domingo", "lunes", "martes", "miercoles", "jueves", "viernes", "sabado"}

// WeekdayKey returns the normalized (lower-case, diacritic-free)
// Spanish weekday name for date: one of lunes..domingo.
func WeekdayKey(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return weekdayKeys[int(t.Weekday())]
}

// NormalizeWeekday lower-cases and strips diacritics from a free-form
// weekday name so fixedWeeklyShiftDays keys compare reliably
// regardless of how the source data was typed ("Miércoles", "MIERCOLES").
func NormalizeWeekday(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case 'á':
			r = 'a'
		case 'é':
			r = 'e'
		case 'í':
			r = 'i'
		case 'ó':
			r = 'o'
		case 'ú':
			r = 'u'
		}
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Instant resolves a (date, HH:MM) pair to a concrete time.Time.
func Instant(date, hhmm string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %s %s: %w", date, hhmm, err)
	}
	return t, nil
}

// ShiftEndInstant resolves the absolute end instant of a work shift
// placed on date with canonical end time endHHMM. Night shifts end
// the next calendar day (their end hour is before noon); morning and
// afternoon shifts end the same day.
func ShiftEndInstant(date, endHHMM string) (time.Time, error) {
	t, err := Instant(date, endHHMM)
	if err != nil {
		return time.Time{}, err
	}
	if t.Hour() < 12 {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

// RestHours returns the number of hours between a prior work shift's
// end instant and a candidate shift's start instant on date.
func RestHours(lastWorkEnd time.Time, date, startHHMM string) (float64, error) {
	start, err := Instant(date, startHHMM)
	if err != nil {
		return 0, err
	}
	return start.Sub(lastWorkEnd).Hours(), nil
}

// SaturdaySundayPair returns the Sunday date string paired with a
// Saturday date, if that Sunday falls in the same month; ok is false
// for a month-final Saturday or a Sunday with no matching Saturday in
// range (per spec.md §8's "Sunday on the first" boundary case).
func SaturdaySundayPair(saturday string, year, month int) (sunday string, ok bool) {
	t, err := ParseDate(saturday)
	if err != nil || t.Weekday() != time.Saturday {
		return "", false
	}
	next := t.AddDate(0, 0, 1)
	if int(next.Month()) != month || next.Year() != year {
		return "", false
	}
	return next.Format("2006-01-02"), true
}
