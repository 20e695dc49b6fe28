package dateutil

import (
	"fmt"
	"time"

	"github.com/habitline/habitline/internal/constants"
)

// DayKey formats a time as a calendar day key (YYYY-MM-DD) in the time's own
// location. All day attribution in the engine goes through this function so
// that a log written at 23:30 local time stays on the user's local day.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a day key (YYYY-MM-DD) into a time at midnight in the
// specified location.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", day, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// MustDay parses a day key and panics on failure. Only for use with
// compile-time constant dates (catalog entries, tests).
func MustDay(day string) time.Time {
	t, err := ParseDay(day, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValidDay reports whether s is a well-formed YYYY-MM-DD day key naming a
// real calendar date. time.Parse alone accepts some shapes we reject, so the
// length check keeps out values like "2024-1-2".
func IsValidDay(s string) bool {
	if len(s) != len(constants.DateFormat) {
		return false
	}
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// Today returns the current day key in the given location. Callers resolve
// "today" once at the boundary and pass it down; engine functions never read
// the clock themselves.
func Today(loc *time.Location) string {
	return DayKey(time.Now().In(loc))
}

// LoadLocation loads an IANA timezone, with "" and "Local" meaning the system
// timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// AddDays returns the day key n days after (or before, for negative n) the
// given day key. The input must be a valid day key.
func AddDays(day string, n int) string {
	t, err := ParseDay(day, time.UTC)
	if err != nil {
		return day
	}
	return DayKey(t.AddDate(0, 0, n))
}

// Yesterday returns the day key immediately preceding the given one.
func Yesterday(day string) string {
	return AddDays(day, -1)
}

// DayDiff returns the number of calendar days from a to b (positive when b is
// later). Both inputs must be valid day keys; invalid input yields 0.
func DayDiff(a, b string) int {
	ta, err := ParseDay(a, time.UTC)
	if err != nil {
		return 0
	}
	tb, err := ParseDay(b, time.UTC)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// Before reports whether day key a names an earlier day than b. Day keys are
// zero-padded so lexicographic order matches calendar order.
func Before(a, b string) bool {
	return a < b
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDay builds a day key from components.
func MonthDay(year int, month time.Month, day int) string {
	return DayKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// WeekStart returns the day key of the Monday of the week containing the
// given day.
func WeekStart(day string) string {
	t, err := ParseDay(day, time.UTC)
	if err != nil {
		return day
	}
	offset := (int(t.Weekday()) + 6) % 7
	return DayKey(t.AddDate(0, 0, -offset))
}

// MonthStart returns the day key of the first day of the month containing the
// given day.
func MonthStart(day string) string {
	t, err := ParseDay(day, time.UTC)
	if err != nil {
		return day
	}
	return DayKey(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
}
