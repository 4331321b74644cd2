// Package dateutil provides day-key parsing and calendar arithmetic.
//
// Dates are handled as canonical "YYYY-MM-DD" day keys. The zero-padded
// form sorts lexicographically in calendar order, which the series
// deletion logic relies on.
package dateutil

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
)

const dayKeyLayout = "2006-01-02"

// DayKey returns the canonical day key for t.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseDay parses a canonical day key. An empty string returns today.
// The result is midnight in the local timezone so keys derived from it
// match keys derived from time.Now().
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation(dayKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays returns the day key n calendar days after the given key.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDay(key)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, n)), nil
}

// IsWeekend returns true if t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextWeekday returns t unchanged when it is a weekday, otherwise the
// next Monday. Weekdays-only series materialization shifts weekend
// occurrences forward rather than dropping them.
func NextWeekday(t time.Time) time.Time {
	for IsWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
