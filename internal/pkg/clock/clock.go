package clock

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

// TimeOfDay is a wall-clock time within a day, stored as minutes since
// midnight. It maps to the Postgres "time" type through its HH:MM:SS text
// representation.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into a TimeOfDay.
// Seconds are accepted for round-tripping database values but discarded.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, ErrInvalidTimeOfDay
		}
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// SQL formats the time as HH:MM:SS for use as a Postgres time parameter.
func (t TimeOfDay) SQL() string {
	return t.String() + ":00"
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// Today returns the current calendar date as a UTC midnight time.Time,
// the same representation pgx produces when scanning a Postgres date.
func Today() time.Time {
	return DateOf(time.Now().UTC())
}

// DateOf strips the clock part of t, keeping the calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date, expected YYYY-MM-DD: %w", err)
	}
	return d, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
