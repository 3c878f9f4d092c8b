package schedule

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ParseClock validates a "HH:MM" wall-clock string as stored on availability
// rules and break windows.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t, nil
}

// At pins a "HH:MM" wall-clock string onto a calendar day, in that day's
// location.
func At(day time.Time, clock string) (time.Time, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// ClockBefore reports whether clock string a is strictly earlier than b.
// Both must already be valid "HH:MM" values.
func ClockBefore(a, b string) bool {
	ta, errA := ParseClock(a)
	tb, errB := ParseClock(b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.Before(tb)
}
