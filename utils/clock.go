// File: utils/clock.go
package utils

import (
	"fmt"
	"time"
)

// ParseClock converts a zero-padded "HH:MM" wall-clock string to minutes
// from midnight. All interval arithmetic in the engine runs on these
// minute values so that every call site compares times the same way.
// Padding is mandatory: stored times are also compared lexicographically
// in overlap queries, which only works when every value is "HH:MM".
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes from midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DayOfWeek resolves the weekday (0 = Sunday .. 6 = Saturday) of a
// "YYYY-MM-DD" date.
func DayOfWeek(date string) (int, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return int(d.Weekday()), nil
}

// CombineDateTime builds the instant for a date + "HH:MM" pair in the given
// location.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}
