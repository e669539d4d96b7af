package planner

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date keys are fixed-width zero-padded YYYY-MM-DD strings rendered from
// local wall-clock fields. The fixed width is what makes plain string
// comparison a valid date ordering, so every producer must go through
// DateKey or ShiftDateKey.

// DateKey formats a calendar day as its YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey returns the key's day at local midnight. Missing or
// unparseable month/day components default to 1; it never fails.
func ParseDateKey(key string) time.Time {
	parts := strings.Split(key, "-")
	year := atoiOr(componentAt(parts, 0), 0)
	month := atoiOr(componentAt(parts, 1), 1)
	day := atoiOr(componentAt(parts, 2), 1)
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// ShiftDateKey adds offsetDays (may be negative) to the key's day and
// re-renders it. Month and year rollover is handled by time.Date's
// normalization rather than reimplemented here.
func ShiftDateKey(key string, offsetDays int) string {
	t := ParseDateKey(key)
	return DateKey(time.Date(t.Year(), t.Month(), t.Day()+offsetDays, 0, 0, 0, 0, time.Local))
}

// ParseClock splits an HH:MM string into hour and minute.
func ParseClock(hhmm string) (hour, minute int, err error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return hour, minute, nil
}

// DueInstant combines a date key and an HH:MM time into a local instant.
func DueInstant(dateKey, hhmm string) (time.Time, error) {
	hour, minute, err := ParseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	day := ParseDateKey(dateKey)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), nil
}

func componentAt(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
