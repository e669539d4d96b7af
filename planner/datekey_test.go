package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKeyFormatsZeroPadded(t *testing.T) {
	key := DateKey(time.Date(2024, 3, 5, 23, 59, 0, 0, time.Local))
	assert.Equal(t, "2024-03-05", key)
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	parsed := ParseDateKey("2024-03-10")
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 10, parsed.Day())
	assert.Equal(t, 0, parsed.Hour())
	assert.Equal(t, "2024-03-10", DateKey(parsed))
}

func TestParseDateKeyDefaultsMissingComponents(t *testing.T) {
	assert.Equal(t, "2024-01-01", DateKey(ParseDateKey("2024")))
	assert.Equal(t, "2024-06-01", DateKey(ParseDateKey("2024-06")))
	assert.Equal(t, "2024-01-01", DateKey(ParseDateKey("2024-xx-yy")))
}

func TestShiftDateKeyRollsOverBoundaries(t *testing.T) {
	assert.Equal(t, "2024-03-01", ShiftDateKey("2024-02-29", 1))
	assert.Equal(t, "2025-01-02", ShiftDateKey("2024-12-31", 2))
	assert.Equal(t, "2023-12-31", ShiftDateKey("2024-01-01", -1))
	assert.Equal(t, "2024-03-10", ShiftDateKey("2024-03-10", 0))
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("07:45")
	require.NoError(t, err)
	assert.Equal(t, 7, hour)
	assert.Equal(t, 45, minute)

	for _, bad := range []string{"", "7", "24:00", "12:60", "a:b", "12:34:56"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestDueInstant(t *testing.T) {
	at, err := DueInstant("2024-03-10", "09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local), at)
}

func TestNotificationIDStableAndInRange(t *testing.T) {
	a := NotificationID("daily-water")
	b := NotificationID("daily-water")
	assert.Equal(t, a, b)
	assert.Greater(t, a, 0)

	c := NotificationID("daily-exercise")
	assert.NotEqual(t, a, c)

	// The empty key still maps into the valid range.
	assert.Equal(t, 1, NotificationID(""))
}
