package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDays(t *testing.T) {
	assert.Equal(t, 3, DurationDays(date(2026, 9, 10), date(2026, 9, 13)))
	assert.Equal(t, 1, DurationDays(date(2026, 9, 10), date(2026, 9, 11)))
	assert.Equal(t, 0, DurationDays(date(2026, 9, 10), date(2026, 9, 10)))
	assert.Equal(t, -2, DurationDays(date(2026, 9, 10), date(2026, 9, 8)))
	// Across a month boundary.
	assert.Equal(t, 4, DurationDays(date(2026, 9, 29), date(2026, 10, 3)))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, 150.0, Price(50, 3))
	assert.Equal(t, 0.0, Price(50, 0))
	assert.Equal(t, 37.5, Price(12.5, 3))
}

func TestParseDate(t *testing.T) {
	t.Run("bare calendar date", func(t *testing.T) {
		got, err := ParseDate("2026-09-10")
		require.NoError(t, err)
		assert.Equal(t, date(2026, 9, 10), got)
	})

	t.Run("rfc3339 timestamp truncates to the date", func(t *testing.T) {
		got, err := ParseDate("2026-09-10T15:04:05Z")
		require.NoError(t, err)
		assert.Equal(t, date(2026, 9, 10), got)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		for _, s := range []string{"", "10/09/2026", "2026-13-40", "tomorrow"} {
			_, err := ParseDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestToDate(t *testing.T) {
	in := time.Date(2026, 9, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, date(2026, 9, 10), ToDate(in))
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.True(t, StatusReturned.Valid())
	assert.False(t, Status("completed").Valid())
	assert.False(t, Status("").Valid())

	assert.False(t, StatusActive.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusReturned.Terminal())
}
