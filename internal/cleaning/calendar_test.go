package cleaning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// day builds a UTC midnight date for test fixtures
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// TestNormalizeCalendarDense verifies gap days are materialized between
// observations
func TestNormalizeCalendarDense(t *testing.T) {
	observations := []Observation{
		{Date: day(2024, 9, 12), Total: 200},
		{Date: day(2024, 9, 14), Total: 500},
		{Date: day(2024, 9, 16), Total: 900},
	}

	series, err := normalizeCalendar(observations)
	require.NoError(t, err)
	require.Len(t, series, 5)

	for i, record := range series {
		assert.Equal(t, day(2024, 9, 12+i), record.Date)
	}

	assert.True(t, series[0].Observed)
	assert.False(t, series[1].Observed)
	assert.True(t, series[2].Observed)
	assert.False(t, series[3].Observed)
	assert.True(t, series[4].Observed)

	assert.Equal(t, 200.0, series[0].Total)
	assert.Equal(t, 500.0, series[2].Total)
	assert.Equal(t, 900.0, series[4].Total)
}

// TestNormalizeCalendarSortsInput verifies out-of-order observations are
// accepted and ordered internally
func TestNormalizeCalendarSortsInput(t *testing.T) {
	observations := []Observation{
		{Date: day(2024, 9, 16), Total: 900},
		{Date: day(2024, 9, 12), Total: 200},
		{Date: day(2024, 9, 14), Total: 500},
	}

	series, err := normalizeCalendar(observations)
	require.NoError(t, err)
	require.Len(t, series, 5)
	assert.Equal(t, day(2024, 9, 12), series[0].Date)
	assert.Equal(t, day(2024, 9, 16), series[4].Date)
	assert.Equal(t, 200.0, series[0].Total)
	assert.Equal(t, 900.0, series[4].Total)
}

// TestNormalizeCalendarDuplicateDate verifies repeated dates are fatal
func TestNormalizeCalendarDuplicateDate(t *testing.T) {
	tests := []struct {
		name         string
		observations []Observation
	}{
		{
			name: "exact duplicate",
			observations: []Observation{
				{Date: day(2024, 9, 12), Total: 200},
				{Date: day(2024, 9, 12), Total: 210},
			},
		},
		{
			name: "same day different clock time",
			observations: []Observation{
				{Date: time.Date(2024, 9, 12, 9, 30, 0, 0, time.UTC), Total: 200},
				{Date: time.Date(2024, 9, 12, 17, 0, 0, 0, time.UTC), Total: 210},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := normalizeCalendar(tt.observations)
			require.Error(t, err)
			assert.Nil(t, series)

			var dupErr *DuplicateDateError
			require.ErrorAs(t, err, &dupErr)
			assert.Equal(t, day(2024, 9, 12), dupErr.Date)
			assert.Contains(t, err.Error(), "2024-09-12")
		})
	}
}

// TestNormalizeCalendarEdgeSizes tests empty and single-observation input
func TestNormalizeCalendarEdgeSizes(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		series, err := normalizeCalendar(nil)
		require.NoError(t, err)
		assert.Nil(t, series)
	})

	t.Run("single observation", func(t *testing.T) {
		series, err := normalizeCalendar([]Observation{{Date: day(2024, 3, 5), Total: 500}})
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, day(2024, 3, 5), series[0].Date)
		assert.Equal(t, 500.0, series[0].Total)
		assert.True(t, series[0].Observed)
	})
}

// TestNormalizeCalendarTruncatesClockTime verifies timestamps collapse to
// midnight UTC
func TestNormalizeCalendarTruncatesClockTime(t *testing.T) {
	observations := []Observation{
		{Date: time.Date(2024, 9, 12, 23, 59, 59, 0, time.UTC), Total: 200},
		{Date: time.Date(2024, 9, 13, 0, 0, 1, 0, time.UTC), Total: 300},
	}

	series, err := normalizeCalendar(observations)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, day(2024, 9, 12), series[0].Date)
	assert.Equal(t, day(2024, 9, 13), series[1].Date)
}

// TestNormalizeCalendarDoesNotMutateInput verifies the caller's slice is
// left alone
func TestNormalizeCalendarDoesNotMutateInput(t *testing.T) {
	observations := []Observation{
		{Date: day(2024, 9, 16), Total: 900},
		{Date: day(2024, 9, 12), Total: 200},
	}

	_, err := normalizeCalendar(observations)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 9, 16), observations[0].Date)
	assert.Equal(t, day(2024, 9, 12), observations[1].Date)
}

func TestDuplicateDateErrorCanBeUnwrapped(t *testing.T) {
	err := error(&DuplicateDateError{Date: day(2024, 1, 2)})
	wrapped := errors.Join(err)

	var dupErr *DuplicateDateError
	assert.True(t, errors.As(wrapped, &dupErr))
}
