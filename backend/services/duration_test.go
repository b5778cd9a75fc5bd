package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationDays(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"10", 10},
		{"10 days", 10},
		{"3 weeks", 21},
		{"1 month", 30},
		{"2 years", 730},
		{"30days", 30},
		{"2 WEEKS", 14},
		{"abc", 0},
		{"", 0},
		{"weeks", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDurationDays(tt.input))
		})
	}
}

func TestParseDurationDaysWordNumbersUnsupported(t *testing.T) {
	// The fixed-ratio path only reads digits; number words carry magnitude 0.
	assert.Equal(t, 0, ParseDurationDays("one week"))
}

func TestComputeExpiry(t *testing.T) {
	created := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"10 days", created.AddDate(0, 0, 10)},
		{"3 weeks", created.AddDate(0, 0, 21)},
		{"one month", created.AddDate(0, 1, 0)},
		{"2 months", created.AddDate(0, 2, 0)},
		{"ten weeks", created.AddDate(0, 0, 70)},
		{"1 year", created.AddDate(1, 0, 0)},
		{"One Month", created.AddDate(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ComputeExpiry(created, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeExpiryUnparsable(t *testing.T) {
	created := time.Now()
	for _, input := range []string{"abc", "", "10", "30days", "eleven weeks", "3 fortnights"} {
		_, err := ComputeExpiry(created, input)
		assert.ErrorIs(t, err, ErrUnparsableDuration, "input %q", input)
	}
}

// The two parsers intentionally disagree on months: 30 days flat on the
// fixed-ratio path, a real calendar month on the sweeper path.
func TestDurationStrategiesDiverge(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, ParseDurationDays("1 month"))

	expiry, err := ComputeExpiry(created, "1 month")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), expiry)
	assert.NotEqual(t, created.AddDate(0, 0, 30), expiry)

	// Weeks agree on both paths.
	assert.Equal(t, 21, ParseDurationDays("3 weeks"))
	expiry, err = ComputeExpiry(created, "3 weeks")
	require.NoError(t, err)
	assert.Equal(t, created.AddDate(0, 0, 21), expiry)
}
