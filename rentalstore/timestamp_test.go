package rentalstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/rental-return-events/rentalstore"
)

func Test_ParseTimestamp_AcceptsExplicitOffsets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "zulu",
			input:    "2025-02-10T11:00:00Z",
			expected: time.Date(2025, 2, 10, 11, 0, 0, 0, time.UTC),
		},
		{
			name:     "numeric utc offset",
			input:    "2025-02-10T11:00:00+00:00",
			expected: time.Date(2025, 2, 10, 11, 0, 0, 0, time.UTC),
		},
		{
			name:     "fractional seconds with negative offset",
			input:    "2025-02-10T06:30:00.250000-05:00",
			expected: time.Date(2025, 2, 10, 11, 30, 0, 250000000, time.UTC),
		},
		{
			name:     "compact offset",
			input:    "2025-02-10T13:00:00+0200",
			expected: time.Date(2025, 2, 10, 11, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := rentalstore.ParseTimestamp(tt.input)

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(parsed), "expected %s, got %s", tt.expected, parsed)
		})
	}
}

func Test_ParseTimestamp_RejectsMissingOffsetAndGarbage(t *testing.T) {
	for _, input := range []string{"2025-02-10T11:00:00", "yesterday", "", "2025-13-40T99:00:00Z"} {
		_, err := rentalstore.ParseTimestamp(input)

		assert.ErrorIs(t, err, rentalstore.ErrInvalidTimestamp, "input: %q", input)
	}
}

func Test_ParseStoredTimestamp_AssumesUTCWithoutOffset(t *testing.T) {
	parsed, err := rentalstore.ParseStoredTimestamp("2025-02-05T12:00:00")

	require.NoError(t, err)
	assert.True(t, time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC).Equal(parsed))
}

func Test_FormatTimestamp(t *testing.T) {
	cet := time.FixedZone("CET", 3600)

	assert.Equal(t, "2025-02-10T11:00:00+00:00", rentalstore.FormatTimestamp(time.Date(2025, 2, 10, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-02-10T12:00:00+01:00", rentalstore.FormatTimestamp(time.Date(2025, 2, 10, 12, 0, 0, 0, cet)))
	assert.Equal(t, "2025-02-10T11:00:00.123400+00:00", rentalstore.FormatTimestamp(time.Date(2025, 2, 10, 11, 0, 0, 123400000, time.UTC)))
}
