package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", "2025-03-14 "+clock)
	require.NoError(t, err)
	return ts
}

func TestGaps(t *testing.T) {
	times := []time.Time{
		at(t, "10:00:00"),
		at(t, "10:05:00"),
		at(t, "10:05:00"),
		at(t, "10:12:30"),
	}

	gaps := Gaps(times)
	require.Len(t, gaps, 3)
	assert.Equal(t, 5.0, gaps[0])
	assert.Equal(t, 0.0, gaps[1], "duplicate timestamps count as zero gaps")
	assert.Equal(t, 7.5, gaps[2])
}

func TestGapsTooFewFrames(t *testing.T) {
	assert.Nil(t, Gaps(nil))
	assert.Nil(t, Gaps([]time.Time{at(t, "10:00:00")}))
}

func TestCaptureInterval(t *testing.T) {
	tests := []struct {
		name     string
		gaps     []float64
		expected float64
	}{
		{"no gaps falls back to default", nil, 15},
		{"single gap is the interval", []float64{7.5}, 7.5},
		{"odd count takes middle", []float64{4, 30, 5}, 5},
		{"even count averages middles", []float64{4, 6, 30, 2}, 5},
		{"zero gaps included", []float64{0, 0, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CaptureInterval(tt.gaps, 15))
		})
	}
}

func TestCaptureIntervalDoesNotMutateInput(t *testing.T) {
	gaps := []float64{9, 1, 5}
	CaptureInterval(gaps, 15)
	assert.Equal(t, []float64{9, 1, 5}, gaps)
}
