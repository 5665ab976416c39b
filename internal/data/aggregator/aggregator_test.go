package aggregator

import (
	"testing"
	"time"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(activity, surface string, minutes float64, idle bool) model.Segment {
	return model.Segment{
		Activity:        activity,
		DominantSurface: surface,
		DurationMinutes: minutes,
		IsIdle:          idle,
		StartTime:       time.Time{},
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := NewAggregator().ComputeTotals(nil)

	assert.Empty(t, totals.BySurfaceMinutes)
	assert.Empty(t, totals.ByActivityMinutes)
	assert.Zero(t, totals.ContextSwitchCount)
}

func TestComputeTotalsSumsPerKey(t *testing.T) {
	segments := []model.Segment{
		seg("Coding", "GitHub", 30, false),
		seg("Messaging", "Slack", 10, false),
		seg("Coding", "GitHub", 20, false),
	}
	totals := NewAggregator().ComputeTotals(segments)

	require.Len(t, totals.BySurfaceMinutes, 2)
	assert.Equal(t, model.KeyMinutes{Key: "GitHub", Minutes: 50}, totals.BySurfaceMinutes[0])
	assert.Equal(t, model.KeyMinutes{Key: "Slack", Minutes: 10}, totals.BySurfaceMinutes[1])

	require.Len(t, totals.ByActivityMinutes, 2)
	assert.Equal(t, "Coding", totals.ByActivityMinutes[0].Key)
}

func TestComputeTotalsTieBrokenByFirstSeen(t *testing.T) {
	segments := []model.Segment{
		seg("Email", "Gmail", 15, false),
		seg("Coding", "GitHub", 15, false),
	}
	totals := NewAggregator().ComputeTotals(segments)

	require.Len(t, totals.BySurfaceMinutes, 2)
	assert.Equal(t, "Gmail", totals.BySurfaceMinutes[0].Key, "equal minutes keep first-seen order")
	assert.Equal(t, "GitHub", totals.BySurfaceMinutes[1].Key)
}

func TestComputeTotalsIdleBucket(t *testing.T) {
	segments := []model.Segment{
		seg("Coding", "GitHub", 40, false),
		seg(model.IdleActivity, model.IdleSurface, 16, true),
		seg("Coding", "GitHub", 10, false),
	}
	totals := NewAggregator().ComputeTotals(segments)

	require.Len(t, totals.BySurfaceMinutes, 2)
	assert.Equal(t, model.KeyMinutes{Key: "GitHub", Minutes: 50}, totals.BySurfaceMinutes[0])
	assert.Equal(t, model.KeyMinutes{Key: "Idle", Minutes: 16}, totals.BySurfaceMinutes[1])
	assert.Equal(t, model.KeyMinutes{Key: "Idle", Minutes: 16}, totals.ByActivityMinutes[1])
}

func TestContextSwitchCount(t *testing.T) {
	tests := []struct {
		name     string
		segments []model.Segment
		expected int
	}{
		{
			name: "single switch",
			segments: []model.Segment{
				seg("Work", "Docs", 30, false),
				seg("Break", "YouTube", 10, false),
			},
			expected: 1,
		},
		{
			name: "no switch when key repeats",
			segments: []model.Segment{
				seg("Coding", "GitHub", 30, false),
				seg("Coding", "GitHub", 30, false),
			},
			expected: 0,
		},
		{
			name: "surface change alone is a switch",
			segments: []model.Segment{
				seg("Coding", "GitHub", 30, false),
				seg("Coding", "Terminal", 30, false),
			},
			expected: 1,
		},
		{
			name: "idle is not a switch itself",
			segments: []model.Segment{
				seg("Coding", "GitHub", 30, false),
				seg(model.IdleActivity, model.IdleSurface, 20, true),
				seg("Coding", "GitHub", 30, false),
			},
			expected: 0,
		},
		{
			name: "change across idle counts once",
			segments: []model.Segment{
				seg("Coding", "GitHub", 30, false),
				seg(model.IdleActivity, model.IdleSurface, 20, true),
				seg("Messaging", "Slack", 30, false),
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := NewAggregator().ComputeTotals(tt.segments)
			assert.Equal(t, tt.expected, totals.ContextSwitchCount)
		})
	}
}
