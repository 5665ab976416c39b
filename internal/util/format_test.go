package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 5, 33, 0, time.UTC)
	assert.Equal(t, "09:05", FormatClock(ts))

	ts = time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "23:59", FormatClock(ts))
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		minutes  float64
		expected string
	}{
		{"zero", 0, "0m"},
		{"under an hour", 42, "42m"},
		{"exactly one hour", 60, "1h 00m"},
		{"hour and change", 65, "1h 05m"},
		{"fractional rounds", 42.6, "43m"},
		{"negative clamps", -3, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMinutes(tt.minutes))
		})
	}
}

func TestFormatConfidence(t *testing.T) {
	assert.Equal(t, "0.85", FormatConfidence(0.8512))
	assert.Equal(t, "1.00", FormatConfidence(1.0))
}
