package timeline

import (
	"sort"
	"time"
)

// Gaps returns the n-1 consecutive inter-frame gaps in fractional minutes.
// Duplicate timestamps yield zero gaps, which are kept: they are part of
// the cadence statistic, not noise.
func Gaps(timestamps []time.Time) []float64 {
	if len(timestamps) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(timestamps)-1)
	for i := 0; i < len(timestamps)-1; i++ {
		gaps = append(gaps, timestamps[i+1].Sub(timestamps[i]).Minutes())
	}
	return gaps
}

// CaptureInterval infers the nominal capture cadence as the median of the
// consecutive gaps. With no gaps to measure it returns the configured
// default.
func CaptureInterval(gaps []float64, defaultMinutes float64) float64 {
	if len(gaps) == 0 {
		return defaultMinutes
	}

	sorted := make([]float64, len(gaps))
	copy(sorted, gaps)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
