package util

import (
	"fmt"
	"math"
	"time"
)

// FormatClock renders a timestamp as 24-hour HH:MM local time.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatMinutes renders fractional minutes as a compact duration, e.g.
// "1h 05m" or "42m". Sub-minute remainders round to the nearest minute.
func FormatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 0 {
		total = 0
	}
	hours := total / 60
	mins := total % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatConfidence renders a confidence score with two decimals.
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.2f", confidence)
}
