package formatter

import (
	"fmt"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/artified/mosaic/internal/util"
)

// Idle segments carry no meaningful confidence; the line renders a
// placeholder instead.
const idleConfidencePlaceholder = "--"

// LineFormatter renders segments as one human-readable line each. Purely
// derived, side-effect-free, order-preserving.
type LineFormatter struct{}

// NewLineFormatter creates a new instance of LineFormatter.
func NewLineFormatter() *LineFormatter {
	return &LineFormatter{}
}

// Format renders every segment as
// "HH:MM–HH:MM <activity> | <dominant_surface> (confidence: X.XX)".
func (f *LineFormatter) Format(segments []model.Segment) []string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, f.FormatSegment(seg))
	}
	return lines
}

// FormatSegment renders a single segment line.
func (f *LineFormatter) FormatSegment(seg model.Segment) string {
	confidence := idleConfidencePlaceholder
	if !seg.IsIdle {
		confidence = util.FormatConfidence(seg.Confidence)
	}

	return fmt.Sprintf("%s–%s %s | %s (confidence: %s)",
		util.FormatClock(seg.StartTime),
		util.FormatClock(seg.EndTime),
		seg.Activity,
		seg.DominantSurface,
		confidence,
	)
}
