package aggregator

import (
	"sort"

	"github.com/artified/mosaic/internal/core/model"
)

// Aggregator derives day totals from a finalized segment list. It is
// stateless; totals are recomputable at any time.
type Aggregator struct{}

// NewAggregator creates a new Aggregator instance.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// ComputeTotals sums minutes per surface and per activity and counts
// context switches. Idle segments contribute to an "Idle" bucket in both
// rankings but are skipped when counting switches: a transition into and
// out of an idle span is judged against the nearest non-idle neighbors.
func (a *Aggregator) ComputeTotals(segments []model.Segment) model.Totals {
	return model.Totals{
		BySurfaceMinutes:   rankMinutes(segments, func(s model.Segment) string { return s.DominantSurface }),
		ByActivityMinutes:  rankMinutes(segments, func(s model.Segment) string { return s.Activity }),
		ContextSwitchCount: countSwitches(segments),
	}
}

// rankMinutes accumulates duration per key and orders the result by
// minutes descending, ties broken by first-seen key order.
func rankMinutes(segments []model.Segment, keyOf func(model.Segment) string) []model.KeyMinutes {
	minutes := make(map[string]float64)
	firstSeen := make(map[string]int)
	var order []string

	for _, seg := range segments {
		key := keyOf(seg)
		if _, ok := firstSeen[key]; !ok {
			firstSeen[key] = len(order)
			order = append(order, key)
		}
		minutes[key] += seg.DurationMinutes
	}

	ranked := make([]model.KeyMinutes, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, model.KeyMinutes{Key: key, Minutes: minutes[key]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Minutes != ranked[j].Minutes {
			return ranked[i].Minutes > ranked[j].Minutes
		}
		return firstSeen[ranked[i].Key] < firstSeen[ranked[j].Key]
	})
	return ranked
}

// countSwitches counts adjacent non-idle pairs whose activity or dominant
// surface differs.
func countSwitches(segments []model.Segment) int {
	count := 0
	var prev *model.Segment
	for i := range segments {
		seg := &segments[i]
		if seg.IsIdle {
			continue
		}
		if prev != nil && (prev.Activity != seg.Activity || prev.DominantSurface != seg.DominantSurface) {
			count++
		}
		prev = seg
	}
	return count
}
