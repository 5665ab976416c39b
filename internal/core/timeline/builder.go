package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/artified/mosaic/internal/util"
)

// Segments whose mean confidence falls below this get a low_confidence
// risk flag.
const lowConfidenceThreshold = 0.60

const evidenceLayout = "15:04:05"

// Builder compresses one day of labeled frames into a contiguous,
// non-overlapping segment list: run-length grouping, midpoint boundary
// smoothing, then idle splicing.
type Builder struct {
	cfg    Config
	oracle SimilarityOracle
}

// NewBuilder creates a new Builder instance.
func NewBuilder(cfg Config, oracle SimilarityOracle) *Builder {
	return &Builder{
		cfg:    cfg,
		oracle: oracle,
	}
}

// draft is a segment under construction. Field aggregation happens only
// when the final ordered list is known, so splicing can repartition member
// frames freely.
type draft struct {
	start      time.Time
	end        time.Time
	frames     []model.Frame
	idle       bool
	similarity float64
}

// Build returns the final ordered segment list plus any non-fatal
// warnings. An empty frame list is not an error; it yields an empty list
// and an empty-input warning.
func (b *Builder) Build(frames []model.Frame) ([]model.Segment, []model.Warning, error) {
	if len(frames) == 0 {
		return nil, []model.Warning{{
			Kind:    model.WarnEmptyInput,
			Message: "no frames captured for this day",
		}}, nil
	}

	drafts := smoothBoundaries(groupRuns(frames))

	windows, err := DetectIdleWindows(frames, b.oracle, b.cfg)
	if err != nil {
		return nil, nil, err
	}
	drafts = spliceIdle(drafts, windows)

	segments := b.finalize(drafts)

	var warnings []model.Warning
	if len(segments) == 0 {
		// The day spans zero minutes (a single frame, or duplicates of one
		// timestamp). Widen to the default interval instead of emitting
		// nothing.
		seg := b.composeSegment(draft{
			start:  frames[0].Ref.Timestamp,
			end:    frames[0].Ref.Timestamp.Add(minutesToDuration(b.cfg.DefaultIntervalMinutes)),
			frames: frames,
		})
		seg.SegmentID = segmentID(1)
		segments = []model.Segment{seg}
		warnings = append(warnings, model.Warning{
			Kind: model.WarnDegenerateSegment,
			Message: fmt.Sprintf("day spans zero minutes; widened to the %.0f-minute default interval",
				b.cfg.DefaultIntervalMinutes),
		})
	}

	util.LogDebugf("Built %d segments from %d frames (%d idle windows)",
		len(segments), len(frames), len(windows))

	return segments, warnings, nil
}

// groupRuns run-length-encodes the frame sequence on the
// (activity, surface) key.
func groupRuns(frames []model.Frame) [][]model.Frame {
	var runs [][]model.Frame
	start := 0
	for i := 1; i <= len(frames); i++ {
		if i == len(frames) || !sameKey(frames[i], frames[start]) {
			runs = append(runs, frames[start:i])
			start = i
		}
	}
	return runs
}

func sameKey(a, b model.Frame) bool {
	return a.Label.Activity == b.Label.Activity && a.Label.Surface == b.Label.Surface
}

// smoothBoundaries places each boundary between differing runs at the
// midpoint of the two flanking frames. The day starts at the first frame's
// raw timestamp and ends at the last frame's raw timestamp.
func smoothBoundaries(runs [][]model.Frame) []draft {
	drafts := make([]draft, 0, len(runs))
	for i, run := range runs {
		d := draft{frames: run}

		if i == 0 {
			d.start = run[0].Ref.Timestamp
		} else {
			prev := runs[i-1]
			d.start = midpoint(prev[len(prev)-1].Ref.Timestamp, run[0].Ref.Timestamp)
		}

		if i == len(runs)-1 {
			d.end = run[len(run)-1].Ref.Timestamp
		} else {
			next := runs[i+1]
			d.end = midpoint(run[len(run)-1].Ref.Timestamp, next[0].Ref.Timestamp)
		}

		drafts = append(drafts, d)
	}
	return drafts
}

func midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}

func minutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// spliceIdle carves each approved idle window out of whatever drafts it
// overlaps and inserts an idle draft in the hole. Edges of the flanking
// drafts end up clamped to the window, so idle insertion overrides the
// midpoint rule at that gap.
func spliceIdle(drafts []draft, windows []Window) []draft {
	for _, w := range windows {
		carved := make([]draft, 0, len(drafts)+1)
		for _, d := range drafts {
			carved = append(carved, subtractWindow(d, w)...)
		}
		carved = append(carved, draft{
			start:      w.Start,
			end:        w.End,
			idle:       true,
			similarity: w.Similarity,
		})
		drafts = carved
	}

	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].start.Before(drafts[j].start)
	})
	return drafts
}

// subtractWindow removes the window's span from the draft, splitting it in
// two when the window sits strictly inside. Member frames follow the side
// their timestamp falls on; no frame ever lands inside a window because
// windows live strictly between two capture timestamps.
func subtractWindow(d draft, w Window) []draft {
	if d.idle || !w.Start.Before(d.end) || !w.End.After(d.start) {
		return []draft{d}
	}

	cut := sort.Search(len(d.frames), func(i int) bool {
		return d.frames[i].Ref.Timestamp.After(w.Start)
	})
	leftFrames := d.frames[:cut]
	rightFrames := d.frames[cut:]

	hasLeft := w.Start.After(d.start)
	hasRight := w.End.Before(d.end)
	if hasLeft && !hasRight {
		leftFrames = d.frames
	}
	if hasRight && !hasLeft {
		rightFrames = d.frames
	}

	var out []draft
	if hasLeft {
		out = append(out, draft{start: d.start, end: w.Start, frames: leftFrames})
	}
	if hasRight {
		out = append(out, draft{start: w.End, end: d.end, frames: rightFrames})
	}
	return out
}

// finalize aggregates fields for every surviving draft and assigns ids in
// chronological order. Zero and negative duration candidates are never
// emitted.
func (b *Builder) finalize(drafts []draft) []model.Segment {
	segments := make([]model.Segment, 0, len(drafts))
	for _, d := range drafts {
		if !d.end.After(d.start) {
			continue
		}
		segments = append(segments, b.composeSegment(d))
	}

	for i := range segments {
		segments[i].SegmentID = segmentID(i + 1)
	}
	return segments
}

func segmentID(ordinal int) string {
	return fmt.Sprintf("S%03d", ordinal)
}

// composeSegment aggregates one draft's member frames into a frozen
// segment.
func (b *Builder) composeSegment(d draft) model.Segment {
	duration := d.end.Sub(d.start).Minutes()

	if d.idle {
		return model.Segment{
			StartTime:          d.start,
			EndTime:            d.end,
			DurationMinutes:    duration,
			DominantSurface:    model.IdleSurface,
			Activity:           model.IdleActivity,
			Confidence:         0,
			ContextDetail:      "No visible change; likely away/idle.",
			Notes:              fmt.Sprintf("Auto-detected idle (similarity=%.3f).", d.similarity),
			SupportingSurfaces: []string{},
			RiskFlags:          []string{"idle_detected"},
			EvidenceFrames:     []string{},
			IsIdle:             true,
		}
	}

	return model.Segment{
		StartTime:          d.start,
		EndTime:            d.end,
		DurationMinutes:    duration,
		DominantSurface:    dominantSurface(d.frames),
		Activity:           d.frames[0].Label.Activity,
		Confidence:         meanConfidence(d.frames),
		ContextDetail:      bestFrame(d.frames).Label.ContextDetail,
		Notes:              bestFrame(d.frames).Label.Notes,
		SupportingSurfaces: surfaceUnion(d.frames),
		RiskFlags:          riskFlags(d.frames),
		EvidenceFrames:     evidence(d.frames),
		IsIdle:             false,
	}
}

// dominantSurface picks the most frequent member surface; ties go to the
// surface seen earliest.
func dominantSurface(frames []model.Frame) string {
	counts := make(map[string]int, len(frames))
	for _, f := range frames {
		counts[f.Label.Surface]++
	}

	dominant := ""
	for _, f := range frames {
		s := f.Label.Surface
		if dominant == "" || counts[s] > counts[dominant] {
			dominant = s
		}
	}
	return dominant
}

func meanConfidence(frames []model.Frame) float64 {
	var sum float64
	for _, f := range frames {
		sum += f.Label.Confidence
	}
	return sum / float64(len(frames))
}

// bestFrame returns the highest-confidence member; ties go to the latest
// frame.
func bestFrame(frames []model.Frame) model.Frame {
	best := frames[0]
	for _, f := range frames[1:] {
		if f.Label.Confidence >= best.Label.Confidence {
			best = f
		}
	}
	return best
}

// surfaceUnion collects every surface seen across the member frames,
// dominant candidates included, in first-seen order.
func surfaceUnion(frames []model.Frame) []string {
	seen := make(map[string]bool)
	var union []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			union = append(union, s)
		}
	}
	for _, f := range frames {
		add(f.Label.Surface)
		for _, s := range f.Label.SupportingSurfaces {
			add(s)
		}
	}
	return union
}

// riskFlags unions the member frames' non-"none" flags and appends
// low_confidence when the mean confidence warrants it. A segment with
// nothing to report carries the explicit "none" marker.
func riskFlags(frames []model.Frame) []string {
	seen := make(map[string]bool)
	var flags []string
	for _, f := range frames {
		for _, flag := range f.Label.RiskFlags {
			if flag == "" || flag == "none" || seen[flag] {
				continue
			}
			seen[flag] = true
			flags = append(flags, flag)
		}
	}

	if meanConfidence(frames) < lowConfidenceThreshold && !seen["low_confidence"] {
		flags = append(flags, "low_confidence")
	}

	if len(flags) == 0 {
		return []string{"none"}
	}
	return flags
}

func evidence(frames []model.Frame) []string {
	out := make([]string, 0, len(frames))
	for _, f := range frames {
		out = append(out, f.Ref.Timestamp.Format(evidenceLayout))
	}
	return out
}
