package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/artified/mosaic/internal/classifier"
	"github.com/artified/mosaic/internal/core/model"
	"github.com/artified/mosaic/internal/core/timeline"
	"github.com/artified/mosaic/internal/data/aggregator"
	"github.com/artified/mosaic/internal/data/scanner"
	"github.com/artified/mosaic/internal/presentation/formatter"
	"github.com/artified/mosaic/internal/util"
)

// Config is the explicit parameter structure for one engine run.
type Config struct {
	DayDir       string
	Date         time.Time
	Timezone     string
	Concurrency  int
	Segmentation timeline.Config
}

// Engine executes one synchronous pass over one day's frame set and
// produces one immutable timeline artifact. It performs no network or
// disk I/O of its own; the frame source, classifier adapter, and
// similarity oracle are its only collaborators.
type Engine struct {
	config     *Config
	scanner    *scanner.FrameScanner
	classifier classifier.Classifier
	builder    *timeline.Builder
	aggregator *aggregator.Aggregator
	lines      *formatter.LineFormatter
}

// New creates an Engine wired to the given collaborators.
func New(config *Config, cls classifier.Classifier, oracle timeline.SimilarityOracle) *Engine {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}

	return &Engine{
		config:     config,
		scanner:    scanner.NewFrameScanner(config.DayDir),
		classifier: cls,
		builder:    timeline.NewBuilder(config.Segmentation, oracle),
		aggregator: aggregator.NewAggregator(),
		lines:      formatter.NewLineFormatter(),
	}
}

// Run builds the day's timeline artifact. Fatal errors (bad frame source,
// classifier contract violations) abort the run with no artifact; a day
// with zero frames yields a trivial artifact plus a warning.
func (e *Engine) Run(ctx context.Context) (*model.TimelineArtifact, error) {
	startTime := time.Now()
	util.LogInfof("Starting timeline run for %s", e.config.Date.Format("2006-01-02"))

	// Phase 1: discover the day's frames
	scanStart := time.Now()
	refs, err := e.scanner.Scan(e.config.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to scan frames: %w", err)
	}
	util.LogDebugf("Phase 1 - frame scan: %v, found %d frames", time.Since(scanStart), len(refs))

	if len(refs) == 0 {
		util.LogWarn("No frames captured for this day; emitting empty artifact")
		return e.emptyArtifact(), nil
	}

	// Phase 2: label every frame through the classifier adapter. A partial
	// result would skew full-day totals, so any failure aborts the run.
	classifyStart := time.Now()
	labels, err := e.classifier.Classify(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}
	if len(labels) != len(refs) {
		return nil, &model.LabelParseError{
			FrameIndex: -1,
			Reason:     fmt.Sprintf("wrong record count: %d labels for %d frames", len(labels), len(refs)),
		}
	}
	util.LogDebugf("Phase 2 - classification: %v", time.Since(classifyStart))

	frames := make([]model.Frame, len(refs))
	timestamps := make([]time.Time, len(refs))
	for i, ref := range refs {
		frames[i] = model.Frame{Ref: ref, Label: labels[i]}
		timestamps[i] = ref.Timestamp
	}

	// Phase 3: segmentation
	buildStart := time.Now()
	interval := timeline.CaptureInterval(timeline.Gaps(timestamps), e.config.Segmentation.DefaultIntervalMinutes)
	segments, warnings, err := e.builder.Build(frames)
	if err != nil {
		return nil, fmt.Errorf("segmentation failed: %w", err)
	}
	util.LogDebugf("Phase 3 - segmentation: %v, %d segments, interval %.2f min",
		time.Since(buildStart), len(segments), interval)

	// Phase 4: derive totals and rendering
	artifact := &model.TimelineArtifact{
		SchemaVersion:          model.SchemaVersion,
		DateLocal:              e.config.Date.Format("2006-01-02"),
		Timezone:               e.config.Timezone,
		CaptureIntervalMinutes: interval,
		TimelineSegments:       segments,
		TimelineHumanReadable:  e.lines.Format(segments),
		Totals:                 e.aggregator.ComputeTotals(segments),
		Warnings:               warnings,
	}
	normalizeArtifact(artifact)

	util.LogInfof("Timeline run completed in %v: %d segments, %d switches",
		time.Since(startTime), len(artifact.TimelineSegments), artifact.Totals.ContextSwitchCount)

	return artifact, nil
}

// emptyArtifact is the zero-frame result: empty segment list, zero
// totals, and an empty-input warning. Not an error.
func (e *Engine) emptyArtifact() *model.TimelineArtifact {
	artifact := &model.TimelineArtifact{
		SchemaVersion:          model.SchemaVersion,
		DateLocal:              e.config.Date.Format("2006-01-02"),
		Timezone:               e.config.Timezone,
		CaptureIntervalMinutes: e.config.Segmentation.DefaultIntervalMinutes,
		Warnings: []model.Warning{{
			Kind:    model.WarnEmptyInput,
			Message: "no frames captured for this day",
		}},
	}
	normalizeArtifact(artifact)
	return artifact
}

// normalizeArtifact replaces nil slices so serialized artifacts always
// carry arrays, never nulls.
func normalizeArtifact(artifact *model.TimelineArtifact) {
	if artifact.TimelineSegments == nil {
		artifact.TimelineSegments = []model.Segment{}
	}
	if artifact.TimelineHumanReadable == nil {
		artifact.TimelineHumanReadable = []string{}
	}
	if artifact.Totals.BySurfaceMinutes == nil {
		artifact.Totals.BySurfaceMinutes = []model.KeyMinutes{}
	}
	if artifact.Totals.ByActivityMinutes == nil {
		artifact.Totals.ByActivityMinutes = []model.KeyMinutes{}
	}
}
