package timeline

import (
	"fmt"
	"time"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/artified/mosaic/internal/util"
)

// SimilarityOracle scores how visually alike two captures are, normalized
// to [0,1]. The engine never computes similarity itself.
type SimilarityOracle interface {
	Similarity(a, b model.FrameRef) (float64, error)
}

// Window is a proposed idle span sitting strictly inside one frame gap.
// Windows from different gaps can never overlap.
type Window struct {
	Start      time.Time
	End        time.Time
	GapIndex   int
	Similarity float64
}

// DetectIdleWindows proposes idle windows for every gap that is both wide
// enough and visually static across its flanking frames. Proposals whose
// margins would swallow the whole gap are dropped; those gaps fall back to
// ordinary boundary smoothing.
func DetectIdleWindows(frames []model.Frame, oracle SimilarityOracle, cfg Config) ([]Window, error) {
	var windows []Window

	for i := 0; i+1 < len(frames); i++ {
		a, b := frames[i], frames[i+1]
		gap := a.Gap(b)
		if gap <= cfg.IdleGapMinutes {
			continue
		}

		sim, err := oracle.Similarity(a.Ref, b.Ref)
		if err != nil {
			return nil, fmt.Errorf("similarity oracle failed for gap %d: %w", i, err)
		}
		if sim < cfg.IdleSimilarityThreshold {
			continue
		}

		margin := time.Duration(cfg.IdleMarginMinutes * float64(time.Minute))
		start := a.Ref.Timestamp.Add(margin)
		end := b.Ref.Timestamp.Add(-margin)
		if !end.After(start) {
			util.LogDebugf("Idle proposal at gap %d dropped: %.1fm gap leaves no room for %.1fm margins",
				i, gap, cfg.IdleMarginMinutes)
			continue
		}

		windows = append(windows, Window{
			Start:      start,
			End:        end,
			GapIndex:   i,
			Similarity: sim,
		})
	}

	return windows, nil
}
