package timeline

// Config carries the segmentation thresholds for one engine run. It is
// passed explicitly into the entry points so runs stay reproducible; the
// engine reads no ambient state.
type Config struct {
	// DefaultIntervalMinutes is the nominal capture spacing assumed when
	// the day has fewer than two frames.
	DefaultIntervalMinutes float64 `json:"default_interval_minutes" mapstructure:"default_interval_minutes"`

	// IdleGapMinutes is the minimum inter-frame gap that can host an idle
	// window.
	IdleGapMinutes float64 `json:"idle_gap_minutes" mapstructure:"idle_gap_minutes"`

	// IdleSimilarityThreshold is the minimum visual similarity between the
	// frames flanking a gap for the gap to count as idle.
	IdleSimilarityThreshold float64 `json:"idle_similarity_threshold" mapstructure:"idle_similarity_threshold"`

	// IdleMarginMinutes is trimmed off both ends of an idle window so the
	// flanking captures stay attributed to their segments.
	IdleMarginMinutes float64 `json:"idle_margin_minutes" mapstructure:"idle_margin_minutes"`
}

// DefaultConfig returns the stock segmentation thresholds.
func DefaultConfig() Config {
	return Config{
		DefaultIntervalMinutes:  15,
		IdleGapMinutes:          20,
		IdleSimilarityThreshold: 0.985,
		IdleMarginMinutes:       5,
	}
}
