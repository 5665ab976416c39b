package model

// SchemaVersion identifies the timeline artifact layout.
const SchemaVersion = "2.0"

// TimelineArtifact is the full output of one day run: the segment list,
// its human-readable rendering, and the derived totals. It is fully
// serializable and consumable without re-running the engine.
type TimelineArtifact struct {
	SchemaVersion          string    `json:"schema_version"`
	DateLocal              string    `json:"date_local"`
	Timezone               string    `json:"timezone"`
	CaptureIntervalMinutes float64   `json:"capture_interval_minutes"`
	TimelineSegments       []Segment `json:"timeline_segments"`
	TimelineHumanReadable  []string  `json:"timeline_human_readable"`
	Totals                 Totals    `json:"totals"`
	Warnings               []Warning `json:"warnings,omitempty"`
}
