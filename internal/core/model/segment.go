package model

import "time"

// Reserved labels for synthetic idle segments.
const (
	IdleActivity = "Idle"
	IdleSurface  = "Idle"
)

// Segment is a maximal contiguous time span sharing one dominant
// activity/surface assignment. Segments are built append-only and frozen
// once the day's list is finalized.
type Segment struct {
	SegmentID          string    `json:"segment_id"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	DurationMinutes    float64   `json:"duration_minutes"`
	DominantSurface    string    `json:"dominant_surface"`
	Activity           string    `json:"activity"`
	Confidence         float64   `json:"confidence"`
	ContextDetail      string    `json:"context_detail"`
	Notes              string    `json:"notes"`
	SupportingSurfaces []string  `json:"supporting_surfaces"`
	RiskFlags          []string  `json:"risk_flags"`
	EvidenceFrames     []string  `json:"evidence_frames"`
	IsIdle             bool      `json:"is_idle"`
}

// KeyMinutes is one row of a ranked total: a surface or activity label and
// the minutes attributed to it.
type KeyMinutes struct {
	Key     string  `json:"key"`
	Minutes float64 `json:"minutes"`
}

// Totals are derived from the segment list and recomputable at any time.
type Totals struct {
	BySurfaceMinutes   []KeyMinutes `json:"by_surface_minutes"`
	ByActivityMinutes  []KeyMinutes `json:"by_activity_minutes"`
	ContextSwitchCount int          `json:"context_switch_count"`
}
