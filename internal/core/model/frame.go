package model

import "time"

// FrameRef identifies one capture before labeling: when it was taken and
// where its image lives. Refs are produced by the scanner in chronological
// order and are never mutated afterwards.
type FrameRef struct {
	Timestamp time.Time `json:"timestamp"`
	Index     int       `json:"index"`
	ImagePath string    `json:"image_path"`
}

// LabelRecord is the classifier's verdict for a single frame.
type LabelRecord struct {
	Surface            string   `json:"dominant_surface"`
	Activity           string   `json:"activity"`
	ContextDetail      string   `json:"context_detail"`
	Confidence         float64  `json:"confidence"`
	SupportingSurfaces []string `json:"supporting_surfaces"`
	Notes              string   `json:"notes"`
	RiskFlags          []string `json:"risk_flags,omitempty"`
}

// Frame is one labeled capture. Frames are read-only inputs for a run.
type Frame struct {
	Ref   FrameRef    `json:"ref"`
	Label LabelRecord `json:"label"`
}

// Gap returns the distance to the next frame in fractional minutes.
func (f Frame) Gap(next Frame) float64 {
	return next.Ref.Timestamp.Sub(f.Ref.Timestamp).Minutes()
}
