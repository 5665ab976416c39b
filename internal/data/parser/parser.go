package parser

import (
	"encoding/json"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/artified/mosaic/internal/core/model"
)

// Response-format fragility lives here: the classifier returns structured
// text that might fail to decode, and every such failure must surface as a
// LabelParseError before any label reaches segmentation.

const maxSupportingSurfaces = 3

// rawLabel mirrors the classifier's strict-JSON response. Pointer fields
// distinguish a missing key from a zero value.
type rawLabel struct {
	DominantSurface    *string  `json:"dominant_surface"`
	Activity           *string  `json:"activity"`
	ContextDetail      string   `json:"context_detail"`
	Confidence         *float64 `json:"confidence"`
	SupportingSurfaces []string `json:"supporting_surfaces"`
	Notes              string   `json:"notes"`
	RiskFlags          []string `json:"risk_flags"`
}

// DecodeLabel decodes one classifier response for the frame at the given
// index. Undecodable payloads and missing required fields are contract
// violations.
func DecodeLabel(data []byte, frameIndex int) (model.LabelRecord, error) {
	var raw rawLabel
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return model.LabelRecord{}, &model.LabelParseError{
			FrameIndex: frameIndex,
			Reason:     "undecodable response",
			Err:        err,
		}
	}

	if raw.DominantSurface == nil {
		return model.LabelRecord{}, &model.LabelParseError{FrameIndex: frameIndex, Reason: "missing required field dominant_surface"}
	}
	if raw.Activity == nil {
		return model.LabelRecord{}, &model.LabelParseError{FrameIndex: frameIndex, Reason: "missing required field activity"}
	}
	if raw.Confidence == nil {
		return model.LabelRecord{}, &model.LabelParseError{FrameIndex: frameIndex, Reason: "missing required field confidence"}
	}

	return normalize(raw), nil
}

// DecodeLabelBatch decodes a batch response that must carry exactly one
// record per frame, in frame order.
func DecodeLabelBatch(data []byte, frameCount int) ([]model.LabelRecord, error) {
	var raws []json.RawMessage
	if err := sonic.Unmarshal(data, &raws); err != nil {
		return nil, &model.LabelParseError{
			FrameIndex: -1,
			Reason:     "undecodable batch response",
			Err:        err,
		}
	}

	if len(raws) != frameCount {
		return nil, &model.LabelParseError{
			FrameIndex: -1,
			Reason:     "wrong record count",
		}
	}

	labels := make([]model.LabelRecord, 0, frameCount)
	for i, raw := range raws {
		label, err := DecodeLabel(raw, i)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// normalize clamps and defaults decoded fields the way the classifier
// contract promises them: non-empty surface/activity, confidence in [0,1],
// at most three trimmed supporting surfaces.
func normalize(raw rawLabel) model.LabelRecord {
	surface := strings.TrimSpace(*raw.DominantSurface)
	if surface == "" {
		surface = "Unknown"
	}
	activity := strings.TrimSpace(*raw.Activity)
	if activity == "" {
		activity = "Other"
	}

	confidence := *raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	var supporting []string
	for _, s := range raw.SupportingSurfaces {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		supporting = append(supporting, s)
		if len(supporting) == maxSupportingSurfaces {
			break
		}
	}

	var flags []string
	for _, f := range raw.RiskFlags {
		f = strings.TrimSpace(f)
		if f != "" {
			flags = append(flags, f)
		}
	}

	return model.LabelRecord{
		Surface:            surface,
		Activity:           activity,
		ContextDetail:      strings.TrimSpace(raw.ContextDetail),
		Confidence:         confidence,
		SupportingSurfaces: supporting,
		Notes:              strings.TrimSpace(raw.Notes),
		RiskFlags:          flags,
	}
}
