package parser

import (
	"errors"
	"testing"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLabel(t *testing.T) {
	data := []byte(`{
		"dominant_surface": " GitHub ",
		"activity": "Coding",
		"context_detail": "reviewing a pull request",
		"confidence": 0.92,
		"supporting_surfaces": ["Slack", " ", "Terminal", "Spotify", "Mail"],
		"notes": "split screen",
		"risk_flags": ["none"]
	}`)

	label, err := DecodeLabel(data, 0)
	require.NoError(t, err)

	assert.Equal(t, "GitHub", label.Surface)
	assert.Equal(t, "Coding", label.Activity)
	assert.Equal(t, "reviewing a pull request", label.ContextDetail)
	assert.Equal(t, 0.92, label.Confidence)
	assert.Equal(t, []string{"Slack", "Terminal", "Spotify"}, label.SupportingSurfaces, "supporting surfaces capped at three")
	assert.Equal(t, "split screen", label.Notes)
	assert.Equal(t, []string{"none"}, label.RiskFlags)
}

func TestDecodeLabelDefaults(t *testing.T) {
	data := []byte(`{"dominant_surface": "  ", "activity": "", "confidence": 1.7}`)

	label, err := DecodeLabel(data, 3)
	require.NoError(t, err)

	assert.Equal(t, "Unknown", label.Surface)
	assert.Equal(t, "Other", label.Activity)
	assert.Equal(t, 1.0, label.Confidence, "confidence clamps into [0,1]")
	assert.Empty(t, label.SupportingSurfaces)
}

func TestDecodeLabelNegativeConfidenceClamps(t *testing.T) {
	data := []byte(`{"dominant_surface": "Docs", "activity": "Writing", "confidence": -0.2}`)

	label, err := DecodeLabel(data, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, label.Confidence)
}

func TestDecodeLabelContractViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not JSON", `surface=GitHub activity=Coding`},
		{"missing surface", `{"activity": "Coding", "confidence": 0.9}`},
		{"missing activity", `{"dominant_surface": "GitHub", "confidence": 0.9}`},
		{"missing confidence", `{"dominant_surface": "GitHub", "activity": "Coding"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLabel([]byte(tt.data), 7)
			require.Error(t, err)

			var labelErr *model.LabelParseError
			require.True(t, errors.As(err, &labelErr))
			assert.Equal(t, 7, labelErr.FrameIndex)
		})
	}
}

func TestDecodeLabelBatch(t *testing.T) {
	data := []byte(`[
		{"dominant_surface": "GitHub", "activity": "Coding", "confidence": 0.9},
		{"dominant_surface": "YouTube", "activity": "Video/Tutorial", "confidence": 0.8}
	]`)

	labels, err := DecodeLabelBatch(data, 2)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "GitHub", labels[0].Surface)
	assert.Equal(t, "YouTube", labels[1].Surface)
}

func TestDecodeLabelBatchWrongCount(t *testing.T) {
	data := []byte(`[{"dominant_surface": "GitHub", "activity": "Coding", "confidence": 0.9}]`)

	_, err := DecodeLabelBatch(data, 2)
	require.Error(t, err)

	var labelErr *model.LabelParseError
	require.True(t, errors.As(err, &labelErr))
	assert.Contains(t, labelErr.Reason, "wrong record count")
}

func TestDecodeLabelBatchBadMember(t *testing.T) {
	data := []byte(`[
		{"dominant_surface": "GitHub", "activity": "Coding", "confidence": 0.9},
		{"activity": "Coding", "confidence": 0.9}
	]`)

	_, err := DecodeLabelBatch(data, 2)
	require.Error(t, err)

	var labelErr *model.LabelParseError
	require.True(t, errors.As(err, &labelErr))
	assert.Equal(t, 1, labelErr.FrameIndex)
}
