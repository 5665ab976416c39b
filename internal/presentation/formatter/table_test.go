package formatter

import (
	"bytes"
	"testing"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormat(t *testing.T) {
	artifact := sampleArtifact()
	artifact.TimelineHumanReadable = []string{"09:00–09:30 Coding | GitHub (confidence: 0.90)"}
	artifact.Totals = model.Totals{
		BySurfaceMinutes: []model.KeyMinutes{
			{Key: "GitHub", Minutes: 90},
			{Key: "Slack", Minutes: 12},
		},
		ByActivityMinutes: []model.KeyMinutes{
			{Key: "Coding", Minutes: 102},
		},
		ContextSwitchCount: 3,
	}

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, artifact))
	out := buf.String()

	assert.Contains(t, out, "Timeline for 2025-03-14 (UTC)")
	assert.Contains(t, out, "context switches: 3")
	assert.Contains(t, out, "09:00–09:30 Coding | GitHub")
	assert.Contains(t, out, "By surface")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "By activity")
}

func TestTableFormatWarnings(t *testing.T) {
	artifact := sampleArtifact()
	artifact.Warnings = []model.Warning{{Kind: model.WarnEmptyInput, Message: "no frames captured for this day"}}

	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().Format(&buf, artifact))
	assert.Contains(t, buf.String(), "warning (empty_input)")
}

func TestPadRightWideRunes(t *testing.T) {
	padded := padRight("日本語", 10)
	assert.Equal(t, "日本語    ", padded, "wide runes count for two columns")
}
