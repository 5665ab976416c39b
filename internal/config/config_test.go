package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mosaic.yaml")
	content := `timezone: America/New_York
day_root: /data/captures
output_dir: /data/timelines
classifier_url: http://localhost:8900/classify
concurrency: 8
segmentation:
  default_interval_minutes: 10
  idle_gap_minutes: 30
  idle_similarity_threshold: 0.95
  idle_margin_minutes: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "/data/captures", cfg.DayRoot)
	assert.Equal(t, "/data/timelines", cfg.OutputDir)
	assert.Equal(t, "http://localhost:8900/classify", cfg.ClassifierURL)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, float64(10), cfg.Segmentation.DefaultIntervalMinutes)
	assert.Equal(t, float64(30), cfg.Segmentation.IdleGapMinutes)
	assert.InDelta(t, 0.95, cfg.Segmentation.IdleSimilarityThreshold, 1e-9)
	assert.Equal(t, float64(3), cfg.Segmentation.IdleMarginMinutes)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mosaic.yaml")
	content := `segmentation:
  idle_gap_minutes: 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, float64(25), cfg.Segmentation.IdleGapMinutes)
	assert.Equal(t, float64(15), cfg.Segmentation.DefaultIntervalMinutes)
	assert.InDelta(t, 0.985, cfg.Segmentation.IdleSimilarityThreshold, 1e-9)
	assert.Equal(t, float64(5), cfg.Segmentation.IdleMarginMinutes)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mosaic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("segmentation: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
