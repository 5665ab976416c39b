package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0644))
	}
}

func TestScanSortsChronologically(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "14-30-00.png", "09-15-45.jpg", "12-00-00.jpeg")

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	refs, err := NewFrameScanner(dir).Scan(date)
	require.NoError(t, err)
	require.Len(t, refs, 3)

	assert.Equal(t, "09:15:45", refs[0].Timestamp.Format("15:04:05"))
	assert.Equal(t, "12:00:00", refs[1].Timestamp.Format("15:04:05"))
	assert.Equal(t, "14:30:00", refs[2].Timestamp.Format("15:04:05"))
	for i, ref := range refs {
		assert.Equal(t, i, ref.Index)
		assert.Equal(t, 2025, ref.Timestamp.Year())
		assert.Equal(t, time.March, ref.Timestamp.Month())
	}
}

func TestScanIgnoresNonCaptureFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "10-00-00.png", "notes.txt", "thumbnail.png", "10-00.png", "timeline_2025-03-14.json")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	refs, err := NewFrameScanner(dir).Scan(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "10:00:00", refs[0].Timestamp.Format("15:04:05"))
}

func TestScanOutOfRangeTimeIsParseError(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "25-61-00.png")

	_, err := NewFrameScanner(dir).Scan(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)

	var parseErr *model.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := NewFrameScanner("/nonexistent/day/dir").Scan(time.Now())
	assert.Error(t, err)
}

func TestScanEmptyDirectory(t *testing.T) {
	refs, err := NewFrameScanner(t.TempDir()).Scan(time.Now())
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestScanDuplicateTimestampsKept(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "10-00-00.png", "10-00-00.jpg")

	refs, err := NewFrameScanner(dir).Scan(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.Equal(t, refs[0].Timestamp, refs[1].Timestamp)
}
