package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/artified/mosaic/internal/util"
)

// FrameScanner discovers capture images for one calendar day. Capture
// files are named HH-MM-SS with a png/jpg/jpeg extension; anything else in
// the directory is ignored.
type FrameScanner struct {
	dayDir string
}

// NewFrameScanner creates a new FrameScanner instance
func NewFrameScanner(dayDir string) *FrameScanner {
	return &FrameScanner{
		dayDir: dayDir,
	}
}

// Scan lists the day's captures and returns frame refs sorted
// chronologically. Timestamps are built on the given date in its location.
// A capture-shaped name with out-of-range time digits is a parse error.
func (s *FrameScanner) Scan(date time.Time) ([]model.FrameRef, error) {
	start := time.Now()

	util.LogDebug(fmt.Sprintf("Start scanning day directory: %s", s.dayDir))

	entries, err := os.ReadDir(s.dayDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read day directory %s: %w", s.dayDir, err)
	}

	var refs []model.FrameRef
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !hasImageExt(name) {
			skipped++
			continue
		}

		hh, mm, ss, ok, err := parseCaptureName(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}

		ts := time.Date(date.Year(), date.Month(), date.Day(), hh, mm, ss, 0, date.Location())
		refs = append(refs, model.FrameRef{
			Timestamp: ts,
			ImagePath: filepath.Join(s.dayDir, name),
		})
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Timestamp.Before(refs[j].Timestamp)
	})
	for i := range refs {
		refs[i].Index = i
	}

	util.LogDebug(fmt.Sprintf("Day scan completed: duration %v, found %d frames, skipped %d entries",
		time.Since(start), len(refs), skipped))

	return refs, nil
}

// hasImageExt reports whether the filename carries a capture image extension
func hasImageExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// parseCaptureName extracts the HH-MM-SS capture time from a filename.
// Returns ok=false for names that are not capture-shaped at all, and an
// error for capture-shaped names whose digits are out of range.
func parseCaptureName(name string) (hh, mm, ss int, ok bool, err error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false, nil
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, convErr := strconv.Atoi(part)
		if convErr != nil {
			return 0, 0, 0, false, nil
		}
		nums[i] = n
	}

	if nums[0] < 0 || nums[0] > 23 || nums[1] < 0 || nums[1] > 59 || nums[2] < 0 || nums[2] > 59 {
		return 0, 0, 0, false, &model.ParseError{
			Source: name,
			Reason: fmt.Sprintf("capture time %02d-%02d-%02d out of range", nums[0], nums[1], nums[2]),
		}
	}

	return nums[0], nums[1], nums[2], true, nil
}
