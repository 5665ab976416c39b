package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/artified/mosaic/internal/core/model"
)

// JSONFormatter writes timeline artifacts as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new instance of JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the artifact to the given writer.
func (f *JSONFormatter) Format(w io.Writer, artifact *model.TimelineArtifact) error {
	data, err := sonic.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFile writes the artifact to outDir as timeline_<date>.json and
// returns the written path.
func (f *JSONFormatter) WriteFile(artifact *model.TimelineArtifact, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outDir, ArtifactFilename(artifact.DateLocal))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer file.Close()

	if err := f.Format(file, artifact); err != nil {
		return "", err
	}
	return path, nil
}

// ArtifactFilename returns the canonical artifact name for a local date.
func ArtifactFilename(dateLocal string) string {
	return fmt.Sprintf("timeline_%s.json", dateLocal)
}
