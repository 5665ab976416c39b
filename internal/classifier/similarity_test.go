package classifier

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 128, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 128; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func refFor(path string) model.FrameRef {
	return model.FrameRef{ImagePath: path}
}

func TestSimilarityIdenticalImages(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", color.White)
	b := writePNG(t, dir, "b.png", color.White)

	sim, err := NewFrameDiffOracle().Similarity(refFor(a), refFor(b))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 0.01)
}

func TestSimilarityOppositeImages(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", color.White)
	b := writePNG(t, dir, "b.png", color.Black)

	sim, err := NewFrameDiffOracle().Similarity(refFor(a), refFor(b))
	require.NoError(t, err)
	assert.Less(t, sim, 0.1)
}

func TestSimilarityBoundedAndSymmetric(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", color.RGBA{R: 200, G: 120, B: 40, A: 255})
	b := writePNG(t, dir, "b.png", color.RGBA{R: 40, G: 200, B: 120, A: 255})

	oracle := NewFrameDiffOracle()
	ab, err := oracle.Similarity(refFor(a), refFor(b))
	require.NoError(t, err)
	ba, err := oracle.Similarity(refFor(b), refFor(a))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, ab, 0.0)
	assert.LessOrEqual(t, ab, 1.0)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestSimilarityUnreadableImage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	good := writePNG(t, dir, "good.png", color.White)

	_, err := NewFrameDiffOracle().Similarity(refFor(bad), refFor(good))
	assert.Error(t, err)
}
