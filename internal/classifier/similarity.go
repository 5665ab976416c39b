package classifier

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"github.com/artified/mosaic/internal/core/model"
)

const thumbnailEdge = 64

// FrameDiffOracle scores visual similarity by downscaling both captures to
// a small grayscale thumbnail and measuring the normalized mean absolute
// pixel difference. 1 means identical, 0 maximally different.
type FrameDiffOracle struct{}

// NewFrameDiffOracle creates a new FrameDiffOracle instance.
func NewFrameDiffOracle() *FrameDiffOracle {
	return &FrameDiffOracle{}
}

// Similarity implements the oracle contract consumed by idle detection.
func (o *FrameDiffOracle) Similarity(a, b model.FrameRef) (float64, error) {
	ta, err := grayThumbnail(a.ImagePath)
	if err != nil {
		return 0, err
	}
	tb, err := grayThumbnail(b.ImagePath)
	if err != nil {
		return 0, err
	}

	var diff float64
	for i := range ta {
		d := float64(ta[i]) - float64(tb[i])
		if d < 0 {
			d = -d
		}
		diff += d
	}
	meanDiff := diff / float64(len(ta))

	sim := 1.0 - meanDiff/255.0
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

// grayThumbnail decodes an image and samples it down to a fixed-size
// grayscale grid with nearest-neighbor sampling.
func grayThumbnail(path string) ([]uint8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode capture %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("capture %s has empty bounds", path)
	}

	out := make([]uint8, 0, thumbnailEdge*thumbnailEdge)
	for y := 0; y < thumbnailEdge; y++ {
		srcY := bounds.Min.Y + y*h/thumbnailEdge
		for x := 0; x < thumbnailEdge; x++ {
			srcX := bounds.Min.X + x*w/thumbnailEdge
			r, g, b, _ := img.At(srcX, srcY).RGBA()
			// Luma approximation on 16-bit channel values.
			gray := (299*r + 587*g + 114*b) / 1000 >> 8
			out = append(out, uint8(gray))
		}
	}
	return out, nil
}
