package classifier

import (
	"context"

	"github.com/artified/mosaic/internal/core/model"
)

// Classifier supplies one label record per frame, in frame order. A result
// with the wrong count, a missing required field, or an undecodable
// response is a contract violation, surfaced as a LabelParseError; a frame
// the classifier fails to label is never silently skipped.
type Classifier interface {
	Classify(ctx context.Context, refs []model.FrameRef) ([]model.LabelRecord, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(ctx context.Context, refs []model.FrameRef) ([]model.LabelRecord, error)

// Classify implements Classifier.
func (f Func) Classify(ctx context.Context, refs []model.FrameRef) ([]model.LabelRecord, error) {
	return f(ctx, refs)
}
