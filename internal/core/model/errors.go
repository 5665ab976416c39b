package model

import "fmt"

// ParseError reports a malformed timestamp or frame source. It is fatal:
// the run aborts and no artifact is written.
type ParseError struct {
	Source string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Source, e.Reason)
}

// LabelParseError reports a classifier contract violation: wrong record
// count, missing required field, or an undecodable response. Fatal.
type LabelParseError struct {
	FrameIndex int
	Reason     string
	Err        error
}

func (e *LabelParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("label parse error (frame %d): %s: %v", e.FrameIndex, e.Reason, e.Err)
	}
	return fmt.Sprintf("label parse error (frame %d): %s", e.FrameIndex, e.Reason)
}

func (e *LabelParseError) Unwrap() error {
	return e.Err
}

// Warning kinds recorded on the artifact.
const (
	WarnEmptyInput        = "empty_input"
	WarnDegenerateSegment = "degenerate_segment"
)

// Warning is a non-fatal condition observed during a run. Warnings are
// recorded on the artifact; a (possibly trivial) artifact is still
// produced.
type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
