package sanitize

import "errors"

var (
	// ErrExtractionFailure means the timestamp count of a segment could not
	// be evaluated. The segment is skipped.
	ErrExtractionFailure = errors.New("timestamp extraction failed")

	// ErrEmptySegment means a segment had no points. It yields no output.
	ErrEmptySegment = errors.New("segment has no points")

	// ErrIncompleteReconstruction means the greedy path hit a dead end before
	// visiting every point. The partial path is still emitted.
	ErrIncompleteReconstruction = errors.New("reconstruction left points unvisited")
)

// Fatal reports whether err means the segment produced no usable output.
func Fatal(err error) bool {
	return errors.Is(err, ErrExtractionFailure)
}
