package sanitize

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/planbiir/gpxsanitize/internal/geo"
)

// DefaultThreshold is the largest gap, in meters, allowed between two
// consecutive points of one output segment. It assumes one fix per second
// and a generous ~108 km/h upper speed.
const DefaultThreshold = 30.0

// Segment is one input track segment as extracted from the source file.
type Segment struct {
	// Original indices for reporting
	TrackIdx, SegIdx int

	// Points in original file order
	Points []geo.Point

	// Timestamps is the number of points carrying a timestamp. ExtractErr is
	// set when that count could not be evaluated.
	Timestamps int
	ExtractErr error
}

// Config holds sanitizing parameters
type Config struct {
	// Threshold in meters above which a segment is split
	Threshold float64

	// Workers bounds how many segments are processed at once (0 = GOMAXPROCS)
	Workers int

	// ReconstructAll rebuilds the point order of every segment, not only the
	// anonymized ones, matching earlier releases.
	ReconstructAll bool

	// Logger receives per-segment diagnostics (nil = discard)
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults: a 30 m threshold, one worker per
// CPU and reconstruction limited to anonymized segments.
func DefaultConfig() Config {
	return Config{
		Threshold:      DefaultThreshold,
		Workers:        runtime.GOMAXPROCS(0),
		ReconstructAll: false,
	}
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// SegmentResult is the outcome for one input segment.
type SegmentResult struct {
	TrackIdx, SegIdx int
	Verdict          Verdict

	// Output holds the re-split point runs in output order.
	Output [][]geo.Point

	InputPoints int
	Lost        int

	// Reconstruction diagnostics, zero when the order was trusted.
	MatrixSize          int
	MeanNearestNeighbor float64

	// Err is nil, or wraps one of ErrExtractionFailure, ErrEmptySegment or
	// ErrIncompleteReconstruction.
	Err error
}

// Reconstructed reports whether the point order was rebuilt.
func (r SegmentResult) Reconstructed() bool {
	return r.MatrixSize > 0
}

// OutputPoints counts the points across all output segments.
func (r SegmentResult) OutputPoints() int {
	var n int
	for _, run := range r.Output {
		n += len(run)
	}
	return n
}

// Stats summarizes one Sanitize call
type Stats struct {
	// Input
	Segments    int `json:"segments"`
	InputPoints int `json:"input_points"`

	// Classification
	NotAnonymized int `json:"not_anonymized_segments"`
	Anonymized    int `json:"anonymized_segments"`
	Unknown       int `json:"unknown_segments"`

	// Results
	Reconstructed  int     `json:"reconstructed_segments"`
	OutputSegments int     `json:"output_segments"`
	OutputPoints   int     `json:"output_points"`
	LostPoints     int     `json:"lost_points"`
	FailedSegments int     `json:"failed_segments"`
	MeanNeighbor   float64 `json:"mean_nearest_neighbor_m"`

	// Performance
	ProcessingTime time.Duration `json:"processing_time_ns"`
}

// Result contains per-segment outcomes in input order plus statistics
type Result struct {
	Segments []SegmentResult
	Stats    Stats
}
