// Package sanitize restores a usable point order for GPS segments whose
// timestamps were stripped and splits every segment at implausible gaps.
package sanitize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Sanitize processes every segment and returns results in input order.
//
// Segments are independent and run concurrently, bounded by config.Workers.
// A failing segment is recorded in its SegmentResult and never stops the
// others; the returned error is only set when ctx is cancelled.
func Sanitize(ctx context.Context, segments []Segment, config Config) (Result, error) {
	startTime := time.Now()
	logger := config.logger()

	results := make([]SegmentResult, len(segments))

	g, ctx := errgroup.WithContext(ctx)
	if config.Workers > 0 {
		g.SetLimit(config.Workers)
	}

	for i := range segments {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ProcessSegment(segments[i], config)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	stats := summarize(results)
	stats.ProcessingTime = time.Since(startTime)

	logger.Info("sanitize completed",
		zap.Int("segments", stats.Segments),
		zap.Int("input_points", stats.InputPoints),
		zap.Int("output_segments", stats.OutputSegments),
		zap.Int("lost_points", stats.LostPoints),
		zap.Int("failed_segments", stats.FailedSegments),
		zap.Duration("elapsed", stats.ProcessingTime))

	return Result{Segments: results, Stats: stats}, nil
}

// ProcessSegment classifies one segment, rebuilds its order when it was
// anonymized and splits it at gaps larger than config.Threshold.
func ProcessSegment(seg Segment, config Config) SegmentResult {
	logger := config.logger().With(
		zap.Int("track", seg.TrackIdx),
		zap.Int("segment", seg.SegIdx))

	res := SegmentResult{
		TrackIdx:    seg.TrackIdx,
		SegIdx:      seg.SegIdx,
		InputPoints: len(seg.Points),
		Verdict:     Classify(seg.Timestamps, seg.ExtractErr),
	}

	if res.Verdict == Unknown {
		res.Err = fmt.Errorf("track %d segment %d: %w: %v",
			seg.TrackIdx, seg.SegIdx, ErrExtractionFailure, seg.ExtractErr)
		logger.Error("skipping segment", zap.Error(res.Err))
		return res
	}

	if len(seg.Points) == 0 {
		res.Err = fmt.Errorf("track %d segment %d: %w", seg.TrackIdx, seg.SegIdx, ErrEmptySegment)
		logger.Warn("empty segment", zap.Stringer("verdict", res.Verdict))
		return res
	}

	ordered := seg.Points
	if res.Verdict == Anonymized || config.ReconstructAll {
		matrix := BuildMatrix(seg.Points)
		res.MatrixSize = matrix.Size()
		res.MeanNearestNeighbor = MeanNearestNeighbor(matrix)

		tour := Reconstruct(matrix)
		res.Lost = tour.LostCount()
		ordered = Reorder(seg.Points, tour)

		logger.Info("reordered segment",
			zap.Stringer("verdict", res.Verdict),
			zap.Int("matrix_size", res.MatrixSize),
			zap.Float64("mean_nearest_m", res.MeanNearestNeighbor),
			zap.Int("lost_points", res.Lost))

		if res.Lost > 0 {
			res.Err = fmt.Errorf("track %d segment %d: %w: %d of %d points lost",
				seg.TrackIdx, seg.SegIdx, ErrIncompleteReconstruction, res.Lost, len(seg.Points))
			logger.Warn("unable to find other points", zap.Int("lost_points", res.Lost))
		}
	} else {
		logger.Debug("keeping original order", zap.Int("points", len(seg.Points)))
	}

	res.Output = Split(ordered, config.Threshold)
	return res
}

func summarize(results []SegmentResult) Stats {
	stats := Stats{Segments: len(results)}

	var neighbors []float64
	for _, r := range results {
		stats.InputPoints += r.InputPoints
		switch r.Verdict {
		case NotAnonymized:
			stats.NotAnonymized++
		case Anonymized:
			stats.Anonymized++
		default:
			stats.Unknown++
		}
		if r.Reconstructed() {
			stats.Reconstructed++
			if r.MatrixSize > 1 {
				neighbors = append(neighbors, r.MeanNearestNeighbor)
			}
		}
		if Fatal(r.Err) {
			stats.FailedSegments++
		}
		stats.OutputSegments += len(r.Output)
		stats.OutputPoints += r.OutputPoints()
		stats.LostPoints += r.Lost
	}

	if len(neighbors) > 0 {
		stats.MeanNeighbor = stat.Mean(neighbors, nil)
	}
	return stats
}
