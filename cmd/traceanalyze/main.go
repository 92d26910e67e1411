package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/planbiir/gpxsanitize/internal/config"
	"github.com/planbiir/gpxsanitize/internal/geo"
	"github.com/planbiir/gpxsanitize/internal/gpx"
	"github.com/planbiir/gpxsanitize/internal/log"
	"github.com/planbiir/gpxsanitize/internal/sanitize"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "traceanalyze",
		Usage:     "Report how gpxsanitize would treat each segment of one or more traces",
		ArgsUsage: "<trace.gpx> [more.gpx...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Gap in meters that splits a segment",
				Value: sanitize.DefaultThreshold,
			},
			&cli.BoolFlag{
				Name:  "reconstruct-all",
				Usage: "Reorder every segment, not only anonymized ones",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit(fmt.Sprintf("usage: %s [flags] <trace.gpx>", c.App.Name), 2)
	}

	settings := config.Default()
	settings.ThresholdMeters = c.Float64("threshold")
	settings.ReconstructAll = c.Bool("reconstruct-all")
	settings.Debug = c.Bool("debug")
	if err := settings.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("Error in configuration: %v", err), 2)
	}

	if err := log.Init(settings.Debug); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer log.Sync()
	logger := log.GetZapLogger()

	cfg := settings.Sanitize()
	cfg.Logger = logger

	for _, path := range c.Args().Slice() {
		if err := analyze(path, cfg); err != nil {
			logger.Error("analysis failed", zap.String("trace", path), zap.Error(err))
			return cli.Exit(err.Error(), 1)
		}
	}
	return nil
}

func analyze(path string, cfg sanitize.Config) error {
	trace, err := gpx.Parse(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	fmt.Printf("Trace: %s\n", path)
	fmt.Printf("Config: threshold=%.1fm reconstruct_all=%v\n", cfg.Threshold, cfg.ReconstructAll)

	for _, ref := range trace.Segments() {
		count, extractErr := ref.Segment.TimestampCount()
		points := ref.Segment.Coordinates()

		res := sanitize.ProcessSegment(sanitize.Segment{
			TrackIdx:   ref.TrackIdx,
			SegIdx:     ref.SegIdx,
			Points:     points,
			Timestamps: count,
			ExtractErr: extractErr,
		}, cfg)

		fmt.Printf("\nTrack %d segment %d: %s\n", ref.TrackIdx, ref.SegIdx, res.Verdict)
		if sanitize.Fatal(res.Err) {
			fmt.Printf("  ✗ skipped: %v\n", res.Err)
			continue
		}

		fmt.Printf("  points: %d (%d timestamped)\n", len(points), count)
		fmt.Printf("  file order: %.3f km, %d gaps over threshold\n",
			geo.PathLength(points)/1000, countGaps(points, cfg.Threshold))

		if res.Reconstructed() {
			fmt.Printf("  matrix: %dx%d\n", res.MatrixSize, res.MatrixSize)
			fmt.Printf("  average minimum distance: %.3f m\n", res.MeanNearestNeighbor)
			fmt.Printf("  lost points: %d\n", res.Lost)
		}

		var kept float64
		for _, run := range res.Output {
			kept += geo.PathLength(run)
		}
		fmt.Printf("  output: %d segments, %d points, %.3f km\n",
			len(res.Output), res.OutputPoints(), kept/1000)
	}

	return nil
}

// countGaps counts consecutive pairs further apart than threshold.
func countGaps(points []geo.Point, threshold float64) int {
	var gaps int
	for i := 1; i < len(points); i++ {
		if geo.Distance(points[i-1], points[i]) > threshold {
			gaps++
		}
	}
	return gaps
}
