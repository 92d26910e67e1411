package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/planbiir/gpxsanitize/internal/config"
	"github.com/planbiir/gpxsanitize/internal/gpx"
	"github.com/planbiir/gpxsanitize/internal/log"
	"github.com/planbiir/gpxsanitize/internal/sanitize"
)

const version = "v1.0.0"

// shutdownSignals cancel a running sanitize before any file is written.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "gpxsanitize",
		Usage:   "Rebuild the point order of anonymized GPX segments and split them at gaps",
		Version: version,
		UsageText: "gpxsanitize -i /path/to/file.gpx\n\n" +
			"examples:\n" +
			"   gpxsanitize -i track.gpx\n" +
			"   gpxsanitize -i \"My Activity.gpx\" -o out/ --stats\n" +
			"   gpxsanitize -i track.gpx --threshold 50 --dry-run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input GPX file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory for <input>_NN.gpx files (default: working directory)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Optional YAML configuration file",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Split segments where consecutive points are more than this many meters apart",
				Value: sanitize.DefaultThreshold,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Segments processed concurrently (0 = number of CPUs)",
			},
			&cli.BoolFlag{
				Name:  "reconstruct-all",
				Usage: "Rebuild the point order of every segment, not only anonymized ones",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show statistics without writing output files",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Show detailed statistics",
			},
			&cli.BoolFlag{
				Name:  "stats-json",
				Usage: "Output statistics as JSON",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Development logging",
			},
		},
		Action: run,
	}
}

// loadConfig merges defaults, the optional config file and explicit flags,
// in that order.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("threshold") {
		cfg.ThresholdMeters = c.Float64("threshold")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("reconstruct-all") {
		cfg.ReconstructAll = c.Bool("reconstruct-all")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}

	return cfg, cfg.Validate()
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error in configuration: %v", err), 2)
	}

	if err := log.Init(cfg.Debug); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer log.Sync()
	logger := log.GetZapLogger()

	inputFile := c.String("input")

	// Parse GPX file
	fmt.Printf("📖 Reading GPX file: %s\n", inputFile)
	gpxData, err := gpx.Parse(inputFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error reading GPX file: %v", err), 1)
	}

	segments := extractSegments(gpxData)
	if len(segments) == 0 {
		return cli.Exit("❌ No track segments found in file", 1)
	}

	pointCount, trackCount, segmentCount, distance := gpxData.Stats()
	fmt.Printf("📊 Original trace: %d points in %d segments across %d tracks (%.2f km)\n",
		pointCount, segmentCount, trackCount, distance)

	sanitizeConfig := cfg.Sanitize()
	sanitizeConfig.Logger = logger

	ctx, stop := signal.NotifyContext(c.Context, shutdownSignals...)
	defer stop()

	result, err := sanitize.Sanitize(ctx, segments, sanitizeConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error sanitizing trace: %v", err), 1)
	}

	for _, res := range result.Segments {
		printSegment(res)
	}

	// Show statistics
	dryRun := c.Bool("dry-run")
	if c.Bool("stats") || c.Bool("stats-json") || dryRun {
		if c.Bool("stats-json") {
			jsonData, err := json.MarshalIndent(result.Stats, "", "  ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error marshaling stats: %v", err), 1)
			}
			fmt.Println(string(jsonData))
		} else {
			printStats(result.Stats)
		}
	}

	// Exit if dry run
	if dryRun {
		fmt.Printf("🔍 Dry run completed - no files written\n")
		return nil
	}

	written, err := writeOutputs(inputFile, cfg, result)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error writing GPX file: %v", err), 1)
	}

	fmt.Printf("✅ <%s> sanitized successfully: %d files written\n", inputFile, len(written))
	fmt.Printf("   %d → %d points (%d lost), %d → %d segments\n",
		result.Stats.InputPoints, result.Stats.OutputPoints, result.Stats.LostPoints,
		result.Stats.Segments, result.Stats.OutputSegments)
	return nil
}

// extractSegments converts every trkseg into sanitizer input, keeping file
// order.
func extractSegments(gpxData *gpx.GPX) []sanitize.Segment {
	refs := gpxData.Segments()
	segments := make([]sanitize.Segment, len(refs))
	for i, ref := range refs {
		count, err := ref.Segment.TimestampCount()
		segments[i] = sanitize.Segment{
			TrackIdx:   ref.TrackIdx,
			SegIdx:     ref.SegIdx,
			Points:     ref.Segment.Coordinates(),
			Timestamps: count,
			ExtractErr: err,
		}
	}
	return segments
}

// writeOutputs writes one file per segment that produced points. Skipped
// and empty segments do not consume an index.
func writeOutputs(inputFile string, cfg config.Config, result sanitize.Result) ([]string, error) {
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	namer := gpx.NewNamer(inputFile, cfg.OutputDir)
	var written []string

	for _, res := range result.Segments {
		if len(res.Output) == 0 {
			continue
		}
		name := namer.Next()
		fmt.Printf("💾 dumping trace into its own file (%s) ...\n", name)
		if err := gpx.NewTrackDocument(cfg.Creator, res.Output).Write(name); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	return written, nil
}

func printSegment(res sanitize.SegmentResult) {
	logger := log.GetLogger()
	label := fmt.Sprintf("track %d segment %d", res.TrackIdx, res.SegIdx)

	switch {
	case sanitize.Fatal(res.Err):
		fmt.Fprintf(os.Stderr, "❌ ERROR checking anonymization of %s: %v\n", label, res.Err)
		return
	case errors.Is(res.Err, sanitize.ErrEmptySegment):
		fmt.Printf("⚠️  %s has no points, skipping\n", label)
		return
	}

	if res.Reconstructed() {
		fmt.Printf("🔀 %s is %s, reordered %d points (average minimum distance %.3f m)\n",
			label, res.Verdict, res.MatrixSize, res.MeanNearestNeighbor)
	} else {
		fmt.Printf("📍 %s is not anonymized, keeping %d points in order\n", label, res.InputPoints)
	}

	if res.Lost > 0 {
		fmt.Printf("   ⚠️  Unable to find other points, %d lost\n", res.Lost)
		logger.Debugw("incomplete reconstruction", "error", res.Err)
	}
	fmt.Printf("   → %d output segments\n", len(res.Output))
}

func printStats(stats sanitize.Stats) {
	fmt.Printf("\n📊 Sanitizing Statistics:\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("🧭 Segments: %d (%d timestamped, %d anonymized, %d unreadable)\n",
		stats.Segments, stats.NotAnonymized, stats.Anonymized, stats.Unknown)
	fmt.Printf("📍 Points: %d → %d (%d lost)\n",
		stats.InputPoints, stats.OutputPoints, stats.LostPoints)
	fmt.Printf("🔀 Reordered segments: %d (mean nearest neighbour %.2f m)\n",
		stats.Reconstructed, stats.MeanNeighbor)
	fmt.Printf("✂️  Output segments: %d\n", stats.OutputSegments)
	fmt.Printf("❌ Failed segments: %d\n", stats.FailedSegments)
	fmt.Printf("⏱️  Processing Time: %v\n", stats.ProcessingTime)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
}
