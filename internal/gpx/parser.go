package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/planbiir/gpxsanitize/internal/geo"
)

// Parse reads and parses a GPX file
func Parse(filename string) (*GPX, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader parses GPX from an io.Reader
func ParseReader(r io.Reader) (*GPX, error) {
	decoder := xml.NewDecoder(r)

	var gpxData GPX
	if err := decoder.Decode(&gpxData); err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	return &gpxData, nil
}

// dateTimeLayouts are the xsd:dateTime forms GPX allows: with a zone
// (Z or numeric offset) or without one. Fractional seconds are accepted by
// time.Parse for both.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// TimestampCount returns how many points of the segment carry a non-empty
// <time> element. It fails when a present timestamp is not an xsd:dateTime
// at all, in which case the count says nothing reliable about the segment.
func (s TrackSegment) TimestampCount() (int, error) {
	var count int
	for i, p := range s.Points {
		if p.Time == nil {
			continue
		}
		value := strings.TrimSpace(*p.Time)
		if value == "" {
			continue
		}
		if err := checkDateTime(value); err != nil {
			return 0, fmt.Errorf("point %d: %w", i, err)
		}
		count++
	}
	return count, nil
}

func checkDateTime(value string) error {
	var err error
	for _, layout := range dateTimeLayouts {
		if _, err = time.Parse(layout, value); err == nil {
			return nil
		}
	}
	return fmt.Errorf("invalid dateTime %q: %w", value, err)
}

// Coordinates returns the segment's positions in file order.
func (s TrackSegment) Coordinates() []geo.Point {
	out := make([]geo.Point, len(s.Points))
	for i, p := range s.Points {
		out[i] = geo.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}

// Segments returns every track segment in document order
func (g *GPX) Segments() []SegmentRef {
	var refs []SegmentRef

	for trackIdx, track := range g.Tracks {
		for segIdx, segment := range track.Segments {
			refs = append(refs, SegmentRef{
				TrackIdx: trackIdx,
				SegIdx:   segIdx,
				Segment:  segment,
			})
		}
	}

	return refs
}

// NewTrackDocument builds a GPX 1.0 document holding one track with a
// trkseg per run of points.
func NewTrackDocument(creator string, runs [][]geo.Point) *GPX {
	segments := make([]TrackSegment, 0, len(runs))
	for _, run := range runs {
		points := make([]Point, len(run))
		for i, p := range run {
			points[i] = Point{Lat: p.Lat, Lon: p.Lon}
		}
		segments = append(segments, TrackSegment{Points: points})
	}

	return &GPX{
		Version: "1.0",
		Creator: creator,
		XMLNS:   Namespace10,
		Tracks:  []Track{{Segments: segments}},
	}
}

// Write saves GPX data to a file
func (g *GPX) Write(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := g.WriteToWriter(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// WriteToWriter writes GPX data to an io.Writer
func (g *GPX) WriteToWriter(w io.Writer) error {
	// Write XML header
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	return nil
}

// Stats returns basic statistics about the GPX data. Distance is in km and
// never bridges two segments.
func (g *GPX) Stats() (pointCount int, trackCount int, segmentCount int, distance float64) {
	trackCount = len(g.Tracks)

	for _, ref := range g.Segments() {
		segmentCount++
		pointCount += len(ref.Segment.Points)
		distance += geo.PathLength(ref.Segment.Coordinates()) / 1000
	}

	return
}
