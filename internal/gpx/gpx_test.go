package gpx

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbiir/gpxsanitize/internal/geo"
)

const mixedTrace = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.0" creator="test" xmlns="http://www.topografix.com/GPX/1/0">
	<trk>
		<name>Test Track</name>
		<trkseg>
			<trkpt lat="46.0" lon="7.0">
				<ele>1000</ele>
				<time>2025-01-01T10:00:00Z</time>
			</trkpt>
			<trkpt lat="46.001" lon="7.001">
				<ele>1005</ele>
				<time>2025-01-01T10:00:01Z</time>
			</trkpt>
		</trkseg>
		<trkseg>
			<trkpt lat="46.002" lon="7.002"/>
			<trkpt lat="46.003" lon="7.003"/>
			<trkpt lat="46.004" lon="7.004"/>
		</trkseg>
	</trk>
	<trk>
		<trkseg>
			<trkpt lat="46.1" lon="7.1"><time>yesterday</time></trkpt>
		</trkseg>
	</trk>
</gpx>`

func TestParseReader(t *testing.T) {
	gpxData, err := ParseReader(strings.NewReader(mixedTrace))
	require.NoError(t, err)

	require.Len(t, gpxData.Tracks, 2)
	require.Len(t, gpxData.Tracks[0].Segments, 2)
	assert.Equal(t, "Test Track", gpxData.Tracks[0].Name)

	point := gpxData.Tracks[0].Segments[0].Points[0]
	assert.Equal(t, 46.0, point.Lat)
	assert.Equal(t, 7.0, point.Lon)
	assert.Equal(t, 1000.0, point.Elevation)
	require.NotNil(t, point.Time)
	assert.Equal(t, "2025-01-01T10:00:00Z", *point.Time)

	assert.Nil(t, gpxData.Tracks[0].Segments[1].Points[0].Time)
}

func TestParseReaderRejectsGarbage(t *testing.T) {
	_, err := ParseReader(strings.NewReader("<gpx><trk>"))
	assert.Error(t, err)
}

func TestSegmentsAndTimestampCount(t *testing.T) {
	gpxData, err := ParseReader(strings.NewReader(mixedTrace))
	require.NoError(t, err)

	refs := gpxData.Segments()
	require.Len(t, refs, 3)

	assert.Equal(t, 0, refs[0].TrackIdx)
	assert.Equal(t, 0, refs[0].SegIdx)
	count, err := refs[0].Segment.TimestampCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, 1, refs[1].SegIdx)
	count, err = refs[1].Segment.TimestampCount()
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, []geo.Point{
		{Lat: 46.002, Lon: 7.002},
		{Lat: 46.003, Lon: 7.003},
		{Lat: 46.004, Lon: 7.004},
	}, refs[1].Segment.Coordinates())

	assert.Equal(t, 1, refs[2].TrackIdx)
	_, err = refs[2].Segment.TimestampCount()
	assert.ErrorContains(t, err, "point 0")
}

func TestTimestampCountDateTimeForms(t *testing.T) {
	tests := []struct {
		name  string
		times []string
		want  int
	}{
		{"zoneless", []string{"2025-01-01T10:00:00", "2025-01-01T10:00:01"}, 2},
		{"fractional seconds", []string{"2025-01-01T10:00:00.250Z", "2025-01-01T10:00:00.5"}, 2},
		{"numeric offset", []string{"2025-01-01T10:00:00+02:00"}, 1},
		{"empty elements ignored", []string{"", "  ", "2025-01-01T10:00:00"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seg TrackSegment
			for i := range tt.times {
				seg.Points = append(seg.Points, Point{Lat: 46, Lon: 7, Time: &tt.times[i]})
			}
			count, err := seg.TimestampCount()
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}
}

func TestZonelessSegmentIsParsedWithTimestamps(t *testing.T) {
	gpxData, err := ParseReader(strings.NewReader(`<gpx version="1.1"><trk><trkseg>
<trkpt lat="46.0" lon="7.0"><time>2025-01-01T10:00:00</time></trkpt>
<trkpt lat="46.0001" lon="7.0"><time>2025-01-01T10:00:01</time></trkpt>
</trkseg></trk></gpx>`))
	require.NoError(t, err)

	refs := gpxData.Segments()
	require.Len(t, refs, 1)
	count, err := refs[0].Segment.TimestampCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewTrackDocument(t *testing.T) {
	doc := NewTrackDocument("gpx_sanitizer", [][]geo.Point{
		{{Lat: 46.0, Lon: 7.0}, {Lat: 46.0001, Lon: 7.0}},
		{{Lat: 46.5, Lon: 7.5}},
	})

	var buf strings.Builder
	require.NoError(t, doc.WriteToWriter(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `xmlns="http://www.topografix.com/GPX/1/0"`)
	assert.Contains(t, out, `version="1.0"`)
	assert.Contains(t, out, `creator="gpx_sanitizer"`)
	assert.Equal(t, 1, strings.Count(out, "<trk>"))
	assert.Equal(t, 2, strings.Count(out, "<trkseg>"))
	assert.Equal(t, 3, strings.Count(out, "<trkpt "))
	assert.Contains(t, out, `<trkpt lat="46.5" lon="7.5">`)
	assert.NotContains(t, out, "<time>")
	assert.NotContains(t, out, "<ele>")

	// Output must read back through the same parser.
	back, err := ParseReader(strings.NewReader(out))
	require.NoError(t, err)
	refs := back.Segments()
	require.Len(t, refs, 2)
	assert.Equal(t, []geo.Point{{Lat: 46.5, Lon: 7.5}}, refs[1].Segment.Coordinates())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gpx")
	doc := NewTrackDocument("test", [][]geo.Point{{{Lat: 1, Lon: 2}}})
	require.NoError(t, doc.Write(path))

	back, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", back.Version)
	assert.Len(t, back.Segments(), 1)

	_, err = Parse(filepath.Join(t.TempDir(), "missing.gpx"))
	assert.ErrorContains(t, err, "failed to open file")
}

func TestStats(t *testing.T) {
	gpxData, err := ParseReader(strings.NewReader(mixedTrace))
	require.NoError(t, err)

	pointCount, trackCount, segmentCount, distance := gpxData.Stats()

	assert.Equal(t, 6, pointCount)
	assert.Equal(t, 2, trackCount)
	assert.Equal(t, 3, segmentCount)
	// one ~135m hop in the first segment, two in the second
	assert.InDelta(t, 0.406, distance, 0.01)
}

func TestNamer(t *testing.T) {
	n := NewNamer("/data/rides/morning ride.gpx", "")
	assert.Equal(t, "morning ride_00.gpx", n.Next())
	assert.Equal(t, "morning ride_01.gpx", n.Next())
	assert.Equal(t, 2, n.Count())

	n = NewNamer("trace.tar.gpx", "out")
	assert.Equal(t, filepath.Join("out", "trace.tar_00.gpx"), n.Next())

	n = NewNamer("noext", "")
	for i := 0; i < 10; i++ {
		n.Next()
	}
	assert.Equal(t, "noext_10.gpx", n.Next())
}
