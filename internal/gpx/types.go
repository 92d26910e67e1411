package gpx

import (
	"encoding/xml"
)

// Namespace10 is the namespace written on every output document.
const Namespace10 = "http://www.topografix.com/GPX/1/0"

// RawXML preserves nested extension blocks without re-parsing them.
// We store the inner XML bytes verbatim so we can round-trip extensions
// emitted by other tools (Garmin, Strava, etc.).
type RawXML []byte

func (r RawXML) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if len(r) == 0 {
		return nil
	}

	type inner struct {
		Content string `xml:",innerxml"`
	}

	return e.EncodeElement(inner{Content: string(r)}, start)
}

func (r *RawXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type inner struct {
		Content string `xml:",innerxml"`
	}

	var data inner
	if err := d.DecodeElement(&data, &start); err != nil {
		return err
	}

	if len(data.Content) == 0 {
		*r = nil
		return nil
	}

	*r = append((*r)[:0], data.Content...)
	return nil
}

// Point represents a GPS track point
type Point struct {
	Lat       float64 `xml:"lat,attr"`
	Lon       float64 `xml:"lon,attr"`
	Elevation float64 `xml:"ele,omitempty"`

	// Time is kept as raw text: whether it is present, and whether it
	// parses, is decided per segment by TimestampCount.
	Time *string `xml:"time,omitempty"`

	Extensions RawXML `xml:"extensions,omitempty"`
}

// Track represents a GPX track with segments
type Track struct {
	Name        string         `xml:"name,omitempty"`
	Description string         `xml:"desc,omitempty"`
	Segments    []TrackSegment `xml:"trkseg"`
	Extensions  RawXML         `xml:"extensions,omitempty"`
}

// TrackSegment represents a track segment
type TrackSegment struct {
	Points     []Point `xml:"trkpt"`
	Extensions RawXML  `xml:"extensions,omitempty"`
}

// GPX represents the full GPX file structure. Element names carry no
// namespace so both GPX 1.0 and 1.1 documents decode.
type GPX struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`

	XMLNS    string `xml:"xmlns,attr,omitempty"`
	XMLNSXSI string `xml:"xmlns:xsi,attr,omitempty"`
	XSI      string `xml:"xsi:schemaLocation,attr,omitempty"`

	Metadata   *Metadata `xml:"metadata,omitempty"`
	Tracks     []Track   `xml:"trk"`
	Extensions RawXML    `xml:"extensions,omitempty"`
}

// Metadata represents GPX 1.1 metadata
type Metadata struct {
	Name        string `xml:"name,omitempty"`
	Description string `xml:"desc,omitempty"`
	Time        string `xml:"time,omitempty"`
	Extensions  RawXML `xml:"extensions,omitempty"`
}

// SegmentRef locates one trkseg in document order.
type SegmentRef struct {
	TrackIdx, SegIdx int
	Segment          TrackSegment
}
