package metadata

// Segment identifies one of the four directories an EXIF container
// partitions its tags into.
type Segment int

const (
	SegmentPrimary Segment = iota
	SegmentExif
	SegmentGPS
	SegmentThumbnail
)

// Segments lists every segment in visiting order. When two segments carry
// a tag with the same name the later one wins.
var Segments = []Segment{SegmentPrimary, SegmentExif, SegmentGPS, SegmentThumbnail}

func (s Segment) String() string {
	switch s {
	case SegmentPrimary:
		return "primary"
	case SegmentExif:
		return "exif"
	case SegmentGPS:
		return "gps"
	case SegmentThumbnail:
		return "thumbnail"
	default:
		return "unknown"
	}
}

// pointer tags stored in the primary directory
const (
	tagExifPointer uint16 = 0x8769
	tagGPSPointer  uint16 = 0x8825
)
