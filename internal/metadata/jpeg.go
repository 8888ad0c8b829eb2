package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	markerPrefix = 0xff
	markerTEM    = 0x01
	markerRST0   = 0xd0
	markerRST7   = 0xd7
	markerSOI    = 0xd8
	markerEOI    = 0xd9
	markerSOS    = 0xda
	markerAPP1   = 0xe1
)

var exifHeader = []byte("Exif\x00\x00")

// exifPayload walks the JPEG marker segments up to the start of scan and
// returns the TIFF block of the first APP1 Exif segment. A nil block with a
// nil error means the stream carries no EXIF data.
func exifPayload(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != markerPrefix || data[1] != markerSOI {
		return nil, ErrNotJPEG
	}

	pos := 2
	for pos < len(data) {
		if data[pos] != markerPrefix {
			return nil, fmt.Errorf("%w: expected marker at offset %d", ErrMalformedContainer, pos)
		}
		// any number of 0xff fill bytes may precede a marker
		for pos < len(data) && data[pos] == markerPrefix {
			pos++
		}
		if pos >= len(data) {
			break
		}

		marker := data[pos]
		pos++

		switch {
		case marker == markerSOS || marker == markerEOI:
			return nil, nil
		case marker == markerTEM || (marker >= markerRST0 && marker <= markerRST7):
			continue
		}

		if pos+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated segment 0x%02x", ErrMalformedContainer, marker)
		}
		length := int(binary.BigEndian.Uint16(data[pos:]))
		if length < 2 || pos+length > len(data) {
			return nil, fmt.Errorf("%w: segment 0x%02x overruns the stream", ErrMalformedContainer, marker)
		}

		if marker == markerAPP1 {
			segment := data[pos+2 : pos+length]
			if bytes.HasPrefix(segment, exifHeader) {
				return segment[len(exifHeader):], nil
			}
		}
		pos += length
	}

	return nil, fmt.Errorf("%w: no start of scan", ErrMalformedContainer)
}
