// Package testutil builds JPEG fixtures carrying hand-assembled EXIF blocks.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	TypeByte      uint16 = 1
	TypeASCII     uint16 = 2
	TypeShort     uint16 = 3
	TypeLong      uint16 = 4
	TypeRational  uint16 = 5
	TypeUndefined uint16 = 7
)

const (
	exifPointer uint16 = 0x8769
	gpsPointer  uint16 = 0x8825
)

var order = binary.LittleEndian

// Field is one directory entry of a fixture TIFF block. Data is already
// encoded in little-endian order.
type Field struct {
	ID    uint16
	Type  uint16
	Count uint32
	Data  []byte
}

func ASCII(id uint16, s string) Field {
	data := append([]byte(s), 0)
	return Field{ID: id, Type: TypeASCII, Count: uint32(len(data)), Data: data}
}

func Bytes(id uint16, vs ...byte) Field {
	return Field{ID: id, Type: TypeByte, Count: uint32(len(vs)), Data: append([]byte(nil), vs...)}
}

func Undefined(id uint16, b []byte) Field {
	return Field{ID: id, Type: TypeUndefined, Count: uint32(len(b)), Data: append([]byte(nil), b...)}
}

func Short(id uint16, vs ...uint16) Field {
	data := make([]byte, 2*len(vs))
	for i, v := range vs {
		order.PutUint16(data[2*i:], v)
	}
	return Field{ID: id, Type: TypeShort, Count: uint32(len(vs)), Data: data}
}

func Long(id uint16, vs ...uint32) Field {
	data := make([]byte, 4*len(vs))
	for i, v := range vs {
		order.PutUint32(data[4*i:], v)
	}
	return Field{ID: id, Type: TypeLong, Count: uint32(len(vs)), Data: data}
}

// Rational takes numerator/denominator pairs.
func Rational(id uint16, pairs ...uint32) Field {
	if len(pairs)%2 != 0 {
		panic("testutil: Rational needs numerator/denominator pairs")
	}
	data := make([]byte, 4*len(pairs))
	for i, v := range pairs {
		order.PutUint32(data[4*i:], v)
	}
	return Field{ID: id, Type: TypeRational, Count: uint32(len(pairs) / 2), Data: data}
}

// Segments describes the four directories of an EXIF block. A nil Exif or
// GPS slice leaves the matching pointer out of the primary directory; a nil
// Thumbnail ends the IFD chain after the primary directory.
type Segments struct {
	Primary   []Field
	Exif      []Field
	GPS       []Field
	Thumbnail []Field
}

// TIFF lays the directories out as a little-endian TIFF block: header,
// primary, exif, gps, thumbnail.
func (s Segments) TIFF() []byte {
	primary := append([]Field(nil), s.Primary...)
	exifIdx, gpsIdx := -1, -1
	if s.Exif != nil {
		exifIdx = len(primary)
		primary = append(primary, Long(exifPointer, 0))
	}
	if s.GPS != nil {
		gpsIdx = len(primary)
		primary = append(primary, Long(gpsPointer, 0))
	}

	cursor := 8 + dirSize(primary)
	var exifOff, gpsOff, thumbOff int
	if s.Exif != nil {
		exifOff = cursor
		cursor += dirSize(s.Exif)
		primary[exifIdx] = Long(exifPointer, uint32(exifOff))
	}
	if s.GPS != nil {
		gpsOff = cursor
		cursor += dirSize(s.GPS)
		primary[gpsIdx] = Long(gpsPointer, uint32(gpsOff))
	}
	if s.Thumbnail != nil {
		thumbOff = cursor
		cursor += dirSize(s.Thumbnail)
	}

	buf := make([]byte, cursor)
	copy(buf, "II")
	order.PutUint16(buf[2:], 42)
	order.PutUint32(buf[4:], 8)

	writeDir(buf, 8, primary, uint32(thumbOff))
	if s.Exif != nil {
		writeDir(buf, exifOff, s.Exif, 0)
	}
	if s.GPS != nil {
		writeDir(buf, gpsOff, s.GPS, 0)
	}
	if s.Thumbnail != nil {
		writeDir(buf, thumbOff, s.Thumbnail, 0)
	}
	return buf
}

func dirSize(fields []Field) int {
	n := 2 + 12*len(fields) + 4
	for _, f := range fields {
		if len(f.Data) > 4 {
			n += padded(len(f.Data))
		}
	}
	return n
}

func padded(n int) int {
	return n + n%2
}

func writeDir(buf []byte, off int, fields []Field, next uint32) {
	order.PutUint16(buf[off:], uint16(len(fields)))
	entry := off + 2
	data := off + 2 + 12*len(fields) + 4
	for _, f := range fields {
		order.PutUint16(buf[entry:], f.ID)
		order.PutUint16(buf[entry+2:], f.Type)
		order.PutUint32(buf[entry+4:], f.Count)
		if len(f.Data) <= 4 {
			copy(buf[entry+8:entry+12], f.Data)
		} else {
			order.PutUint32(buf[entry+8:], uint32(data))
			copy(buf[data:], f.Data)
			data += padded(len(f.Data))
		}
		entry += 12
	}
	order.PutUint32(buf[entry:], next)
}

// Sample returns a camera-like set of tags in all four segments. The
// thumbnail carries its own XResolution/YResolution (96/1) which shadow
// the primary ones (72/1).
func Sample() Segments {
	return Segments{
		Primary: []Field{
			ASCII(0x010f, "Canon"),
			ASCII(0x0110, "Canon EOS 5D"),
			Short(0x0112, 1),
			Rational(0x011a, 72, 1),
			Rational(0x011b, 72, 1),
			Short(0x0128, 2),
			ASCII(0x0132, "2019:06:01 12:00:00"),
		},
		Exif: []Field{
			Rational(0x829a, 1, 250),
			Rational(0x829d, 28, 10),
			Short(0x8827, 400),
			Undefined(0x9000, []byte("0230")),
			ASCII(0x9003, "2019:06:01 11:59:58"),
			Rational(0x920a, 50, 1),
		},
		GPS: []Field{
			Bytes(0x0000, 2, 2, 0, 0),
			ASCII(0x0001, "N"),
			Rational(0x0002, 52, 1, 22, 1, 1234, 100),
			ASCII(0x0003, "E"),
			Rational(0x0004, 4, 1, 53, 1, 3000, 100),
		},
		Thumbnail: []Field{
			Short(0x0103, 6),
			Rational(0x011a, 96, 1),
			Rational(0x011b, 96, 1),
			Short(0x0128, 2),
		},
	}
}

// JPEG encodes a w x h gradient.
func JPEG(t testing.TB, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

// JPEGWithExif encodes a w x h image carrying tiffBlock in an APP1 segment.
func JPEGWithExif(t testing.TB, w, h int, tiffBlock []byte) []byte {
	t.Helper()
	payload := append([]byte("Exif\x00\x00"), tiffBlock...)
	return InsertSegment(JPEG(t, w, h), 0xe1, payload)
}

// InsertSegment splices a marker segment right after SOI.
func InsertSegment(jpegData []byte, marker byte, payload []byte) []byte {
	header := []byte{0xff, marker, 0, 0}
	binary.BigEndian.PutUint16(header[2:], uint16(len(payload)+2))

	out := make([]byte, 0, len(jpegData)+len(header)+len(payload))
	out = append(out, jpegData[:2]...)
	out = append(out, header...)
	out = append(out, payload...)
	out = append(out, jpegData[2:]...)
	return out
}

// WriteFile stores data under a fresh temporary directory and returns its path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
