package metadata

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rwcarlsen/goexif/tiff"
	"golang.org/x/text/encoding/charmap"
)

// Kind tells which field of a Value holds the decoded data.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindRational
	KindFloat
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindRational:
		return "rational"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

type Rational struct {
	Num int64
	Den int64
}

func (r Rational) String() string {
	return strconv.FormatInt(r.Num, 10) + "/" + strconv.FormatInt(r.Den, 10)
}

// Value is a tag value as stored in the file.
type Value struct {
	Kind      Kind
	Text      string
	Ints      []int64
	Rationals []Rational
	Floats    []float64
	Bytes     []byte
}

const maxHexBytes = 16

// userCommentASCII is the character code prefix of an ASCII UserComment.
var userCommentASCII = []byte("ASCII\x00\x00\x00")

// String renders the value in its native form: scalars as-is, multi-valued
// tags as a parenthesised tuple.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		parts := make([]string, len(v.Ints))
		for i, n := range v.Ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return tuple(parts)
	case KindRational:
		parts := make([]string, len(v.Rationals))
		for i, r := range v.Rationals {
			parts[i] = r.String()
		}
		return tuple(parts)
	case KindFloat:
		parts := make([]string, len(v.Floats))
		for i, f := range v.Floats {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return tuple(parts)
	case KindBytes:
		return renderBytes(v.Bytes)
	default:
		return ""
	}
}

func tuple(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderBytes(b []byte) string {
	if rest, ok := bytes.CutPrefix(b, userCommentASCII); ok {
		b = rest
	}
	trimmed := bytes.TrimRight(b, "\x00 ")
	if len(trimmed) > 0 && printable(trimmed) {
		return string(trimmed)
	}
	if len(b) <= maxHexBytes {
		return fmt.Sprintf("% x", b)
	}
	return fmt.Sprintf("% x … (%d bytes)", b[:maxHexBytes], len(b))
}

func printable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// cleanText stops at the first NUL and falls back to ISO-8859-1 for byte
// strings that are not UTF-8.
func cleanText(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	b = bytes.TrimSpace(b)
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(decoded)
}

func valueFromTag(tag *tiff.Tag) (Value, error) {
	n := int(tag.Count)

	switch tag.Format() {
	case tiff.StringVal:
		return Value{Kind: KindText, Text: cleanText(tag.Val)}, nil
	case tiff.IntVal:
		ints := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int64(i)
			if err != nil {
				return Value{}, err
			}
			ints = append(ints, v)
		}
		return Value{Kind: KindInt, Ints: ints}, nil
	case tiff.RatVal:
		rats := make([]Rational, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return Value{}, err
			}
			rats = append(rats, Rational{Num: num, Den: den})
		}
		return Value{Kind: KindRational, Rationals: rats}, nil
	case tiff.FloatVal:
		floats := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Float(i)
			if err != nil {
				return Value{}, err
			}
			floats = append(floats, v)
		}
		return Value{Kind: KindFloat, Floats: floats}, nil
	default:
		return Value{Kind: KindBytes, Bytes: bytes.Clone(tag.Val)}, nil
	}
}
