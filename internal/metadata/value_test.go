package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  string
	}{
		{"int scalar", Value{Kind: KindInt, Ints: []int64{72}}, "72"},
		{"int tuple", Value{Kind: KindInt, Ints: []int64{2, 2, 0, 0}}, "(2, 2, 0, 0)"},
		{"rational scalar", Value{Kind: KindRational, Rationals: []Rational{{1, 250}}}, "1/250"},
		{"rational tuple", Value{Kind: KindRational, Rationals: []Rational{{35, 1}, {40, 1}}}, "(35/1, 40/1)"},
		{"float", Value{Kind: KindFloat, Floats: []float64{2.5}}, "2.5"},
		{"text", Value{Kind: KindText, Text: "Canon"}, "Canon"},
		{"printable bytes", Value{Kind: KindBytes, Bytes: []byte("0230")}, "0230"},
		{"ascii user comment", Value{Kind: KindBytes, Bytes: []byte("ASCII\x00\x00\x00hello\x00")}, "hello"},
		{"binary bytes", Value{Kind: KindBytes, Bytes: []byte{0x01, 0x02, 0x03}}, "01 02 03"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.String())
		})
	}
}

func TestValueString_LongBinaryIsTruncated(t *testing.T) {
	v := Value{Kind: KindBytes, Bytes: make([]byte, 40)}
	v.Bytes[0] = 0x01

	got := v.String()
	assert.True(t, strings.HasSuffix(got, "(40 bytes)"), got)
	assert.True(t, strings.HasPrefix(got, "01 00"), got)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Canon", cleanText([]byte("Canon\x00\x00")))
	assert.Equal(t, "first", cleanText([]byte("first\x00second")))
	assert.Equal(t, "Café", cleanText([]byte{'C', 'a', 'f', 0xe9}))
	assert.Equal(t, "", cleanText([]byte("   \x00")))
}
