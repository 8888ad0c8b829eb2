package metadata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var renderEntries = []Entry{
	{Name: "FNumber", Segment: SegmentExif, TagID: 0x829d, Value: Value{Kind: KindRational, Rationals: []Rational{{28, 10}}}},
	{Name: "Make", Segment: SegmentPrimary, TagID: 0x010f, Value: Value{Kind: KindText, Text: "Canon"}},
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, renderEntries, FormatText))

	assert.Equal(t, "FNumber : 28/10\n   Make : Canon\n", buf.String())
}

func TestRender_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, ""))

	assert.Equal(t, "No Metadata Found :(\n", buf.String())
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, renderEntries, FormatYAML))

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, map[string]string{
		"name":    "FNumber",
		"segment": "exif",
		"tag":     "0x829d",
		"value":   "28/10",
	}, decoded[0])
	assert.Equal(t, "Canon", decoded[1]["value"])
}

func TestRender_UnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, renderEntries, "xml"))
}
