package main

import (
	"bytes"
	"context"
	"testing"

	"exif-reader/internal/logger"
	"exif-reader/internal/metadata"
	"exif-reader/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDump_TextSingleFile(t *testing.T) {
	path := testutil.WriteFile(t, "camera.jpg", testutil.JPEGWithExif(t, 8, 8, testutil.Sample().TIFF()))

	var out bytes.Buffer
	err := dump(context.Background(), &out, metadata.NewExtractor(), []string{path}, metadata.FormatText, logger.Nop())
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "==>")
	assert.Contains(t, out.String(), "Make : Canon\n")
	assert.Contains(t, out.String(), "ISOSpeedRatings : 400\n")
}

func TestDump_YAMLSeveralFilesWithFailure(t *testing.T) {
	good := testutil.WriteFile(t, "good.jpg", testutil.JPEGWithExif(t, 8, 8, testutil.Sample().TIFF()))
	bad := testutil.WriteFile(t, "bad.jpg", []byte("plain text"))

	var out bytes.Buffer
	err := dump(context.Background(), &out, metadata.NewExtractor(), []string{bad, good}, metadata.FormatYAML, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, metadata.ErrNotJPEG)

	assert.Contains(t, out.String(), "# "+good)
	assert.NotContains(t, out.String(), "# "+bad)

	var rows []map[string]string
	decoder := yaml.NewDecoder(&out)
	require.NoError(t, decoder.Decode(&rows))
	require.Len(t, rows, 21)
	assert.Equal(t, "Compression", rows[0]["name"])
}

func TestDump_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := dump(ctx, &bytes.Buffer{}, metadata.NewExtractor(), []string{"a.jpg"}, metadata.FormatText, logger.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}
