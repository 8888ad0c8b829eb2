package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"":        InfoLevel,
		"warning": WarnLevel,
		" error ": ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestZerologAdapter_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, InfoLevel).WithComponent("metadata")

	log.Debug("hidden", nil)
	assert.Zero(t, buf.Len(), "debug must be filtered at info level")

	log.Error("decode failed", errors.New("boom"), map[string]interface{}{"path": "a.jpg"})

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "error", event["level"])
	assert.Equal(t, "metadata", event["component"])
	assert.Equal(t, "boom", event["error"])
	assert.Equal(t, "a.jpg", event["path"])
	assert.Equal(t, "decode failed", event["message"])
}
