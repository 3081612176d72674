package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(Config{Level: WarnLevel, Output: &buf})

	lgr.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	lgr.Warn().Str("entity", "student").Msg("rejected")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "student", entry["entity"])
	assert.Equal(t, "rejected", entry["message"])
}
