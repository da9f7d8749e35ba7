package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestInfoFormatsArguments(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf)

	l.Info("file selected: %s", "photo.png")

	line := decode(t, &buf)
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "file selected: photo.png", line["message"])
}

func TestErrorWithContextMessage(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf)

	l.Error(errors.New("disk full"), "history - Insert")

	line := decode(t, &buf)
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "disk full", line["error"])
	assert.Equal(t, "history - Insert", line["message"])
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf)

	l.Debug("tick %d", 5)

	assert.Zero(t, buf.Len())
}
