package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "api", "info")

	level.Debug(logger).Log("msg", "hidden")
	level.Info(logger).Log("msg", "started", "port", "8081")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "started", entry["msg"])
	assert.Equal(t, "8081", entry["port"])
	assert.NotEmpty(t, entry["ts"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "worker", "error")
	level.Warn(logger).Log("msg", "skipped")
	assert.Empty(t, buf.String())

	level.Error(logger).Log("msg", "kept")
	assert.Contains(t, buf.String(), "kept")
}
