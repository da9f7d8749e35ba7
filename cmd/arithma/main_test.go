package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arithma_tech/entity"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := `database:
  driver: sqlite
  sqlite_path: "` + filepath.Join(dir, "history.db") + `"
progress:
  step: 50
  compress_interval: 1ms
  decompress_interval: 1ms
logger:
  log_level: error
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompressTextAndList(t *testing.T) {
	cfg := writeConfig(t)

	out, err := execute(t, "--config", cfg, "compress", "--text", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "Compressing text...")
	assert.Contains(t, out, "Your text has been compressed successfully!")

	out, err = execute(t, "--config", cfg, "decompress", "--file", "/pics/cat.png")
	require.NoError(t, err)
	assert.Contains(t, out, "Decompression completed successfully")

	out, err = execute(t, "--config", cfg, "history", "list", "-o", "json")
	require.NoError(t, err)
	var records []entity.OperationRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "cat.png", records[0].Name)
	assert.Equal(t, "Text Data", records[1].Name)

	out, err = execute(t, "--config", cfg, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "OPERATION")
	assert.Contains(t, out, "cat.png")
}

func TestOperationValidation(t *testing.T) {
	cfg := writeConfig(t)

	_, err := execute(t, "--config", cfg, "compress")
	assert.Error(t, err)

	_, err = execute(t, "--config", cfg, "compress", "--file", "/docs/report.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported File")
}

func TestHistoryDelete(t *testing.T) {
	cfg := writeConfig(t)

	_, err := execute(t, "--config", cfg, "history", "delete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no selection")

	_, err = execute(t, "--config", cfg, "compress", "--text", "x")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfg, "history", "delete", "--id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 1 entries")

	out, err = execute(t, "--config", cfg, "history", "delete", "--timestamp", "2020-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 0 entries")
}

func TestHistoryExportToFile(t *testing.T) {
	cfg := writeConfig(t)
	_, err := execute(t, "--config", cfg, "compress", "--text", "x")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "history.tar.gz")
	out, err := execute(t, "--config", cfg, "history", "export", "--out", target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "exported 1 entries"))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("2026-10-16T08:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC), ts.UTC())

	ts, err = parseTimestamp("2026-10-16 08:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 16, 8, 0, 0, 0, time.Local), ts)

	_, err = parseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestGuide(t *testing.T) {
	out, err := execute(t, "guide")
	require.NoError(t, err)
	assert.Contains(t, out, "Arithmetic Encoding")
}
