package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arithma_tech/pkg/logger"
)

func TestNewRejectsMissingDir(t *testing.T) {
	l := logger.NewWithWriter("error", io.Discard)

	_, err := New(filepath.Join(t.TempDir(), "missing"), l)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = New(file, l)
	assert.Error(t, err)
}

func TestWatcherReportsCreatedFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, logger.NewWithWriter("error", io.Discard))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	target := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(target, []byte("png"), 0o644))

	select {
	case got := <-w.Drops():
		want, _ := filepath.Abs(target)
		assert.Equal(t, want, got)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for create event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}

	for range w.Drops() {
	}
}
