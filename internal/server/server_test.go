package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arithma_tech/config"
	"arithma_tech/internal/app"
	"arithma_tech/pkg/logger"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Progress.Step = 5
	cfg.Formats.Allowed = []string{"png"}
	cfg.OTEL.Exporter = "none"
	cfg.Server.Port = "0"
	cfg.Server.ShutdownTimeout = time.Second

	a, err := app.New(context.Background(), "arithma-test", cfg, logger.NewWithWriter("error", io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })
	return a
}

func TestHandlerMountsRoutes(t *testing.T) {
	s := NewServer(newTestApp(t))
	h := s.cors().Handler(s.Handler())

	for _, target := range []string{"/healthz", "/metrics", "/v1/operation", "/v1/history"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	s := NewServer(newTestApp(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
