package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"arithma_tech/internal/app"
	v1 "arithma_tech/internal/controller/http/v1"
	"arithma_tech/pkg/httpserver"
)

// Server exposes the controller and the history over HTTP.
type Server struct {
	app *app.App
}

// NewServer ...
func NewServer(a *app.App) *Server {
	return &Server{app: a}
}

// Handler builds the gin engine with every route mounted.
func (s *Server) Handler() *gin.Engine {
	handler := gin.New()
	v1.NewRouter(handler, s.app.Logger, s.app.Controller, s.app.History, s.app.Metrics.Gatherer())
	return handler
}

// Run serves until ctx is done, a signal arrives or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	l := s.app.Logger
	cfg := s.app.Config.Server

	httpServer := httpserver.New(s.cors().Handler(s.Handler()),
		httpserver.Port(cfg.Port),
		httpserver.ReadTimeout(cfg.ReadTimeout),
		httpserver.WriteTimeout(cfg.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.ShutdownTimeout),
	)

	l.Info("server serving on port %s", cfg.Port)

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	var err error
	select {
	case sig := <-interrupt:
		l.Info("server - Run - signal: " + sig.String())
	case <-ctx.Done():
		l.Info("server - Run - context done")
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("server - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	if shutdownErr := httpServer.Shutdown(); shutdownErr != nil {
		l.Error(fmt.Errorf("server - Run - httpServer.Shutdown: %w", shutdownErr))
	}

	l.Info("server exited properly")
	return err
}

func (s *Server) cors() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"POST", "GET", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		MaxAge:             60, // 1 minutes
		AllowCredentials:   true,
		OptionsPassthrough: false,
		Debug:              false,
	})
}
