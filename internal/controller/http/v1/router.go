// Package v1 implements routing paths. Each services in own file.
package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arithma_tech/entity"
	"arithma_tech/internal/compression"
	"arithma_tech/pkg/logger"
)

const traceName = "http-v1"

// OperationController is the controller surface exposed over HTTP.
type OperationController interface {
	compression.Ticker
	SwitchMode(m entity.InputMode) error
	SetText(text string) error
	SelectFile(path string) error
	ClearSelection() error
	Request(ctx context.Context, kind entity.OperationKind) (bool, error)
	Snapshot() compression.Snapshot
}

// NewRouter -.
// Swagger spec:
// @title       Arithma API
// @description Operation controller and history viewer
// @version     1.0
// @host        localhost:8080
// @BasePath    /v1
func NewRouter(handler *gin.Engine, l logger.Interface, c OperationController, h entity.HistoryRepository, g prometheus.Gatherer) {
	// Options
	handler.Use(gin.Logger())
	handler.Use(gin.Recovery())

	// K8s probe
	handler.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Prometheus metrics
	handler.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))

	// Routers
	v1 := handler.Group("/v1")
	{
		newOperationRoutes(v1, c, l)
		newHistoryRoutes(v1, h, l)
	}
}
