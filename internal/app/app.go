// Package app wires the history store, the operation controller and their
// supporting infrastructure from configuration.
package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"arithma_tech/config"
	"arithma_tech/internal/compression"
	"arithma_tech/internal/controller/rmq"
	gormdb "arithma_tech/internal/db/gorm"
	"arithma_tech/internal/history"
	"arithma_tech/internal/storage/s3repo"
	"arithma_tech/internal/telemetry/metric"
	ttrace "arithma_tech/internal/telemetry/trace"
	"arithma_tech/pkg/archive"
	"arithma_tech/pkg/logger"
)

// App holds the long-lived components shared by every front end.
type App struct {
	Config     *config.Config
	Logger     logger.Interface
	DB         *gorm.DB
	History    *history.Repository
	Metrics    *metric.Recorder
	Controller *compression.Controller

	publisher  *rmq.EventPublisher
	closeTrace ttrace.CloseFunc
}

// New opens the store and builds the controller. name identifies the process in traces.
func New(ctx context.Context, name string, cfg *config.Config, l logger.Interface) (*App, error) {
	closeTrace, err := ttrace.InitGlobalProvider(ctx, name, cfg.OTEL)
	if err != nil {
		return nil, fmt.Errorf("app - New - InitGlobalProvider: %w", err)
	}

	a := &App{Config: cfg, Logger: l, closeTrace: closeTrace}

	a.DB, err = gormdb.Open(cfg.Database, cfg.MYSQL)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("app - New - gormdb.Open: %w", err)
	}

	a.History = history.NewRepository(a.DB, l)
	if err := a.History.Init(ctx); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("app - New - History.Init: %w", err)
	}

	if cfg.RMQ.Enabled {
		a.publisher, err = rmq.NewEventPublisher(cfg.RMQ, l)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("app - New - rmq.NewEventPublisher: %w", err)
		}
		a.History.Subscribe(a.publisher.HandleHistoryEvent)
	}

	formats, err := compression.NewFormatMatcher(cfg.Formats.Allowed)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("app - New - NewFormatMatcher: %w", err)
	}

	a.Metrics = metric.NewRecorder()
	a.Controller = compression.NewController(a.History, l,
		compression.WithFormats(formats),
		compression.WithMetrics(a.Metrics),
		compression.WithProgressFactory(compression.SimulatedFactory(cfg.Progress.Step)),
		compression.WithTickIntervals(cfg.Progress.CompressInterval, cfg.Progress.DecompressInterval),
		compression.WithStatusListener(func(s compression.Status) {
			l.Debug("status: %s", s)
		}),
	)

	return a, nil
}

// Exporter bundles the history with the archive format named by format.
func (a *App) Exporter(format string) (*history.Exporter, error) {
	archiver, ok := archive.ForFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	return history.NewExporter(a.History, archiver, a.Logger), nil
}

// Storage connects to the configured S3 bucket. bucket overrides the configured one when set.
func (a *App) Storage(ctx context.Context, bucket string) (*s3repo.S3Repository, string, error) {
	cfg := a.Config.S3
	if bucket != "" {
		cfg.Bucket = bucket
	}
	repo, err := s3repo.NewS3Repository(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	return repo, cfg.Bucket, nil
}

// Close releases everything New opened. Errors are logged and the first one is returned.
func (a *App) Close(ctx context.Context) error {
	var first error
	keep := func(err error, msg string) {
		if err == nil {
			return
		}
		a.Logger.Error(err, msg)
		if first == nil {
			first = err
		}
	}

	if a.publisher != nil {
		keep(a.publisher.Close(), "app - Close - publisher")
	}
	if a.DB != nil {
		keep(gormdb.Close(a.DB), "app - Close - db")
	}
	if a.closeTrace != nil {
		keep(a.closeTrace(ctx), "app - Close - trace provider")
	}
	return first
}
