package worker

import (
	"context"
	"errors"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"arithma_tech/entity"
	"arithma_tech/internal/compression"
	"arithma_tech/pkg/logger"
)

const traceName = "drop-worker"

// Controller is the controller surface the drop worker drives.
type Controller interface {
	compression.Ticker
	SwitchMode(m entity.InputMode) error
	SelectFile(path string) error
	Request(ctx context.Context, kind entity.OperationKind) (bool, error)
}

// Worker runs one operation per dropped file, one at a time.
type Worker struct {
	c      Controller
	runner *compression.Runner
	kind   entity.OperationKind
	l      logger.Interface
}

func New(c Controller, kind entity.OperationKind, l logger.Interface) *Worker {
	return &Worker{c: c, runner: compression.NewRunner(c, l), kind: kind, l: l}
}

// Run consumes drops until the channel closes or ctx is done.
func (w *Worker) Run(ctx context.Context, drops <-chan string) error {
	w.l.Info("drop worker started, operation %s", w.kind)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-drops:
			if !ok {
				return nil
			}
			if err := w.Process(ctx, path); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				w.l.Warn("skipped %s: %v", filepath.Base(path), err)
			}
		}
	}
}

// Process selects path in file mode, requests the operation and waits until it completes.
// A history write failure is logged by the controller and does not fail the drop.
func (w *Worker) Process(ctx context.Context, path string) error {
	ctx, span := otel.Tracer(traceName).Start(ctx, "Process")
	defer span.End()

	span.SetAttributes(attribute.String("file", filepath.Base(path)))

	if err := w.c.SwitchMode(entity.ModeFile); err != nil {
		return err
	}
	if err := w.c.SelectFile(path); err != nil {
		return err
	}

	accepted, err := w.c.Request(ctx, w.kind)
	if !accepted {
		if err == nil {
			err = entity.ErrOperationInProgress
		}
		return err
	}
	if err != nil && !entity.IsStoreError(err) {
		return err
	}

	return w.runner.Run(ctx)
}
