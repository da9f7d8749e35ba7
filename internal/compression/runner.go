package compression

import (
	"context"
	"time"

	"arithma_tech/pkg/logger"
)

// Ticker is the part of Controller a Runner drives.
type Ticker interface {
	Busy() bool
	TickInterval() time.Duration
	Tick() (percent int, completed bool)
}

var _ Ticker = (*Controller)(nil)

// Runner ticks a controller on a timer until the running operation completes.
// Front ends without their own event loop use it.
type Runner struct {
	c Ticker
	l logger.Interface
}

func NewRunner(c Ticker, l logger.Interface) *Runner {
	return &Runner{c: c, l: l}
}

// Run returns nil once the controller is idle. Cancelling ctx stops the ticks only;
// the controller stays busy until someone ticks it to completion.
func (r *Runner) Run(ctx context.Context) error {
	if !r.c.Busy() {
		return nil
	}

	ticker := time.NewTicker(r.c.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.l.Warn("progress driver stopped: %v", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if _, done := r.c.Tick(); done || !r.c.Busy() {
				return nil
			}
		}
	}
}
