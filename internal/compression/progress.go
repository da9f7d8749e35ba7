package compression

import (
	"time"

	"arithma_tech/entity"
)

const (
	DefaultStep               = 5
	DefaultCompressInterval   = 150 * time.Millisecond
	DefaultDecompressInterval = 200 * time.Millisecond
)

// Progress tracks the advancement of one accepted operation.
type Progress interface {
	// Advance handles one tick and returns the current percentage.
	Advance() int
	// Complete reports whether the last Advance finished the operation.
	Complete() bool
}

// ProgressFactory creates a fresh Progress for every accepted request.
type ProgressFactory func(kind entity.OperationKind) Progress

// SimulatedProgress adds a fixed step per tick. The tick that observes 100% completes it.
type SimulatedProgress struct {
	step    int
	percent int
	done    bool
}

func NewSimulatedProgress(step int) *SimulatedProgress {
	if step <= 0 {
		step = DefaultStep
	}
	return &SimulatedProgress{step: step}
}

// SimulatedFactory returns a factory producing SimulatedProgress with the given step.
func SimulatedFactory(step int) ProgressFactory {
	return func(entity.OperationKind) Progress {
		return NewSimulatedProgress(step)
	}
}

func (p *SimulatedProgress) Advance() int {
	if p.done {
		return p.percent
	}
	if p.percent < 100 {
		p.percent += p.step
		if p.percent > 100 {
			p.percent = 100
		}
		return p.percent
	}
	p.done = true
	return p.percent
}

func (p *SimulatedProgress) Complete() bool {
	return p.done
}
