// Package sim drives characters with a fixed time step.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/physanim/internal/logger"
	"github.com/Faultbox/physanim/pkg/math"
)

// ErrInvalidStep is returned for a non-positive time step.
var ErrInvalidStep = errors.New("invalid time step")

// Ticker is advanced once per step. ran reports whether the foot IK ran.
type Ticker interface {
	Tick(dt float32) (ran bool, err error)
}

// Stats summarises a run.
type Stats struct {
	Ticks   uint64
	IKTicks uint64
	// SimTime is the simulated time in seconds.
	SimTime float64
	// WallTime is how long the run took.
	WallTime time.Duration
	// Interrupted is true when the context ended the run early.
	Interrupted bool
}

// Runner is a fixed-step loop.
type Runner struct {
	// Step is the time step in seconds.
	Step float32
	// Ticks is the number of steps to run. Zero runs until the context ends.
	Ticks uint64
	// Realtime paces steps to the wall clock.
	Realtime bool
	// ReportEvery calls Report every n steps. Zero disables reports.
	ReportEvery uint64
	Report      func(Stats)
}

// Run ticks t until the step budget is spent or ctx ends. A cancelled
// context is not an error.
func (r *Runner) Run(ctx context.Context, t Ticker) (Stats, error) {
	if r.Step <= 0 || !math.IsFinite(r.Step) {
		return Stats{}, fmt.Errorf("%w: %v", ErrInvalidStep, r.Step)
	}
	if r.Ticks == 0 && !r.Realtime && ctx.Done() == nil {
		return Stats{}, fmt.Errorf("%w: unbounded run needs a cancellable context", ErrInvalidStep)
	}

	var pace <-chan time.Time
	if r.Realtime {
		ticker := time.NewTicker(time.Duration(float64(r.Step) * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	start := time.Now()
	var stats Stats

	logger.Info("simulation started",
		zap.Float32("step", r.Step),
		zap.Uint64("ticks", r.Ticks),
		zap.Bool("realtime", r.Realtime),
	)

	for r.Ticks == 0 || stats.Ticks < r.Ticks {
		if pace != nil {
			select {
			case <-ctx.Done():
				stats.Interrupted = true
			case <-pace:
			}
		} else if ctx.Err() != nil {
			stats.Interrupted = true
		}
		if stats.Interrupted {
			break
		}

		ran, err := t.Tick(r.Step)
		if err != nil {
			stats.WallTime = time.Since(start)
			return stats, fmt.Errorf("tick %d: %w", stats.Ticks, err)
		}

		stats.Ticks++
		stats.SimTime += float64(r.Step)
		if ran {
			stats.IKTicks++
		}

		if r.ReportEvery > 0 && r.Report != nil && stats.Ticks%r.ReportEvery == 0 {
			stats.WallTime = time.Since(start)
			r.Report(stats)
		}
	}

	stats.WallTime = time.Since(start)
	logger.Info("simulation stopped",
		zap.Uint64("ticks", stats.Ticks),
		zap.Uint64("ik_ticks", stats.IKTicks),
		zap.Float64("sim_time", stats.SimTime),
		zap.Duration("wall_time", stats.WallTime),
		zap.Bool("interrupted", stats.Interrupted),
	)
	return stats, nil
}
