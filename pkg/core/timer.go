package core

import (
	"context"
	"time"
)

// FixedStep paces a simulation loop at a steady ticks-per-second rate.
type FixedStep struct {
	step time.Duration
	next time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. Non-positive values fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of a single tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Wait blocks until the next tick is due or ctx is done. A loop that falls
// more than one tick behind is resynchronised instead of bursting to catch up.
func (f *FixedStep) Wait(ctx context.Context) error {
	now := time.Now()
	if f.next.IsZero() {
		f.next = now
	}
	f.next = f.next.Add(f.step)
	delay := f.next.Sub(now)
	if delay <= 0 {
		if -delay > f.step {
			f.next = now
		}
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
