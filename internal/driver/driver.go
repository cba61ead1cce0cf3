// Package driver runs a life.World step loop on its own goroutine and
// serializes stepping against reads, so consumers never observe a World
// between its grid update and its counter update.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"droidlife/pkg/core"
	"droidlife/pkg/sims/life"
)

var (
	// ErrNotSeeded is returned when stepping before any World exists.
	ErrNotSeeded = errors.New("driver: not seeded")
	// ErrRunning is returned for operations that require a stopped loop.
	ErrRunning = errors.New("driver: step loop running")

	errStopped = errors.New("driver: stopped")
)

// Options configures a Driver.
type Options struct {
	// Width and Height are the canvas size in pixels; the World gets
	// Width/CellSize columns and Height/CellSize rows.
	Width    int
	Height   int
	CellSize int
	Rules    life.RuleSet
	TPS      int

	EventBuffer int
	Logger      *log.Logger
}

// Stats is a consistent view of the current World.
type Stats struct {
	Generation int
	Population int
	Type       string
	Rule       string
	Running    bool
	Seeded     bool
}

// Driver owns the current World and its step loop.
type Driver struct {
	opts   Options
	logger *log.Logger

	mu    sync.Mutex
	world *life.World

	loopMu sync.Mutex
	cancel context.CancelCauseFunc
	done   chan struct{}

	events  chan Event
	dropped atomic.Uint64
}

// New returns an unseeded Driver.
func New(opts Options) *Driver {
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 64
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "droidlife: ", log.LstdFlags)
	}
	return &Driver{
		opts:   opts,
		logger: logger,
		events: make(chan Event, opts.EventBuffer),
	}
}

// Events returns the notification stream. When the buffer is full the
// oldest event is discarded.
func (d *Driver) Events() <-chan Event { return d.events }

// Dropped returns the number of events discarded because nobody drained
// Events in time.
func (d *Driver) Dropped() uint64 { return d.dropped.Load() }

// Seed replaces the current World with a new one populated by s. A seeder
// that carries its own rules overrides the configured ones.
func (d *Driver) Seed(s life.Seeder) error {
	if d.IsRunning() {
		return ErrRunning
	}
	rules := d.opts.Rules
	if rs, ok := s.(life.RuleSeeder); ok {
		if r, has := rs.RuleSet(); has {
			rules = r
		}
	}
	if d.opts.CellSize < 1 {
		return fmt.Errorf("%w: cell size %d", life.ErrInvalidConfiguration, d.opts.CellSize)
	}
	world, err := life.NewWithRules(d.opts.Width/d.opts.CellSize, d.opts.Height/d.opts.CellSize, d.opts.CellSize, rules)
	if err != nil {
		return err
	}
	if err := s.Seed(world); err != nil {
		return fmt.Errorf("seed %T: %w", s, err)
	}

	d.mu.Lock()
	d.world = world
	d.mu.Unlock()

	d.logger.Printf("seeded %q on %dx%d (%s), population %d", world.Type(), world.Width(), world.Height(), rules, world.Population())
	d.publish(TypeChanged{Type: world.Type(), Rule: rules.String()})
	d.publish(GenerationChanged{Generation: world.Generation()})
	d.publish(PopulationChanged{Generation: world.Generation(), Population: world.Population()})
	return nil
}

// Start launches the step loop. It runs until Stop is called or ctx is done;
// in the latter case the loop publishes StatusChanged{Running: false} itself.
func (d *Driver) Start(ctx context.Context) error {
	if !d.IsSeeded() {
		return ErrNotSeeded
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	d.loopMu.Lock()
	defer d.loopMu.Unlock()
	if d.runningLocked() {
		return ErrRunning
	}
	ctx, cancel := context.WithCancelCause(ctx)
	done := make(chan struct{})
	d.cancel, d.done = cancel, done
	pace := core.NewFixedStep(d.opts.TPS)
	go d.run(ctx, pace, done)
	d.logger.Printf("step loop started, one generation every %s", pace.Interval())
	d.publish(StatusChanged{Running: true})
	return nil
}

// Stop signals the step loop and waits for it to exit.
func (d *Driver) Stop() {
	d.loopMu.Lock()
	if d.done != nil {
		d.cancel(errStopped)
		<-d.done
		d.cancel, d.done = nil, nil
		d.logger.Printf("step loop stopped")
	}
	d.loopMu.Unlock()
	d.publish(StatusChanged{Running: false})
}

// Step advances a stopped World by one generation.
func (d *Driver) Step() error {
	if d.IsRunning() {
		return ErrRunning
	}
	if !d.IsSeeded() {
		return ErrNotSeeded
	}
	d.advance()
	return nil
}

// Refresh republishes the full state.
func (d *Driver) Refresh() {
	st := d.Stats()
	d.publish(StatusChanged{Running: st.Running})
	if !st.Seeded {
		return
	}
	d.publish(TypeChanged{Type: st.Type, Rule: st.Rule})
	d.publish(GenerationChanged{Generation: st.Generation})
	d.publish(PopulationChanged{Generation: st.Generation, Population: st.Population})
}

// View calls fn with the current World while holding the step lock. fn
// must not retain w. It reports false when no World has been seeded.
func (d *Driver) View(fn func(w *life.World)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.world == nil {
		return false
	}
	fn(d.world)
	return true
}

// Stats returns the current generation, population and status.
func (d *Driver) Stats() Stats {
	st := Stats{Running: d.IsRunning()}
	d.View(func(w *life.World) {
		st.Seeded = true
		st.Generation = w.Generation()
		st.Population = w.Population()
		st.Type = w.Type()
		st.Rule = w.Rules().String()
	})
	return st
}

// IsSeeded reports whether a World exists.
func (d *Driver) IsSeeded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.world != nil
}

// IsRunning reports whether the step loop is active.
func (d *Driver) IsRunning() bool {
	d.loopMu.Lock()
	defer d.loopMu.Unlock()
	return d.runningLocked()
}

func (d *Driver) runningLocked() bool {
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		return false
	default:
		return true
	}
}

func (d *Driver) run(ctx context.Context, pace *core.FixedStep, done chan struct{}) {
	defer close(done)
	for {
		if err := pace.Wait(ctx); err != nil {
			// Stop publishes its own status once the loop has joined.
			if !errors.Is(context.Cause(ctx), errStopped) {
				d.logger.Printf("step loop ended: %v", err)
				d.publish(StatusChanged{Running: false})
			}
			return
		}
		d.advance()
	}
}

func (d *Driver) advance() {
	d.mu.Lock()
	d.world.Generate()
	gen, pop := d.world.Generation(), d.world.Population()
	d.mu.Unlock()

	d.publish(GenerationChanged{Generation: gen})
	d.publish(PopulationChanged{Generation: gen, Population: pop})
}

func (d *Driver) publish(ev Event) {
	for {
		select {
		case d.events <- ev:
			return
		default:
		}
		select {
		case <-d.events:
			d.dropped.Add(1)
		default:
		}
	}
}
