package driver

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"droidlife/pkg/sims/life"
	"droidlife/pkg/sims/life/pattern"
)

func newDriver(tps int) *Driver {
	return New(Options{
		Width:       50,
		Height:      40,
		CellSize:    5,
		Rules:       life.Conway,
		TPS:         tps,
		EventBuffer: 256,
		Logger:      log.New(io.Discard, "", 0),
	})
}

func drain(d *Driver) []Event {
	var out []Event
	for {
		select {
		case ev := <-d.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestSeedBuildsWorldFromCanvas(t *testing.T) {
	d := newDriver(60)
	if d.IsSeeded() {
		t.Fatal("new driver should not be seeded")
	}
	if err := d.Step(); !errors.Is(err, ErrNotSeeded) {
		t.Fatalf("Step before Seed: expected ErrNotSeeded, got %v", err)
	}
	if err := d.Start(context.Background()); !errors.Is(err, ErrNotSeeded) {
		t.Fatalf("Start before Seed: expected ErrNotSeeded, got %v", err)
	}
	drain(d)

	if err := d.Seed(pattern.Blinker); err != nil {
		t.Fatal(err)
	}
	var cols, rows, cell int
	d.View(func(w *life.World) {
		cols, rows, cell = w.Width(), w.Height(), w.CellSize()
	})
	if cols != 10 || rows != 8 || cell != 5 {
		t.Fatalf("world %dx%d cell=%d, expected 10x8 cell=5", cols, rows, cell)
	}

	events := drain(d)
	if len(events) != 3 {
		t.Fatalf("expected type/generation/population events, got %v", events)
	}
	if ev, ok := events[0].(TypeChanged); !ok || ev.Type != "Blinker" || ev.Rule != "B3/S23" {
		t.Fatalf("first event %v", events[0])
	}
	if ev, ok := events[2].(PopulationChanged); !ok || ev.Population != 3 || ev.Generation != 0 {
		t.Fatalf("third event %v", events[2])
	}
}

func TestSeedRejectsTinyCanvas(t *testing.T) {
	d := New(Options{Width: 3, Height: 40, CellSize: 5, Rules: life.Conway, Logger: log.New(io.Discard, "", 0)})
	if err := d.Seed(pattern.Block); !errors.Is(err, life.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if d.IsSeeded() {
		t.Fatal("failed seed must not install a world")
	}
}

func TestSeedUsesPatternRules(t *testing.T) {
	d := newDriver(60)
	p, err := pattern.ParseRLE(strings.NewReader("x = 2, y = 1, rule = B1/S\n2o!"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Seed(p); err != nil {
		t.Fatal(err)
	}
	d.View(func(w *life.World) {
		if w.Rules().String() != "B1/S" {
			t.Fatalf("rules=%s, expected B1/S", w.Rules())
		}
	})
	if ev, ok := drain(d)[0].(TypeChanged); !ok || ev.Rule != "B1/S" {
		t.Fatalf("TypeChanged should carry the pattern rule, got %v", ev)
	}
	if st := d.Stats(); st.Rule != "B1/S" {
		t.Fatalf("stats rule=%q", st.Rule)
	}
}

func TestStepAdvancesAndPublishes(t *testing.T) {
	d := newDriver(60)
	if err := d.Seed(pattern.Blinker); err != nil {
		t.Fatal(err)
	}
	drain(d)
	for i := 0; i < 3; i++ {
		if err := d.Step(); err != nil {
			t.Fatal(err)
		}
	}
	st := d.Stats()
	if st.Generation != 3 || st.Population != 3 || st.Running || !st.Seeded || st.Type != "Blinker" {
		t.Fatalf("stats=%+v", st)
	}
	events := drain(d)
	if len(events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(events))
	}
	if ev, ok := events[4].(GenerationChanged); !ok || ev.Generation != 3 {
		t.Fatalf("event 4 = %v", events[4])
	}
}

func TestStartStop(t *testing.T) {
	d := newDriver(500)
	if err := d.Seed(pattern.Glider); err != nil {
		t.Fatal(err)
	}
	drain(d)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if !d.IsRunning() {
		t.Fatal("expected running after Start")
	}
	if err := d.Start(ctx); !errors.Is(err, ErrRunning) {
		t.Fatalf("second Start: expected ErrRunning, got %v", err)
	}
	if err := d.Step(); !errors.Is(err, ErrRunning) {
		t.Fatalf("Step while running: expected ErrRunning, got %v", err)
	}
	if err := d.Seed(pattern.Block); !errors.Is(err, ErrRunning) {
		t.Fatalf("Seed while running: expected ErrRunning, got %v", err)
	}

	var last GenerationChanged
	for last.Generation < 5 {
		select {
		case ev := <-d.Events():
			if g, ok := ev.(GenerationChanged); ok {
				if g.Generation <= last.Generation {
					t.Fatalf("generation went from %d to %d", last.Generation, g.Generation)
				}
				last = g
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for generations")
		}
	}

	d.Stop()
	if d.IsRunning() {
		t.Fatal("expected stopped after Stop")
	}
	stopped := d.Stats().Generation
	time.Sleep(20 * time.Millisecond)
	if got := d.Stats().Generation; got != stopped {
		t.Fatalf("generation advanced after Stop: %d -> %d", stopped, got)
	}

	var stops int
	for _, ev := range drain(d) {
		if s, ok := ev.(StatusChanged); ok && !s.Running {
			stops++
		}
	}
	if stops != 1 {
		t.Fatalf("Stop should publish StatusChanged{Running:false} once, got %d", stops)
	}

	d.Stop()
	if err := d.Step(); err != nil {
		t.Fatalf("Step after Stop: %v", err)
	}
}

func TestContextCancelEndsLoop(t *testing.T) {
	d := newDriver(500)
	if err := d.Seed(pattern.Block); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for d.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("loop still running after cancel")
		}
		time.Sleep(time.Millisecond)
	}

	var last *StatusChanged
	for _, ev := range drain(d) {
		if s, ok := ev.(StatusChanged); ok {
			last = &s
		}
	}
	if last == nil || last.Running {
		t.Fatalf("last status after cancel = %v, expected Stopped", last)
	}

	if err := d.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start with a cancelled context: expected context.Canceled, got %v", err)
	}
	if events := drain(d); len(events) != 0 {
		t.Fatalf("rejected Start published %v", events)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("restart after cancel: %v", err)
	}
	d.Stop()
}

func TestViewIsConsistentWhileRunning(t *testing.T) {
	d := newDriver(1000)
	if err := d.Seed(life.NewRandom(4, 0.4)); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer d.Stop()

	for i := 0; i < 50; i++ {
		d.View(func(w *life.World) {
			n := 0
			for _, c := range w.Cells() {
				if c != 0 {
					n++
				}
			}
			if n != w.Population() {
				t.Fatalf("generation %d: population %d, scan %d", w.Generation(), w.Population(), n)
			}
		})
		time.Sleep(time.Millisecond)
	}
}

func TestPublishDropsOldest(t *testing.T) {
	d := New(Options{Width: 10, Height: 10, CellSize: 1, Rules: life.Conway, EventBuffer: 2, Logger: log.New(io.Discard, "", 0)})
	d.publish(GenerationChanged{Generation: 1})
	d.publish(GenerationChanged{Generation: 2})
	d.publish(GenerationChanged{Generation: 3})
	events := drain(d)
	if len(events) != 2 || events[0].(GenerationChanged).Generation != 2 || events[1].(GenerationChanged).Generation != 3 {
		t.Fatalf("events=%v", events)
	}
	if d.Dropped() != 1 {
		t.Fatalf("dropped=%d, expected 1", d.Dropped())
	}
}

func TestRefreshRepublishes(t *testing.T) {
	d := newDriver(60)
	d.Refresh()
	if events := drain(d); len(events) != 1 {
		t.Fatalf("unseeded refresh should only report status, got %v", events)
	}
	if err := d.Seed(pattern.Acorn); err != nil {
		t.Fatal(err)
	}
	drain(d)
	d.Refresh()
	events := drain(d)
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %v", events)
	}
	if events[0].String() != "Stopped" || events[1].String() != "Acorn B3/S23" {
		t.Fatalf("events=%v", events)
	}
}
