package life

import (
	"errors"
	"testing"

	"droidlife/pkg/core"
)

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "40", "h": "-2", "cell": "6", "rule": "B36/S23", "density": "0.2"})
	if c.Width != 40 || c.Height != DefaultConfig().Height || c.CellSize != 6 {
		t.Fatalf("unexpected geometry %+v", c)
	}
	if c.Rules.String() != "B36/S23" || c.Density != 0.2 {
		t.Fatalf("unexpected rules/density %+v", c)
	}
	if bad := FromMap(map[string]string{"rule": "B9/S"}); bad.Rules != Conway {
		t.Fatalf("invalid rule should keep default, got %s", bad.Rules)
	}
}

func TestRegisteredSimResetReplacesWorld(t *testing.T) {
	factory, ok := core.Sims()["life"]
	if !ok {
		t.Fatal("life sim not registered")
	}
	sim := factory(map[string]string{"w": "16", "h": "8"})
	if sim.Size() != (core.Size{W: 16, H: 8}) {
		t.Fatalf("size=%+v", sim.Size())
	}
	ls := sim.(*Sim)

	sim.Reset(11)
	first := ls.World()
	if first.Type() != "Random" || first.Population() == 0 {
		t.Fatalf("reset should seed randomly, got type=%q pop=%d", first.Type(), first.Population())
	}
	sim.Step()
	if ls.Generation() != 1 {
		t.Fatalf("generation=%d after one step", ls.Generation())
	}

	sim.Reset(11)
	if ls.World() == first {
		t.Fatal("Reset must build a new World")
	}
	if ls.Generation() != 0 {
		t.Fatalf("new world generation=%d", ls.Generation())
	}

	stats, ok := sim.(core.StatsProvider)
	if !ok || stats.Population() != ls.World().Population() {
		t.Fatal("Sim should expose generation and population")
	}
}

func TestSimParameters(t *testing.T) {
	sim, err := NewSim(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	p, ok := sim.Parameters().Lookup("rule")
	if !ok || p.Value != "B3/S23" {
		t.Fatalf("rule parameter=%+v ok=%v", p, ok)
	}
	if _, err := NewSim(Config{Width: 0, Height: 1, CellSize: 1}); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestSimResetPanicsOnInvalidConfig(t *testing.T) {
	sim := &Sim{cfg: Config{Width: 0, Height: 4, CellSize: 1, Rules: Conway}}
	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("expected a wrapped ErrInvalidConfiguration panic, got %v", err)
		}
	}()
	sim.Reset(1)
	t.Fatal("Reset should not return with an unusable configuration")
}
