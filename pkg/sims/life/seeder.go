package life

import "droidlife/pkg/core"

// Seeder populates a freshly constructed, all-dead World.
type Seeder interface {
	Seed(w *World) error
}

// RuleSeeder is implemented by seeders that carry their own rule set, such as
// patterns loaded from RLE files with a rule header.
type RuleSeeder interface {
	Seeder
	RuleSet() (RuleSet, bool)
}

// Random fills a World with independent live cells at a fixed density.
type Random struct {
	seed    int64
	density float64
}

// NewRandom returns a deterministic random seeder. Density is clamped to
// [0, 1].
func NewRandom(seed int64, density float64) Random {
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	return Random{seed: seed, density: density}
}

// Seed implements Seeder.
func (r Random) Seed(w *World) error {
	rng := core.NewRNG(r.seed)
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			if !rng.Chance(r.density) {
				continue
			}
			if err := w.SetCell(x, y, true); err != nil {
				return err
			}
		}
	}
	w.SetType("Random")
	return nil
}
