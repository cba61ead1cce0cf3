package app

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"droidlife/pkg/sims/life"
	"droidlife/pkg/sims/life/pattern"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Width    int
	Height   int
	CellSize int
	Rule     string
	Pattern  string
	File     string
	Density  float64
	Seed     int64
	TPS      int
	Run      bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    480,
		Height:   640,
		CellSize: 8,
		Rule:     life.Conway.String(),
		Pattern:  "random",
		Density:  0.25,
		Seed:     42,
		TPS:      15,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "canvas width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height in pixels")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "pixels per cell")
	fs.StringVar(&c.Rule, "rule", c.Rule, "birth/survival rule, e.g. B3/S23")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "seed pattern: random or one of "+strings.Join(pattern.Names(), ", "))
	fs.StringVar(&c.File, "file", c.File, "RLE pattern file (overrides -pattern)")
	fs.Float64Var(&c.Density, "density", c.Density, "live cell density for the random pattern")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random pattern")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second")
	fs.BoolVar(&c.Run, "run", c.Run, "start stepping immediately")
}

// RuleSet parses the configured rule.
func (c *Config) RuleSet() (life.RuleSet, error) {
	return life.ParseRuleSet(c.Rule)
}

// Seeder resolves the configured seed source. An RLE file wins over a named
// pattern; "random" selects a density fill using seed.
func (c *Config) Seeder(seed int64) (life.Seeder, error) {
	if c.File != "" {
		f, err := os.Open(c.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		p, err := pattern.ParseRLE(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.File, err)
		}
		if p.Name == "" {
			p.Name = c.File
		}
		return p, nil
	}
	if c.Pattern == "" || strings.EqualFold(c.Pattern, "random") {
		return life.NewRandom(seed, c.Density), nil
	}
	p, ok := pattern.Lookup(c.Pattern)
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q", c.Pattern)
	}
	return p, nil
}
