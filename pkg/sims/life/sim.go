package life

import (
	"fmt"
	"strconv"

	"droidlife/pkg/core"
)

// Sim adapts World to core.Sim. Each Reset discards the current World and
// seeds a new one.
type Sim struct {
	cfg   Config
	world *World
}

// NewSim validates cfg and returns a Sim holding an empty World.
func NewSim(cfg Config) (*Sim, error) {
	world, err := NewWithRules(cfg.Width, cfg.Height, cfg.CellSize, cfg.Rules)
	if err != nil {
		return nil, err
	}
	return &Sim{cfg: cfg, world: world}, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "life" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return s.world.Size() }

// Cells exposes the current grid values.
func (s *Sim) Cells() []uint8 { return s.world.Cells() }

// World returns the active World.
func (s *Sim) World() *World { return s.world }

// Generation returns the generation of the active World.
func (s *Sim) Generation() int { return s.world.Generation() }

// Population returns the live cell count of the active World.
func (s *Sim) Population() int { return s.world.Population() }

// Reset replaces the World with a freshly seeded random one. NewSim has
// already validated the configuration, so a failure here panics.
func (s *Sim) Reset(seed int64) {
	world, err := NewWithRules(s.cfg.Width, s.cfg.Height, s.cfg.CellSize, s.cfg.Rules)
	if err != nil {
		panic(fmt.Errorf("life: reset: %w", err))
	}
	if err := NewRandom(seed, s.cfg.Density).Seed(world); err != nil {
		panic(fmt.Errorf("life: reset seed %d: %w", seed, err))
	}
	s.world = world
}

// Step advances the simulation by one generation.
func (s *Sim) Step() { s.world.Generate() }

// Parameters reports the configuration of the active World.
func (s *Sim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(s.world.Width())},
				{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(s.world.Height())},
				{Key: "cell", Label: "Cell size", Type: core.ParamTypeInt, Value: strconv.Itoa(s.world.CellSize())},
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: s.world.Rules().String()},
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				{Key: "density", Label: "Density", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.cfg.Density, 'f', -1, 64)},
			},
		},
	}}
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		sim, err := NewSim(FromMap(cfg))
		if err != nil {
			sim, _ = NewSim(DefaultConfig())
		}
		return sim
	})
}
