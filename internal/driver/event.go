package driver

import "fmt"

// Event is a notification published by the Driver after a state change.
type Event interface {
	fmt.Stringer
}

// StatusChanged reports that the step loop started or stopped.
type StatusChanged struct {
	Running bool
}

// TypeChanged reports the label and rules of a newly seeded World.
type TypeChanged struct {
	Type string
	Rule string
}

// GenerationChanged reports the generation of the current World.
type GenerationChanged struct {
	Generation int
}

// PopulationChanged reports the live cell count at a generation.
type PopulationChanged struct {
	Generation int
	Population int
}

func (e StatusChanged) String() string {
	if e.Running {
		return "Running"
	}
	return "Stopped"
}

func (e TypeChanged) String() string { return e.Type + " " + e.Rule }

func (e GenerationChanged) String() string { return fmt.Sprintf("Generation %d", e.Generation) }

func (e PopulationChanged) String() string {
	return fmt.Sprintf("Population %d (generation %d)", e.Population, e.Generation)
}
