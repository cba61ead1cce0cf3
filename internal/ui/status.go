package ui

import (
	"fmt"

	"droidlife/internal/driver"
)

// Status mirrors the labels shown next to the grid: run state, pattern
// type, generation and population.
type Status struct {
	Running    bool
	Type       string
	Rule       string
	Generation int
	Population int
}

// Apply folds a driver event into the status.
func (s *Status) Apply(ev driver.Event) {
	switch e := ev.(type) {
	case driver.StatusChanged:
		s.Running = e.Running
	case driver.TypeChanged:
		s.Type = e.Type
		s.Rule = e.Rule
	case driver.GenerationChanged:
		s.Generation = e.Generation
	case driver.PopulationChanged:
		s.Generation = e.Generation
		s.Population = e.Population
	}
}

// Lines renders the status as display lines.
func (s *Status) Lines() []string {
	state := "Stopped"
	if s.Running {
		state = "Running"
	}
	typ := s.Type
	if typ == "" {
		typ = "-"
	}
	head := fmt.Sprintf("%s  %s", state, typ)
	if s.Rule != "" {
		head += "  " + s.Rule
	}
	return []string{
		head,
		fmt.Sprintf("Gen %d  Pop %d", s.Generation, s.Population),
	}
}
