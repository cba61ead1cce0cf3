// Package pattern provides fixed-shape seeders: built-in patterns and
// patterns decoded from run-length-encoded (RLE) files.
package pattern

import (
	"droidlife/pkg/core"
	"droidlife/pkg/sims/life"
)

// Pattern is a set of live cells relative to its top-left corner.
type Pattern struct {
	Name   string
	Width  int
	Height int
	Cells  []core.Point

	rules    life.RuleSet
	hasRules bool
}

// New returns a Pattern whose bounds cover every cell.
func New(name string, cells []core.Point) Pattern {
	p := Pattern{Name: name, Cells: cells}
	for _, c := range cells {
		if c.X+1 > p.Width {
			p.Width = c.X + 1
		}
		if c.Y+1 > p.Height {
			p.Height = c.Y + 1
		}
	}
	return p
}

// RuleSet returns the rule declared by the pattern source, if any.
func (p Pattern) RuleSet() (life.RuleSet, bool) { return p.rules, p.hasRules }

// Seed centers the pattern in w. Cells that fall outside the grid are
// dropped.
func (p Pattern) Seed(w *life.World) error {
	ox := (w.Width() - p.Width) / 2
	oy := (w.Height() - p.Height) / 2
	for _, c := range p.Cells {
		x, y := ox+c.X, oy+c.Y
		if x < 0 || x >= w.Width() || y < 0 || y >= w.Height() {
			continue
		}
		if err := w.SetCell(x, y, true); err != nil {
			return err
		}
	}
	w.SetType(p.Name)
	return nil
}
