package life

import (
	"errors"
	"fmt"

	"droidlife/pkg/core"
)

var (
	// ErrOutOfBounds is returned for cell coordinates outside the grid.
	ErrOutOfBounds = errors.New("life: coordinates out of bounds")
	// ErrInvalidConfiguration is returned for unusable dimensions or rules.
	ErrInvalidConfiguration = errors.New("life: invalid configuration")
)

// World is a bounded two-state automaton. Cells beyond the edges count as
// permanently dead neighbors.
//
// World does no locking; callers that step and read from different
// goroutines must serialize access themselves.
type World struct {
	w, h     int
	cellSize int
	rules    RuleSet

	cur *core.ByteGrid
	nxt *core.ByteGrid

	generation int
	population int
	label      string
}

// New returns an all-dead World using the given birth and survival counts.
func New(width, height, cellSize int, birth, survive []int) (*World, error) {
	b, err := NewRule(birth...)
	if err != nil {
		return nil, fmt.Errorf("birth rule: %w", err)
	}
	s, err := NewRule(survive...)
	if err != nil {
		return nil, fmt.Errorf("survival rule: %w", err)
	}
	return NewWithRules(width, height, cellSize, RuleSet{Birth: b, Survive: s})
}

// NewWithRules returns an all-dead World governed by rules.
func NewWithRules(width, height, cellSize int, rules RuleSet) (*World, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfiguration, width, height)
	}
	if cellSize < 1 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidConfiguration, cellSize)
	}
	if rules.Birth>>(MaxNeighbors+1) != 0 || rules.Survive>>(MaxNeighbors+1) != 0 {
		return nil, fmt.Errorf("%w: rule %s has counts above %d", ErrInvalidConfiguration, rules, MaxNeighbors)
	}
	return &World{
		w:        width,
		h:        height,
		cellSize: cellSize,
		rules:    rules,
		cur:      core.NewByteGrid(width, height),
		nxt:      core.NewByteGrid(width, height),
	}, nil
}

// Width returns the number of columns.
func (w *World) Width() int { return w.w }

// Height returns the number of rows.
func (w *World) Height() int { return w.h }

// Size returns the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// CellSize is the on-screen pixel size of one cell. It does not affect the
// simulation.
func (w *World) CellSize() int { return w.cellSize }

// Rules returns the birth and survival rules.
func (w *World) Rules() RuleSet { return w.rules }

// Generation returns the number of completed steps.
func (w *World) Generation() int { return w.generation }

// Population returns the number of live cells.
func (w *World) Population() int { return w.population }

// Type returns the label recorded by the seeder.
func (w *World) Type() string { return w.label }

// SetType records a descriptive label for the seeded pattern.
func (w *World) SetType(label string) { w.label = label }

// Cells exposes the current grid, one byte per cell in row-major order.
// Callers must not modify it.
func (w *World) Cells() []uint8 { return w.cur.Cells() }

// SetCell sets a single cell. It is meant for seeding before the first
// Generate call.
func (w *World) SetCell(x, y int, alive bool) error {
	if !w.cur.In(x, y) {
		return fmt.Errorf("%w: set (%d,%d) on %dx%d", ErrOutOfBounds, x, y, w.w, w.h)
	}
	idx := w.cur.Index(x, y)
	cells := w.cur.Cells()
	was := cells[idx] != 0
	switch {
	case alive && !was:
		cells[idx] = 1
		w.population++
	case !alive && was:
		cells[idx] = 0
		w.population--
	}
	return nil
}

// IsAlive reports the state of the cell at (x, y).
func (w *World) IsAlive(x, y int) (bool, error) {
	if !w.cur.In(x, y) {
		return false, fmt.Errorf("%w: read (%d,%d) on %dx%d", ErrOutOfBounds, x, y, w.w, w.h)
	}
	return w.cur.At(x, y) != 0, nil
}

// Neighbors returns the live neighbor count of (x, y). Out of range
// coordinates report zero.
func (w *World) Neighbors(x, y int) int {
	if !w.cur.In(x, y) {
		return 0
	}
	return neighbors(w.cur, x, y)
}

// Generate advances the world by one generation. Every next state is
// computed from the current buffer and written to the scratch buffer, so no
// rule evaluation observes a cell updated in the same pass.
func (w *World) Generate() {
	cur := w.cur.Cells()
	nxt := w.nxt.Cells()
	pop := 0
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			idx := y*w.w + x
			n := neighbors(w.cur, x, y)
			var next uint8
			if cur[idx] != 0 {
				if w.rules.Survive.Has(n) {
					next = 1
				}
			} else if w.rules.Birth.Has(n) {
				next = 1
			}
			nxt[idx] = next
			pop += int(next)
		}
	}
	w.cur, w.nxt = w.nxt, w.cur
	w.generation++
	w.population = pop
}

// Clone returns an independent copy of the world.
func (w *World) Clone() *World {
	c := *w
	c.cur = w.cur.Clone()
	c.nxt = w.nxt.Clone()
	return &c
}

func neighbors(g *core.ByteGrid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Cells()[ny*g.W+nx] != 0 {
				n++
			}
		}
	}
	return n
}
