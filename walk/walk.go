// Package walk implements a single pipe: a randomized self-avoiding walk
// with backtracking that claims cells of a shared grid one at a time.
//
// The walk's entire live state is its stack. The top is the head; growth
// pushes a freshly claimed neighbour, a dead end pops. When the stack is
// empty the walk is dead and never revives.
package walk

import (
	"math/rand"

	"github.com/lixenwraith/pipes/grid"
)

// Outcome of one atomic advance
type Outcome uint8

const (
	Dead Outcome = iota
	Backtracked
	Grown
)

func (o Outcome) String() string {
	switch o {
	case Grown:
		return "grown"
	case Backtracked:
		return "backtracked"
	}
	return "dead"
}

// Event names the cells touched by one growth, most recently updated first
type Event struct {
	Head grid.Point // newly claimed cell
	Prev grid.Point // previous head, gained one edge
}

// Points returns the touched cells in update order
func (e Event) Points() []grid.Point {
	return []grid.Point{e.Head, e.Prev}
}

type candidate struct {
	dir grid.Dir
	at  grid.Point
}

// Walk is one pipe growing in a grid
type Walk struct {
	g      *grid.Grid
	rng    *rand.Rand
	stack  []grid.Point
	color  uint8
	symbol uint8

	claimed  int
	maxDepth int
	last     Event

	// Reused across advances
	candidates []candidate
}

// New seeds a walk at a uniformly random cell of g. If that cell is taken
// (or the grid has no cells) the walk is born dead.
func New(g *grid.Grid, rng *rand.Rand, color, symbol uint8) *Walk {
	cols, rows := g.Size()
	if cols == 0 || rows == 0 {
		return newWalk(g, rng, color, symbol)
	}
	seed := grid.Point{Col: rng.Intn(cols), Row: rng.Intn(rows)}
	return NewAt(g, rng, seed, color, symbol)
}

// NewAt seeds a walk at an explicit cell
func NewAt(g *grid.Grid, rng *rand.Rand, seed grid.Point, color, symbol uint8) *Walk {
	w := newWalk(g, rng, color, symbol)
	if !g.Empty(seed) {
		return w
	}
	g.Claim(seed, grid.Cell{Color: color, Symbol: symbol})
	w.stack = append(w.stack, seed)
	w.claimed = 1
	w.maxDepth = 1
	return w
}

func newWalk(g *grid.Grid, rng *rand.Rand, color, symbol uint8) *Walk {
	return &Walk{
		g:          g,
		rng:        rng,
		color:      color,
		symbol:     symbol,
		stack:      make([]grid.Point, 0, 64),
		candidates: make([]candidate, 0, 4),
	}
}

// Alive reports whether the stack is non-empty
func (w *Walk) Alive() bool {
	return len(w.stack) > 0
}

// Head returns the current top of the stack
func (w *Walk) Head() (grid.Point, bool) {
	if len(w.stack) == 0 {
		return grid.Point{}, false
	}
	return w.stack[len(w.stack)-1], true
}

// Depth returns the current stack length
func (w *Walk) Depth() int { return len(w.stack) }

// MaxDepth returns the deepest the stack has been
func (w *Walk) MaxDepth() int { return w.maxDepth }

// Claimed returns the number of cells this walk owns
func (w *Walk) Claimed() int { return w.claimed }

// Color returns the palette index stamped on claimed cells
func (w *Walk) Color() uint8 { return w.color }

// Symbol returns the symbol-set index stamped on claimed cells
func (w *Walk) Symbol() uint8 { return w.symbol }

// Advance performs one atomic step: grow into a random empty neighbour of
// the head, or pop the head when it has none.
func (w *Walk) Advance() Outcome {
	head, ok := w.Head()
	if !ok {
		return Dead
	}

	w.candidates = w.candidates[:0]
	for _, d := range grid.Dirs {
		if n, ok := w.g.Neighbor(head, d); ok && w.g.Empty(n) {
			w.candidates = append(w.candidates, candidate{dir: d, at: n})
		}
	}

	if len(w.candidates) == 0 {
		w.stack = w.stack[:len(w.stack)-1]
		return Backtracked
	}

	c := w.candidates[w.rng.Intn(len(w.candidates))]
	w.g.Claim(c.at, grid.Cell{Color: w.color, Symbol: w.symbol})
	w.g.Link(head, c.dir)

	w.stack = append(w.stack, c.at)
	w.claimed++
	w.maxDepth = max(w.maxDepth, len(w.stack))
	w.last = Event{Head: c.at, Prev: head}
	return Grown
}

// Step advances until the walk grows or dies. Backtracks never change a
// rendered glyph, so they are folded into the next visible growth.
func (w *Walk) Step() (Event, bool) {
	for {
		switch w.Advance() {
		case Grown:
			return w.last, true
		case Dead:
			return Event{}, false
		}
	}
}
