// Package grid holds the shared occupancy and connection state that pipe
// walks grow into.
//
// A cell is either empty or owned by exactly one walk for the rest of the
// grid's lifetime. Edges are only ever opened in matched pairs through Link,
// so a cell's mask always agrees with its neighbours.
package grid

import "fmt"

// Cell is the fixed-shape value stored for a claimed position
type Cell struct {
	Edges  Mask
	Color  uint8 // palette index, 0..15
	Symbol uint8 // symbol-set index
}

// Grid is a cols x rows array of optional cells, stored row-major.
// Not safe for concurrent use.
type Grid struct {
	cols, rows int
	cells      []Cell
	used       []bool
	claimed    int
}

// New allocates an empty grid. Negative dimensions are treated as zero.
func New(cols, rows int) *Grid {
	cols = max(cols, 0)
	rows = max(rows, 0)
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]Cell, cols*rows),
		used:  make([]bool, cols*rows),
	}
}

// Size returns the grid dimensions
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// Area returns cols*rows
func (g *Grid) Area() int {
	return g.cols * g.rows
}

// Claimed returns the number of non-empty cells
func (g *Grid) Claimed() int {
	return g.claimed
}

// InBounds reports whether p addresses a cell of the grid
func (g *Grid) InBounds(p Point) bool {
	return p.Col >= 0 && p.Col < g.cols && p.Row >= 0 && p.Row < g.rows
}

func (g *Grid) index(p Point) int {
	return p.Row*g.cols + p.Col
}

// Get returns the cell at p and whether it is claimed.
// Out-of-bounds points report as empty.
func (g *Grid) Get(p Point) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	i := g.index(p)
	return g.cells[i], g.used[i]
}

// Empty reports whether p is in bounds and unclaimed
func (g *Grid) Empty(p Point) bool {
	return g.InBounds(p) && !g.used[g.index(p)]
}

// Neighbor returns the in-bounds neighbour of p in d
func (g *Grid) Neighbor(p Point, d Dir) (Point, bool) {
	n := p.Step(d)
	return n, g.InBounds(n)
}

// Claim stores c at p with all edges closed. Claiming an occupied or
// out-of-bounds cell is a programming error and panics.
func (g *Grid) Claim(p Point, c Cell) {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: claim out of bounds at %v (%dx%d)", p, g.cols, g.rows))
	}
	i := g.index(p)
	if g.used[i] {
		panic(fmt.Sprintf("grid: cell %v already claimed", p))
	}
	c.Edges = 0
	g.cells[i] = c
	g.used[i] = true
	g.claimed++
}

// Link opens the edge between p and its neighbour in d, setting both
// reciprocal bits. Both cells must already be claimed.
func (g *Grid) Link(p Point, d Dir) {
	n := p.Step(d)
	if !g.InBounds(p) || !g.InBounds(n) {
		panic(fmt.Sprintf("grid: link %v->%s leaves the grid", p, d))
	}
	i, j := g.index(p), g.index(n)
	if !g.used[i] || !g.used[j] {
		panic(fmt.Sprintf("grid: link %v->%s touches an empty cell", p, d))
	}
	g.cells[i].Edges = g.cells[i].Edges.With(d)
	g.cells[j].Edges = g.cells[j].Edges.With(d.Opposite())
}
