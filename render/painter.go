package render

import (
	"github.com/lixenwraith/pipes/glyph"
	"github.com/lixenwraith/pipes/grid"
	"github.com/lixenwraith/pipes/palette"
)

// Painter draws grid cells through a codec onto a surface
type Painter struct {
	surface Surface
	codec   *glyph.Codec
}

// NewPainter creates a painter
func NewPainter(surface Surface, codec *glyph.Codec) *Painter {
	return &Painter{surface: surface, codec: codec}
}

// Paint draws each point's current glyph, then a blank for each of its
// still-empty neighbours so an approaching pipe is painted ahead of the
// frontier. Draws outside the surface's current size are skipped. Returns
// the number of draws the surface accepted.
func (p *Painter) Paint(g *grid.Grid, points ...grid.Point) int {
	cols, rows := p.surface.Size()
	drawn := 0

	draw := func(at grid.Point) {
		if at.Col < 0 || at.Col >= cols || at.Row < 0 || at.Row >= rows {
			return
		}
		if p.drawCell(g, at) {
			drawn++
		}
	}

	for _, pt := range points {
		if !g.InBounds(pt) {
			continue
		}
		draw(pt)
		for _, d := range grid.Dirs {
			if n, ok := g.Neighbor(pt, d); ok && g.Empty(n) {
				draw(n)
			}
		}
	}
	return drawn
}

// PaintAll redraws every cell of the grid
func (p *Painter) PaintAll(g *grid.Grid) int {
	cols, rows := g.Size()
	scols, srows := p.surface.Size()
	drawn := 0
	for row := 0; row < min(rows, srows); row++ {
		for col := 0; col < min(cols, scols); col++ {
			if p.drawCell(g, grid.Point{Col: col, Row: row}) {
				drawn++
			}
		}
	}
	return drawn
}

func (p *Painter) drawCell(g *grid.Grid, at grid.Point) bool {
	c, ok := g.Get(at)
	if !ok {
		return p.surface.DrawGlyph(at.Col, at.Row, glyph.Blank, 0)
	}
	return p.surface.DrawGlyph(at.Col, at.Row, p.codec.Glyph(int(c.Symbol), c.Edges), palette.Color(c.Color))
}
