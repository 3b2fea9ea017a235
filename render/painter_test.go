package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pipes/glyph"
	"github.com/lixenwraith/pipes/grid"
	"github.com/lixenwraith/pipes/palette"
)

type drawCall struct {
	col, row int
	ch       rune
	color    palette.Color
}

// recordingSurface records every draw it is asked for
type recordingSurface struct {
	cols, rows int
	calls      []drawCall
	cleared    int
}

func (s *recordingSurface) Size() (int, int) { return s.cols, s.rows }
func (s *recordingSurface) DrawGlyph(col, row int, ch rune, color palette.Color) bool {
	s.calls = append(s.calls, drawCall{col, row, ch, color})
	return true
}
func (s *recordingSurface) Clear() { s.cleared++ }
func (s *recordingSurface) Show()  {}

func newCodec(t *testing.T) *glyph.Codec {
	t.Helper()
	c, err := glyph.NewCodec(glyph.Thin, glyph.ASCII)
	require.NoError(t, err)
	return c
}

func TestPaintDrawsSelfAndEmptyNeighbours(t *testing.T) {
	g := grid.New(5, 5)
	a, b := grid.Point{Col: 2, Row: 2}, grid.Point{Col: 3, Row: 2}
	g.Claim(a, grid.Cell{Color: 9})
	g.Claim(b, grid.Cell{Color: 9})
	g.Link(a, grid.East)

	s := &recordingSurface{cols: 5, rows: 5}
	p := NewPainter(s, newCodec(t))

	n := p.Paint(g, b)
	// b plus its three empty neighbours; a is claimed and skipped
	require.Equal(t, 4, n)
	assert.Equal(t, drawCall{3, 2, '╴', 9}, s.calls[0])
	for _, c := range s.calls[1:] {
		assert.Equal(t, glyph.Blank, c.ch)
		assert.NotEqual(t, grid.Point{Col: 2, Row: 2}, grid.Point{Col: c.col, Row: c.row})
	}
}

func TestPaintUsesCellSymbolSet(t *testing.T) {
	g := grid.New(2, 1)
	a, b := grid.Point{Col: 0, Row: 0}, grid.Point{Col: 1, Row: 0}
	g.Claim(a, grid.Cell{Color: 2, Symbol: 1})
	g.Claim(b, grid.Cell{Color: 2, Symbol: 1})
	g.Link(a, grid.East)

	s := &recordingSurface{cols: 2, rows: 1}
	NewPainter(s, newCodec(t)).Paint(g, b, a)
	require.Len(t, s.calls, 2)
	assert.Equal(t, '-', s.calls[0].ch)
	assert.Equal(t, '-', s.calls[1].ch)
}

func TestPaintSkipsOutsideSurface(t *testing.T) {
	// Surface shrank below the grid
	g := grid.New(4, 4)
	corner := grid.Point{Col: 3, Row: 3}
	g.Claim(corner, grid.Cell{})

	s := &recordingSurface{cols: 3, rows: 3}
	n := NewPainter(s, newCodec(t)).Paint(g, corner)
	assert.Equal(t, 0, n)
	assert.Empty(t, s.calls)

	// Points outside the grid are ignored entirely
	n = NewPainter(s, newCodec(t)).Paint(g, grid.Point{Col: -1, Row: 0})
	assert.Equal(t, 0, n)
}

func TestPaintAllAgainstBuffer(t *testing.T) {
	g := grid.New(3, 1)
	pts := []grid.Point{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0}}
	for _, p := range pts {
		g.Claim(p, grid.Cell{Color: 4})
	}
	g.Link(pts[0], grid.East)
	g.Link(pts[1], grid.East)

	buf := NewBuffer(3, 2)
	n := NewPainter(buf, newCodec(t)).PaintAll(g)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"╶─╴", "   "}, buf.Lines())
	assert.Equal(t, palette.Color(4), buf.Get(1, 0).Color)
}

func TestBufferRejectsOutOfBounds(t *testing.T) {
	buf := NewBuffer(2, 2)
	assert.True(t, buf.DrawGlyph(1, 1, 'x', 1))
	assert.False(t, buf.DrawGlyph(2, 1, 'x', 1))
	assert.False(t, buf.DrawGlyph(0, -1, 'x', 1))
	assert.Equal(t, 1, buf.Draws())
	assert.Equal(t, "  \n x", buf.String())

	buf.Clear()
	assert.Equal(t, ' ', buf.Get(1, 1).Rune)
	assert.Equal(t, BufferCell{}, buf.Get(5, 5))
}
