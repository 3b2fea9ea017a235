package render

import (
	"strings"

	"github.com/lixenwraith/pipes/palette"
)

// BufferCell is one character slot of a Buffer
type BufferCell struct {
	Rune  rune
	Color palette.Color
}

// Buffer is an in-memory Surface, row-major. Used for headless output.
type Buffer struct {
	cols, rows int
	cells      []BufferCell
	draws      int
}

// NewBuffer creates a blank buffer
func NewBuffer(cols, rows int) *Buffer {
	b := &Buffer{cols: max(cols, 0), rows: max(rows, 0)}
	b.cells = make([]BufferCell, b.cols*b.rows)
	b.Clear()
	return b
}

// Size returns buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.cols, b.rows
}

// DrawGlyph writes a cell; out-of-bounds writes are rejected
func (b *Buffer) DrawGlyph(col, row int, ch rune, color palette.Color) bool {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return false
	}
	b.cells[row*b.cols+col] = BufferCell{Rune: ch, Color: color}
	b.draws++
	return true
}

// Clear fills with spaces
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = BufferCell{Rune: ' '}
	}
}

// Show is a no-op
func (b *Buffer) Show() {}

// Get returns the cell at (col,row); out of bounds returns a zero cell
func (b *Buffer) Get(col, row int) BufferCell {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return BufferCell{}
	}
	return b.cells[row*b.cols+col]
}

// Draws returns the number of accepted DrawGlyph calls
func (b *Buffer) Draws() int {
	return b.draws
}

// Lines returns each row as a string
func (b *Buffer) Lines() []string {
	lines := make([]string, b.rows)
	var sb strings.Builder
	for row := 0; row < b.rows; row++ {
		sb.Reset()
		for col := 0; col < b.cols; col++ {
			sb.WriteRune(b.cells[row*b.cols+col].Rune)
		}
		lines[row] = sb.String()
	}
	return lines
}

// String joins Lines with newlines
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}
