// Package render turns pipe growth events into draw calls on a character
// surface.
package render

import "github.com/lixenwraith/pipes/palette"

// Surface is the character grid pipes are drawn on
type Surface interface {
	// Size returns the current addressable dimensions
	Size() (cols, rows int)

	// DrawGlyph writes one rune. Best effort: returns false when the
	// surface rejects the write, e.g. at its boundary.
	DrawGlyph(col, row int, ch rune, color palette.Color) bool

	// Clear blanks the whole surface
	Clear()

	// Show flushes pending draws
	Show()
}
