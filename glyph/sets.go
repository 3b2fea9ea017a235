package glyph

// Tables are indexed by mask value, i.e. by the N,E,S,W key read as binary.
// Index 0 is the blank filler painted ahead of the frontier.

var ascii = [16]rune{
	' ', '-', '|', '\\',
	'-', '-', '/', 'v',
	'|', '/', '|', '<',
	'\\', '^', '>', '+',
}

var thick = [16]rune{
	' ', '╸', '╻', '┓',
	'╺', '━', '┏', '┳',
	'╹', '┛', '┃', '┫',
	'┗', '┻', '┣', '╋',
}

var thin = [16]rune{
	' ', '╴', '╷', '┐',
	'╶', '─', '┌', '┬',
	'╵', '┘', '│', '┤',
	'└', '┴', '├', '┼',
}

var double = [16]rune{
	' ', '═', '║', '╗',
	'═', '═', '╔', '╦',
	'║', '╝', '║', '╣',
	'╚', '╩', '╠', '╬',
}

// Set names
const (
	ASCII  = "ascii"
	Thick  = "thick"
	Thin   = "thin"
	Double = "double"
)

// DefaultSet is used when no symbol set is configured
const DefaultSet = Double

var registry = []*Set{
	{Name: ASCII, glyphs: ascii},
	{Name: Thick, glyphs: thick},
	{Name: Thin, glyphs: thin},
	{Name: Double, glyphs: double},
}
