package grid

import "fmt"

// Dir is a cardinal direction. The numeric order N, E, S, W is fixed and
// shared by walks, masks and symbol tables.
type Dir uint8

const (
	North Dir = iota
	East
	South
	West
)

// Dirs lists all directions in mask order
var Dirs = [4]Dir{North, East, South, West}

var dirDelta = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Opposite returns (d+2) mod 4
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Delta returns the (col,row) offset of one step in d
func (d Dir) Delta() Point {
	return dirDelta[d%4]
}

func (d Dir) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Dir(%d)", uint8(d))
}

// Mask records open edges. Bits are packed so the binary rendering of the
// value reads N,E,S,W from left to right: N=0b1000 ... W=0b0001.
type Mask uint8

// Bit returns the mask bit for d
func Bit(d Dir) Mask {
	return 1 << (3 - d%4)
}

// Has reports whether the edge in d is open
func (m Mask) Has(d Dir) bool {
	return m&Bit(d) != 0
}

// With returns m with the edge in d opened
func (m Mask) With(d Dir) Mask {
	return m | Bit(d)
}

// Key renders the mask as four '0'/'1' characters in N,E,S,W order
func (m Mask) Key() string {
	return fmt.Sprintf("%04b", uint8(m&0x0F))
}

// Point is a (col,row) grid coordinate
type Point struct {
	Col, Row int
}

// Step returns the point one cell away in d
func (p Point) Step(d Dir) Point {
	dp := d.Delta()
	return Point{Col: p.Col + dp.Col, Row: p.Row + dp.Row}
}
