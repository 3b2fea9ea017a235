package grid

import "fmt"

// Verify checks edge consistency over the whole grid: bit d is set on a
// claimed cell iff its neighbour in d exists, is claimed, and has the
// reciprocal bit set. Returns the first violation found.
func (g *Grid) Verify() error {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			p := Point{Col: col, Row: row}
			c, ok := g.Get(p)
			if !ok {
				if c.Edges != 0 {
					return fmt.Errorf("empty cell %v carries edges %s", p, c.Edges.Key())
				}
				continue
			}
			for _, d := range Dirs {
				if !c.Edges.Has(d) {
					continue
				}
				n, ok := g.Neighbor(p, d)
				if !ok {
					return fmt.Errorf("cell %v opens %s off the grid", p, d)
				}
				nc, claimed := g.Get(n)
				if !claimed {
					return fmt.Errorf("cell %v opens %s into empty %v", p, d, n)
				}
				if !nc.Edges.Has(d.Opposite()) {
					return fmt.Errorf("cell %v opens %s but %v lacks %s", p, d, n, d.Opposite())
				}
			}
		}
	}
	return nil
}
