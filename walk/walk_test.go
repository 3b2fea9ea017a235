package walk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pipes/grid"
)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// runToDeath steps w until it dies and returns the number of growths
func runToDeath(t *testing.T, w *Walk, limit int) int {
	t.Helper()
	grown := 0
	for w.Alive() {
		_, ok := w.Step()
		if !ok {
			break
		}
		grown++
		require.LessOrEqual(t, grown, limit, "walk kept growing past grid area")
	}
	return grown
}

func TestSeedCollisionBornDead(t *testing.T) {
	g := grid.New(1, 1)
	g.Claim(grid.Point{Col: 0, Row: 0}, grid.Cell{Color: 9})

	w := New(g, newRNG(1), 2, 0)
	assert.False(t, w.Alive())
	assert.Equal(t, 0, w.Claimed())
	assert.Equal(t, 1, g.Claimed(), "pre-fill must be the only claimed cell")

	_, ok := w.Step()
	assert.False(t, ok)
	assert.Equal(t, Dead, w.Advance())

	c, _ := g.Get(grid.Point{Col: 0, Row: 0})
	assert.Equal(t, uint8(9), c.Color, "pre-filled cell must not be overwritten")
}

func TestZeroAreaGridBornDead(t *testing.T) {
	w := New(grid.New(0, 5), newRNG(1), 1, 0)
	assert.False(t, w.Alive())
}

func TestSingleCellWalk(t *testing.T) {
	g := grid.New(1, 1)
	w := New(g, newRNG(7), 4, 2)
	require.True(t, w.Alive())
	assert.Equal(t, 1, g.Claimed())

	// No neighbours: first advance pops, second reports dead
	assert.Equal(t, Backtracked, w.Advance())
	assert.False(t, w.Alive())
	assert.Equal(t, Dead, w.Advance())
}

func TestAdvanceGrowsIntoOnlyCandidate(t *testing.T) {
	g := grid.New(2, 1)
	w := NewAt(g, newRNG(3), grid.Point{Col: 0, Row: 0}, 5, 1)

	require.Equal(t, Grown, w.Advance())
	head, ok := w.Head()
	require.True(t, ok)
	assert.Equal(t, grid.Point{Col: 1, Row: 0}, head)
	assert.Equal(t, 2, w.Depth())

	left, _ := g.Get(grid.Point{Col: 0, Row: 0})
	right, _ := g.Get(grid.Point{Col: 1, Row: 0})
	assert.Equal(t, "0100", left.Edges.Key())
	assert.Equal(t, "0001", right.Edges.Key())
	assert.Equal(t, uint8(5), right.Color)
	assert.Equal(t, uint8(1), right.Symbol)
}

func TestStepAtomicity(t *testing.T) {
	g := grid.New(12, 7)
	w := New(g, newRNG(42), 1, 0)
	require.True(t, w.Alive())

	for {
		before := g.Claimed()
		ev, ok := w.Step()
		if !ok {
			// Death mutates nothing
			assert.Equal(t, before, g.Claimed())
			assert.False(t, w.Alive())
			break
		}

		assert.True(t, w.Alive())
		assert.Equal(t, before+1, g.Claimed(), "full step must claim exactly one cell")

		head, _ := w.Head()
		assert.Equal(t, head, ev.Head)
		assert.Equal(t, []grid.Point{ev.Head, ev.Prev}, ev.Points())

		// Prev is adjacent to Head and the pair is linked
		linked := false
		for _, d := range grid.Dirs {
			if ev.Prev.Step(d) == ev.Head {
				pc, _ := g.Get(ev.Prev)
				hc, _ := g.Get(ev.Head)
				linked = pc.Edges.Has(d) && hc.Edges.Has(d.Opposite())
			}
		}
		assert.True(t, linked, "event endpoints must be linked")
	}
	require.NoError(t, g.Verify())
}

func TestTerminationBoundedByArea(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := grid.New(9, 6)
		w := New(g, newRNG(seed), 1, 0)
		grown := runToDeath(t, w, g.Area())
		assert.Equal(t, grown+1, w.Claimed())
		assert.LessOrEqual(t, w.Claimed(), g.Area())
		require.NoError(t, g.Verify())
	}
}

func TestThreeByThreeScenario(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g := grid.New(3, 3)
		w := NewAt(g, newRNG(seed), grid.Point{Col: 1, Row: 1}, 2, 0)
		runToDeath(t, w, g.Area())

		// From the centre the walk enters the outer ring and can only follow
		// it, so it never branches and covers all nine cells in one run.
		assert.Equal(t, 9, g.Claimed())
		assert.Equal(t, g.Claimed(), w.Claimed())
		assert.Equal(t, w.Claimed(), w.MaxDepth())
		require.NoError(t, g.Verify())
	}
}

func TestSingleWalkFillsReachableCells(t *testing.T) {
	// Depth-first growth on an empty grid backtracks only when every
	// neighbour is taken, so a lone walk claims the whole grid.
	for seed := int64(0); seed < 20; seed++ {
		g := grid.New(5, 4)
		w := New(g, newRNG(seed), 1, 0)
		runToDeath(t, w, g.Area())
		assert.Equal(t, g.Area(), g.Claimed())
	}
}

func TestNoDoubleClaimAcrossWalks(t *testing.T) {
	g := grid.New(20, 10)
	rng := newRNG(99)

	walks := make([]*Walk, 0, 8)
	for i := 0; i < 8; i++ {
		walks = append(walks, New(g, rng, uint8(i), uint8(i)))
	}

	owners := make(map[grid.Point]uint8)
	for _, w := range walks {
		if h, ok := w.Head(); ok {
			owners[h] = w.Color()
		}
	}

	for alive := true; alive; {
		alive = false
		for _, w := range walks {
			ev, ok := w.Step()
			if !ok {
				continue
			}
			alive = true
			_, taken := owners[ev.Head]
			require.False(t, taken, "cell %v claimed twice", ev.Head)
			owners[ev.Head] = w.Color()
		}
	}

	total := 0
	for _, w := range walks {
		total += w.Claimed()
	}
	assert.Equal(t, g.Claimed(), total)
	assert.Len(t, owners, total)

	// Every cell carries its owner's color and symbol
	for p, owner := range owners {
		c, ok := g.Get(p)
		require.True(t, ok)
		assert.Equal(t, owner, c.Color)
		assert.Equal(t, owner, c.Symbol)
	}
	require.NoError(t, g.Verify())
}
