// Package glyph maps 4-bit edge masks to line-drawing runes.
package glyph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/pipes/grid"
)

// ErrUnknownSet is returned for a symbol-set name with no table
var ErrUnknownSet = errors.New("unknown symbol set")

// Blank is the glyph for mask 0000 in every set
const Blank = ' '

// Set is a named table of one glyph per edge mask
type Set struct {
	Name   string
	glyphs [16]rune
}

// Glyph returns the rune for m
func (s *Set) Glyph(m grid.Mask) rune {
	return s.glyphs[m&0x0F]
}

// Names lists the available sets in registry order
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a set by case-insensitive name
func Lookup(name string) (*Set, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range registry {
		if s.Name == key {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownSet, name, strings.Join(Names(), ", "))
}

// Box-drawing runes are East Asian ambiguous; pipes are always laid out
// one cell per rune.
var narrow = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Codec resolves (symbol index, mask) pairs against an ordered list of sets
type Codec struct {
	sets []*Set
}

// NewCodec builds a codec from set names. No names selects DefaultSet.
// Every glyph must occupy exactly one terminal column.
func NewCodec(names ...string) (*Codec, error) {
	if len(names) == 0 {
		names = []string{DefaultSet}
	}

	c := &Codec{sets: make([]*Set, 0, len(names))}
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		for i, r := range s.glyphs {
			if w := narrow.RuneWidth(r); w != 1 {
				return nil, fmt.Errorf("symbol set %s: glyph %q for %s has width %d", s.Name, r, grid.Mask(i).Key(), w)
			}
		}
		c.sets = append(c.sets, s)
	}
	return c, nil
}

// Len returns the number of configured sets
func (c *Codec) Len() int {
	return len(c.sets)
}

// Set returns the set at symbol index i, wrapping modulo Len
func (c *Codec) Set(i int) *Set {
	return c.sets[i%len(c.sets)]
}

// Glyph returns the rune for mask m drawn with symbol set i
func (c *Codec) Glyph(i int, m grid.Mask) rune {
	return c.Set(i).Glyph(m)
}
