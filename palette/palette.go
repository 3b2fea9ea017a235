// Package palette assigns terminal color indices to a cohort of pipes.
//
// Indices 0..7 are the base terminal colors; 8..15 are the bold/bright
// variant of index-8.
package palette

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Color is a terminal color index in 0..15
type Color uint8

// MaxColor is the highest valid index
const MaxColor Color = 15

// Base returns the 0..7 color this index is drawn with
func (c Color) Base() uint8 {
	if c >= 8 {
		return uint8(c - 8)
	}
	return uint8(c)
}

// Bright reports whether the index implies the bold variant
func (c Color) Bright() bool {
	return c >= 8
}

// Family selects a base hue list
type Family string

const (
	Basic   Family = "basic"
	Rainbow Family = "rainbow"
	Drab    Family = "drab"
	Random  Family = "random"
)

// ErrUnknownFamily is returned by ParseFamily and Allocate
var ErrUnknownFamily = errors.New("unknown color family")

// Concrete lists the families Random chooses among
var Concrete = []Family{Basic, Rainbow, Drab}

var hues = map[Family][]Color{
	Basic:   {1, 2, 4},
	Rainbow: {1, 2, 3, 4, 5, 9, 10, 11, 12, 13},
	Drab:    {0, 7, 8, 15},
}

// ParseFamily accepts a family name, case-insensitive
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if f == Random {
		return f, nil
	}
	if _, ok := hues[f]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// Hues returns a copy of the base list for a concrete family
func Hues(f Family) []Color {
	base, ok := hues[f]
	if !ok {
		return nil
	}
	out := make([]Color, len(base))
	copy(out, base)
	return out
}

// Allocate returns count colors for family: count/len full copies of the
// base hues plus count%len distinct hues, shuffled. Every hue appears at
// least count/len times. Random is resolved to a concrete family first;
// the resolved family is returned.
func Allocate(rng *rand.Rand, family Family, count int) ([]Color, Family, error) {
	if count < 0 {
		return nil, "", fmt.Errorf("palette: negative count %d", count)
	}
	if family == Random {
		family = Concrete[rng.Intn(len(Concrete))]
	}
	base, ok := hues[family]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}

	pool := make([]Color, 0, count)
	for i := 0; i < count/len(base); i++ {
		pool = append(pool, base...)
	}
	for _, i := range rng.Perm(len(base))[:count%len(base)] {
		pool = append(pool, base[i])
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool, family, nil
}
