// Package session owns one grid epoch at a time: it spawns a cohort of
// walks, advances them once per frame, paints their growth, and starts a
// fresh epoch when every walk is stuck.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/pipes/glyph"
	"github.com/lixenwraith/pipes/grid"
	"github.com/lixenwraith/pipes/palette"
	"github.com/lixenwraith/pipes/render"
	"github.com/lixenwraith/pipes/walk"
)

// ErrInvalidBounds reports unusable cohort size bounds
var ErrInvalidBounds = errors.New("invalid pipe bounds")

// Config sizes and colors each cohort
type Config struct {
	MinPipes int
	MaxPipes int
	Family   palette.Family
	Seed     int64 // 0 = time based

	Logger logrus.FieldLogger // nil = logrus standard logger
}

// Validate checks the cohort bounds
func (c Config) Validate() error {
	if c.MinPipes < 1 {
		return fmt.Errorf("%w: min pipes %d < 1", ErrInvalidBounds, c.MinPipes)
	}
	if c.MaxPipes < 1 {
		return fmt.Errorf("%w: max pipes %d < 1", ErrInvalidBounds, c.MaxPipes)
	}
	if c.MinPipes > c.MaxPipes {
		return fmt.Errorf("%w: min pipes %d > max pipes %d", ErrInvalidBounds, c.MinPipes, c.MaxPipes)
	}
	return nil
}

// Stats describes the current epoch
type Stats struct {
	Epoch   string
	Family  palette.Family
	Cohort  int // walks spawned at reset, born-dead included
	Alive   int
	Claimed int
	Area    int
	Resets  int
}

// Coverage returns the claimed fraction of the grid
func (s Stats) Coverage() float64 {
	if s.Area == 0 {
		return 0
	}
	return float64(s.Claimed) / float64(s.Area)
}

// Session is the animation state driven by a single loop goroutine
type Session struct {
	cfg     Config
	rng     *rand.Rand
	log     logrus.FieldLogger
	surface render.Surface
	codec   *glyph.Codec
	painter *render.Painter

	grid   *grid.Grid
	walks  []*walk.Walk
	state  State
	epoch  string
	family palette.Family
	cohort int
	resets int

	onExhausted func(Stats)
}

// New validates cfg and starts the first epoch sized to the surface
func New(cfg Config, surface render.Surface, codec *glyph.Codec) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Family == "" {
		cfg.Family = palette.Random
	}
	if _, err := palette.ParseFamily(string(cfg.Family)); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Session{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		log:     logger,
		surface: surface,
		codec:   codec,
		painter: render.NewPainter(surface, codec),
	}
	s.log.WithField("seed", seed).Debug("session created")
	s.Reset()
	return s, nil
}

// OnExhausted registers a hook called with the finished epoch's stats
// whenever every walk of a cohort is stuck, before the automatic reset
func (s *Session) OnExhausted(fn func(Stats)) {
	s.onExhausted = fn
}

// Reset discards the grid and spawns a fresh cohort sized to the surface
func (s *Session) Reset() {
	cols, rows := s.surface.Size()
	s.grid = grid.New(cols, rows)
	s.surface.Clear()

	s.cohort = s.cfg.MinPipes + s.rng.Intn(s.cfg.MaxPipes-s.cfg.MinPipes+1)
	colors, family, err := palette.Allocate(s.rng, s.cfg.Family, s.cohort)
	if err != nil {
		// Family and count were validated in New
		panic(err)
	}
	s.family = family

	for i := range s.walks {
		s.walks[i] = nil
	}
	s.walks = s.walks[:0]
	if s.grid.Area() > 0 {
		for i := 0; i < s.cohort; i++ {
			symbol := uint8(i % s.codec.Len())
			s.walks = append(s.walks, walk.New(s.grid, s.rng, uint8(colors[i]), symbol))
		}
	}

	s.epoch = uuid.NewString()
	s.resets++
	s.state = Running

	s.log.WithFields(logrus.Fields{
		"epoch":  s.epoch,
		"pipes":  s.cohort,
		"family": s.family,
		"cols":   cols,
		"rows":   rows,
	}).Info("session reset")
}

// Handle applies one input event. Quitting is terminal.
func (s *Session) Handle(in Input) {
	if s.state == Quitting {
		return
	}
	switch in {
	case InputQuit:
		s.state = Quitting
	case InputPauseToggle:
		if s.state == Paused {
			// The terminal may have been drawn over while paused
			s.state = Running
			s.painter.PaintAll(s.grid)
		} else {
			s.state = Paused
		}
	case InputReset, InputResize:
		s.Reset()
	}
}

// Frame advances every live walk by one full step in creation order and
// paints the result. Dead walks are culled; an empty cohort triggers a
// reset. Returns the number of growth events painted.
func (s *Session) Frame() int {
	if s.state != Running || s.grid.Area() == 0 {
		return 0
	}

	grown := 0
	live := s.walks[:0]
	for _, w := range s.walks {
		ev, ok := w.Step()
		if !ok {
			continue
		}
		s.painter.Paint(s.grid, ev.Points()...)
		grown++
		live = append(live, w)
	}
	for i := len(live); i < len(s.walks); i++ {
		s.walks[i] = nil
	}
	s.walks = live

	if len(s.walks) == 0 {
		stats := s.Stats()
		s.log.WithFields(logrus.Fields{
			"epoch":    stats.Epoch,
			"claimed":  stats.Claimed,
			"coverage": fmt.Sprintf("%.3f", stats.Coverage()),
		}).Debug("cohort exhausted")
		if s.onExhausted != nil {
			s.onExhausted(stats)
		}
		s.Reset()
	}
	return grown
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Grid returns the current epoch's grid
func (s *Session) Grid() *grid.Grid {
	return s.grid
}

// Alive returns the number of walks still in the cohort
func (s *Session) Alive() int {
	return len(s.walks)
}

// Stats snapshots the current epoch
func (s *Session) Stats() Stats {
	return Stats{
		Epoch:   s.epoch,
		Family:  s.family,
		Cohort:  s.cohort,
		Alive:   len(s.walks),
		Claimed: s.grid.Claimed(),
		Area:    s.grid.Area(),
		Resets:  s.resets,
	}
}
