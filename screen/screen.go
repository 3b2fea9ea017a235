// Package screen adapts a tcell screen to the pipes drawing surface and
// input source.
package screen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pipes/palette"
	"github.com/lixenwraith/pipes/session"
)

const eventBuffer = 64

// Screen implements render.Surface and session.InputSource over tcell
type Screen struct {
	tcs    tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	styles [palette.MaxColor + 1]tcell.Style

	cols, rows int
}

// New creates a Screen on the process terminal
func New() (*Screen, error) {
	tcs, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Wrap(tcs), nil
}

// Wrap adapts an existing tcell screen, e.g. a simulation screen
func Wrap(tcs tcell.Screen) *Screen {
	s := &Screen{
		tcs:    tcs,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	for i := range s.styles {
		s.styles[i] = styleFor(palette.Color(i))
	}
	return s
}

// styleFor maps a palette index to a tcell style. Index 0 keeps the
// terminal's default foreground; 8..15 are bold variants of 0..7.
func styleFor(c palette.Color) tcell.Style {
	st := tcell.StyleDefault
	if c == 0 {
		return st
	}
	st = st.Foreground(tcell.PaletteColor(int(c.Base())))
	if c.Bright() {
		st = st.Bold(true)
	}
	return st
}

// Init enters the terminal's full-screen mode and starts forwarding events
func (s *Screen) Init() error {
	if err := s.tcs.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	s.tcs.HideCursor()
	s.tcs.Clear()
	s.cols, s.rows = s.tcs.Size()

	go s.pump()
	return nil
}

// pump forwards blocking tcell events into the buffered channel so Poll
// never blocks
func (s *Screen) pump() {
	for {
		ev := s.tcs.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Fini restores the terminal. Safe to call more than once.
func (s *Screen) Fini() {
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}
	s.tcs.Fini()
}

// Size returns the terminal dimensions
func (s *Screen) Size() (int, int) {
	return s.tcs.Size()
}

// DrawGlyph sets one cell; writes outside the screen are rejected
func (s *Screen) DrawGlyph(col, row int, ch rune, color palette.Color) bool {
	cols, rows := s.tcs.Size()
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return false
	}
	s.tcs.SetContent(col, row, ch, nil, s.styles[color&palette.MaxColor])
	return true
}

// Clear blanks the screen
func (s *Screen) Clear() {
	s.tcs.Clear()
}

// Show flushes pending changes
func (s *Screen) Show() {
	s.tcs.Show()
}

// Poll returns the next pending control input without blocking
func (s *Screen) Poll() session.Input {
	for {
		select {
		case ev := <-s.events:
			if in := s.translate(ev); in != session.InputNone {
				return in
			}
		default:
			return session.InputNone
		}
	}
}

func (s *Screen) translate(ev tcell.Event) session.Input {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return keyInput(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols == s.cols && rows == s.rows {
			return session.InputNone
		}
		s.cols, s.rows = cols, rows
		s.tcs.Sync()
		return session.InputResize
	}
	return session.InputNone
}

func keyInput(ev *tcell.EventKey) session.Input {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return session.InputQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return session.InputQuit
		case 'p', 'P':
			return session.InputPauseToggle
		case ' ', 'r', 'R':
			return session.InputReset
		}
	}
	return session.InputNone
}
