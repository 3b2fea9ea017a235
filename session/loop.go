package session

import (
	"context"
	"time"
)

// Run drives the session at one frame per interval until a quit input or
// ctx cancellation, both observed at the top of a frame. Pending inputs are
// drained before each frame.
func (s *Session) Run(ctx context.Context, in InputSource, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		for ev := in.Poll(); ev != InputNone; ev = in.Poll() {
			s.Handle(ev)
		}
		if s.state == Quitting {
			return nil
		}

		s.Frame()
		s.surface.Show()
	}
}
