// Package chime plays a short tone when a pipe cohort is exhausted.
package chime

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Two rising notes, A5 then E6
	firstNote  = 880.0
	secondNote = 1318.5

	noteDuration = 90 * time.Millisecond
	attack       = 5 * time.Millisecond
	release      = 60 * time.Millisecond

	// Peak amplitude of a single note before the user volume
	noteLevel = 0.3
)

// Chime owns the speaker for the lifetime of the process
type Chime struct {
	volume float64
	play   func(...beep.Streamer)
	closer func()
}

// New initializes the speaker. volume is a linear gain in (0,1].
func New(volume float64) (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Chime{volume: volume, play: speaker.Play, closer: speaker.Close}, nil
}

// Play queues the chime without blocking
func (c *Chime) Play() {
	c.play(Tone(c.volume))
}

// Close releases the speaker
func (c *Chime) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Tone builds the chime stream: two enveloped sine notes in sequence
func Tone(volume float64) beep.Streamer {
	return withVolume(beep.Seq(
		note(firstNote),
		note(secondNote),
	), volume)
}

func note(freq float64) beep.Streamer {
	n := sampleRate.N(noteDuration)
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	shaped := newEnvelope(tone, noteDuration, attack, release, sampleRate)
	return beep.Take(n, withVolume(shaped, noteLevel))
}

// envelope applies a linear attack and release over a fixed length
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, att, rel time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(att),
		release:  rate.N(rel),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = math.Max(0, math.Min(vol, float64(left)/float64(e.release)))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume applies a linear gain; log2(0) is -Inf so zero means silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
