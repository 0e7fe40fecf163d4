// Package bells rings sleigh bells whenever a sleigh sets off.
package bells

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// A jingle is four strikes, the last one held a little longer.
const (
	strikeLength = 140 * time.Millisecond
	finalLength  = 420 * time.Millisecond
)

// strikePitches are the fundamentals of the jingle, in Hz.
var strikePitches = [4]float64{1318.5, 1567.98, 1318.5, 1975.53}

// Player mixes jingles onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player. volume is linear, 1 being full scale.
func NewPlayer(volume float64) *Player {
	return &Player{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Ring queues one jingle. It does nothing until Initialize succeeds.
func (p *Player) Ring() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(Jingle(sampleRate, p.volume))
	speaker.Unlock()
}

// Close silences anything still ringing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	p.mixer.Clear()
	p.initialized = false
}

// Jingle returns the full jingle at rate.
func Jingle(rate beep.SampleRate, volume float64) beep.Streamer {
	strikes := make([]beep.Streamer, 0, len(strikePitches))
	for i, f := range strikePitches {
		d := strikeLength
		if i == len(strikePitches)-1 {
			d = finalLength
		}
		strikes = append(strikes, newStrike(f, d, rate))
	}
	return withVolume(beep.Seq(strikes...), volume)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Inharmonic partials give the metallic ring. Amplitudes sum to 1.
var partials = [...]struct{ ratio, amp, decay float64 }{
	{1, 0.55, 9},
	{2.76, 0.3, 16},
	{5.4, 0.15, 28},
}

// strike is a single struck bell: a few decaying sine partials.
type strike struct {
	freq     float64
	rate     beep.SampleRate
	position int
	length   int
}

func newStrike(freq float64, d time.Duration, rate beep.SampleRate) *strike {
	return &strike{freq: freq, rate: rate, length: rate.N(d)}
}

func (s *strike) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= s.length {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.length {
			return i, true
		}
		t := float64(s.position) / float64(s.rate)
		var v float64
		for _, p := range partials {
			v += p.amp * math.Exp(-p.decay*t) * math.Sin(2*math.Pi*s.freq*p.ratio*t)
		}
		samples[i][0] = v
		samples[i][1] = v
		s.position++
	}
	return len(samples), true
}

func (s *strike) Err() error { return nil }
