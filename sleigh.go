package xsnow

import (
	"fmt"
	"math"
)

// SleighFrames is the length of the sleigh's animation cycle.
const SleighFrames = 4

// SleighSize selects the sleigh's size class.
type SleighSize uint8

const (
	SleighNone    SleighSize = iota // no sleigh
	SleighRegular                   // small sprite set
	SleighMedium                    // medium sprite set
	SleighBig                       // large sprite set
)

var sleighSizeNames = [...]string{"none", "regular", "medium", "big"}

// String returns the preference value for the size.
func (s SleighSize) String() string {
	if int(s) < len(sleighSizeNames) {
		return sleighSizeNames[s]
	}
	return fmt.Sprintf("SleighSize(%d)", s)
}

// ParseSleighSize maps a preference value to a size. Unknown values map to
// SleighNone and report false.
func ParseSleighSize(v string) (SleighSize, bool) {
	for i, name := range sleighSizeNames {
		if v == name {
			return SleighSize(i), true
		}
	}
	return SleighNone, false
}

// SleighVariant is a size class plus whether the accented (reindeer-led)
// sprite set is used.
type SleighVariant struct {
	Size     SleighSize
	Accented bool
}

// Enabled reports whether the variant draws a sleigh at all.
func (v SleighVariant) Enabled() bool {
	return v.Size != SleighNone && v.Size <= SleighBig
}

// Index returns the image-set index in [0, 6): plain and accented sets
// alternate per size class. Returns -1 for a disabled variant.
func (v SleighVariant) Index() int {
	if !v.Enabled() {
		return -1
	}
	i := 2 * (int(v.Size) - 1)
	if v.Accented {
		i++
	}
	return i
}

// SleighConfig tunes the traversal state machine.
type SleighConfig struct {
	Chance     int     // 1-in-N per-tick launch chance while idle
	Step       float64 // pixels per tick while running
	StartX     float64 // launch position, left of the viewport
	ExitMargin float64 // distance past the right edge at which the run ends
	FrameEvery float64 // animation advances each time X crosses a multiple of this
	TopMin     int     // top of the launch band
	TopBand    int     // height of the launch band
}

// DefaultSleighConfig returns the stock traversal tuning.
func DefaultSleighConfig() SleighConfig {
	return SleighConfig{
		Chance:     200,
		Step:       5,
		StartX:     -300,
		ExitMargin: 300,
		FrameEvery: 15,
		TopMin:     30,
		TopBand:    100,
	}
}

// Sleigh is the optional flying actor. It is idle (off-screen, not drawn)
// until a launch roll succeeds, then crosses left to right and goes idle again
// past the right edge.
type Sleigh struct {
	X, Y    float64
	Frame   int
	Running bool
	Variant SleighVariant

	config SleighConfig
}

// NewSleigh creates an idle sleigh for the given variant.
func NewSleigh(variant SleighVariant, cfg SleighConfig) *Sleigh {
	def := DefaultSleighConfig()
	if cfg.Chance <= 0 {
		cfg.Chance = def.Chance
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.FrameEvery <= 0 {
		cfg.FrameEvery = def.FrameEvery
	}
	return &Sleigh{
		X:       cfg.StartX,
		Y:       float64(cfg.TopMin),
		Variant: variant,
		config:  cfg,
	}
}

// Config returns the tuning in use.
func (s *Sleigh) Config() SleighConfig {
	return s.config
}

// Advance runs one tick of the traversal and reports whether the sleigh
// launched on this tick. The launching tick only places the sleigh at
// StartX; it starts moving on the next tick.
func (s *Sleigh) Advance(r *RNG, vp Viewport) (launched bool) {
	if !s.Running {
		if !r.OneIn(s.config.Chance) {
			return false
		}
		s.Running = true
		s.X = s.config.StartX
		s.Y = float64(s.config.TopMin + r.Intn(s.config.TopBand))
		s.Frame = r.Intn(SleighFrames)
		return true
	}

	prev := s.X
	s.X += s.config.Step
	if math.Floor(prev/s.config.FrameEvery) != math.Floor(s.X/s.config.FrameEvery) {
		s.Frame = (s.Frame + 1) % SleighFrames
	}

	if s.X > float64(vp.Width)+s.config.ExitMargin {
		s.Running = false
	}
	return false
}
