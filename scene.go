package xsnow

import (
	"errors"
	"hash/fnv"
	"math"
	"time"
)

// ErrInvalidViewport is returned by Reset for a viewport with a non-positive
// dimension. The scene keeps its previous state and remembers the config so
// a later Resize can apply it.
var ErrInvalidViewport = errors.New("xsnow: invalid viewport")

// Scene owns the wind, the flakes, the trees and the optional sleigh, and
// turns their state into a Frame each tick.
//
// A Scene is not safe for concurrent use. Hosts serialize Reset, Tick,
// SetParallaxOffset and AppendFrame; Engine does this with a mutex.
type Scene struct {
	// WindTuning and SleighTuning are applied on the next Reset.
	WindTuning   WindConfig
	SleighTuning SleighConfig
	// TickInterval is the nominal time between ticks. It only sets the
	// parallax spring's time step.
	TickInterval time.Duration

	palette *Palette
	rng     *RNG

	wind   *Wind
	field  *Field
	trees  *DecorationLayer
	sleigh *Sleigh

	cfg      Config
	vp       Viewport
	ready    bool
	ticks    uint64
	launched bool

	fade     *fade
	parallax parallax

	debug bool
	stats debugStats
}

// NewScene creates a scene that draws with the given palette and draws random
// values from rng. A nil palette is allowed for headless simulation; draw
// commands then carry nil images. A nil rng is seeded from the clock.
func NewScene(palette *Palette, rng *RNG) *Scene {
	if rng == nil {
		rng = NewRNG(uint64(time.Now().UnixNano()))
	}
	return &Scene{
		WindTuning:   DefaultWindConfig(),
		SleighTuning: DefaultSleighConfig(),
		TickInterval: DefaultInterval,
		palette:      palette,
		rng:          rng,
		cfg:          DefaultConfig(),
		wind:         NewWind(DefaultWindConfig(), false),
		field:        NewField(MarginTight),
		trees:        NewDecorationLayer(0),
		fade:         newFade(0),
		parallax:     newParallax(false, DefaultInterval),
	}
}

// Reset rebuilds every component for the given viewport and config. The new
// state is built aside and swapped in whole, so a failed Reset leaves the
// previous scene untouched and a successful one leaves nothing of it behind.
func (s *Scene) Reset(width, height int, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	vp := Viewport{Width: width, Height: height}
	if !vp.Valid() {
		return ErrInvalidViewport
	}

	trees := NewDecorationLayer(cfg.ParallaxDamping)
	trees.Reset(s.rng, cfg.Trees, vp, cfg.TreeInset)
	field := NewField(cfg.Margin)
	field.Reset(s.rng, cfg.Flakes, vp, cfg.FallSpeed)
	wind := NewWind(s.WindTuning, cfg.Wind)
	var sleigh *Sleigh
	if cfg.Sleigh.Enabled() {
		sleigh = NewSleigh(cfg.Sleigh, s.SleighTuning)
	}

	offset := s.parallax.target
	p := newParallax(cfg.SmoothParallax, s.TickInterval)
	p.pos = s.parallax.pos
	p.set(offset)

	s.vp = vp
	s.trees = trees
	s.field = field
	s.wind = wind
	s.sleigh = sleigh
	s.fade = newFade(cfg.FadeTicks)
	s.parallax = p
	s.launched = false
	s.ready = true
	return nil
}

// Resize resets the scene for a new viewport, keeping the current config.
func (s *Scene) Resize(width, height int) error {
	return s.Reset(width, height, s.cfg)
}

// Tick advances the simulation one step: wind first, since the flakes consume
// it, then the sleigh, then the flakes. Tick is a no-op until the first
// successful Reset.
func (s *Scene) Tick() {
	if !s.ready {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.ticks++
	s.wind.Update(s.rng)
	s.launched = false
	if s.sleigh != nil {
		s.launched = s.sleigh.Advance(s.rng, s.vp)
	}
	s.field.Advance(s.rng, s.wind.Current, s.vp)
	s.fade.update()
	s.parallax.step()

	if s.debug {
		s.stats.record(time.Since(t0), s.launched)
		if s.stats.ticks >= debugEvery {
			s.debugLog()
		}
	}
}

// SetParallaxOffset sets the host's horizontal page offset in pixels. It only
// shifts where trees are drawn; stored positions never change.
func (s *Scene) SetParallaxOffset(px float64) {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return
	}
	s.parallax.set(px)
}

// ParallaxOffset returns the offset currently applied to trees, before
// damping.
func (s *Scene) ParallaxOffset() float64 {
	return s.parallax.pos
}

// AppendFrame writes the current state into dst, replacing its contents.
// Trees draw first, then the sleigh, then the snow.
func (s *Scene) AppendFrame(dst *Frame) {
	dst.Reset()
	if !s.ready {
		return
	}
	dst.Tick = s.ticks
	dst.Viewport = s.vp
	dst.SleighLaunched = s.launched
	alpha := s.fade.alpha

	var tree ImageHandle
	if s.palette != nil {
		tree = s.palette.Tree
	}
	for i, d := range s.trees.Items() {
		dst.Commands = append(dst.Commands, DrawCommand{
			Layer: LayerTrees,
			Image: tree,
			X:     s.trees.DrawX(i, s.parallax.pos),
			Y:     d.Y,
			Alpha: alpha,
		})
	}

	if s.sleigh != nil && s.sleigh.Running {
		var img ImageHandle
		if s.palette != nil {
			img = s.palette.Sleighs[s.sleigh.Variant.Index()][s.sleigh.Frame]
		}
		dst.Commands = append(dst.Commands, DrawCommand{
			Layer: LayerSleigh,
			Image: img,
			X:     s.sleigh.X,
			Y:     s.sleigh.Y,
			Alpha: alpha,
		})
	}

	for _, f := range s.field.Flakes() {
		var img ImageHandle
		if s.palette != nil {
			img = s.palette.Flakes[f.Image]
		}
		dst.Commands = append(dst.Commands, DrawCommand{
			Layer: LayerSnow,
			Image: img,
			X:     f.X,
			Y:     f.Y,
			Alpha: alpha,
		})
	}
}

// Ready reports whether the scene has been reset against a valid viewport.
func (s *Scene) Ready() bool {
	return s.ready
}

// Ticks returns the number of ticks since creation.
func (s *Scene) Ticks() uint64 {
	return s.ticks
}

// Config returns the most recently requested config, which may still be
// waiting for a valid viewport.
func (s *Scene) Config() Config {
	return s.cfg
}

// Viewport returns the viewport of the last successful Reset.
func (s *Scene) Viewport() Viewport {
	return s.vp
}

// Wind returns the wind model. The returned value MUST NOT be mutated.
func (s *Scene) Wind() *Wind {
	return s.wind
}

// Flakes returns the live flakes. The returned slice MUST NOT be mutated.
func (s *Scene) Flakes() []Flake {
	return s.field.Flakes()
}

// Decorations returns the placed trees. The returned slice MUST NOT be
// mutated.
func (s *Scene) Decorations() []Decoration {
	return s.trees.Items()
}

// Sleigh returns the sleigh, or nil when the config has none.
func (s *Scene) Sleigh() *Sleigh {
	return s.sleigh
}

// RNG returns the scene's random source.
func (s *Scene) RNG() *RNG {
	return s.rng
}

// SetDebugMode enables or disables periodic timing reports on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.stats = debugStats{lastFlush: time.Now()}
}

// Digest returns an FNV-64a hash over the complete simulation state. Two
// scenes with equal digests hold bit-identical flakes, trees, wind and sleigh.
func (s *Scene) Digest() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }

	put(s.ticks)
	putF(s.wind.Current)
	putF(s.wind.Target)
	for _, f := range s.field.Flakes() {
		putF(f.X)
		putF(f.Y)
		putF(f.VSpeed)
		putF(f.HSpeed)
		put(uint64(f.Image))
	}
	for _, d := range s.trees.Items() {
		putF(d.X)
		putF(d.Y)
	}
	if s.sleigh != nil {
		putF(s.sleigh.X)
		putF(s.sleigh.Y)
		put(uint64(s.sleigh.Frame))
		if s.sleigh.Running {
			put(1)
		} else {
			put(0)
		}
	}
	return h.Sum64()
}
