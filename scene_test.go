package xsnow

import (
	"errors"
	"math"
	"testing"
)

func newTestScene(t *testing.T, seed uint64) *Scene {
	t.Helper()
	p, err := LoadPalette(testLoader)
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	return NewScene(p, NewRNG(seed))
}

func TestSceneTickBeforeReset(t *testing.T) {
	s := NewScene(nil, NewRNG(1))
	s.Tick()
	if s.Ready() {
		t.Error("scene should not be ready before Reset")
	}
	if s.Ticks() != 0 {
		t.Errorf("Ticks = %d, want 0", s.Ticks())
	}
	var f Frame
	s.AppendFrame(&f)
	if len(f.Commands) != 0 {
		t.Errorf("frame has %d commands, want 0", len(f.Commands))
	}
}

func TestSceneReset(t *testing.T) {
	s := newTestScene(t, 1)
	if err := s.Reset(640, 480, DefaultConfig()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !s.Ready() {
		t.Fatal("scene should be ready")
	}
	if len(s.Flakes()) != 100 {
		t.Errorf("flakes = %d, want 100", len(s.Flakes()))
	}
	if len(s.Decorations()) != 20 {
		t.Errorf("trees = %d, want 20", len(s.Decorations()))
	}
	if s.Sleigh() != nil {
		t.Error("default config should have no sleigh")
	}
	if s.Viewport() != (Viewport{640, 480}) {
		t.Errorf("Viewport = %v", s.Viewport())
	}
}

func TestSceneResetIdempotent(t *testing.T) {
	s := newTestScene(t, 2)
	cfg := DefaultConfig()
	cfg.Flakes = 30
	for i := 0; i < 3; i++ {
		if err := s.Reset(320, 240, cfg); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		for j := 0; j < 10; j++ {
			s.Tick()
		}
	}
	if len(s.Flakes()) != 30 {
		t.Errorf("flakes = %d after repeated resets, want 30", len(s.Flakes()))
	}
	if len(s.Decorations()) != 20 {
		t.Errorf("trees = %d after repeated resets, want 20", len(s.Decorations()))
	}
}

func TestSceneInvalidViewportDefers(t *testing.T) {
	s := newTestScene(t, 3)
	cfg := DefaultConfig()
	cfg.Flakes = 12

	err := s.Reset(0, 480, cfg)
	if !errors.Is(err, ErrInvalidViewport) {
		t.Fatalf("Reset(0, 480) = %v, want ErrInvalidViewport", err)
	}
	if s.Ready() {
		t.Fatal("scene should not be ready")
	}
	if s.Config().Flakes != 12 {
		t.Errorf("Config().Flakes = %d, want 12", s.Config().Flakes)
	}

	if err := s.Resize(200, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if len(s.Flakes()) != 12 {
		t.Errorf("flakes = %d, want 12", len(s.Flakes()))
	}
}

func TestSceneInvalidViewportKeepsState(t *testing.T) {
	s := newTestScene(t, 4)
	if err := s.Reset(640, 480, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	before := s.Digest()
	if err := s.Resize(640, -1); !errors.Is(err, ErrInvalidViewport) {
		t.Fatalf("Resize = %v", err)
	}
	if s.Digest() != before {
		t.Error("failed Resize changed the scene")
	}
	if !s.Ready() {
		t.Error("scene should stay ready")
	}
}

func TestSceneInvalidConfigKeepsState(t *testing.T) {
	s := newTestScene(t, 5)
	if err := s.Reset(640, 480, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	bad := DefaultConfig()
	bad.Flakes = -1
	var ce *ConfigError
	if err := s.Reset(640, 480, bad); !errors.As(err, &ce) {
		t.Fatalf("Reset = %v, want *ConfigError", err)
	}
	if len(s.Flakes()) != 100 {
		t.Errorf("flakes = %d, want 100", len(s.Flakes()))
	}
	if s.Config().Flakes != 100 {
		t.Errorf("Config().Flakes = %d, want 100", s.Config().Flakes)
	}
}

func TestSceneDeterministic(t *testing.T) {
	run := func(seed uint64) uint64 {
		s := NewScene(nil, NewRNG(seed))
		cfg := DefaultConfig()
		cfg.Sleigh = SleighVariant{Size: SleighMedium}
		if err := s.Reset(800, 600, cfg); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 500; i++ {
			s.Tick()
		}
		s.SetParallaxOffset(40)
		_ = s.Resize(400, 300)
		for i := 0; i < 500; i++ {
			s.Tick()
		}
		return s.Digest()
	}
	if a, b := run(77), run(77); a != b {
		t.Errorf("same seed: digests %x != %x", a, b)
	}
	if a, b := run(77), run(78); a == b {
		t.Errorf("different seeds: digests both %x", a)
	}
}

func TestSceneWindDisabled(t *testing.T) {
	s := newTestScene(t, 6)
	cfg := DefaultConfig()
	cfg.Wind = false
	if err := s.Reset(640, 480, cfg); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		s.Tick()
		if s.Wind().Current != 0 {
			t.Fatalf("tick %d: wind = %v, want 0", i, s.Wind().Current)
		}
	}
}

func TestSceneFrameOrder(t *testing.T) {
	s := newTestScene(t, 7)
	s.SleighTuning.Chance = 1
	cfg := DefaultConfig()
	cfg.Sleigh = SleighVariant{Size: SleighBig, Accented: true}
	cfg.FadeTicks = 0
	if err := s.Reset(640, 480, cfg); err != nil {
		t.Fatal(err)
	}
	s.Tick()

	var f Frame
	s.AppendFrame(&f)
	if !f.SleighLaunched {
		t.Error("SleighLaunched = false on the launch tick")
	}
	if f.Tick != 1 {
		t.Errorf("Tick = %d, want 1", f.Tick)
	}
	if got := f.Count(LayerTrees); got != 20 {
		t.Errorf("tree commands = %d, want 20", got)
	}
	if got := f.Count(LayerSleigh); got != 1 {
		t.Errorf("sleigh commands = %d, want 1", got)
	}
	if got := f.Count(LayerSnow); got != 100 {
		t.Errorf("snow commands = %d, want 100", got)
	}
	for i := 1; i < len(f.Commands); i++ {
		if f.Commands[i].Layer < f.Commands[i-1].Layer {
			t.Fatalf("command %d on layer %d follows layer %d", i, f.Commands[i].Layer, f.Commands[i-1].Layer)
		}
	}

	sl := f.Commands[20]
	want := SleighAsset(5, s.Sleigh().Frame)
	if got := sl.Image.(*testImage).id; got != want {
		t.Errorf("sleigh image = %q, want %q", got, want)
	}
	if f.Commands[0].Image.(*testImage).id != TreeAsset {
		t.Errorf("first command image = %q, want tree", f.Commands[0].Image.(*testImage).id)
	}
	for _, c := range f.Commands {
		if c.Alpha != 1 {
			t.Fatalf("Alpha = %v, want 1 with fade disabled", c.Alpha)
		}
	}

	s.AppendFrame(&f)
	if f.Count(LayerSnow) != 100 {
		t.Error("AppendFrame should replace, not append")
	}
}

func TestSceneFadeIn(t *testing.T) {
	s := newTestScene(t, 8)
	cfg := DefaultConfig()
	cfg.FadeTicks = 20
	if err := s.Reset(640, 480, cfg); err != nil {
		t.Fatal(err)
	}
	var f Frame
	s.AppendFrame(&f)
	if f.Commands[0].Alpha != 0 {
		t.Errorf("Alpha before first tick = %v, want 0", f.Commands[0].Alpha)
	}
	for i := 0; i < 20; i++ {
		s.Tick()
	}
	s.AppendFrame(&f)
	if f.Commands[0].Alpha != 1 {
		t.Errorf("Alpha after fade = %v, want 1", f.Commands[0].Alpha)
	}
}

func TestSceneParallax(t *testing.T) {
	s := newTestScene(t, 9)
	if err := s.Reset(640, 480, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	trees := append([]Decoration(nil), s.Decorations()...)

	s.SetParallaxOffset(100)
	s.SetParallaxOffset(math.NaN())
	assertNear(t, "ParallaxOffset", s.ParallaxOffset(), 100)

	var f Frame
	s.AppendFrame(&f)
	for i, d := range trees {
		assertNear(t, "tree X", f.Commands[i].X, d.X+25)
		assertNear(t, "tree Y", f.Commands[i].Y, d.Y)
	}
	for i, d := range s.Decorations() {
		if d != trees[i] {
			t.Fatalf("tree %d moved", i)
		}
	}

	// The offset survives a reset.
	if err := s.Resize(320, 240); err != nil {
		t.Fatal(err)
	}
	assertNear(t, "ParallaxOffset", s.ParallaxOffset(), 100)
}

func TestSceneSmoothParallax(t *testing.T) {
	s := newTestScene(t, 10)
	cfg := DefaultConfig()
	cfg.SmoothParallax = true
	if err := s.Reset(640, 480, cfg); err != nil {
		t.Fatal(err)
	}
	s.SetParallaxOffset(200)
	if s.ParallaxOffset() != 0 {
		t.Errorf("offset = %v before any tick, want 0", s.ParallaxOffset())
	}
	for i := 0; i < 600; i++ {
		s.Tick()
	}
	if math.Abs(s.ParallaxOffset()-200) > 0.1 {
		t.Errorf("offset = %v after settling, want about 200", s.ParallaxOffset())
	}
}

func TestSceneHeadlessFrame(t *testing.T) {
	s := NewScene(nil, nil)
	if err := s.Reset(100, 100, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	var f Frame
	s.AppendFrame(&f)
	for _, c := range f.Commands {
		if c.Image != nil {
			t.Fatal("headless scene should emit nil images")
		}
	}
}
