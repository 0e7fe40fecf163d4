// Package xsnow is an animated winter scene for [Ebitengine] and terminals:
// falling snow pushed by a gusty wind, a scattering of fir trees, and a sleigh
// that crosses the sky now and then.
//
// # Quick start
//
// A [Scene] holds the simulation. It needs a [Palette] of images to draw
// with, a viewport, and a [Config]:
//
//	palette, err := xsnow.LoadPalette(loader)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene := xsnow.NewScene(palette, xsnow.NewRNG(42))
//	if err := scene.Reset(640, 480, xsnow.DefaultConfig()); err != nil {
//		log.Fatal(err)
//	}
//
//	var frame xsnow.Frame
//	scene.Tick()
//	scene.AppendFrame(&frame)
//	for _, cmd := range frame.Commands {
//		// draw cmd.Image at cmd.X, cmd.Y
//	}
//
// Most hosts use an [Engine] instead. It owns a [Scheduler] that ticks the
// scene every [DefaultInterval] while visible, reads preferences from a
// [ConfigSource], and draws each frame onto a [Surface]:
//
//	eng := xsnow.NewEngine(scene, host, xsnow.NewFileSource(path), 0)
//	eng.OnViewportChanged(w, h)
//	eng.OnVisibilityChanged(true)
//	defer eng.Close()
//
// The ebitenhost and termhost packages provide ready-made surfaces.
//
// # Scene
//
// Each tick the [Wind] drifts toward its target speed, the [Sleigh] advances
// (or, when idle, maybe launches), and every [Flake] falls and drifts with the
// wind. Flakes that reach the bottom respawn at the top at a random column;
// flakes that leave a side reappear on the other. The flake count never
// changes between resets.
//
// Trees are placed once per reset. [Scene.SetParallaxOffset] shifts where they
// are drawn by a damped fraction of the offset without moving them.
//
// Frames draw trees first, then the sleigh, then the snow.
//
// # Configuration
//
// [ParseConfig] turns string preferences into a [Config]. If any value fails
// to parse, every setting falls back to its default and the returned
// [*ConfigError] names the offending key, so a scene never runs with a mix of
// user and default values.
//
// # Determinism
//
// All randomness flows through one [RNG]. Two scenes created with the same
// seed and driven by the same sequence of calls produce identical frames;
// [Scene.Digest] summarizes the state for comparison and [Script] replays a
// recorded sequence headlessly.
//
// [Ebitengine]: https://ebitengine.org
package xsnow
