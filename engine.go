package xsnow

import (
	"errors"
	"log"
	"sync"
	"time"
)

// Surface is a drawable target for one frame.
type Surface interface {
	Clear()
	DrawImage(img ImageHandle, x, y, alpha float64)
}

// SurfaceProvider hands out surfaces. AcquireSurface reports false while no
// surface is available; the frame is then skipped without error.
type SurfaceProvider interface {
	AcquireSurface() (Surface, bool)
	Present(Surface)
}

// Engine connects a Scene to a host: it owns the scheduler, reads
// configuration, and draws each frame onto the host's surface. Every mutation
// of the scene goes through the engine's mutex, so resets triggered by host
// events never interleave with a tick.
type Engine struct {
	mu       sync.Mutex
	scene    *Scene
	surfaces SurfaceProvider
	source   ConfigSource
	sched    *Scheduler
	frame    Frame
	notice   error
	onLaunch func()
}

// NewEngine creates a stopped engine. A nil source always yields the default
// config. A non-positive interval uses DefaultInterval.
func NewEngine(scene *Scene, surfaces SurfaceProvider, source ConfigSource, interval time.Duration) *Engine {
	e := &Engine{
		scene:    scene,
		surfaces: surfaces,
		source:   source,
	}
	e.sched = NewScheduler(interval, e.Step)
	scene.TickInterval = e.sched.Interval()
	return e
}

// OnLaunch registers fn to run after any frame in which the sleigh launched.
// fn runs on the scheduler goroutine, outside the engine lock.
func (e *Engine) OnLaunch(fn func()) {
	e.mu.Lock()
	e.onLaunch = fn
	e.mu.Unlock()
}

// OnViewportChanged re-reads the configuration and resets the scene for the
// new size. A degenerate size is remembered and applied once a valid one
// arrives; ErrInvalidViewport is returned in that case.
func (e *Engine) OnViewportChanged(width, height int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Reset(width, height, e.loadConfig())
}

// OnConfigChanged re-reads the configuration and resets the scene at its
// current size.
func (e *Engine) OnConfigChanged() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	vp := e.scene.Viewport()
	err := e.scene.Reset(vp.Width, vp.Height, e.loadConfig())
	if errors.Is(err, ErrInvalidViewport) {
		// No surface yet; the config waits for the first viewport.
		return nil
	}
	return err
}

// OnParallaxOffsetChanged shifts the trees by the host's page offset.
func (e *Engine) OnParallaxOffsetChanged(px float64) {
	e.mu.Lock()
	e.scene.SetParallaxOffset(px)
	e.mu.Unlock()
}

// OnVisibilityChanged starts or stops the frame loop. Hiding is synchronous:
// no frame starts after it returns.
func (e *Engine) OnVisibilityChanged(visible bool) {
	e.sched.SetVisible(visible)
}

// Running reports whether the frame loop is active.
func (e *Engine) Running() bool {
	return e.sched.Running()
}

// Notice returns the most recent configuration problem, or nil once a config
// parses cleanly.
func (e *Engine) Notice() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

// Step runs one tick and draws it. The scheduler calls Step while visible;
// hosts without a scheduler may call it directly.
func (e *Engine) Step() {
	e.mu.Lock()
	e.scene.Tick()
	e.scene.AppendFrame(&e.frame)
	launched := e.frame.SleighLaunched
	fn := e.onLaunch
	e.draw()
	e.mu.Unlock()

	if launched && fn != nil {
		fn()
	}
}

// Frame copies the most recently drawn frame into dst.
func (e *Engine) Frame(dst *Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	dst.Tick = e.frame.Tick
	dst.Viewport = e.frame.Viewport
	dst.SleighLaunched = e.frame.SleighLaunched
	dst.Commands = append(dst.Commands[:0], e.frame.Commands...)
}

// Close stops the frame loop.
func (e *Engine) Close() {
	e.sched.Stop()
}

// draw paints e.frame onto a surface. Called with e.mu held.
func (e *Engine) draw() {
	if e.surfaces == nil || !e.scene.Ready() {
		return
	}
	surface, ok := e.surfaces.AcquireSurface()
	if !ok || surface == nil {
		return
	}
	surface.Clear()
	for i := range e.frame.Commands {
		c := &e.frame.Commands[i]
		surface.DrawImage(c.Image, c.X, c.Y, c.Alpha)
	}
	e.surfaces.Present(surface)
}

// loadConfig reads and parses the configuration, recording and logging any
// problem. Called with e.mu held.
func (e *Engine) loadConfig() Config {
	if e.source == nil {
		e.notice = nil
		return DefaultConfig()
	}
	values, err := e.source.Values()
	if err != nil {
		e.notice = err
		log.Printf("xsnow: read preferences: %v; using defaults", err)
		return DefaultConfig()
	}
	cfg, err := ParseConfig(values)
	e.notice = err
	if err != nil {
		log.Printf("%v; using defaults", err)
	}
	return cfg
}
