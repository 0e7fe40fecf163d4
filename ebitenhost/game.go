// Package ebitenhost runs an xsnow scene in an Ebitengine window.
//
// The scene ticks on the engine's scheduler goroutine and records each frame
// into a command buffer; Ebitengine's Draw replays the last presented buffer
// onto the screen. Keyboard shortcuts rewrite the preference source and ask
// the engine to reload it.
package ebitenhost

import (
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/xsnow"
)

// Options configures the window host.
type Options struct {
	Title         string
	Width, Height int
	// Interval is the scene tick interval. Zero uses xsnow.DefaultInterval.
	Interval time.Duration
	// PauseUnfocused stops the scene while the window is unfocused.
	PauseUnfocused bool
	// ShowFPS starts with the FPS overlay visible. F toggles it.
	ShowFPS bool
	// ScreenshotDir is where P writes screenshots. Defaults to "screenshots".
	ScreenshotDir string
	// Background fills the window behind the scene.
	Background color.Color
}

// nightSky is the default background.
var nightSky = color.RGBA{R: 8, G: 12, B: 36, A: 255}

// drawOp is one recorded DrawImage call.
type drawOp struct {
	img   *ebiten.Image
	x, y  float64
	alpha float32
}

// commandSurface records draw calls for replay on the Ebitengine goroutine.
type commandSurface struct {
	ops []drawOp
}

func (s *commandSurface) Clear() {
	s.ops = s.ops[:0]
}

func (s *commandSurface) DrawImage(img xsnow.ImageHandle, x, y, alpha float64) {
	ei, ok := img.(*ebiten.Image)
	if !ok || ei == nil {
		return
	}
	s.ops = append(s.ops, drawOp{img: ei, x: x, y: y, alpha: float32(alpha)})
}

// Game implements ebiten.Game and xsnow.SurfaceProvider.
type Game struct {
	engine *xsnow.Engine
	opts   Options

	mu          sync.Mutex
	back, front *commandSurface
	width       int
	height      int
	closed      bool

	started  bool
	focused  bool
	parallax float64
	overlay  *overlay
	shots    []string
}

// NewGame creates a host for scene. source may be nil; if it implements
// xsnow.WritableSource the keyboard shortcuts are enabled.
func NewGame(scene *xsnow.Scene, source xsnow.ConfigSource, opts Options) *Game {
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	if opts.Background == nil {
		opts.Background = nightSky
	}
	g := &Game{
		opts:    opts,
		back:    &commandSurface{},
		front:   &commandSurface{},
		overlay: newOverlay(opts.ShowFPS),
	}
	g.engine = xsnow.NewEngine(scene, g, source, opts.Interval)
	return g
}

// Engine returns the engine driving the scene, for hooking OnLaunch.
func (g *Game) Engine() *xsnow.Engine {
	return g.engine
}

// AcquireSurface hands the back buffer to the engine. No surface is available
// before the first Layout or after Close.
func (g *Game) AcquireSurface() (xsnow.Surface, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || g.width <= 0 || g.height <= 0 {
		return nil, false
	}
	return g.back, true
}

// Present swaps the finished back buffer to the front.
func (g *Game) Present(xsnow.Surface) {
	g.mu.Lock()
	g.back, g.front = g.front, g.back
	g.mu.Unlock()
}

// Update handles focus and keyboard input. The scene itself ticks on the
// engine's scheduler.
func (g *Game) Update() error {
	if !g.started {
		g.started = true
		g.focused = true
		g.engine.OnVisibilityChanged(true)
	}
	g.trackFocus(ebiten.IsFocused())

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.overlay.visible = !g.overlay.visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.Screenshot("xsnow")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.parallax -= parallaxStep
		g.engine.OnParallaxOffsetChanged(g.parallax)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.parallax += parallaxStep
		g.engine.OnParallaxOffsetChanged(g.parallax)
	}
	for key, a := range keyAdjustments {
		if inpututil.IsKeyJustPressed(key) {
			g.adjust(a)
		}
	}

	g.overlay.update(g.engine)
	return nil
}

// trackFocus stops the scene when the window loses focus and restarts it
// when focus returns. It does nothing unless PauseUnfocused is set.
func (g *Game) trackFocus(focused bool) {
	if !g.opts.PauseUnfocused || focused == g.focused {
		return
	}
	g.focused = focused
	g.engine.OnVisibilityChanged(focused)
}

// Draw replays the last presented frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)

	g.mu.Lock()
	var op ebiten.DrawImageOptions
	for i := range g.front.ops {
		d := &g.front.ops[i]
		op.GeoM.Reset()
		op.GeoM.Translate(d.x, d.y)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(d.alpha)
		screen.DrawImage(d.img, &op)
	}
	g.mu.Unlock()

	g.overlay.draw(screen, g.engine.Notice())
	g.flushScreenshots(screen)
}

// Layout tracks the window size; a change resets the scene.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.Lock()
	changed := outsideWidth != g.width || outsideHeight != g.height
	g.width, g.height = outsideWidth, outsideHeight
	g.mu.Unlock()

	if changed {
		// A degenerate size while minimized waits for the next valid one.
		_ = g.engine.OnViewportChanged(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close stops the scene. No frame is drawn after Close returns.
func (g *Game) Close() {
	g.engine.Close()
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	title := g.opts.Title
	if title == "" {
		title = "xsnow"
	}
	w, h := g.opts.Width, g.opts.Height
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Update must keep running while unfocused to notice the focus change;
	// PauseUnfocused stops the scene's own loop instead.
	ebiten.SetRunnableOnUnfocused(true)

	defer g.Close()
	return ebiten.RunGame(g)
}
