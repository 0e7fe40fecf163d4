// Package termhost runs an xsnow scene in a terminal using tcell.
//
// The scene works in pixels; each terminal cell stands for a CellWidth by
// CellHeight block of them. Images are Glyphs: short runs of styled runes.
package termhost

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/xsnow"
)

// Cell size in scene pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

const parallaxStep = 40.0

// Terminal implements xsnow.SurfaceProvider on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	engine *xsnow.Engine

	mu       sync.Mutex
	cols     int
	rows     int
	closed   bool
	parallax float64
}

// NewTerminal initializes screen and wires it to scene. source may be nil.
func NewTerminal(screen tcell.Screen, scene *xsnow.Scene, source xsnow.ConfigSource, interval time.Duration) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.EnableFocus()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))

	t := &Terminal{screen: screen}
	t.engine = xsnow.NewEngine(scene, t, source, interval)
	return t, nil
}

// Engine returns the engine driving the scene.
func (t *Terminal) Engine() *xsnow.Engine {
	return t.engine
}

// AcquireSurface returns the screen once its size is known.
func (t *Terminal) AcquireSurface() (xsnow.Surface, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.cols <= 0 || t.rows <= 0 {
		return nil, false
	}
	return cellSurface{screen: t.screen, cols: t.cols, rows: t.rows}, true
}

// Present flushes the frame to the terminal.
func (t *Terminal) Present(xsnow.Surface) {
	t.screen.Show()
}

// Run processes terminal events until the user quits or ctx is done, then
// restores the terminal.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.close()

	t.resize()
	t.engine.OnVisibilityChanged(true)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if t.handle(ev) {
				return nil
			}
		}
	}
}

// handle applies one event and reports whether the user asked to quit.
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	case *tcell.EventFocus:
		t.engine.OnVisibilityChanged(ev.Focused)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			t.pan(-parallaxStep)
		case tcell.KeyRight:
			t.pan(parallaxStep)
		case tcell.KeyUp:
			t.adjust(xsnow.MoreFlakes)
		case tcell.KeyDown:
			t.adjust(xsnow.FewerFlakes)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
			if a, ok := runeAdjustments[ev.Rune()]; ok {
				t.adjust(a)
			}
		}
	}
	return false
}

var runeAdjustments = map[rune]xsnow.Adjustment{
	'w': xsnow.ToggleWind,
	's': xsnow.CycleSleigh,
	'r': xsnow.ToggleAccent,
	'+': xsnow.MoreFlakes,
	'-': xsnow.FewerFlakes,
	't': xsnow.MoreTrees,
	'g': xsnow.FewerTrees,
}

func (t *Terminal) adjust(a xsnow.Adjustment) {
	err := t.engine.Adjust(a)
	if err != nil && !errors.Is(err, xsnow.ErrReadOnlySource) {
		log.Printf("xsnow: %v", err)
	}
}

func (t *Terminal) pan(dx float64) {
	t.mu.Lock()
	t.parallax += dx
	px := t.parallax
	t.mu.Unlock()
	t.engine.OnParallaxOffsetChanged(px)
}

// resize picks up the screen size and resets the scene to match.
func (t *Terminal) resize() {
	cols, rows := t.screen.Size()
	t.mu.Lock()
	t.cols, t.rows = cols, rows
	t.mu.Unlock()
	// A zero-sized terminal waits for the next resize.
	_ = t.engine.OnViewportChanged(cols*CellWidth, rows*CellHeight)
}

func (t *Terminal) close() {
	t.engine.Close()
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.screen.Fini()
}

// CellOf maps a scene position to the terminal cell containing it.
func CellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// cellSurface draws glyphs straight onto the screen's back buffer.
type cellSurface struct {
	screen     tcell.Screen
	cols, rows int
}

func (s cellSurface) Clear() {
	s.screen.Clear()
}

func (s cellSurface) DrawImage(img xsnow.ImageHandle, x, y, alpha float64) {
	g, ok := img.(*Glyph)
	if !ok || g == nil || alpha <= 0 {
		return
	}
	style := g.Style
	if alpha < 0.5 {
		style = style.Dim(true)
	}
	col, row := CellOf(x, y)
	if row < 0 || row >= s.rows {
		return
	}
	for i, r := range []rune(g.Text) {
		c := col + i
		if c < 0 || c >= s.cols || r == ' ' {
			continue
		}
		s.screen.SetContent(c, row, r, nil, style)
	}
}
