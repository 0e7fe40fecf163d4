package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/xsnow"
)

// overlayEvery is the number of Updates between overlay refreshes (~0.5s).
const overlayEvery = 30

// overlay shows FPS, TPS and the scene's frame stats in the top-left corner.
// The text is re-rendered into its own image only every overlayEvery updates.
type overlay struct {
	visible bool
	img     *ebiten.Image
	updates int
	frame   xsnow.Frame
}

func newOverlay(visible bool) *overlay {
	return &overlay{visible: visible, updates: overlayEvery}
}

func (o *overlay) update(eng *xsnow.Engine) {
	if !o.visible {
		return
	}
	o.updates++
	if o.updates < overlayEvery {
		return
	}
	o.updates = 0

	if o.img == nil {
		// 160x64 fits four lines of debug text.
		o.img = ebiten.NewImage(160, 64)
	}
	eng.Frame(&o.frame)

	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ntick: %d\nflakes: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), o.frame.Tick, o.frame.Count(xsnow.LayerSnow)))
}

// draw paints the overlay and, when set, the configuration notice along the
// bottom edge.
func (o *overlay) draw(screen *ebiten.Image, notice error) {
	if o.visible && o.img != nil {
		screen.DrawImage(o.img, nil)
	}
	if notice != nil {
		ebitenutil.DebugPrintAt(screen, notice.Error()+" (using defaults)", 4, screen.Bounds().Dy()-16)
	}
}
