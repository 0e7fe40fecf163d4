package ebitenhost

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/xsnow"
)

const parallaxStep = 40.0

var keyAdjustments = map[ebiten.Key]xsnow.Adjustment{
	ebiten.KeyW:         xsnow.ToggleWind,
	ebiten.KeyS:         xsnow.CycleSleigh,
	ebiten.KeyR:         xsnow.ToggleAccent,
	ebiten.KeyArrowUp:   xsnow.MoreFlakes,
	ebiten.KeyArrowDown: xsnow.FewerFlakes,
	ebiten.KeyT:         xsnow.MoreTrees,
	ebiten.KeyG:         xsnow.FewerTrees,
}

// adjust applies a shortcut. Read-only sources ignore shortcuts.
func (g *Game) adjust(a xsnow.Adjustment) {
	err := g.engine.Adjust(a)
	if err != nil && !errors.Is(err, xsnow.ErrReadOnlySource) {
		log.Printf("xsnow: %v", err)
	}
}
