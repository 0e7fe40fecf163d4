package termhost

import (
	"image"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/xsnow"
)

// Glyph is a terminal image: one row of styled runes. Spaces are transparent.
type Glyph struct {
	Text  string
	Style tcell.Style
}

// Bounds reports the glyph's size in scene pixels.
func (g *Glyph) Bounds() image.Rectangle {
	return image.Rect(0, 0, utf8.RuneCountInString(g.Text)*CellWidth, CellHeight)
}

var (
	snowStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	treeStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	sleighStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
)

// flakeRunes grow from a speck to a full crystal, one per flake image.
var flakeRunes = [xsnow.FlakeImages]string{".", "·", "+", "*", "✶", "❅", "❄"}

// sleighBodies are the plain sleighs per size class.
var sleighBodies = [3]string{"[_]=", "[__]==", "[___]==="}

// legFrames animate the reindeer.
var legFrames = [xsnow.SleighFrames]string{"/|", "||", "|\\", "||"}

// Glyphs serves the asset set as text.
type Glyphs struct{}

// LoadImage implements xsnow.AssetLoader.
func (Glyphs) LoadImage(id xsnow.AssetID) (xsnow.ImageHandle, error) {
	if id == xsnow.TreeAsset {
		return &Glyph{Text: "♣", Style: treeStyle}, nil
	}
	for i, r := range flakeRunes {
		if id == xsnow.FlakeAsset(i) {
			return &Glyph{Text: r, Style: snowStyle}, nil
		}
	}
	for set := 0; set < xsnow.SleighSets; set++ {
		for frame := 0; frame < xsnow.SleighFrames; frame++ {
			if id == xsnow.SleighAsset(set, frame) {
				return sleighGlyph(set, frame), nil
			}
		}
	}
	return nil, xsnow.ErrAssetMissing
}

func sleighGlyph(set, frame int) *Glyph {
	text := sleighBodies[set/2] + "m" + legFrames[frame] + "m" + legFrames[(frame+2)%xsnow.SleighFrames]
	if set%2 == 1 {
		// The accented set is led by a red-nosed reindeer.
		text += "o"
	}
	return &Glyph{Text: text, Style: sleighStyle}
}
