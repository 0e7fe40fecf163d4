package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	_ "image/gif"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/xsnow"
)

// DirLoader loads "<id>.png" (or .gif) files from a file system, such as
// os.DirFS of an asset directory.
type DirLoader struct {
	FS fs.FS
}

// LoadImage implements xsnow.AssetLoader.
func (d DirLoader) LoadImage(id xsnow.AssetID) (xsnow.ImageHandle, error) {
	for _, ext := range []string{".png", ".gif"} {
		f, err := d.FS.Open(string(id) + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		img, _, err := ebitenutil.NewImageFromReader(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s%s: %w", id, ext, err)
		}
		return img, nil
	}
	return nil, xsnow.ErrAssetMissing
}

var (
	snowWhite  = color.RGBA{R: 240, G: 246, B: 255, A: 255}
	firGreen   = color.RGBA{R: 22, G: 92, B: 48, A: 255}
	trunkBrown = color.RGBA{R: 92, G: 58, B: 30, A: 255}
	sleighRed  = color.RGBA{R: 178, G: 24, B: 32, A: 255}
	deerBrown  = color.RGBA{R: 140, G: 96, B: 60, A: 255}
	noseRed    = color.RGBA{R: 255, G: 40, B: 40, A: 255}
)

// Procedural draws the asset set with vector shapes, so the scene runs
// without any image files.
type Procedural struct{}

// LoadImage implements xsnow.AssetLoader.
func (Procedural) LoadImage(id xsnow.AssetID) (xsnow.ImageHandle, error) {
	if id == xsnow.TreeAsset {
		return drawTree(), nil
	}
	for i := 0; i < xsnow.FlakeImages; i++ {
		if id == xsnow.FlakeAsset(i) {
			return drawFlake(i), nil
		}
	}
	set, frame, ok := parseSleighAsset(id)
	if !ok {
		return nil, xsnow.ErrAssetMissing
	}
	return drawSleigh(set, frame), nil
}

// flakeRadius grows with the flake index.
func flakeRadius(i int) float32 {
	return 1 + float32(i)*0.5
}

// sleighScale returns the size multiplier of a sleigh set.
func sleighScale(set int) float32 {
	return 1 + float32(set/2)*0.5
}

// parseSleighAsset finds the set and frame an id refers to.
func parseSleighAsset(id xsnow.AssetID) (set, frame int, ok bool) {
	for s := 0; s < xsnow.SleighSets; s++ {
		for f := 0; f < xsnow.SleighFrames; f++ {
			if id == xsnow.SleighAsset(s, f) {
				return s, f, true
			}
		}
	}
	return 0, 0, false
}

func drawFlake(i int) *ebiten.Image {
	r := flakeRadius(i)
	size := int(2*r) + 2
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	vector.DrawFilledCircle(img, c, c, r, snowWhite, true)
	return img
}

func drawTree() *ebiten.Image {
	const w, h = 32, 48
	img := ebiten.NewImage(w, h)
	// Three stacked tiers narrowing toward the top.
	for tier := 0; tier < 3; tier++ {
		tw := float32(w - tier*8)
		y := float32(h - 10 - (tier+1)*12)
		vector.DrawFilledRect(img, (w-tw)/2, y, tw, 12, firGreen, false)
	}
	vector.DrawFilledRect(img, w/2-3, h-10, 6, 10, trunkBrown, false)
	return img
}

func drawSleigh(set, frame int) *ebiten.Image {
	s := sleighScale(set)
	w, h := int(96*s), int(32*s)
	img := ebiten.NewImage(w, h)
	accented := set%2 == 1

	// Sleigh body on the left, reindeer pulling to the right.
	vector.DrawFilledRect(img, 0, 12*s, 28*s, 12*s, sleighRed, true)
	vector.DrawFilledRect(img, 0, 26*s, 32*s, 2*s, trunkBrown, true)
	// Legs swing with the animation frame.
	swing := float32(frame%2*2-1) * 2 * s
	for d := 0; d < 2; d++ {
		x := (44 + float32(d)*24) * s
		vector.DrawFilledRect(img, x, 12*s, 16*s, 8*s, deerBrown, true)
		vector.DrawFilledRect(img, x+2*s+swing, 20*s, 2*s, 8*s, deerBrown, true)
		vector.DrawFilledRect(img, x+12*s-swing, 20*s, 2*s, 8*s, deerBrown, true)
		vector.DrawFilledCircle(img, x+18*s, 10*s, 3*s, deerBrown, true)
	}
	if accented {
		vector.DrawFilledCircle(img, (44+24+21)*s, 10*s, 1.5*s, noseRed, true)
	}
	return img
}
