package xsnow

import "image"

// Vec2 is a 2D position in scene pixels. The origin is the top-left corner of
// the viewport, with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Viewport is the size of the drawable surface in pixels.
type Viewport struct {
	Width, Height int
}

// Valid reports whether both dimensions are positive. Components never place
// objects against a degenerate viewport.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Range is a general-purpose half-open [Min, Max) range.
type Range struct {
	Min, Max float64
}

// Sample returns a uniform value in [Min, Max) drawn from r.
func (rg Range) Sample(r *RNG) float64 {
	if rg.Min == rg.Max {
		return rg.Min
	}
	return rg.Min + r.Float()*(rg.Max-rg.Min)
}

// Contains reports whether v lies in [Min, Max).
func (rg Range) Contains(v float64) bool {
	return v >= rg.Min && v < rg.Max
}

// ImageHandle is an opaque drawable image supplied by an AssetLoader. The
// simulation never inspects it beyond its bounds; hosts type-assert back to
// their concrete image type when drawing.
type ImageHandle interface {
	Bounds() image.Rectangle
}

// Layer orders draw commands within a frame. Lower layers draw first.
type Layer uint8

const (
	LayerTrees  Layer = iota // static decorations
	LayerSleigh              // the flying sleigh, when running
	LayerSnow                // falling flakes
)
