package xsnow

// Decoration is a static tree placed at reset.
type Decoration struct {
	X, Y float64
}

const (
	decorationTopInset = 10

	// DefaultTreeInset keeps trees clear of the side edges.
	DefaultTreeInset = 50.0
	// DefaultParallaxDamping scales the host's page offset for trees.
	DefaultParallaxDamping = 0.25
)

// DecorationLayer places trees once per reset and shifts them by a damped
// parallax offset at draw time only.
type DecorationLayer struct {
	items   []Decoration
	damping float64
}

// NewDecorationLayer creates an empty layer. A damping of 0 disables
// parallax.
func NewDecorationLayer(damping float64) *DecorationLayer {
	return &DecorationLayer{damping: damping}
}

// Reset places count trees. Tops fall in [10, h-10) and lefts in
// [inset, w-inset); a span that collapses on a small viewport pins the
// coordinate to its lower bound.
func (l *DecorationLayer) Reset(r *RNG, count int, vp Viewport, inset float64) {
	if count < 0 {
		count = 0
	}
	if inset < 0 {
		inset = 0
	}
	in := int(inset)
	items := make([]Decoration, count)
	for i := range items {
		items[i] = Decoration{
			Y: float64(r.Intn(vp.Height-2*decorationTopInset) + decorationTopInset),
			X: float64(r.Intn(vp.Width-2*in) + in),
		}
	}
	l.items = items
}

// Len returns the number of trees.
func (l *DecorationLayer) Len() int {
	return len(l.items)
}

// Items returns the placed trees. Callers MUST NOT mutate the slice.
func (l *DecorationLayer) Items() []Decoration {
	return l.items
}

// Damping returns the parallax damping factor.
func (l *DecorationLayer) Damping() float64 {
	return l.damping
}

// DrawX returns the on-screen left edge of tree i for the given parallax
// offset. The stored position is not modified.
func (l *DecorationLayer) DrawX(i int, parallax float64) float64 {
	return l.items[i].X + parallax*l.damping
}
