package xsnow

// FlakeImages is the size of the snowflake palette.
const FlakeImages = 7

// Flake holds per-flake simulation state. Speeds are fixed at creation;
// position changes every tick.
type Flake struct {
	X, Y   float64
	VSpeed float64 // pixels per tick, downward
	HSpeed float64 // pixels per tick, independent of wind
	Image  int     // index into the snowflake palette
}

// MarginPolicy selects how far a flake may drift past a side edge before it
// re-enters from the opposite side.
type MarginPolicy uint8

const (
	MarginTight     MarginPolicy = iota // fixed TightMargin pixels
	MarginHalfWidth                     // half the viewport width
)

// TightMargin is the side margin used by MarginTight.
const TightMargin = 5.0

// String returns the preference value for the policy.
func (m MarginPolicy) String() string {
	if m == MarginHalfWidth {
		return "half"
	}
	return "tight"
}

// Margin returns the wrap margin for a viewport of the given width.
func (m MarginPolicy) Margin(width int) float64 {
	if m == MarginHalfWidth {
		return float64(width) / 2
	}
	return TightMargin
}

// Field owns the flakes. The slice is allocated once per Reset and flakes are
// recycled in place, never removed.
type Field struct {
	flakes []Flake
	policy MarginPolicy
}

// NewField creates an empty field using the given margin policy.
func NewField(policy MarginPolicy) *Field {
	return &Field{policy: policy}
}

// Reset replaces every flake with count fresh ones spread over the viewport.
// Vertical speed lands in [0.75, 1.5) × baseSpeed and horizontal jitter in
// [-0.25, 0.25) × baseSpeed. Negative counts are treated as zero.
func (f *Field) Reset(r *RNG, count int, vp Viewport, baseSpeed float64) {
	if count < 0 {
		count = 0
	}
	w, h := float64(vp.Width), float64(vp.Height)
	vspeed := Range{0.75 * baseSpeed, 1.5 * baseSpeed}
	hspeed := Range{-0.25 * baseSpeed, 0.25 * baseSpeed}

	flakes := make([]Flake, count)
	for i := range flakes {
		p := &flakes[i]
		p.X = r.Float() * w
		p.Y = r.Float() * h
		p.VSpeed = vspeed.Sample(r)
		p.HSpeed = hspeed.Sample(r)
		p.Image = r.Intn(FlakeImages)
	}
	f.flakes = flakes
}

// Advance moves every flake one tick with the given wind drift and applies the
// boundary policy:
//
//   - below the bottom edge: back to the top with a freshly drawn column, so
//     recycled flakes do not retrace vertical streaks;
//   - past the left margin: re-enter at the right margin;
//   - past the right margin: re-enter at the left margin.
func (f *Field) Advance(r *RNG, wind float64, vp Viewport) {
	w, h := float64(vp.Width), float64(vp.Height)
	margin := f.policy.Margin(vp.Width)

	for i := range f.flakes {
		p := &f.flakes[i]
		p.Y += p.VSpeed
		p.X += p.HSpeed + wind

		if p.Y > h {
			p.Y = 0
			p.X = r.Float() * w
		}
		if p.X < -margin {
			p.X = w + margin
		}
		if p.X > w+margin {
			p.X = -margin
		}
	}
}

// Len returns the number of flakes.
func (f *Field) Len() int {
	return len(f.flakes)
}

// Flakes returns the live flake slice. The returned slice MUST NOT be
// retained across a Reset or mutated by renderers.
func (f *Field) Flakes() []Flake {
	return f.flakes
}

// Policy returns the margin policy in use.
func (f *Field) Policy() MarginPolicy {
	return f.policy
}
