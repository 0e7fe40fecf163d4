package xsnow

import "testing"

func TestDecorationResetRanges(t *testing.T) {
	l := NewDecorationLayer(DefaultParallaxDamping)
	l.Reset(NewRNG(1), 200, Viewport{640, 480}, DefaultTreeInset)

	if l.Len() != 200 {
		t.Fatalf("Len = %d, want 200", l.Len())
	}
	for i, d := range l.Items() {
		if d.Y < 10 || d.Y >= 470 {
			t.Errorf("tree %d Y = %v, want in [10, 470)", i, d.Y)
		}
		if d.X < 50 || d.X >= 590 {
			t.Errorf("tree %d X = %v, want in [50, 590)", i, d.X)
		}
	}
}

func TestDecorationDegenerateSpan(t *testing.T) {
	l := NewDecorationLayer(0)
	l.Reset(NewRNG(1), 3, Viewport{60, 15}, DefaultTreeInset)
	for _, d := range l.Items() {
		assertNear(t, "Y", d.Y, 10)
		assertNear(t, "X", d.X, 50)
	}
}

func TestDecorationParallaxDoesNotMove(t *testing.T) {
	l := NewDecorationLayer(0.25)
	l.Reset(NewRNG(2), 5, Viewport{640, 480}, DefaultTreeInset)
	before := append([]Decoration(nil), l.Items()...)

	for i := range l.Items() {
		assertNear(t, "DrawX", l.DrawX(i, 200), before[i].X+50)
		assertNear(t, "DrawX", l.DrawX(i, -40), before[i].X-10)
	}
	for i, d := range l.Items() {
		if d != before[i] {
			t.Errorf("tree %d moved from %v to %v", i, before[i], d)
		}
	}
}

func TestDecorationZeroDampingDisablesParallax(t *testing.T) {
	l := NewDecorationLayer(0)
	l.Reset(NewRNG(3), 1, Viewport{640, 480}, DefaultTreeInset)
	assertNear(t, "DrawX", l.DrawX(0, 1000), l.Items()[0].X)
}

func TestDecorationResetNegativeCount(t *testing.T) {
	l := NewDecorationLayer(0.25)
	l.Reset(NewRNG(3), -1, Viewport{640, 480}, DefaultTreeInset)
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
}
