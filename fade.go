package xsnow

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fade ramps the frame alpha from 0 to 1 after a reset. The tween runs in
// tick units, one unit per Tick, so it is as deterministic as the simulation.
// It only affects draw commands, never simulation state.
type fade struct {
	tween *gween.Tween
	alpha float64
	done  bool
}

func newFade(ticks int) *fade {
	if ticks <= 0 {
		return &fade{alpha: 1, done: true}
	}
	return &fade{tween: gween.New(0, 1, float32(ticks), ease.OutQuad)}
}

func (f *fade) update() {
	if f.done {
		return
	}
	v, finished := f.tween.Update(1)
	f.alpha = float64(v)
	if finished {
		f.alpha = 1
		f.done = true
	}
}
