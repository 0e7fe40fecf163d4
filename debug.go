package xsnow

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugEvery is the number of ticks between debug reports.
const debugEvery = 600

// debugStats accumulates tick timing between reports. Only populated when
// Scene.debug is true.
type debugStats struct {
	ticks     int
	tickTime  time.Duration
	maxTick   time.Duration
	launches  int
	lastFlush time.Time
}

func (d *debugStats) record(elapsed time.Duration, launched bool) {
	d.ticks++
	d.tickTime += elapsed
	if elapsed > d.maxTick {
		d.maxTick = elapsed
	}
	if launched {
		d.launches++
	}
}

// debugOut is where debug reports go.
var debugOut io.Writer = os.Stderr

// debugLog prints the accumulated stats and clears them.
func (s *Scene) debugLog() {
	d := &s.stats
	if d.ticks == 0 {
		return
	}
	avg := d.tickTime / time.Duration(d.ticks)
	var wall time.Duration
	if !d.lastFlush.IsZero() {
		wall = time.Since(d.lastFlush)
	}
	_, _ = fmt.Fprintf(debugOut,
		"[xsnow] ticks: %d | avg tick: %v | max tick: %v | wall: %v\n",
		d.ticks, avg, d.maxTick, wall)
	sleigh := "off"
	if s.sleigh != nil {
		sleigh = "idle"
		if s.sleigh.Running {
			sleigh = fmt.Sprintf("running x=%.0f", s.sleigh.X)
		}
	}
	_, _ = fmt.Fprintf(debugOut,
		"[xsnow] flakes: %d | trees: %d | wind: %.2f -> %.2f | sleigh: %s | launches: %d\n",
		s.field.Len(), s.trees.Len(), s.wind.Current, s.wind.Target, sleigh, d.launches)
	*d = debugStats{lastFlush: time.Now()}
}
