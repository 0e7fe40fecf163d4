package xsnow

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	parallaxFrequency = 6.0
	parallaxDamping   = 1.0 // critically damped: no overshoot past the page
)

// parallax tracks the host's page offset for the tree layer. With smoothing
// the applied offset follows the requested one through a spring stepped once
// per tick; without it the offset snaps.
type parallax struct {
	spring harmonica.Spring
	smooth bool
	target float64
	pos    float64
	vel    float64
}

func newParallax(smooth bool, interval time.Duration) parallax {
	if interval <= 0 {
		interval = DefaultInterval
	}
	fps := max(int(time.Second/interval), 1)
	return parallax{
		spring: harmonica.NewSpring(harmonica.FPS(fps), parallaxFrequency, parallaxDamping),
		smooth: smooth,
	}
}

func (p *parallax) set(offset float64) {
	p.target = offset
	if !p.smooth {
		p.pos = offset
		p.vel = 0
	}
}

func (p *parallax) step() {
	if !p.smooth {
		return
	}
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, p.target)
}
