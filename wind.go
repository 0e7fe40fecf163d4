package xsnow

import "math"

// WindConfig tunes the wind state machine.
type WindConfig struct {
	// ChangeChance is N in the 1-in-N per-tick chance of picking a new target
	// while the air is calm.
	ChangeChance int
	// ResetChance is N in the 1-in-N per-tick chance of a gust dying down.
	ResetChance int
	// MaxSpeed bounds the target speed in either direction, in pixels per tick.
	MaxSpeed float64
}

// DefaultWindConfig returns the stock wind tuning.
func DefaultWindConfig() WindConfig {
	return WindConfig{
		ChangeChance: 100,
		ResetChance:  25,
		MaxSpeed:     20,
	}
}

const (
	windDeadband    = 1.0
	windStepDivisor = 50.0
)

// Wind produces the horizontal drift shared by every flake. The state machine
// (calm or gusting) is folded into the two floats: a zero target means calm.
type Wind struct {
	Current float64
	Target  float64

	config  WindConfig
	enabled bool
}

// NewWind creates a calm wind model. A disabled model stays pinned at zero.
func NewWind(cfg WindConfig, enabled bool) *Wind {
	if cfg.ChangeChance <= 0 {
		cfg.ChangeChance = 100
	}
	if cfg.ResetChance <= 0 {
		cfg.ResetChance = 25
	}
	if cfg.MaxSpeed < 0 || math.IsNaN(cfg.MaxSpeed) || math.IsInf(cfg.MaxSpeed, 0) {
		cfg.MaxSpeed = 20
	}
	return &Wind{config: cfg, enabled: enabled}
}

// Enabled reports whether the model reacts to Update.
func (w *Wind) Enabled() bool {
	return w.enabled
}

// Config returns the tuning in use.
func (w *Wind) Config() WindConfig {
	return w.config
}

// Reset calms the wind.
func (w *Wind) Reset() {
	w.Current = 0
	w.Target = 0
}

// Update advances the wind by one tick.
//
// The step toward the target is |target|/50 regardless of the remaining gap,
// and no step is taken while the gap is within the deadband. A zero target
// yields a zero step, so a calm spell holds the current drift where the last
// gust left it until the next gust pulls it elsewhere.
func (w *Wind) Update(r *RNG) {
	if !w.enabled {
		w.Current, w.Target = 0, 0
		return
	}

	if w.Target == 0 {
		if r.OneIn(w.config.ChangeChance) {
			w.Target = r.Between(-w.config.MaxSpeed, w.config.MaxSpeed)
		}
	} else if r.OneIn(w.config.ResetChance) {
		w.Target = 0
	}

	diff := w.Current - w.Target
	step := math.Abs(w.Target) / windStepDivisor
	switch {
	case diff > windDeadband:
		w.Current -= step
	case diff < -windDeadband:
		w.Current += step
	}
}
