package xsnow

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Preference keys understood by ParseConfig.
const (
	KeyParticleCount   = "particleCount"
	KeyDecorationCount = "decorationCount"
	KeyFallSpeed       = "fallSpeed"
	KeyWindEnabled     = "windEnabled"
	KeySpriteVariant   = "spriteVariant"
	KeySpriteAccented  = "spriteAccented"
	KeyWrapMargin      = "wrapMargin"
	KeyParallaxDamping = "parallaxDamping"
	KeyFadeTicks       = "fadeTicks"
	KeySmoothParallax  = "smoothParallax"
)

// MaxCount caps the flake and tree counts and the fade length.
const MaxCount = 100000

// Keys lists every recognized preference key in parse order.
var Keys = []string{
	KeyParticleCount,
	KeyDecorationCount,
	KeyFallSpeed,
	KeyWindEnabled,
	KeySpriteVariant,
	KeySpriteAccented,
	KeyWrapMargin,
	KeyParallaxDamping,
	KeyFadeTicks,
	KeySmoothParallax,
}

// Config is the full set of user-tunable scene parameters.
type Config struct {
	Flakes    int     // number of falling flakes
	Trees     int     // number of static trees
	FallSpeed float64 // base fall speed in pixels per tick
	Wind      bool
	Sleigh    SleighVariant

	Margin          MarginPolicy
	ParallaxDamping float64 // 0 disables tree parallax
	TreeInset       float64 // keeps trees clear of the side edges
	FadeTicks       int     // ticks of fade-in after each reset, 0 disables
	SmoothParallax  bool    // spring the tree offset toward the host offset
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Flakes:    100,
		Trees:     20,
		FallSpeed: 5,
		Wind:      true,
		Sleigh:    SleighVariant{Size: SleighNone, Accented: true},

		Margin:          MarginTight,
		ParallaxDamping: DefaultParallaxDamping,
		TreeInset:       DefaultTreeInset,
		FadeTicks:       30,
	}
}

// Values renders the config back into preference strings.
func (c Config) Values() map[string]string {
	return map[string]string{
		KeyParticleCount:   strconv.Itoa(c.Flakes),
		KeyDecorationCount: strconv.Itoa(c.Trees),
		KeyFallSpeed:       strconv.FormatFloat(c.FallSpeed, 'g', -1, 64),
		KeyWindEnabled:     strconv.FormatBool(c.Wind),
		KeySpriteVariant:   c.Sleigh.Size.String(),
		KeySpriteAccented:  strconv.FormatBool(c.Sleigh.Accented),
		KeyWrapMargin:      c.Margin.String(),
		KeyParallaxDamping: strconv.FormatFloat(c.ParallaxDamping, 'g', -1, 64),
		KeyFadeTicks:       strconv.Itoa(c.FadeTicks),
		KeySmoothParallax:  strconv.FormatBool(c.SmoothParallax),
	}
}

// Validate checks a programmatically built config. ParseConfig output always
// validates.
func (c Config) Validate() error {
	switch {
	case c.Flakes < 0:
		return &ConfigError{Key: KeyParticleCount, Value: strconv.Itoa(c.Flakes), Err: errors.New("must not be negative")}
	case c.Trees < 0:
		return &ConfigError{Key: KeyDecorationCount, Value: strconv.Itoa(c.Trees), Err: errors.New("must not be negative")}
	case c.Flakes > MaxCount:
		return &ConfigError{Key: KeyParticleCount, Value: strconv.Itoa(c.Flakes), Err: fmt.Errorf("must be at most %d", MaxCount)}
	case c.Trees > MaxCount:
		return &ConfigError{Key: KeyDecorationCount, Value: strconv.Itoa(c.Trees), Err: fmt.Errorf("must be at most %d", MaxCount)}
	case !(c.FallSpeed > 0) || math.IsInf(c.FallSpeed, 0):
		return &ConfigError{Key: KeyFallSpeed, Value: strconv.FormatFloat(c.FallSpeed, 'g', -1, 64), Err: errors.New("must be positive and finite")}
	case !(c.ParallaxDamping >= 0) || math.IsInf(c.ParallaxDamping, 0):
		return &ConfigError{Key: KeyParallaxDamping, Value: strconv.FormatFloat(c.ParallaxDamping, 'g', -1, 64), Err: errors.New("must be non-negative and finite")}
	case c.FadeTicks < 0:
		return &ConfigError{Key: KeyFadeTicks, Value: strconv.Itoa(c.FadeTicks), Err: errors.New("must not be negative")}
	case !(c.TreeInset >= 0) || math.IsInf(c.TreeInset, 0):
		return &ConfigError{Key: "treeInset", Value: strconv.FormatFloat(c.TreeInset, 'g', -1, 64), Err: errors.New("must be non-negative and finite")}
	}
	return nil
}

// ConfigError reports a preference value that could not be used.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("xsnow: invalid %s %q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseConfig builds a Config from preference strings. Missing keys take
// their defaults. An unknown sprite variant means no sleigh.
//
// Fallback is all-or-nothing: if any value fails to parse or is out of range,
// the complete default set is returned together with a *ConfigError naming
// the first offending key, so a bad particle count also resets wind and
// sleigh settings. The error is a notice for the user, not a failure.
func ParseConfig(values map[string]string) (Config, error) {
	cfg := DefaultConfig()
	if err := parseInto(&cfg, values); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func parseInto(cfg *Config, values map[string]string) error {
	for _, key := range Keys {
		raw, ok := values[key]
		if !ok {
			continue
		}
		v := strings.TrimSpace(raw)
		var err error
		switch key {
		case KeyParticleCount:
			cfg.Flakes, err = parseCount(v)
		case KeyDecorationCount:
			cfg.Trees, err = parseCount(v)
		case KeyFallSpeed:
			cfg.FallSpeed, err = parseFloat(v)
			if err == nil && cfg.FallSpeed <= 0 {
				err = errors.New("must be positive")
			}
		case KeyWindEnabled:
			cfg.Wind, err = strconv.ParseBool(v)
		case KeySpriteVariant:
			cfg.Sleigh.Size, _ = ParseSleighSize(v)
		case KeySpriteAccented:
			cfg.Sleigh.Accented, err = strconv.ParseBool(v)
		case KeyWrapMargin:
			switch v {
			case "tight":
				cfg.Margin = MarginTight
			case "half":
				cfg.Margin = MarginHalfWidth
			default:
				err = errors.New("want tight or half")
			}
		case KeyParallaxDamping:
			cfg.ParallaxDamping, err = parseFloat(v)
			if err == nil && cfg.ParallaxDamping < 0 {
				err = errors.New("must not be negative")
			}
		case KeyFadeTicks:
			cfg.FadeTicks, err = parseCount(v)
		case KeySmoothParallax:
			cfg.SmoothParallax, err = strconv.ParseBool(v)
		}
		if err != nil {
			return &ConfigError{Key: key, Value: raw, Err: err}
		}
	}
	return nil
}

func parseCount(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	if n > MaxCount {
		return 0, fmt.Errorf("must be at most %d", MaxCount)
	}
	return n, nil
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("must be finite")
	}
	return f, nil
}
