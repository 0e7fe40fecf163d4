package xsnow

import (
	"errors"
	"fmt"
	"strconv"
)

// Adjustment is a one-step preference change, as bound to host shortcuts.
type Adjustment uint8

const (
	ToggleWind Adjustment = iota
	CycleSleigh
	ToggleAccent
	MoreFlakes
	FewerFlakes
	MoreTrees
	FewerTrees
)

const (
	flakeStep = 50
	treeStep  = 5
)

// ErrReadOnlySource is returned by Engine.Adjust when the engine's source
// cannot be written.
var ErrReadOnlySource = errors.New("xsnow: preference source is read-only")

// Adjust returns the preference key and value that apply a to cfg.
func Adjust(cfg Config, a Adjustment) (key, value string) {
	switch a {
	case ToggleWind:
		return KeyWindEnabled, strconv.FormatBool(!cfg.Wind)
	case CycleSleigh:
		next := (cfg.Sleigh.Size + 1) % (SleighBig + 1)
		return KeySpriteVariant, next.String()
	case ToggleAccent:
		return KeySpriteAccented, strconv.FormatBool(!cfg.Sleigh.Accented)
	case MoreFlakes:
		return KeyParticleCount, strconv.Itoa(min(cfg.Flakes+flakeStep, MaxCount))
	case FewerFlakes:
		return KeyParticleCount, strconv.Itoa(max(cfg.Flakes-flakeStep, 0))
	case MoreTrees:
		return KeyDecorationCount, strconv.Itoa(min(cfg.Trees+treeStep, MaxCount))
	case FewerTrees:
		return KeyDecorationCount, strconv.Itoa(max(cfg.Trees-treeStep, 0))
	}
	return "", ""
}

// Adjust writes the change for a to the engine's source and reloads the
// scene. A source that currently fails to parse is edited from the defaults
// the scene is running with.
func (e *Engine) Adjust(a Adjustment) error {
	src, ok := e.source.(WritableSource)
	if !ok {
		return ErrReadOnlySource
	}
	values, err := src.Values()
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	cfg, _ := ParseConfig(values)
	key, value := Adjust(cfg, a)
	if key == "" {
		return fmt.Errorf("xsnow: unknown adjustment %d", a)
	}
	if err := src.Set(key, value); err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return e.OnConfigChanged()
}
