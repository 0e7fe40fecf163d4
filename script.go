package xsnow

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoSteps is returned by LoadScript for a script without steps.
var ErrNoSteps = errors.New("xsnow: script has no steps")

// scriptStep is a single action in a replay script.
type scriptStep struct {
	Action string            `json:"action"`
	Width  int               `json:"width,omitempty"`
	Height int               `json:"height,omitempty"`
	Frames int               `json:"frames,omitempty"`
	Offset float64           `json:"offset,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}

// scriptFile is the top-level JSON structure of a replay script.
type scriptFile struct {
	Seed  uint64       `json:"seed"`
	Steps []scriptStep `json:"steps"`
}

// Script drives a scene headlessly through a fixed sequence of resets, ticks
// and host events. Running the same script twice yields the same Summary.
//
// Actions:
//
//	reset    width, height, values   reset with a fresh config
//	resize   width, height           reset keeping the config
//	config   values                  reset at the current size
//	tick     frames                  advance (default 1 frame)
//	parallax offset                  set the tree page offset
type Script struct {
	Seed  uint64
	steps []scriptStep
}

// Summary describes the scene after a script run.
type Summary struct {
	Ticks         uint64   `json:"ticks"`
	Flakes        int      `json:"flakes"`
	Trees         int      `json:"trees"`
	Wind          float64  `json:"wind"`
	WindTarget    float64  `json:"windTarget"`
	SleighRunning bool     `json:"sleighRunning"`
	Launches      int      `json:"launches"`
	Digest        uint64   `json:"digest"`
	Notices       []string `json:"notices,omitempty"`
}

// LoadScript parses a JSON replay script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, ErrNoSteps
	}
	return &Script{Seed: f.Seed, steps: f.Steps}, nil
}

// Len returns the number of steps.
func (sc *Script) Len() int {
	return len(sc.steps)
}

// NewScene returns a headless scene seeded from the script.
func (sc *Script) NewScene() *Scene {
	return NewScene(nil, NewRNG(sc.Seed))
}

// Run executes every step against s. Configuration problems are collected as
// notices, as a host would show them; an invalid viewport is not an error.
func (sc *Script) Run(s *Scene) (Summary, error) {
	var sum Summary
	for i, st := range sc.steps {
		var err error
		switch st.Action {
		case "reset":
			cfg, perr := ParseConfig(st.Values)
			if perr != nil {
				sum.Notices = append(sum.Notices, perr.Error())
			}
			err = s.Reset(st.Width, st.Height, cfg)
		case "resize":
			err = s.Resize(st.Width, st.Height)
		case "config":
			cfg, perr := ParseConfig(st.Values)
			if perr != nil {
				sum.Notices = append(sum.Notices, perr.Error())
			}
			vp := s.Viewport()
			err = s.Reset(vp.Width, vp.Height, cfg)
		case "tick":
			n := st.Frames
			if n < 1 {
				n = 1
			}
			for range n {
				s.Tick()
				if s.launched {
					sum.Launches++
				}
			}
		case "parallax":
			s.SetParallaxOffset(st.Offset)
		default:
			return sum, fmt.Errorf("script step %d: unknown action %q", i, st.Action)
		}
		if err != nil && !errors.Is(err, ErrInvalidViewport) {
			return sum, fmt.Errorf("script step %d (%s): %w", i, st.Action, err)
		}
	}

	sum.Ticks = s.Ticks()
	sum.Flakes = len(s.Flakes())
	sum.Trees = len(s.Decorations())
	sum.Wind = s.Wind().Current
	sum.WindTarget = s.Wind().Target
	if sl := s.Sleigh(); sl != nil {
		sum.SleighRunning = sl.Running
	}
	sum.Digest = s.Digest()
	return sum, nil
}
