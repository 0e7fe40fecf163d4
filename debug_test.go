package xsnow

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugReport(t *testing.T) {
	var buf bytes.Buffer
	old := debugOut
	debugOut = &buf
	defer func() { debugOut = old }()

	s := NewScene(nil, NewRNG(1))
	s.SleighTuning.Chance = 1
	cfg := DefaultConfig()
	cfg.Sleigh = SleighVariant{Size: SleighRegular}
	if err := s.Reset(320, 240, cfg); err != nil {
		t.Fatal(err)
	}
	s.SetDebugMode(true)
	for i := 0; i < debugEvery; i++ {
		s.Tick()
	}

	out := buf.String()
	if !strings.Contains(out, "[xsnow] ticks: 600") {
		t.Errorf("missing timing line in %q", out)
	}
	if !strings.Contains(out, "flakes: 100 | trees: 20") {
		t.Errorf("missing state line in %q", out)
	}
	if strings.Contains(out, "launches: 0\n") {
		t.Errorf("expected launches to be counted in %q", out)
	}
	if s.stats.ticks != 0 {
		t.Errorf("stats not cleared after report: %d ticks", s.stats.ticks)
	}
}

func TestDebugModeOff(t *testing.T) {
	var buf bytes.Buffer
	old := debugOut
	debugOut = &buf
	defer func() { debugOut = old }()

	s := NewScene(nil, NewRNG(1))
	if err := s.Reset(320, 240, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2*debugEvery; i++ {
		s.Tick()
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}
