package ebitenhost

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/xsnow"
)

// --- Atlas ---

const hashAtlasJSON = `{
  "frames": {
    "tannenbaum.png": {"frame": {"x": 0, "y": 0, "w": 32, "h": 48}, "rotated": false},
    "snow00.png":     {"frame": {"x": 32, "y": 0, "w": 4, "h": 4}, "rotated": false}
  },
  "meta": {"image": "atlas.png"}
}`

const arrayAtlasJSON = `{
  "textures": [
    {"image": "a.png", "frames": {"snow01": {"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}}},
    {"image": "b.png", "frames": {"bigsanta1": {"frame": {"x": 4, "y": 4, "w": 16, "h": 8}}}}
  ]
}`

func TestParseAtlasHash(t *testing.T) {
	regions, err := parseAtlas([]byte(hashAtlasJSON))
	if err != nil {
		t.Fatalf("parseAtlas: %v", err)
	}
	r, ok := regions["tannenbaum"]
	if !ok {
		t.Fatal("missing tannenbaum region")
	}
	if r.page != 0 || r.rect != image.Rect(0, 0, 32, 48) {
		t.Errorf("tannenbaum = %+v", r)
	}
	if got := regions["snow00"].rect; got != image.Rect(32, 0, 36, 4) {
		t.Errorf("snow00 rect = %v", got)
	}
}

func TestParseAtlasArray(t *testing.T) {
	regions, err := parseAtlas([]byte(arrayAtlasJSON))
	if err != nil {
		t.Fatalf("parseAtlas: %v", err)
	}
	if r := regions["bigsanta1"]; r.page != 1 || r.rect != image.Rect(4, 4, 20, 12) {
		t.Errorf("bigsanta1 = %+v", r)
	}
}

func TestParseAtlasErrors(t *testing.T) {
	if _, err := parseAtlas([]byte(`{`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := parseAtlas([]byte(`{"meta": {}}`)); !errors.Is(err, errNoFrames) {
		t.Errorf("err = %v, want errNoFrames", err)
	}
	rotated := `{"frames": {"snow00": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}, "rotated": true}}}`
	if _, err := parseAtlas([]byte(rotated)); err == nil {
		t.Error("expected error for a rotated frame")
	}
}

func TestAtlasLoadImage(t *testing.T) {
	page := ebiten.NewImage(64, 64)
	a, err := LoadAtlas([]byte(hashAtlasJSON), []*ebiten.Image{page})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	img, err := a.LoadImage(xsnow.TreeAsset)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 48 {
		t.Errorf("bounds = %v, want 32x48", b)
	}
	if _, err := a.LoadImage("bigsanta4"); !errors.Is(err, xsnow.ErrAssetMissing) {
		t.Errorf("err = %v, want ErrAssetMissing", err)
	}
}

func TestLoadAtlasMissingPage(t *testing.T) {
	_, err := LoadAtlas([]byte(arrayAtlasJSON), []*ebiten.Image{ebiten.NewImage(8, 8)})
	if err == nil {
		t.Error("expected error for a frame on a missing page")
	}
}

func TestAssetName(t *testing.T) {
	tests := map[string]string{
		"snow00.png":  "snow00",
		"snow00.gif":  "snow00",
		"tannenbaum":  "tannenbaum",
		"weird.png.x": "weird.png.x",
	}
	for in, want := range tests {
		if got := assetName(in); got != want {
			t.Errorf("assetName(%q) = %q, want %q", in, got, want)
		}
	}
}

// --- Loaders ---

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDirLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"snow02.png": {Data: pngBytes(t, 5, 3)},
		"broken.png": {Data: []byte("not a png")},
	}
	d := DirLoader{FS: fsys}

	img, err := d.LoadImage("snow02")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 5x3", b)
	}
	if _, err := d.LoadImage("tannenbaum"); !errors.Is(err, xsnow.ErrAssetMissing) {
		t.Errorf("missing file: err = %v, want ErrAssetMissing", err)
	}
	if _, err := d.LoadImage("broken"); err == nil || errors.Is(err, xsnow.ErrAssetMissing) {
		t.Errorf("broken file: err = %v, want a decode error", err)
	}
}

func TestDirLoaderPaletteNamesMissing(t *testing.T) {
	_, err := xsnow.LoadPalette(DirLoader{FS: fstest.MapFS{}})
	var ae *xsnow.AssetError
	if !errors.As(err, &ae) || ae.ID != xsnow.TreeAsset {
		t.Errorf("err = %v, want AssetError for %q", err, xsnow.TreeAsset)
	}
}

func TestProceduralUnknown(t *testing.T) {
	if _, err := (Procedural{}).LoadImage("snowman"); !errors.Is(err, xsnow.ErrAssetMissing) {
		t.Errorf("err = %v, want ErrAssetMissing", err)
	}
}

func TestParseSleighAsset(t *testing.T) {
	set, frame, ok := parseSleighAsset("mediumsantarudolf3")
	if !ok || set != 3 || frame != 2 {
		t.Errorf("parseSleighAsset = %d, %d, %v; want 3, 2, true", set, frame, ok)
	}
	if _, _, ok := parseSleighAsset("snow00"); ok {
		t.Error("snow00 is not a sleigh asset")
	}
}

func TestProceduralSizes(t *testing.T) {
	if flakeRadius(0) >= flakeRadius(xsnow.FlakeImages-1) {
		t.Error("flakes should grow with their index")
	}
	if sleighScale(0) != sleighScale(1) || sleighScale(1) >= sleighScale(2) || sleighScale(3) >= sleighScale(5) {
		t.Errorf("sleigh scales = %v %v %v %v %v %v",
			sleighScale(0), sleighScale(1), sleighScale(2), sleighScale(3), sleighScale(4), sleighScale(5))
	}
}

// --- Keys ---

func TestGameAdjust(t *testing.T) {
	src := xsnow.NewMapSource(nil)
	scene := xsnow.NewScene(nil, xsnow.NewRNG(1))
	g := NewGame(scene, src, Options{})
	defer g.Close()
	g.Layout(200, 100)

	g.adjust(xsnow.ToggleWind)
	if scene.Config().Wind {
		t.Error("wind should be disabled after the toggle")
	}
	g.adjust(xsnow.MoreFlakes)
	if got := len(scene.Flakes()); got != 150 {
		t.Errorf("flakes = %d, want 150", got)
	}
}

// --- Focus ---

func TestGamePausesUnfocused(t *testing.T) {
	g := NewGame(xsnow.NewScene(nil, xsnow.NewRNG(1)), nil, Options{PauseUnfocused: true})
	defer g.Close()
	g.started, g.focused = true, true
	g.engine.OnVisibilityChanged(true)

	g.trackFocus(false)
	if g.Engine().Running() {
		t.Error("scene still running after the window lost focus")
	}
	g.trackFocus(false)
	if g.Engine().Running() {
		t.Error("repeated unfocus restarted the scene")
	}
	g.trackFocus(true)
	if !g.Engine().Running() {
		t.Error("scene not restarted when focus returned")
	}
}

func TestGameIgnoresFocusByDefault(t *testing.T) {
	g := NewGame(xsnow.NewScene(nil, xsnow.NewRNG(1)), nil, Options{})
	defer g.Close()
	g.started, g.focused = true, true
	g.engine.OnVisibilityChanged(true)

	g.trackFocus(false)
	if !g.Engine().Running() {
		t.Error("scene stopped on focus loss without PauseUnfocused")
	}
}

// --- Surfaces ---

func TestGameSurfaces(t *testing.T) {
	loader := xsnow.AssetLoaderFunc(func(id xsnow.AssetID) (xsnow.ImageHandle, error) {
		return ebiten.NewImage(4, 4), nil
	})
	palette, err := xsnow.LoadPalette(loader)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(xsnow.NewScene(palette, xsnow.NewRNG(1)), nil, Options{})

	if _, ok := g.AcquireSurface(); ok {
		t.Error("surface available before the first Layout")
	}
	if w, h := g.Layout(320, 240); w != 320 || h != 240 {
		t.Errorf("Layout = %d, %d", w, h)
	}
	g.Engine().Step()

	g.mu.Lock()
	n := len(g.front.ops)
	g.mu.Unlock()
	if n != 120 {
		t.Errorf("front ops = %d, want 120", n)
	}

	g.Close()
	if _, ok := g.AcquireSurface(); ok {
		t.Error("surface available after Close")
	}
}

type otherImage struct{}

func (otherImage) Bounds() image.Rectangle { return image.Rect(0, 0, 1, 1) }

func TestCommandSurfaceSkipsForeignImages(t *testing.T) {
	s := &commandSurface{}
	s.DrawImage(otherImage{}, 1, 2, 1)
	s.DrawImage(nil, 1, 2, 1)
	s.DrawImage(ebiten.NewImage(1, 1), 3, 4, 0.5)
	if len(s.ops) != 1 {
		t.Fatalf("ops = %d, want 1", len(s.ops))
	}
	if s.ops[0].x != 3 || s.ops[0].alpha != 0.5 {
		t.Errorf("op = %+v", s.ops[0])
	}
	s.Clear()
	if len(s.ops) != 0 {
		t.Error("Clear kept ops")
	}
}

// --- Screenshots ---

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"  ", "unlabeled"},
		{"", "unlabeled"},
		{"snow/fall 1.png", "snow_fall_1.png"},
		{"a-b.c", "a-b.c"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{64, 32, 0, 128, 10, 20, 30, 255}, 2, 1)
	got := img.NRGBAAt(0, 0)
	want := color.NRGBA{R: 127, G: 63, B: 0, A: 128}
	if got != want {
		t.Errorf("pixel 0 = %v, want %v", got, want)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("opaque pixel changed: %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, image.NewNRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", cfg.Width, cfg.Height)
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "x.png"), image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error for a missing directory")
	}
}
