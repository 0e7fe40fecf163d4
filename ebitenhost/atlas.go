package ebitenhost

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/xsnow"
)

// region is a sub-rectangle of one atlas page.
type region struct {
	page int
	rect image.Rectangle
}

// Atlas serves scene assets from TexturePacker sprite sheets. Frame names
// may carry an image extension ("snow03.png" serves asset snow03).
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]region
}

// LoadAtlas parses TexturePacker JSON data and associates the given page
// images. Supports both the hash format (single "frames" object) and the
// array format ("textures" array with per-page frame lists). Rotated frames
// are not supported.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	regions, err := parseAtlas(jsonData)
	if err != nil {
		return nil, err
	}
	for name, r := range regions {
		if r.page >= len(pages) {
			return nil, fmt.Errorf("xsnow: atlas frame %q on page %d, have %d pages", name, r.page, len(pages))
		}
	}
	return &Atlas{Pages: pages, regions: regions}, nil
}

// LoadImage implements xsnow.AssetLoader.
func (a *Atlas) LoadImage(id xsnow.AssetID) (xsnow.ImageHandle, error) {
	r, ok := a.regions[string(id)]
	if !ok {
		return nil, xsnow.ErrAssetMissing
	}
	return a.Pages[r.page].SubImage(r.rect).(*ebiten.Image), nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

var errNoFrames = errors.New(`xsnow: atlas JSON has neither "frames" nor "textures" key`)

func parseAtlas(jsonData []byte) (map[string]region, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("xsnow: parse atlas JSON: %w", err)
	}

	regions := make(map[string]region)
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("xsnow: parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			if err := addFrames(regions, tex.Frames, i); err != nil {
				return nil, err
			}
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("xsnow: parse atlas frames: %w", err)
		}
		if err := addFrames(regions, frames, 0); err != nil {
			return nil, err
		}
	default:
		return nil, errNoFrames
	}
	return regions, nil
}

func addFrames(regions map[string]region, frames map[string]jsonFrame, page int) error {
	for name, f := range frames {
		if f.Rotated {
			return fmt.Errorf("xsnow: atlas frame %q is rotated", name)
		}
		regions[assetName(name)] = region{
			page: page,
			rect: image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
		}
	}
	return nil
}

// assetName strips an image extension from a frame name.
func assetName(frame string) string {
	for _, ext := range []string{".png", ".gif", ".jpg"} {
		if s, ok := strings.CutSuffix(frame, ext); ok {
			return s
		}
	}
	return frame
}
