package xsnow

import (
	"errors"
	"fmt"
)

// AssetID names one image in the scene's fixed asset set.
type AssetID string

// TreeAsset is the single decoration image.
const TreeAsset AssetID = "tannenbaum"

// SleighSets is the number of sleigh image sets (3 sizes × plain/accented).
const SleighSets = 6

var sleighSetNames = [SleighSets]string{
	"regularsanta", "regularsantarudolf",
	"mediumsanta", "mediumsantarudolf",
	"bigsanta", "bigsantarudolf",
}

// FlakeAsset returns the id of snowflake image i in [0, FlakeImages).
func FlakeAsset(i int) AssetID {
	return AssetID(fmt.Sprintf("snow%02d", i))
}

// SleighAsset returns the id of animation frame f of sleigh set i, where i is
// a SleighVariant.Index value.
func SleighAsset(set, frame int) AssetID {
	return AssetID(fmt.Sprintf("%s%d", sleighSetNames[set], frame+1))
}

// AllAssets lists the complete asset set in load order: the tree, the
// snowflakes, then every sleigh frame.
func AllAssets() []AssetID {
	ids := make([]AssetID, 0, 1+FlakeImages+SleighSets*SleighFrames)
	ids = append(ids, TreeAsset)
	for i := 0; i < FlakeImages; i++ {
		ids = append(ids, FlakeAsset(i))
	}
	for s := 0; s < SleighSets; s++ {
		for f := 0; f < SleighFrames; f++ {
			ids = append(ids, SleighAsset(s, f))
		}
	}
	return ids
}

// AssetLoader resolves asset ids to drawable images.
type AssetLoader interface {
	LoadImage(id AssetID) (ImageHandle, error)
}

// AssetLoaderFunc adapts a function to AssetLoader.
type AssetLoaderFunc func(id AssetID) (ImageHandle, error)

// LoadImage calls f(id).
func (f AssetLoaderFunc) LoadImage(id AssetID) (ImageHandle, error) {
	return f(id)
}

// ErrAssetMissing is returned by loaders that have no image for an id.
var ErrAssetMissing = errors.New("asset not found")

// AssetError reports the asset that stopped a palette from loading.
type AssetError struct {
	ID  AssetID
	Err error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("xsnow: load asset %q: %v", e.ID, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// Palette holds every image the scene draws, loaded once up front.
type Palette struct {
	Tree    ImageHandle
	Flakes  [FlakeImages]ImageHandle
	Sleighs [SleighSets][SleighFrames]ImageHandle
}

// LoadPalette loads the complete asset set. The first failure aborts the load
// with an *AssetError; a nil image counts as a failure.
func LoadPalette(l AssetLoader) (*Palette, error) {
	p := &Palette{}
	load := func(id AssetID) (ImageHandle, error) {
		img, err := l.LoadImage(id)
		if err == nil && img == nil {
			err = ErrAssetMissing
		}
		if err != nil {
			return nil, &AssetError{ID: id, Err: err}
		}
		return img, nil
	}

	var err error
	if p.Tree, err = load(TreeAsset); err != nil {
		return nil, err
	}
	for i := range p.Flakes {
		if p.Flakes[i], err = load(FlakeAsset(i)); err != nil {
			return nil, err
		}
	}
	for s := range p.Sleighs {
		for f := range p.Sleighs[s] {
			if p.Sleighs[s][f], err = load(SleighAsset(s, f)); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}
