package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"tilewave/internal/core"
	"tilewave/internal/tile"
)

// ErrTextureCreation reports a catalog entry that cannot back a texture.
var ErrTextureCreation = errors.New("render: cannot create tile texture")

// ResolvedSource is the read side of an engine the presenters draw from.
type ResolvedSource interface {
	Size() core.Size
	ForEachResolved(fn func(x, y, tile int))
}

// checkTiles verifies that every catalog entry has a drawable raster.
func checkTiles(tiles *tile.Set) error {
	if tiles == nil || tiles.Len() == 0 {
		return fmt.Errorf("%w: empty catalog", ErrTextureCreation)
	}
	for _, t := range tiles.Tiles() {
		if w, h := t.Size(); w == 0 || h == 0 {
			return fmt.Errorf("%w: tile %d is %dx%d", ErrTextureCreation, t.Index, w, h)
		}
	}
	return nil
}

// Snapshot composes every resolved cell into one image, drawing each tile at
// (x*tileW, y*tileH) over the background.
func Snapshot(tiles *tile.Set, src ResolvedSource) (*image.NRGBA, error) {
	if err := checkTiles(tiles); err != nil {
		return nil, err
	}
	tw, th := tiles.TileSize()
	size := src.Size()
	canvas := imaging.New(max(size.W*tw, 1), max(size.H*th, 1), core.BackgroundColor)
	src.ForEachResolved(func(x, y, idx int) {
		if idx < 0 || idx >= tiles.Len() {
			return
		}
		img := tiles.Tile(idx).Image
		at := image.Pt(x*tw, y*th)
		draw.Draw(canvas, img.Rect.Sub(img.Rect.Min).Add(at), img, img.Rect.Min, draw.Src)
	})
	return canvas, nil
}

// SaveSnapshot renders src and writes it to path; the format follows the
// file extension.
func SaveSnapshot(path string, tiles *tile.Set, src ResolvedSource) error {
	img, err := Snapshot(tiles, src)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save snapshot %q: %w", path, err)
	}
	return nil
}
