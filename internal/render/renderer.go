//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"tilewave/internal/tile"
)

// Atlas holds one texture per catalog index.
type Atlas struct {
	images       []*ebiten.Image
	tileW, tileH int
	op           ebiten.DrawImageOptions
}

// NewAtlas uploads every tile raster. It fails with ErrTextureCreation when a
// tile has no pixels.
func NewAtlas(tiles *tile.Set) (*Atlas, error) {
	if err := checkTiles(tiles); err != nil {
		return nil, err
	}
	a := &Atlas{images: make([]*ebiten.Image, tiles.Len())}
	a.tileW, a.tileH = tiles.TileSize()
	for i, t := range tiles.Tiles() {
		a.images[i] = ebiten.NewImageFromImage(t.Image)
	}
	return a, nil
}

// TileSize returns the grid pitch in pixels.
func (a *Atlas) TileSize() (int, int) { return a.tileW, a.tileH }

// DrawGrid draws every resolved cell of src at (x*tileW, y*tileH).
func (a *Atlas) DrawGrid(dst *ebiten.Image, src ResolvedSource) {
	src.ForEachResolved(func(x, y, idx int) {
		if idx < 0 || idx >= len(a.images) {
			return
		}
		a.op.GeoM.Reset()
		a.op.GeoM.Translate(float64(x*a.tileW), float64(y*a.tileH))
		dst.DrawImage(a.images[idx], &a.op)
	})
}

// GridPainter uploads one pixel per cell and stretches it over the tile
// pitch.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	if w > 0 && h > 0 {
		gp.img = ebiten.NewImage(w, h)
	}
	return gp
}

// Blit maps cells through palette and draws them scaled by the tile size.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, tileW, tileH int) {
	if gp.img == nil || len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.draw(dst, tileW, tileH)
}

// BlitEntropy draws the remaining candidate counts as a translucent overlay.
func (gp *GridPainter) BlitEntropy(dst *ebiten.Image, entropy []uint8, maxCandidates, tileW, tileH int) {
	if gp.img == nil || len(entropy) != gp.w*gp.h {
		return
	}
	fillEntropyRGBA(gp.buf, entropy, maxCandidates)
	gp.draw(dst, tileW, tileH)
}

func (gp *GridPainter) draw(dst *ebiten.Image, tileW, tileH int) {
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(max(tileW, 1)), float64(max(tileH, 1)))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
