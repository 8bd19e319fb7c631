package tile

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Rotations is the number of catalog entries built from one base image.
const Rotations = 4

// ErrImageLoad wraps any failure to read or decode the base tile.
var ErrImageLoad = errors.New("tile: cannot load image")

// Tile is one immutable catalog entry.
type Tile struct {
	Index    int
	Rotation int // degrees counter clockwise from the base image
	Image    *image.NRGBA
	Edges    Edges
	Average  color.RGBA
}

// Size returns the raster dimensions of the tile.
func (t Tile) Size() (w, h int) {
	if t.Image == nil {
		return 0, 0
	}
	return t.Image.Rect.Dx(), t.Image.Rect.Dy()
}

// Set is the read-only tile catalog. Index 0 is always the unrotated base.
type Set struct {
	tiles []Tile
}

// Build produces the base image and its 90, 180 and 270 degree counter
// clockwise rotations, in that order, each with its own edge signatures.
func Build(base image.Image) (*Set, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil image", ErrImageLoad)
	}
	s := &Set{tiles: make([]Tile, 0, Rotations)}
	img := imaging.Clone(base)
	for i := 0; i < Rotations; i++ {
		edges, err := Extract(img)
		if err != nil {
			return nil, err
		}
		s.tiles = append(s.tiles, Tile{
			Index:    i,
			Rotation: i * 90,
			Image:    img,
			Edges:    edges,
			Average:  averageColor(img),
		})
		img = imaging.Rotate90(img)
	}
	return s, nil
}

// Len returns the number of catalog entries.
func (s *Set) Len() int { return len(s.tiles) }

// Tile returns the entry at index i.
func (s *Set) Tile(i int) Tile { return s.tiles[i] }

// Tiles exposes the catalog. Callers must not modify it.
func (s *Set) Tiles() []Tile { return s.tiles }

// TileSize returns the raster size of the base tile, which sets the grid
// pitch.
func (s *Set) TileSize() (w, h int) {
	if len(s.tiles) == 0 {
		return 0, 0
	}
	return s.tiles[0].Size()
}

// Palette returns the average colour of every tile in catalog order.
func (s *Set) Palette() []color.RGBA {
	out := make([]color.RGBA, len(s.tiles))
	for i, t := range s.tiles {
		out[i] = t.Average
	}
	return out
}

// averageColor blends every pixel in linear RGB, weighting by alpha, so
// transparent areas do not darken the result.
func averageColor(img *image.NRGBA) color.RGBA {
	var r, g, b, weight float64
	bounds := img.Rect
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			off := img.PixOffset(x, y)
			a := float64(img.Pix[off+3]) / 255
			if a == 0 {
				continue
			}
			c := colorful.Color{
				R: float64(img.Pix[off]) / 255,
				G: float64(img.Pix[off+1]) / 255,
				B: float64(img.Pix[off+2]) / 255,
			}
			lr, lg, lb := c.LinearRgb()
			r += lr * a
			g += lg * a
			b += lb * a
			weight += a
		}
	}
	if weight == 0 {
		return color.RGBA{A: 255}
	}
	avg := colorful.LinearRgb(r/weight, g/weight, b/weight).Clamped()
	cr, cg, cb := avg.RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: 255}
}
