// Package tile builds the read-only tile catalog: edge signatures extracted
// from pixel data, the rotated variants of a base image and the adjacency
// table derived from their signatures.
package tile

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Segments is the number of equal parts each edge is split into.
const Segments = 3

// ErrInvalidTileDimensions reports a raster too small to split each edge into
// three non-empty segments.
var ErrInvalidTileDimensions = errors.New("tile: raster must be at least 3x3 pixels")

// Signature is the summed intensity of the three segments of one edge.
// Horizontal edges run left to right, vertical edges top to bottom.
type Signature [Segments]int

// Reversed returns the signature read in the opposite direction.
func (s Signature) Reversed() Signature {
	return Signature{s[2], s[1], s[0]}
}

// Edges holds the four border signatures of a tile along with the segment
// lengths used to compute them.
type Edges struct {
	Up, Down, Left, Right Signature

	// HSpan is the segment length of Up and Down, VSpan of Left and Right.
	HSpan, VSpan int
}

// RotateCCW returns the edges of the same tile turned 90 degrees counter
// clockwise. The result matches a fresh extraction whenever both raster
// dimensions are multiples of three.
func (e Edges) RotateCCW() Edges {
	return Edges{
		Up:    e.Right,
		Left:  e.Up.Reversed(),
		Down:  e.Left,
		Right: e.Down.Reversed(),
		HSpan: e.VSpan,
		VSpan: e.HSpan,
	}
}

// Side returns the signature facing direction d.
func (e Edges) Side(d Dir) Signature {
	switch d {
	case Up:
		return e.Up
	case Right:
		return e.Right
	case Down:
		return e.Down
	default:
		return e.Left
	}
}

// Span returns the segment length of the edge facing direction d.
func (e Edges) Span(d Dir) int {
	if d == Up || d == Down {
		return e.HSpan
	}
	return e.VSpan
}

// Intensity sums the colour channels of one pixel.
func Intensity(r, g, b uint8) int {
	return int(r) + int(g) + int(b)
}

// Extract computes the edge signatures of img. Columns or rows left over
// after dividing an edge by three are ignored; alpha does not contribute.
func Extract(img image.Image) (Edges, error) {
	src := asNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w < Segments || h < Segments {
		return Edges{}, fmt.Errorf("%w: got %dx%d", ErrInvalidTileDimensions, w, h)
	}

	e := Edges{HSpan: w / Segments, VSpan: h / Segments}
	for s := 0; s < Segments; s++ {
		for i := 0; i < e.HSpan; i++ {
			x := s*e.HSpan + i
			e.Up[s] += intensityAt(src, x, 0)
			e.Down[s] += intensityAt(src, x, h-1)
		}
		for i := 0; i < e.VSpan; i++ {
			y := s*e.VSpan + i
			e.Left[s] += intensityAt(src, 0, y)
			e.Right[s] += intensityAt(src, w-1, y)
		}
	}
	return e, nil
}

func intensityAt(img *image.NRGBA, x, y int) int {
	off := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return Intensity(img.Pix[off], img.Pix[off+1], img.Pix[off+2])
}

// asNRGBA returns img as non-premultiplied RGBA so colour channels are read
// independently of alpha.
func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}
