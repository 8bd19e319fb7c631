package tile

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Load decodes the image at path. Any failure wraps ErrImageLoad.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrImageLoad, path, err)
	}
	return img, nil
}

// LoadSet loads the base tile at path and builds its rotation catalog.
func LoadSet(path string) (*Set, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	set, err := Build(img)
	if err != nil {
		return nil, fmt.Errorf("build tile set from %q: %w", path, err)
	}
	return set, nil
}

// Synthetic returns a deterministic size*size tile whose four edges all
// differ, so each rotation has distinct signatures. It stands in for a real
// asset in tests and batch runs.
func Synthetic(size int) *image.NRGBA {
	if size < Segments {
		size = Segments
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	last := size - 1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := img.PixOffset(x, y)
			img.Pix[off+0] = uint8(x * 255 / last)
			img.Pix[off+1] = uint8(y * 255 / last)
			img.Pix[off+2] = uint8((x*7 + y*3) % 256)
			img.Pix[off+3] = 255
		}
	}
	return img
}
