// Package render turns engine state into pixels: an ebiten atlas and
// overlays for the window, a tcell presenter for terminals and PNG
// snapshots for headless runs.
package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"tilewave/internal/core"
)

var (
	entropyLow  = colorful.Color{R: 0.20, G: 0.75, B: 0.95}
	entropyHigh = colorful.Color{R: 0.35, G: 0.20, B: 0.60}
	emptyTint   = withAlpha(core.ContradictionColor, 180)
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		putRGBA(buf, i, palette[idx])
	}
}

// fillEntropyRGBA shades unresolved cells by how many candidates they still
// hold out of maxCandidates. Resolved cells stay transparent and emptied
// cells are tinted red.
func fillEntropyRGBA(buf []byte, entropy []uint8, maxCandidates int) {
	if maxCandidates < 1 {
		maxCandidates = 1
	}
	for i, n := range entropy {
		switch n {
		case core.EntropyResolved:
			putRGBA(buf, i, color.RGBA{})
		case core.EntropyEmpty:
			putRGBA(buf, i, emptyTint)
		default:
			putRGBA(buf, i, entropyColor(int(n), maxCandidates))
		}
	}
}

// entropyColor blends from the low to the high entropy colour and grows more
// opaque as the candidate count rises.
func entropyColor(n, maxCandidates int) color.RGBA {
	t := float64(n) / float64(maxCandidates)
	if t > 1 {
		t = 1
	}
	r, g, b := entropyLow.BlendLab(entropyHigh, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(60 + 120*t)}
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

func putRGBA(buf []byte, i int, c color.RGBA) {
	base := i * 4
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}
