package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"tilewave/internal/core"
)

const (
	glyphResolved      = '█'
	glyphUnresolved    = '░'
	glyphContradiction = '×'
)

// CellSource is what the terminal presenter reads each frame.
type CellSource interface {
	Size() core.Size
	Cells() []uint8
	Entropy() []uint8
	Palette() []color.RGBA
}

// Terminal draws one character per grid cell onto a tcell screen.
type Terminal struct {
	screen        tcell.Screen
	maxCandidates int
}

// NewTerminal wraps an initialised screen. maxCandidates is the catalog size
// used to scale the shading of unresolved cells.
func NewTerminal(screen tcell.Screen, maxCandidates int) *Terminal {
	return &Terminal{screen: screen, maxCandidates: maxCandidates}
}

// Draw paints src into the top-left corner of the screen, clipped to the
// screen size, and writes status on the row below the grid when it fits.
func (t *Terminal) Draw(src CellSource, status string) {
	t.screen.Clear()
	size := src.Size()
	cells := src.Cells()
	entropy := src.Entropy()
	palette := src.Palette()
	sw, sh := t.screen.Size()

	for y := 0; y < size.H && y < sh; y++ {
		for x := 0; x < size.W && x < sw; x++ {
			i := y*size.W + x
			r, style := t.cellGlyph(cells[i], entropy[i], palette)
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
	if status != "" && size.H < sh {
		t.drawText(0, size.H, status, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}
	t.screen.Show()
}

func (t *Terminal) cellGlyph(v, n uint8, palette []color.RGBA) (rune, tcell.Style) {
	switch {
	case v == core.DisplayContradiction || n == core.EntropyEmpty:
		c := core.ContradictionColor
		return glyphContradiction, tcell.StyleDefault.Foreground(rgb(c.R, c.G, c.B))
	case v != core.DisplayUnresolved:
		c := core.BackgroundColor
		if int(v) < len(palette) {
			c = palette[v]
		}
		return glyphResolved, tcell.StyleDefault.Foreground(rgb(c.R, c.G, c.B))
	default:
		c := entropyColor(int(n), t.maxCandidates)
		return glyphUnresolved, tcell.StyleDefault.Foreground(rgb(c.R, c.G, c.B))
	}
}

func (t *Terminal) drawText(x, y int, s string, style tcell.Style) {
	sw, _ := t.screen.Size()
	for _, r := range s {
		if x >= sw {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func rgb(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
