//go:build ebiten

package ui

import (
	"image/color"

	"tilewave/internal/core"
	"tilewave/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type entropyProvider interface {
	Entropy() []uint8
}

type paletteProvider interface {
	Palette() []color.RGBA
}

var gridLineColor = color.RGBA{R: 255, G: 255, B: 255, A: 28}

// Overlay draws optional debugging visuals on top of the tiled view:
// candidate counts (key 1), the average-colour view (key 2) and cell
// boundaries (key 3).
type Overlay struct {
	sim          core.Sim
	tileW, tileH int
	candidates   int

	showEntropy bool
	showPalette bool
	showGrid    bool

	painter *render.GridPainter
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for a grid whose cells are tileW*tileH
// pixels and hold at most candidates tiles.
func NewOverlay(sim core.Sim, tileW, tileH, candidates int) *Overlay {
	size := sim.Size()
	o := &Overlay{
		sim:        sim,
		tileW:      tileW,
		tileH:      tileH,
		candidates: candidates,
		painter:    render.NewGridPainter(size.W, size.H),
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlays from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showEntropy = !o.showEntropy
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showPalette = !o.showPalette
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showGrid = !o.showGrid
	}
}

// PaletteView reports whether tiles should be replaced by their average
// colour.
func (o *Overlay) PaletteView() bool { return o.showPalette }

// DrawBase fills every cell with its palette colour: the background while
// unresolved, the tile's average once resolved, red on contradiction.
func (o *Overlay) DrawBase(screen *ebiten.Image) {
	provider, ok := o.sim.(paletteProvider)
	if !ok {
		return
	}
	o.painter.Blit(screen, o.sim.Cells(), provider.Palette(), o.tileW, o.tileH)
}

// Draw renders the enabled overlays onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showEntropy {
		if provider, ok := o.sim.(entropyProvider); ok {
			o.painter.BlitEntropy(screen, provider.Entropy(), o.candidates, o.tileW, o.tileH)
		}
	}
	if o.showGrid {
		o.drawGridLines(screen, size)
	}
}

func (o *Overlay) drawGridLines(screen *ebiten.Image, size core.Size) {
	w := float64(size.W * o.tileW)
	h := float64(size.H * o.tileH)
	for x := 0; x <= size.W; x++ {
		o.drawRect(screen, float64(x*o.tileW), 0, 1, h, gridLineColor)
	}
	for y := 0; y <= size.H; y++ {
		o.drawRect(screen, 0, float64(y*o.tileH), w, 1, gridLineColor)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
