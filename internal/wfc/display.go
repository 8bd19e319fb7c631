package wfc

import (
	"image/color"

	"tilewave/internal/core"
)

// Cells exposes one byte per cell in row-major order: core.DisplayUnresolved,
// the chosen tile index plus one, or core.DisplayContradiction.
func (e *Engine) Cells() []uint8 {
	e.refresh()
	return e.display
}

// Entropy exposes the remaining candidate count per cell, or
// core.EntropyResolved for resolved cells. core.EntropyEmpty is a
// contradiction.
func (e *Engine) Entropy() []uint8 {
	e.refresh()
	return e.entropy
}

// Palette maps Cells values to colours: the background for unresolved cells,
// each tile's average colour, and red for contradictions.
func (e *Engine) Palette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		palette[i] = core.ContradictionColor
	}
	palette[core.DisplayUnresolved] = core.BackgroundColor
	for i, c := range e.tiles.Palette() {
		if i+1 >= core.DisplayContradiction {
			break
		}
		palette[i+1] = c
	}
	return palette
}

func (e *Engine) refresh() {
	if !e.dirty {
		return
	}
	e.grid.Each(func(x, y int, c *core.Cell) {
		i := e.grid.Index(x, y)
		switch {
		case c.Resolved:
			e.display[i] = displayValue(c.Chosen)
			e.entropy[i] = core.EntropyResolved
		case c.Contradicted:
			e.display[i] = core.DisplayContradiction
			e.entropy[i] = core.EntropyEmpty
		default:
			n := c.Len()
			e.display[i] = core.DisplayUnresolved
			if n == 0 {
				e.display[i] = core.DisplayContradiction
			}
			e.entropy[i] = uint8(min(n, core.EntropyResolved-1))
		}
	})
	e.dirty = false
}

func displayValue(idx int) uint8 {
	if idx+1 >= core.DisplayContradiction {
		return core.DisplayContradiction - 1
	}
	return uint8(idx + 1)
}
