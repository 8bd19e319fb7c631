package core

import "image/color"

// Display buffer values shared by the engine and the presenters. A cell value
// is DisplayUnresolved, a tile index plus one, or DisplayContradiction. An
// entropy value is the remaining candidate count, EntropyEmpty for a cell
// with none left, or EntropyResolved.
const (
	DisplayUnresolved    = 0
	DisplayContradiction = 255
	EntropyEmpty         = 0
	EntropyResolved      = 255
)

var (
	// BackgroundColor fills cells that have not been resolved yet.
	BackgroundColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	// ContradictionColor marks cells left without candidates.
	ContradictionColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)
