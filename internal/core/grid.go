package core

import "slices"

// Point addresses a grid cell by column and row.
type Point struct {
	X, Y int
}

// Cell holds the resolution state of one grid position.
//
// Once Resolved is set, Chosen names the assigned catalog index and the
// candidate set is ignored. Contradicted marks an unresolved cell whose
// candidate set has been emptied and which the engine has given up on.
type Cell struct {
	Resolved     bool
	Contradicted bool
	Chosen       int

	available []int
}

// Len reports the number of remaining candidates.
func (c *Cell) Len() int { return len(c.available) }

// Candidates exposes the remaining candidate indices. Callers must not retain
// or mutate the returned slice.
func (c *Cell) Candidates() []int { return c.available }

// Has reports whether idx is still a candidate.
func (c *Cell) Has(idx int) bool { return slices.Contains(c.available, idx) }

// Remove drops idx from the candidate set and reports whether it was present.
func (c *Cell) Remove(idx int) bool {
	i := slices.Index(c.available, idx)
	if i < 0 {
		return false
	}
	c.available = slices.Delete(c.available, i, i+1)
	return true
}

// Retain keeps only the candidates for which keep returns true and reports how
// many were removed.
func (c *Cell) Retain(keep func(idx int) bool) int {
	before := len(c.available)
	c.available = slices.DeleteFunc(c.available, func(idx int) bool { return !keep(idx) })
	return before - len(c.available)
}

// Resolve commits the cell to idx.
func (c *Cell) Resolve(idx int) {
	c.Resolved = true
	c.Contradicted = false
	c.Chosen = idx
}

func (c *Cell) reset(candidates int) {
	c.Resolved = false
	c.Contradicted = false
	c.Chosen = 0
	if cap(c.available) < candidates {
		c.available = make([]int, candidates)
	}
	c.available = c.available[:candidates]
	for i := range c.available {
		c.available[i] = i
	}
}

// Grid stores a fixed-size rectangle of cells in row-major order.
type Grid struct {
	W, H  int
	cells []Cell
}

// GridSize computes how many whole tiles fit on the canvas. The remainder is
// left as unused margin.
func GridSize(canvasW, canvasH, tileW, tileH int) Size {
	if tileW <= 0 || tileH <= 0 {
		return Size{}
	}
	return Size{W: canvasW / tileW, H: canvasH / tileH}
}

// NewGrid allocates a grid whose cells all start unresolved with the full
// candidate range 0..candidates-1.
func NewGrid(w, h, candidates int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{W: w, H: h, cells: make([]Cell, w*h)}
	g.Reset(candidates)
	return g
}

// Reset returns every cell to the unresolved state with the full candidate
// range.
func (g *Grid) Reset(candidates int) {
	if candidates < 0 {
		candidates = 0
	}
	for i := range g.cells {
		g.cells[i].reset(candidates)
	}
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the cell at (x, y), or nil when the coordinate is outside the
// grid.
func (g *Grid) At(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.cells[g.Index(x, y)]
}

// Neighbors appends the orthogonal neighbours of (x, y) that lie inside the
// grid to buf, in up, right, down, left order.
func (g *Grid) Neighbors(x, y int, buf []Point) []Point {
	if y > 0 {
		buf = append(buf, Point{X: x, Y: y - 1})
	}
	if x+1 < g.W {
		buf = append(buf, Point{X: x + 1, Y: y})
	}
	if y+1 < g.H {
		buf = append(buf, Point{X: x, Y: y + 1})
	}
	if x > 0 {
		buf = append(buf, Point{X: x - 1, Y: y})
	}
	return buf
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, c *Cell)) {
	for i := range g.cells {
		fn(i%g.W, i/g.W, &g.cells[i])
	}
}
