package tile

import "math"

// Dir names one of the four orthogonal directions.
type Dir uint8

const (
	Up Dir = iota
	Right
	Down
	Left
)

// Dirs lists every direction in clockwise order.
var Dirs = [4]Dir{Up, Right, Down, Left}

// Opposite returns the direction pointing back.
func (d Dir) Opposite() Dir { return (d + 2) & 3 }

// Offset returns the grid delta of one step in direction d.
func (d Dir) Offset() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	default:
		return -1, 0
	}
}

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "left"
	}
}

// Mask is a bitset of catalog indices.
type Mask uint64

// MaxTiles is the largest catalog a Mask can describe.
const MaxTiles = 64

// Has reports whether index i is set.
func (m Mask) Has(i int) bool {
	return i >= 0 && i < MaxTiles && m&(1<<uint(i)) != 0
}

// Adjacency holds, for every direction and tile, the set of tiles whose
// facing edge matches within the tolerance.
type Adjacency struct {
	tolerance float64
	allowed   [4][]Mask
}

// NewAdjacency precomputes compatibility masks for the catalog. Tile b may sit
// on side d of tile a when every segment of a's edge facing d and b's edge
// facing back differ by at most tolerance in mean per-pixel intensity.
func NewAdjacency(s *Set, tolerance float64) *Adjacency {
	if tolerance < 0 {
		tolerance = 0
	}
	n := s.Len()
	adj := &Adjacency{tolerance: tolerance}
	for _, d := range Dirs {
		adj.allowed[d] = make([]Mask, n)
		for a := 0; a < n; a++ {
			var mask Mask
			for b := 0; b < n; b++ {
				if edgesMatch(s.tiles[a].Edges, s.tiles[b].Edges, d, tolerance) {
					mask |= 1 << uint(b)
				}
			}
			adj.allowed[d][a] = mask
		}
	}
	return adj
}

// Tolerance reports the per-pixel intensity tolerance the table was built
// with.
func (a *Adjacency) Tolerance() float64 { return a.tolerance }

// Allowed returns the tiles that may sit on side d of tile t.
func (a *Adjacency) Allowed(d Dir, t int) Mask {
	if t < 0 || t >= len(a.allowed[d]) {
		return 0
	}
	return a.allowed[d][t]
}

// AllowedBy returns the union of Allowed over every candidate.
func (a *Adjacency) AllowedBy(d Dir, candidates []int) Mask {
	var m Mask
	for _, t := range candidates {
		m |= a.Allowed(d, t)
	}
	return m
}

// Compatible reports whether tile b may sit on side d of tile a.
func (a *Adjacency) Compatible(ta, tb int, d Dir) bool {
	return a.Allowed(d, ta).Has(tb)
}

func edgesMatch(a, b Edges, d Dir, tolerance float64) bool {
	od := d.Opposite()
	sa, sb := a.Side(d), b.Side(od)
	spanA, spanB := float64(a.Span(d)), float64(b.Span(od))
	if spanA == 0 || spanB == 0 {
		return false
	}
	for i := 0; i < Segments; i++ {
		if math.Abs(float64(sa[i])/spanA-float64(sb[i])/spanB) > tolerance {
			return false
		}
	}
	return true
}
