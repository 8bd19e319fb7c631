package core

import (
	"slices"
	"testing"
)

func TestGridSizeDropsRemainder(t *testing.T) {
	got := GridSize(800, 600, 48, 48)
	if got != (Size{W: 16, H: 12}) {
		t.Fatalf("GridSize(800, 600, 48, 48) = %+v, want {16 12}", got)
	}
	if got := GridSize(800, 600, 0, 32); got != (Size{}) {
		t.Fatalf("zero tile width should yield an empty grid, got %+v", got)
	}
}

func TestNewGridInitialCandidates(t *testing.T) {
	g := NewGrid(5, 3, 4)
	if g.Len() != 15 {
		t.Fatalf("expected 15 cells, got %d", g.Len())
	}
	g.Each(func(x, y int, c *Cell) {
		if c.Resolved {
			t.Fatalf("cell (%d,%d) starts resolved", x, y)
		}
		if c.Len() != 4 {
			t.Fatalf("cell (%d,%d) has %d candidates, want 4", x, y, c.Len())
		}
		if !slices.Equal(c.Candidates(), []int{0, 1, 2, 3}) {
			t.Fatalf("cell (%d,%d) candidates = %v", x, y, c.Candidates())
		}
	})
}

func TestGridAtBounds(t *testing.T) {
	g := NewGrid(3, 2, 1)
	if g.At(-1, 0) != nil || g.At(3, 0) != nil || g.At(0, 2) != nil {
		t.Fatal("out of bounds lookups must return nil")
	}
	if g.At(2, 1) != &g.cells[5] {
		t.Fatal("At(2,1) should address the last cell in row-major order")
	}
}

func TestNeighborCounts(t *testing.T) {
	g := NewGrid(4, 3, 1)
	cases := []struct {
		x, y int
		want int
	}{
		{0, 0, 2},
		{3, 0, 2},
		{0, 2, 2},
		{3, 2, 2},
		{1, 0, 3},
		{0, 1, 3},
		{3, 1, 3},
		{2, 2, 3},
		{1, 1, 4},
		{2, 1, 4},
	}
	for _, tc := range cases {
		got := g.Neighbors(tc.x, tc.y, nil)
		if len(got) != tc.want {
			t.Fatalf("Neighbors(%d,%d) returned %d points, want %d", tc.x, tc.y, len(got), tc.want)
		}
		for _, p := range got {
			if !g.InBounds(p.X, p.Y) {
				t.Fatalf("neighbour %+v of (%d,%d) is out of bounds", p, tc.x, tc.y)
			}
			dx, dy := p.X-tc.x, p.Y-tc.y
			if dx*dx+dy*dy != 1 {
				t.Fatalf("neighbour %+v of (%d,%d) is not orthogonally adjacent", p, tc.x, tc.y)
			}
		}
	}
}

func TestCellRemoveIsIdempotent(t *testing.T) {
	g := NewGrid(1, 1, 4)
	c := g.At(0, 0)
	if !c.Remove(2) {
		t.Fatal("expected first removal to report presence")
	}
	if c.Remove(2) {
		t.Fatal("second removal must be a no-op")
	}
	if c.Has(2) || c.Len() != 3 {
		t.Fatalf("unexpected candidates after removal: %v", c.Candidates())
	}
	removed := c.Retain(func(idx int) bool { return idx != 0 })
	if removed != 1 || c.Len() != 2 {
		t.Fatalf("Retain removed %d, left %v", removed, c.Candidates())
	}
}

func TestGridResetRestoresCandidates(t *testing.T) {
	g := NewGrid(2, 2, 4)
	c := g.At(1, 1)
	c.Remove(0)
	c.Resolve(3)
	g.At(0, 0).Contradicted = true

	g.Reset(4)
	g.Each(func(x, y int, c *Cell) {
		if c.Resolved || c.Contradicted || c.Len() != 4 {
			t.Fatalf("cell (%d,%d) not reset: %+v", x, y, *c)
		}
	})
}
