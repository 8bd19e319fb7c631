package wfc

import (
	"slices"
	"testing"

	"tilewave/internal/core"
	"tilewave/internal/tile"
)

func testTiles(t *testing.T) *tile.Set {
	t.Helper()
	set, err := tile.Build(tile.Synthetic(9))
	if err != nil {
		t.Fatalf("build tiles: %v", err)
	}
	return set
}

func newTestEngine(t *testing.T, w, h int, cfg Config) *Engine {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 1234
	}
	return New(testTiles(t), core.Size{W: w, H: h}, cfg)
}

type cellState struct {
	resolved   bool
	chosen     int
	candidates []int
}

func snapshot(g *core.Grid) []cellState {
	out := make([]cellState, 0, g.Len())
	g.Each(func(x, y int, c *core.Cell) {
		out = append(out, cellState{
			resolved:   c.Resolved,
			chosen:     c.Chosen,
			candidates: slices.Clone(c.Candidates()),
		})
	})
	return out
}

func positionClass(g *core.Grid, x, y int) int {
	n := 4
	if x == 0 || x == g.W-1 {
		n--
	}
	if y == 0 || y == g.H-1 {
		n--
	}
	return n
}

func TestInitialGridHasFullCatalog(t *testing.T) {
	e := newTestEngine(t, 7, 4, DefaultConfig())
	if got := e.Size(); got != (core.Size{W: 7, H: 4}) {
		t.Fatalf("Size = %+v", got)
	}
	e.Grid().Each(func(x, y int, c *core.Cell) {
		if c.Resolved || c.Len() != e.Tiles().Len() {
			t.Fatalf("cell (%d,%d) not initialised: resolved=%v candidates=%v", x, y, c.Resolved, c.Candidates())
		}
	})
	for i, v := range e.Cells() {
		if v != core.DisplayUnresolved {
			t.Fatalf("display cell %d = %d, want unresolved", i, v)
		}
	}
}

func TestTwoByTwoSingleTick(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		e := newTestEngine(t, 2, 2, cfg)
		res := e.Tick()

		resolved := 0
		e.Grid().Each(func(x, y int, c *core.Cell) {
			if c.Resolved {
				resolved++
			}
		})
		if res.Outcome != OutcomeResolved {
			t.Fatalf("seed %d: fresh cell with 4 candidates should resolve, got %s", seed, res.Outcome)
		}
		if resolved != 1 {
			t.Fatalf("seed %d: expected exactly one resolved cell, got %d", seed, resolved)
		}
		if res.Touched != 2 {
			t.Fatalf("seed %d: corner cell should touch 2 neighbours, got %d", seed, res.Touched)
		}
		e.Grid().Each(func(x, y int, c *core.Cell) {
			if c.Resolved {
				return
			}
			dx, dy := x-res.X, y-res.Y
			adjacent := dx*dx+dy*dy == 1
			if adjacent && (c.Has(res.Tile) || c.Len() != 3) {
				t.Fatalf("seed %d: neighbour (%d,%d) still has %d: %v", seed, x, y, res.Tile, c.Candidates())
			}
			if !adjacent && c.Len() != 4 {
				t.Fatalf("seed %d: diagonal cell (%d,%d) was pruned: %v", seed, x, y, c.Candidates())
			}
		})
	}
}

func TestSingleCandidateCellIsNeverSelected(t *testing.T) {
	hits := 0
	for seed := int64(1); seed <= 40; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		e := newTestEngine(t, 2, 1, cfg)
		lone := e.Grid().At(0, 0)
		lone.Retain(func(idx int) bool { return idx == 1 })
		e.Grid().At(1, 0).Retain(func(idx int) bool { return idx == 0 || idx == 2 })

		for i := 0; i < 200 && !e.Done(); i++ {
			before := lone.Len()
			res := e.Tick()
			if res.X == 0 && res.Y == 0 && before == 1 {
				hits++
				if res.Outcome != OutcomeIdle || lone.Resolved {
					t.Fatalf("seed %d: single candidate cell was acted on: %s", seed, res.Outcome)
				}
			}
		}
		if lone.Resolved {
			t.Fatalf("seed %d: single candidate cell must stay unresolved without auto-resolve", seed)
		}
		if !e.Done() {
			t.Fatalf("seed %d: grid should settle once the other cell resolves", seed)
		}
	}
	if hits == 0 {
		t.Fatal("expected the single candidate cell to be drawn at least once")
	}
}

func TestAutoResolveForcesSingleCandidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoResolve = true
	e := newTestEngine(t, 1, 1, cfg)
	e.Grid().At(0, 0).Retain(func(idx int) bool { return idx == 3 })

	res := e.Tick()
	if res.Outcome != OutcomeResolved || res.Tile != 3 {
		t.Fatalf("expected forced resolution to tile 3, got %s tile %d", res.Outcome, res.Tile)
	}
	if !e.Done() {
		t.Fatal("a fully resolved grid must be done")
	}
	if next := e.Tick(); next.Outcome != OutcomeDone {
		t.Fatalf("ticking a done engine should report done, got %s", next.Outcome)
	}
}

func TestAutoResolveCascadesToNeighbours(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoResolve = true
	e := newTestEngine(t, 2, 1, cfg)
	e.Grid().At(0, 0).Retain(func(idx int) bool { return idx == 0 || idx == 1 })
	e.Grid().At(1, 0).Retain(func(idx int) bool { return idx == 0 || idx == 1 })

	res := e.Tick()
	if res.Outcome != OutcomeResolved || res.Auto != 1 {
		t.Fatalf("expected one cascaded resolution, got %s auto=%d", res.Outcome, res.Auto)
	}
	a, b := e.Grid().At(0, 0), e.Grid().At(1, 0)
	if !a.Resolved || !b.Resolved || a.Chosen == b.Chosen {
		t.Fatalf("expected both cells resolved to different tiles, got %+v %+v", *a, *b)
	}
}

func TestPropagationTouchCountsByPosition(t *testing.T) {
	e := newTestEngine(t, 8, 6, DefaultConfig())
	seen := map[int]bool{}
	for i := 0; i < 5000 && !e.Done(); i++ {
		res := e.Tick()
		if res.Outcome != OutcomeResolved {
			continue
		}
		want := positionClass(e.Grid(), res.X, res.Y)
		if res.Touched != want {
			t.Fatalf("cell (%d,%d) touched %d neighbours, want %d", res.X, res.Y, res.Touched, want)
		}
		seen[want] = true
	}
	for _, class := range []int{2, 3, 4} {
		if !seen[class] {
			t.Fatalf("no resolution observed for a cell with %d neighbours", class)
		}
	}
}

func TestIdentityPropagationIsOneHop(t *testing.T) {
	e := newTestEngine(t, 6, 5, DefaultConfig())
	for i := 0; i < 400; i++ {
		before := snapshot(e.Grid())
		res := e.Tick()
		after := snapshot(e.Grid())
		for idx := range after {
			x, y := idx%e.Grid().W, idx/e.Grid().W
			b, a := before[idx], after[idx]
			if b.resolved {
				if !a.resolved || a.chosen != b.chosen {
					t.Fatalf("resolved cell (%d,%d) changed", x, y)
				}
				continue
			}
			if res.Outcome != OutcomeResolved || (x == res.X && y == res.Y) {
				continue
			}
			dx, dy := x-res.X, y-res.Y
			if dx*dx+dy*dy == 1 {
				if slices.Contains(a.candidates, res.Tile) {
					t.Fatalf("neighbour (%d,%d) kept chosen tile %d", x, y, res.Tile)
				}
				continue
			}
			if !slices.Equal(a.candidates, b.candidates) {
				t.Fatalf("non-neighbour (%d,%d) changed from %v to %v", x, y, b.candidates, a.candidates)
			}
		}
	}
}

func TestInvariantsHoldOverManyTicks(t *testing.T) {
	e := newTestEngine(t, 8, 6, DefaultConfig())
	prev := snapshot(e.Grid())
	for i := 0; i < 2000; i++ {
		e.Tick()
		cur := snapshot(e.Grid())
		for idx := range cur {
			p, c := prev[idx], cur[idx]
			if p.resolved && !c.resolved {
				t.Fatalf("cell %d went from resolved back to unresolved", idx)
			}
			if c.resolved && (c.chosen < 0 || c.chosen >= e.Tiles().Len()) {
				t.Fatalf("cell %d chose out of range tile %d", idx, c.chosen)
			}
			if !c.resolved && len(c.candidates) > len(p.candidates) {
				t.Fatalf("cell %d candidate set grew from %v to %v", idx, p.candidates, c.candidates)
			}
		}
		prev = cur
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := newTestEngine(t, 10, 8, Config{Seed: 99, Tolerance: 48})
	b := newTestEngine(t, 10, 8, Config{Seed: 99, Tolerance: 48})
	for i := 0; i < 300; i++ {
		ra, rb := a.Tick(), b.Tick()
		if ra != rb {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, ra, rb)
		}
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("same seed should yield identical grids")
	}

	a.Reset(7)
	b.Reset(7)
	for i := 0; i < 50; i++ {
		a.Tick()
		b.Tick()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("Reset with the same seed should replay the same session")
	}
}

func TestFaithfulRunSettles(t *testing.T) {
	e := newTestEngine(t, 3, 3, DefaultConfig())
	res := Run(e, 20000)
	if !res.Done {
		t.Fatalf("expected a 3x3 grid to settle, stats %+v", res.Stats)
	}
	e.Grid().Each(func(x, y int, c *core.Cell) {
		if !c.Resolved && !c.Contradicted && c.Len() != 1 {
			t.Fatalf("settled grid still has progress at (%d,%d): %v", x, y, c.Candidates())
		}
	})
}

func TestContradictionSkip(t *testing.T) {
	e := newTestEngine(t, 1, 1, DefaultConfig())
	e.Grid().At(0, 0).Retain(func(int) bool { return false })

	res := e.Tick()
	if res.Outcome != OutcomeContradiction {
		t.Fatalf("expected contradiction, got %s", res.Outcome)
	}
	c := e.Grid().At(0, 0)
	if c.Resolved || !c.Contradicted {
		t.Fatalf("skip policy should flag the cell, got %+v", *c)
	}
	if e.Stats().Contradicted != 1 || e.Stats().Contradictions != 1 {
		t.Fatalf("unexpected stats %+v", e.Stats())
	}
	if e.Cells()[0] != core.DisplayContradiction || e.Entropy()[0] != core.EntropyEmpty {
		t.Fatalf("display should mark contradiction, got %d/%d", e.Cells()[0], e.Entropy()[0])
	}
	if !e.Done() {
		t.Fatal("a grid of flagged cells is done")
	}
}

func TestContradictionFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OnContradiction = ContradictionFallback
	cfg.FallbackTile = 2
	e := newTestEngine(t, 2, 1, cfg)
	e.Grid().At(0, 0).Retain(func(int) bool { return false })
	e.Grid().At(1, 0).Retain(func(int) bool { return false })

	res := e.Tick()
	if res.Outcome != OutcomeContradiction || res.Tile != 2 {
		t.Fatalf("expected fallback to tile 2, got %s tile %d", res.Outcome, res.Tile)
	}
	if c := e.Grid().At(res.X, res.Y); !c.Resolved || c.Chosen != 2 {
		t.Fatalf("fallback cell not resolved: %+v", *c)
	}
}

func TestFallbackTileClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FallbackTile = 40
	e := newTestEngine(t, 1, 1, cfg)
	if got := e.Config().FallbackTile; got != e.Tiles().Len()-1 {
		t.Fatalf("fallback tile = %d, want clamp to %d", got, e.Tiles().Len()-1)
	}
}

func TestContradictionRestart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OnContradiction = ContradictionRestart
	e := newTestEngine(t, 1, 1, cfg)
	e.Grid().At(0, 0).Retain(func(int) bool { return false })

	res := e.Tick()
	if res.Outcome != OutcomeContradiction {
		t.Fatalf("expected contradiction, got %s", res.Outcome)
	}
	if c := e.Grid().At(0, 0); c.Resolved || c.Len() != e.Tiles().Len() {
		t.Fatalf("restart should clear the grid, got %+v", *c)
	}
	if e.Stats().Restarts != 1 {
		t.Fatalf("expected one restart, got %+v", e.Stats())
	}
}

func TestAdjacencyKeepsNeighboursCompatible(t *testing.T) {
	cfg := AdjacentConfig()
	cfg.Tolerance = 60
	e := newTestEngine(t, 6, 6, cfg)
	adj := tile.NewAdjacency(e.Tiles(), cfg.Tolerance)

	for i := 0; i < 3000 && !e.Done(); i++ {
		e.Tick()
		g := e.Grid()
		g.Each(func(x, y int, c *core.Cell) {
			if !c.Resolved {
				return
			}
			for _, d := range tile.Dirs {
				dx, dy := d.Offset()
				n := g.At(x+dx, y+dy)
				if n == nil || n.Contradicted {
					continue
				}
				if n.Resolved {
					if !adj.Compatible(c.Chosen, n.Chosen, d) {
						t.Fatalf("tick %d: tiles %d and %d clash %s of (%d,%d)", i, c.Chosen, n.Chosen, d, x, y)
					}
					continue
				}
				for _, cand := range n.Candidates() {
					if !adj.Compatible(c.Chosen, cand, d) {
						t.Fatalf("tick %d: candidate %d %s of (%d,%d) clashes with tile %d", i, cand, d, x, y, c.Chosen)
					}
				}
			}
		})
	}
}

func TestAdjacencyLooseToleranceBehavesLikeFullDomain(t *testing.T) {
	cfg := AdjacentConfig()
	cfg.Tolerance = 765
	e := newTestEngine(t, 3, 3, cfg)
	res := e.Tick()
	if res.Outcome != OutcomeResolved || res.Pruned != 0 {
		t.Fatalf("everything matches at max tolerance, got %s pruned=%d", res.Outcome, res.Pruned)
	}
}

func TestForEachResolvedReportsChosenTiles(t *testing.T) {
	e := newTestEngine(t, 4, 4, DefaultConfig())
	for i := 0; i < 100; i++ {
		e.Tick()
	}
	cells := e.Cells()
	count := 0
	e.ForEachResolved(func(x, y, tl int) {
		count++
		if got := cells[e.Grid().Index(x, y)]; int(got) != tl+1 {
			t.Fatalf("display value %d at (%d,%d) does not match tile %d", got, x, y, tl)
		}
	})
	if count != e.Stats().Resolved {
		t.Fatalf("ForEachResolved visited %d cells, stats report %d", count, e.Stats().Resolved)
	}
}

func TestPresetsRegistered(t *testing.T) {
	tiles := testTiles(t)
	for _, name := range []string{"faithful", "adjacent"} {
		factory, ok := core.Sims()[name]
		if !ok {
			t.Fatalf("preset %q not registered", name)
		}
		sim := factory(tiles, core.Size{W: 3, H: 2}, map[string]string{"seed": "5"})
		if sim == nil || sim.Name() != name {
			t.Fatalf("factory for %q returned %v", name, sim)
		}
		if sim.Size() != (core.Size{W: 3, H: 2}) {
			t.Fatalf("preset %q has size %+v", name, sim.Size())
		}
	}
	if _, err := NewPreset("nope", tiles, core.Size{W: 1, H: 1}, nil); err == nil {
		t.Fatal("unknown preset should fail")
	}
	e, err := NewPreset("adjacent", tiles, core.Size{W: 1, H: 1}, nil)
	if err != nil {
		t.Fatalf("NewPreset: %v", err)
	}
	if e.Config().Rules != RulesAdjacency || !e.Config().AutoResolve || e.Config().OnContradiction != ContradictionRestart {
		t.Fatalf("adjacent preset misconfigured: %+v", e.Config())
	}
}

func TestEmptyGridIsDone(t *testing.T) {
	e := newTestEngine(t, 0, 0, DefaultConfig())
	if res := e.Tick(); res.Outcome != OutcomeDone {
		t.Fatalf("empty grid tick = %s, want done", res.Outcome)
	}
}

func liveCells(e *Engine) int {
	n := 0
	e.Grid().Each(func(_, _ int, c *core.Cell) {
		if e.active(c) {
			n++
		}
	})
	return n
}

func TestLiveCountMatchesGrid(t *testing.T) {
	skip := AdjacentConfig()
	skip.OnContradiction = ContradictionSkip
	fallback := DefaultConfig()
	fallback.OnContradiction = ContradictionFallback
	configs := map[string]Config{
		"faithful":      DefaultConfig(),
		"adjacent":      AdjacentConfig(),
		"adjacent-skip": skip,
		"fallback":      fallback,
	}
	for name, cfg := range configs {
		e := newTestEngine(t, 9, 7, cfg)
		for i := 0; i < 3000; i++ {
			switch i {
			case 400:
				e.SetIntParameter("auto_resolve", 1)
			case 800:
				e.SetIntParameter("auto_resolve", 0)
			case 1500:
				e.Reset(99)
			}
			e.Tick()
			done := e.Done()
			want := liveCells(e)
			if e.live != want {
				t.Fatalf("%s tick %d: live count %d, grid has %d", name, i, e.live, want)
			}
			if done != (want == 0) {
				t.Fatalf("%s tick %d: Done = %v with %d live cells", name, i, done, want)
			}
		}
	}
}

func TestPaletteUsesSharedColours(t *testing.T) {
	e := newTestEngine(t, 2, 2, DefaultConfig())
	palette := e.Palette()
	if len(palette) != 256 {
		t.Fatalf("palette has %d entries", len(palette))
	}
	if palette[core.DisplayUnresolved] != core.BackgroundColor {
		t.Fatalf("unresolved colour %v", palette[core.DisplayUnresolved])
	}
	if palette[core.DisplayContradiction] != core.ContradictionColor {
		t.Fatalf("contradiction colour %v", palette[core.DisplayContradiction])
	}
	for i, c := range e.Tiles().Palette() {
		if palette[i+1] != c {
			t.Fatalf("tile %d colour %v, want %v", i, palette[i+1], c)
		}
	}
}
