// Package wfc implements the collapse engine: one randomly drawn cell is
// resolved per tick and the choice is propagated to the surrounding cells.
package wfc

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"tilewave/internal/core"
	"tilewave/internal/tile"
)

// ErrUnknownPreset is returned by NewPreset for unregistered names.
var ErrUnknownPreset = errors.New("wfc: unknown preset")

// Outcome classifies what a single tick did.
type Outcome uint8

const (
	// OutcomeIdle means the drawn cell was already resolved, flagged, or held
	// a single candidate that is not auto-resolved.
	OutcomeIdle Outcome = iota
	// OutcomeResolved means the drawn cell was collapsed to a tile.
	OutcomeResolved
	// OutcomeContradiction means the drawn cell had no candidates left.
	OutcomeContradiction
	// OutcomeDone means no cell can make progress any more; nothing was drawn.
	OutcomeDone
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeContradiction:
		return "contradiction"
	case OutcomeDone:
		return "done"
	default:
		return "idle"
	}
}

// TickResult reports what one tick drew and changed.
type TickResult struct {
	core.Point
	Outcome Outcome
	// Tile is the index the drawn cell was resolved to, or -1.
	Tile int
	// Touched counts the in-grid orthogonal neighbours of the drawn cell that
	// propagation visited, resolved or not.
	Touched int
	// Pruned counts candidates removed anywhere on the grid.
	Pruned int
	// Auto counts cells resolved because they were left with one candidate.
	Auto int
}

// Stats holds running counters for an engine.
type Stats struct {
	Ticks          int
	Resolved       int
	Contradicted   int
	Contradictions int
	Restarts       int
}

var presets = map[string]func() Config{
	"faithful": DefaultConfig,
	"adjacent": AdjacentConfig,
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPreset builds an engine from a named preset with optional overrides.
func NewPreset(name string, tiles *tile.Set, size core.Size, overrides map[string]string) (*Engine, error) {
	base, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	e := New(tiles, size, Apply(base(), overrides))
	e.name = name
	return e, nil
}

// Engine runs the collapse state machine over a grid of cells.
type Engine struct {
	name  string
	cfg   Config
	tiles *tile.Set
	adj   *tile.Adjacency
	grid  *core.Grid
	rng   *core.RNG
	stats Stats

	display []uint8
	entropy []uint8
	dirty   bool

	// live counts cells that can still change when drawn; it is rebuilt
	// from the grid whenever counted is false.
	live    int
	counted bool

	last    TickResult
	warned  bool
	nbuf    []core.Point
	queue   []core.Point
	pending []core.Point
	one     [1]int
}

// New allocates an engine whose grid starts with every catalog index as a
// candidate in every cell.
func New(tiles *tile.Set, size core.Size, cfg Config) *Engine {
	if cfg.FallbackTile >= tiles.Len() {
		cfg.FallbackTile = tiles.Len() - 1
	}
	if cfg.FallbackTile < 0 {
		cfg.FallbackTile = 0
	}
	e := &Engine{
		name:  "wfc",
		cfg:   cfg,
		tiles: tiles,
		adj:   tile.NewAdjacency(tiles, cfg.Tolerance),
		grid:  core.NewGrid(size.W, size.H, tiles.Len()),
		rng:   core.NewRNG(cfg.Seed),
		nbuf:  make([]core.Point, 0, 4),
		dirty: true,
		last:  TickResult{Tile: -1},
	}
	e.display = make([]uint8, e.grid.Len())
	e.entropy = make([]uint8, e.grid.Len())
	return e
}

// Name returns the preset identifier.
func (e *Engine) Name() string { return e.name }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return e.grid.Size() }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Tiles returns the catalog the engine draws from.
func (e *Engine) Tiles() *tile.Set { return e.tiles }

// Grid exposes the cells for inspection. Edits made through it are only
// picked up before the first tick or after Reset.
func (e *Engine) Grid() *core.Grid { return e.grid }

// Stats returns the running counters.
func (e *Engine) Stats() Stats { return e.stats }

// Last returns the result of the most recent tick.
func (e *Engine) Last() TickResult { return e.last }

// Seed reports the seed of the current session.
func (e *Engine) Seed() int64 { return e.rng.Seed() }

// Reset clears the grid and starts a new random session. A zero seed falls
// back to the configured seed, and to the clock when that is zero too.
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	e.rng = core.NewRNG(seed)
	e.grid.Reset(e.tiles.Len())
	e.stats = Stats{}
	e.warned = false
	e.last = TickResult{Tile: -1}
	e.dirty = true
	e.counted = false
}

// Step advances the engine by one tick.
func (e *Engine) Step() { e.Tick() }

// Done reports whether no cell can make progress: every cell is resolved,
// flagged as contradicted, or holds one candidate that will never be forced.
func (e *Engine) Done() bool {
	if !e.counted {
		e.recount()
	}
	return e.live == 0
}

// active reports whether drawing c could still change the grid.
func (e *Engine) active(c *core.Cell) bool {
	if c.Resolved || c.Contradicted {
		return false
	}
	return c.Len() != 1 || e.cfg.AutoResolve
}

func (e *Engine) recount() {
	e.live = 0
	e.grid.Each(func(_, _ int, c *core.Cell) {
		if e.active(c) {
			e.live++
		}
	})
	e.counted = true
}

// track adjusts the live count after c changed; was is active(c) from before
// the change.
func (e *Engine) track(c *core.Cell, was bool) {
	switch now := e.active(c); {
	case was && !now:
		e.live--
	case !was && now:
		e.live++
	}
}

// Tick draws one coordinate over the whole grid and acts on that cell.
func (e *Engine) Tick() TickResult {
	if e.grid.Len() == 0 || e.Done() {
		e.last = TickResult{Outcome: OutcomeDone, Tile: -1}
		return e.last
	}
	e.stats.Ticks++

	res := TickResult{Point: e.rng.Point(e.grid.W, e.grid.H), Tile: -1}
	c := e.grid.At(res.X, res.Y)
	switch {
	case c.Resolved || c.Contradicted:
		res.Outcome = OutcomeIdle
	case c.Len() == 0:
		res.Outcome = OutcomeContradiction
		e.contradict(&res)
	case c.Len() == 1 && !e.cfg.AutoResolve:
		res.Outcome = OutcomeIdle
	default:
		idx, _ := e.rng.Pick(c.Candidates())
		res.Outcome = OutcomeResolved
		e.settle(res.Point, idx, &res)
	}
	e.last = res
	return res
}

func (e *Engine) contradict(res *TickResult) {
	e.stats.Contradictions++
	switch e.cfg.OnContradiction {
	case ContradictionFallback:
		Logger().Debug("contradiction resolved to fallback tile",
			slog.Int("x", res.X), slog.Int("y", res.Y), slog.Int("tile", e.cfg.FallbackTile))
		e.settle(res.Point, e.cfg.FallbackTile, res)
	case ContradictionRestart:
		Logger().Debug("contradiction, restarting grid",
			slog.Int("x", res.X), slog.Int("y", res.Y), slog.Int("restarts", e.stats.Restarts+1))
		e.grid.Reset(e.tiles.Len())
		e.stats.Restarts++
		e.stats.Resolved = 0
		e.stats.Contradicted = 0
		e.dirty = true
		e.counted = false
	default:
		c := e.grid.At(res.X, res.Y)
		was := e.active(c)
		c.Contradicted = true
		e.track(c, was)
		e.stats.Contradicted++
		e.dirty = true
		if !e.warned {
			e.warned = true
			Logger().Warn("cell has no candidates left, skipping it",
				slog.String("engine", e.name), slog.Int("x", res.X), slog.Int("y", res.Y))
		}
	}
}

// settle resolves p to idx, propagates, then keeps forcing any cell left
// with exactly one candidate when auto-resolution is enabled.
func (e *Engine) settle(p core.Point, idx int, res *TickResult) {
	res.Tile = idx
	e.resolve(p, idx, res, true)
	for len(e.pending) > 0 {
		q := e.pending[len(e.pending)-1]
		e.pending = e.pending[:len(e.pending)-1]
		c := e.grid.At(q.X, q.Y)
		if c.Resolved || c.Contradicted || c.Len() != 1 {
			continue
		}
		res.Auto++
		e.resolve(q, c.Candidates()[0], res, false)
	}
}

func (e *Engine) resolve(p core.Point, idx int, res *TickResult, primary bool) {
	c := e.grid.At(p.X, p.Y)
	was := e.active(c)
	c.Resolve(idx)
	e.track(c, was)
	e.stats.Resolved++
	e.dirty = true
	switch e.cfg.Rules {
	case RulesAdjacency:
		e.propagateAdjacency(p, res, primary)
	default:
		e.propagateIdentity(p, idx, res, primary)
	}
}

// ForEachResolved calls fn with the coordinate and chosen tile of every
// resolved cell in row-major order.
func (e *Engine) ForEachResolved(fn func(x, y, tile int)) {
	e.grid.Each(func(x, y int, c *core.Cell) {
		if c.Resolved {
			fn(x, y, c.Chosen)
		}
	})
}

func init() {
	for _, name := range Presets() {
		name := name
		core.Register(name, func(tiles *tile.Set, size core.Size, cfg map[string]string) core.Sim {
			e, _ := NewPreset(name, tiles, size, cfg)
			return e
		})
	}
}
