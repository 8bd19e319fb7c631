package wfc

import (
	"tilewave/internal/core"
	"tilewave/internal/tile"
)

// propagateIdentity removes idx from every unresolved orthogonal neighbour of
// p. It does not look further than one step.
func (e *Engine) propagateIdentity(p core.Point, idx int, res *TickResult, primary bool) {
	e.nbuf = e.grid.Neighbors(p.X, p.Y, e.nbuf[:0])
	for _, n := range e.nbuf {
		if primary {
			res.Touched++
		}
		nc := e.grid.At(n.X, n.Y)
		if nc.Resolved || nc.Contradicted {
			continue
		}
		was := e.active(nc)
		if nc.Remove(idx) {
			e.track(nc, was)
			res.Pruned++
			e.queueSingle(n, nc)
		}
	}
}

// propagateAdjacency narrows neighbours to the candidates whose facing edge
// matches what p can still be, then repeats from every neighbour that
// shrank until nothing changes.
func (e *Engine) propagateAdjacency(start core.Point, res *TickResult, primary bool) {
	queue := append(e.queue[:0], start)
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		c := e.grid.At(p.X, p.Y)
		domain := c.Candidates()
		if c.Resolved {
			e.one[0] = c.Chosen
			domain = e.one[:]
		}
		if len(domain) == 0 {
			continue
		}
		for _, d := range tile.Dirs {
			dx, dy := d.Offset()
			n := core.Point{X: p.X + dx, Y: p.Y + dy}
			nc := e.grid.At(n.X, n.Y)
			if nc == nil {
				continue
			}
			if primary && head == 0 {
				res.Touched++
			}
			if nc.Resolved || nc.Contradicted {
				continue
			}
			allowed := e.adj.AllowedBy(d, domain)
			was := e.active(nc)
			removed := nc.Retain(allowed.Has)
			if removed == 0 {
				continue
			}
			e.track(nc, was)
			res.Pruned += removed
			e.queueSingle(n, nc)
			queue = append(queue, n)
		}
	}
	e.queue = queue[:0]
}

func (e *Engine) queueSingle(p core.Point, c *core.Cell) {
	if e.cfg.AutoResolve && c.Len() == 1 {
		e.pending = append(e.pending, p)
	}
}
