package core

import (
	"sort"

	"tilewave/internal/tile"
)

// Size describes the dimensions of a grid in cells.
type Size struct {
	W int
	H int
}

// Sim defines the contract the presentation layers drive once per frame.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim over a tile catalog using an optional
// configuration map.
type Factory func(tiles *tile.Set, size Size, cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
