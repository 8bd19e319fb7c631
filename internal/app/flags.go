package app

import (
	"strconv"

	"tilewave/internal/core"
	"tilewave/internal/tile"
)

// Presentation modes accepted by --mode.
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
	ModeHeadless = "headless"
)

// presetValue leaves the engine preset's own setting in place.
const presetValue = "preset"

// Config represents the command-line parameters for the application.
type Config struct {
	Tile   string `short:"t" default:"tiles/cave.png" help:"Base tile image; its size sets the grid pitch."`
	Width  int    `default:"800" help:"Canvas width in pixels."`
	Height int    `default:"600" help:"Canvas height in pixels."`
	TPS    int    `name:"tps" default:"60" help:"Engine ticks per second."`
	Seed   int64  `help:"Session seed; 0 derives one from the clock."`

	Preset          string  `enum:"faithful,adjacent" default:"faithful" help:"Engine preset (${enum})."`
	Tolerance       float64 `default:"-1" help:"Edge match tolerance for adjacency rules; negative keeps the preset value."`
	OnContradiction string  `enum:"preset,skip,fallback,restart" default:"preset" help:"What to do with a cell left without candidates (${enum})."`
	AutoResolve     string  `enum:"preset,on,off" default:"preset" help:"Resolve cells reduced to one candidate immediately (${enum})."`
	FallbackTile    int     `default:"0" help:"Tile used by the fallback contradiction policy."`

	Mode  string `short:"m" enum:"window,terminal,headless" default:"window" help:"Presentation (${enum})."`
	Ticks int    `default:"100000" help:"Tick budget for headless runs."`
	Out   string `short:"o" help:"PNG written when a headless run ends."`

	TicksPerFrame int  `default:"1" help:"Engine ticks per rendered frame in window mode."`
	Verbose       bool `short:"v" help:"Log engine diagnostics at debug level."`
}

// NewConfig returns a Config populated with the defaults kong would apply.
func NewConfig() *Config {
	return &Config{
		Tile:            "tiles/cave.png",
		Width:           800,
		Height:          600,
		TPS:             60,
		Preset:          "faithful",
		Tolerance:       -1,
		OnContradiction: presetValue,
		AutoResolve:     presetValue,
		Mode:            ModeWindow,
		Ticks:           100000,
		TicksPerFrame:   1,
	}
}

// Overrides turns the engine flags into the map consumed by wfc presets.
// Flags left at their preset value are omitted.
func (c *Config) Overrides() map[string]string {
	out := map[string]string{}
	if c.Seed != 0 {
		out["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	if c.Tolerance >= 0 {
		out["tolerance"] = strconv.FormatFloat(c.Tolerance, 'f', -1, 64)
	}
	if c.OnContradiction != "" && c.OnContradiction != presetValue {
		out["on_contradiction"] = c.OnContradiction
	}
	switch c.AutoResolve {
	case "on":
		out["auto_resolve"] = "true"
	case "off":
		out["auto_resolve"] = "false"
	}
	if c.FallbackTile > 0 {
		out["fallback_tile"] = strconv.Itoa(c.FallbackTile)
	}
	return out
}

// GridSize derives the grid dimensions from the canvas and the tile pitch.
func (c *Config) GridSize(tiles *tile.Set) core.Size {
	tw, th := tiles.TileSize()
	return core.GridSize(c.Width, c.Height, tw, th)
}
