package wfc

import (
	"strconv"

	"tilewave/internal/core"
	"tilewave/internal/tile"
)

// Parameters publishes the engine configuration and progress counters.
func (e *Engine) Parameters() core.ParameterSnapshot {
	size := e.grid.Size()
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", size.W),
				intParam("h", "Height", size.H),
				intParam("tiles", "Tiles", e.tiles.Len()),
				int64Param("seed", "Seed", e.rng.Seed()),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				stringParam("rules", "Rules", e.cfg.Rules.String()),
				intParam("auto_resolve", "Auto resolve", boolInt(e.cfg.AutoResolve)),
				stringParam("on_contradiction", "On contradiction", e.cfg.OnContradiction.String()),
				intParam("fallback_tile", "Fallback tile", e.cfg.FallbackTile),
				floatParam("tolerance", "Edge tolerance", e.cfg.Tolerance),
			},
		},
		{
			Name:    "Progress",
			Summary: e.last.Outcome.String(),
			Params: []core.Parameter{
				intParam("ticks", "Ticks", e.stats.Ticks),
				intParam("resolved", "Resolved", e.stats.Resolved),
				intParam("contradicted", "Contradicted", e.stats.Contradicted),
				intParam("contradictions", "Contradictions", e.stats.Contradictions),
				intParam("restarts", "Restarts", e.stats.Restarts),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables the HUD may adjust while running.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "auto_resolve", Label: "Auto resolve", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "fallback_tile", Label: "Fallback tile", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: float64(e.tiles.Len() - 1), HasMin: true, HasMax: true},
		{Key: "tolerance", Label: "Edge tolerance", Type: core.ParamTypeFloat, Step: 8, Min: 0, Max: 765, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable and reports whether the key was
// recognised.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "auto_resolve":
		e.cfg.AutoResolve = value != 0
		e.counted = false
		return true
	case "fallback_tile":
		e.cfg.FallbackTile = max(0, min(value, e.tiles.Len()-1))
		return true
	}
	return false
}

// SetFloatParameter updates a floating point tunable and reports whether the
// key was recognised. Changing the tolerance rebuilds the adjacency table;
// candidates already pruned stay pruned.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if key != "tolerance" {
		return false
	}
	e.cfg.Tolerance = max(0, min(value, 765))
	e.adj = tile.NewAdjacency(e.tiles, e.cfg.Tolerance)
	return true
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
