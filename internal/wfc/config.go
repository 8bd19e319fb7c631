package wfc

import (
	"strconv"
	"strings"
)

// Rules selects how a resolution constrains the surrounding cells.
type Rules uint8

const (
	// RulesIdentity removes the chosen tile from the immediate neighbours only.
	RulesIdentity Rules = iota
	// RulesAdjacency keeps only edge-compatible candidates and cascades through
	// every cell whose candidate set shrank.
	RulesAdjacency
)

func (r Rules) String() string {
	if r == RulesAdjacency {
		return "adjacency"
	}
	return "identity"
}

// ParseRules maps a rules name to its value.
func ParseRules(s string) (Rules, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity":
		return RulesIdentity, true
	case "adjacency":
		return RulesAdjacency, true
	}
	return RulesIdentity, false
}

// ContradictionPolicy decides what happens to an unresolved cell drawn with
// no candidates left.
type ContradictionPolicy uint8

const (
	// ContradictionSkip flags the cell and never resolves it.
	ContradictionSkip ContradictionPolicy = iota
	// ContradictionFallback resolves the cell to Config.FallbackTile.
	ContradictionFallback
	// ContradictionRestart clears the whole grid and keeps ticking.
	ContradictionRestart
)

func (p ContradictionPolicy) String() string {
	switch p {
	case ContradictionFallback:
		return "fallback"
	case ContradictionRestart:
		return "restart"
	default:
		return "skip"
	}
}

// ParseContradictionPolicy maps a policy name to its value.
func ParseContradictionPolicy(s string) (ContradictionPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return ContradictionSkip, true
	case "fallback":
		return ContradictionFallback, true
	case "restart":
		return ContradictionRestart, true
	}
	return ContradictionSkip, false
}

// Config controls one collapse engine.
type Config struct {
	Seed int64

	Rules           Rules
	AutoResolve     bool
	OnContradiction ContradictionPolicy
	FallbackTile    int

	// Tolerance is the largest mean per-pixel intensity difference (0..765)
	// between facing edge segments that still counts as a match.
	Tolerance float64
}

// DefaultConfig returns the faithful configuration: identity pruning, single
// candidate cells left alone and contradictions skipped.
func DefaultConfig() Config {
	return Config{
		Rules:           RulesIdentity,
		OnContradiction: ContradictionSkip,
		Tolerance:       48,
	}
}

// AdjacentConfig returns the corrected configuration: edge-compatibility
// pruning with full propagation, forced resolution of single candidate cells
// and a fresh start on contradiction.
func AdjacentConfig() Config {
	c := DefaultConfig()
	c.Rules = RulesAdjacency
	c.AutoResolve = true
	c.OnContradiction = ContradictionRestart
	return c
}

// FromMap populates a faithful Config from a string map (flag-style key/value
// pairs).
func FromMap(cfg map[string]string) Config {
	return Apply(DefaultConfig(), cfg)
}

// Apply overrides fields of base from a string map. Unknown keys and
// unparsable values are ignored.
func Apply(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["rules"]; ok {
		if parsed, ok := ParseRules(v); ok {
			c.Rules = parsed
		}
	}
	if v, ok := cfg["auto_resolve"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.AutoResolve = parsed
		}
	}
	if v, ok := cfg["on_contradiction"]; ok {
		if parsed, ok := ParseContradictionPolicy(v); ok {
			c.OnContradiction = parsed
		}
	}
	if v, ok := cfg["fallback_tile"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.FallbackTile = parsed
		}
	}
	if v, ok := cfg["tolerance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Tolerance = parsed
		}
	}
	return c
}
