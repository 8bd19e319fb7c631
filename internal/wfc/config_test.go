package wfc

import "testing"

func TestFromMapDefaults(t *testing.T) {
	cfg := FromMap(nil)
	if cfg != DefaultConfig() {
		t.Fatalf("FromMap(nil) = %+v, want defaults", cfg)
	}
	if cfg.Rules != RulesIdentity || cfg.AutoResolve || cfg.OnContradiction != ContradictionSkip {
		t.Fatalf("defaults should be the faithful configuration, got %+v", cfg)
	}
}

func TestFromMapOverrides(t *testing.T) {
	cfg := FromMap(map[string]string{
		"seed":             "42",
		"rules":            "Adjacency",
		"auto_resolve":     "true",
		"on_contradiction": " fallback ",
		"fallback_tile":    "3",
		"tolerance":        "12.5",
	})
	want := Config{
		Seed:            42,
		Rules:           RulesAdjacency,
		AutoResolve:     true,
		OnContradiction: ContradictionFallback,
		FallbackTile:    3,
		Tolerance:       12.5,
	}
	if cfg != want {
		t.Fatalf("FromMap = %+v, want %+v", cfg, want)
	}
}

func TestApplyIgnoresBadValues(t *testing.T) {
	base := AdjacentConfig()
	cfg := Apply(base, map[string]string{
		"seed":             "abc",
		"rules":            "diagonal",
		"auto_resolve":     "maybe",
		"on_contradiction": "panic",
		"fallback_tile":    "-2",
		"tolerance":        "-1",
		"unknown":          "1",
	})
	if cfg != base {
		t.Fatalf("invalid overrides changed the config: %+v", cfg)
	}
}

func TestNamesRoundTrip(t *testing.T) {
	for _, r := range []Rules{RulesIdentity, RulesAdjacency} {
		got, ok := ParseRules(r.String())
		if !ok || got != r {
			t.Fatalf("ParseRules(%q) = %v, %v", r.String(), got, ok)
		}
	}
	for _, p := range []ContradictionPolicy{ContradictionSkip, ContradictionFallback, ContradictionRestart} {
		got, ok := ParseContradictionPolicy(p.String())
		if !ok || got != p {
			t.Fatalf("ParseContradictionPolicy(%q) = %v, %v", p.String(), got, ok)
		}
	}
}
