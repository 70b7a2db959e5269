// Package vary implements the variation engine: controlled stochastic
// perturbation of a theme mapping. Per entry it applies three independent
// edit passes in fixed order (removal, addition, replacement), each trial
// firing with probability equal to the variation level. The engine is pure:
// it reads one mapping and constructs a new one, never mutating its input.
package vary

import (
	"log/slog"
	"math/rand"

	"themediff/internal/logging"
	"themediff/internal/mapping"
)

// maxThemesPerEntry caps how many themes an entry can carry after addition.
const maxThemesPerEntry = 5

// Generator perturbs theme mappings at a fixed variation level using an
// explicit pseudorandom source, so runs are reproducible given a seed.
type Generator struct {
	level float64
	rng   *rand.Rand
	log   *slog.Logger
}

// New returns a Generator. level is clamped into [0.0, 1.0]; rng must not
// be nil and is owned by the caller.
func New(level float64, rng *rand.Rand) *Generator {
	if level < 0.0 {
		level = 0.0
	}
	if level > 1.0 {
		level = 1.0
	}
	return &Generator{level: level, rng: rng, log: logging.New("vary")}
}

// Level returns the clamped variation level.
func (g *Generator) Level() float64 { return g.level }

// Vary produces a perturbed copy of m. Entry order and response texts are
// preserved; only theme sets change. The candidate pool for additions and
// replacements is the set of all distinct themes in m.
func (g *Generator) Vary(m mapping.Mapping) mapping.Mapping {
	universe := mapping.Universe(m)
	g.log.Info("creating theme mapping variation",
		"level", g.level, "entries", len(m), "unique_themes", len(universe))

	out := make(mapping.Mapping, 0, len(m))
	for _, e := range m {
		themes := e.UniqueThemes()
		themes = g.applyRemoval(themes)
		themes = g.applyAddition(themes, universe)
		themes = g.applyReplacement(themes, universe)
		if themes == nil {
			themes = []string{}
		}
		out = append(out, mapping.Entry{Response: e.Response, Themes: themes})
	}
	return out
}

// applyRemoval drops each theme independently with probability level,
// except that removal is suppressed once only one unmarked theme remains:
// a response keeps at least one theme if it had any.
func (g *Generator) applyRemoval(themes []string) []string {
	if len(themes) == 0 {
		return themes
	}
	marked := make([]bool, len(themes))
	removed := 0
	for i := range themes {
		if g.rng.Float64() < g.level && len(themes)-removed > 1 {
			marked[i] = true
			removed++
		}
	}
	if removed == 0 {
		return themes
	}
	kept := make([]string, 0, len(themes)-removed)
	for i, th := range themes {
		if !marked[i] {
			kept = append(kept, th)
		}
	}
	return kept
}

// applyAddition attempts room = max(0, cap-current) independent trials,
// each adding one uniformly drawn candidate from (universe - current).
// A trial with no candidates left is a no-op.
func (g *Generator) applyAddition(themes []string, universe []string) []string {
	room := maxThemesPerEntry - len(themes)
	for i := 0; i < room; i++ {
		if g.rng.Float64() < g.level {
			if c := candidates(universe, themes); len(c) > 0 {
				themes = append(themes, c[g.rng.Intn(len(c))])
			}
		}
	}
	return themes
}

// applyReplacement swaps each theme in place, independently with
// probability level, for a uniformly drawn candidate not currently
// present. Candidates are recomputed after every swap.
func (g *Generator) applyReplacement(themes []string, universe []string) []string {
	if len(themes) == 0 {
		return themes
	}
	out := make([]string, len(themes))
	copy(out, themes)
	for i := range out {
		if g.rng.Float64() < g.level {
			if c := candidates(universe, out); len(c) > 0 {
				out[i] = c[g.rng.Intn(len(c))]
			}
		}
	}
	return out
}

// candidates returns universe minus current, preserving universe order
// (sorted) so draws are deterministic for a given rng state.
func candidates(universe, current []string) []string {
	present := make(map[string]bool, len(current))
	for _, th := range current {
		present[th] = true
	}
	var out []string
	for _, th := range universe {
		if !present[th] {
			out = append(out, th)
		}
	}
	return out
}
