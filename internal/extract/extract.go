// Package extract assigns baseline themes to consultation responses. This
// is the random fallback assignment: each response receives a uniform
// sample of 1–5 themes from the configured theme set. It stands in when no
// NLP-based extractor is wired up, and gives the variation and comparison
// engines a baseline mapping to work from.
package extract

import (
	"log/slog"
	"math/rand"
	"sort"

	"themediff/internal/logging"
	"themediff/internal/mapping"
)

const (
	minThemesPerResponse = 1
	maxThemesPerResponse = 5
)

// DefaultThemes returns the stock theme set, "Theme A" through "Theme J".
func DefaultThemes() []string {
	themes := make([]string, 10)
	for i := range themes {
		themes[i] = "Theme " + string(rune('A'+i))
	}
	return themes
}

// Extractor assigns themes at random from a fixed theme set using an
// explicit pseudorandom source.
type Extractor struct {
	themes []string
	rng    *rand.Rand
	log    *slog.Logger
}

// New returns an Extractor over the given theme set. An empty set falls
// back to DefaultThemes. rng is owned by the caller.
func New(themes []string, rng *rand.Rand) *Extractor {
	if len(themes) == 0 {
		themes = DefaultThemes()
	}
	return &Extractor{themes: themes, rng: rng, log: logging.New("extract")}
}

// Extract builds a theme mapping: one entry per response, each with a
// uniform random sample of 1–5 themes (capped by the theme set size).
func (x *Extractor) Extract(responses []string) mapping.Mapping {
	x.log.Info("assigning themes with fallback extractor",
		"responses", len(responses), "themes", len(x.themes))

	m := make(mapping.Mapping, 0, len(responses))
	for _, resp := range responses {
		n := minThemesPerResponse + x.rng.Intn(maxThemesPerResponse-minThemesPerResponse+1)
		if n > len(x.themes) {
			n = len(x.themes)
		}
		m = append(m, mapping.Entry{Response: resp, Themes: x.sample(n)})
	}
	x.log.Info("assigned themes", "entries", len(m))
	return m
}

// sample draws n distinct themes uniformly, preserving draw order.
func (x *Extractor) sample(n int) []string {
	perm := x.rng.Perm(len(x.themes))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = x.themes[perm[i]]
	}
	return out
}

// LogDistribution logs total, unique, and per-theme assignment counts for
// a freshly extracted mapping.
func (x *Extractor) LogDistribution(m mapping.Mapping) {
	counts := m.Distribution()
	total := 0
	for _, c := range counts {
		total += c
	}
	avg := 0.0
	if len(m) > 0 {
		avg = float64(total) / float64(len(m))
	}
	x.log.Info("theme distribution",
		"total_assigned", total, "unique_themes", len(counts), "avg_per_response", avg)

	themes := make([]string, 0, len(counts))
	for th := range counts {
		themes = append(themes, th)
	}
	sort.Strings(themes)
	for _, th := range themes {
		x.log.Info("theme count", "theme", th, "count", counts[th])
	}
}
