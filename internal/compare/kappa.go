package compare

import (
	"log/slog"
	"sort"

	"themediff/internal/mapping"
)

// cohenKappa computes a per-theme chance-corrected reliability score. For
// each theme in the universe, the two mappings are reduced to binary
// presence indicators over all entries; kappa is
// (observed - expected) / (1 - expected), with marginal presence rates
// under independence giving the expected agreement.
//
// When expected agreement is exactly 1 (theme present in every entry on
// both sides, or absent everywhere) the denominator vanishes; kappa is
// defined as 0.0 there and the theme is recorded as degenerate so the
// fallback never masquerades as a computed score.
func cohenKappa(m1, m2 mapping.Mapping, universe []string, log *slog.Logger) KappaStats {
	stats := KappaStats{Scores: make(map[string]float64, len(universe))}
	n := len(m1)
	if n == 0 {
		return stats
	}

	for _, theme := range universe {
		matches, present1, present2 := 0, 0, 0
		for i := range m1 {
			in1 := m1[i].ThemeSet()[theme]
			in2 := m2[i].ThemeSet()[theme]
			if in1 == in2 {
				matches++
			}
			if in1 {
				present1++
			}
			if in2 {
				present2++
			}
		}
		observed := float64(matches) / float64(n)
		p1 := float64(present1) / float64(n)
		p2 := float64(present2) / float64(n)
		expected := p1*p2 + (1-p1)*(1-p2)

		if expected == 1 {
			log.Warn("degenerate kappa denominator, scoring 0.0",
				"theme", theme, "present1", present1, "present2", present2)
			stats.Scores[theme] = 0.0
			stats.Degenerate = append(stats.Degenerate, theme)
			continue
		}
		stats.Scores[theme] = (observed - expected) / (1 - expected)
	}

	sort.Strings(stats.Degenerate)

	var sum float64
	for _, k := range stats.Scores {
		sum += k
	}
	if len(stats.Scores) > 0 {
		stats.Mean = sum / float64(len(stats.Scores))
	}
	return stats
}
