package compare

import (
	"math"
	"sort"

	"themediff/internal/logging"
	"themediff/internal/mapping"
)

// Compare computes all agreement statistics between two theme mappings.
// Pairing is positional: entry i of m1 is compared against entry i of m2.
// Returns a SizeMismatchError when the lengths differ.
func Compare(m1, m2 mapping.Mapping) (*Result, error) {
	if len(m1) != len(m2) {
		return nil, &SizeMismatchError{Len1: len(m1), Len2: len(m2)}
	}
	log := logging.New("compare")
	universe := mapping.Universe(m1, m2)
	log.Info("comparing theme mappings", "entries", len(m1), "unique_themes", len(universe))

	scores := jaccardScores(m1, m2)
	agreeCount := agreementCount(m1, m2)
	r := &Result{
		JaccardSimilarity: aggregateJaccard(scores),
		ThemeDistribution: ThemeDistribution{
			Mapping1: m1.Distribution(),
			Mapping2: m2.Distribution(),
		},
		ResponseAgreement: ResponseAgreement{
			Percentage: percentage(agreeCount, len(m1)),
			Count:      agreeCount,
		},
		ThemeChanges: themeChanges(m1, m2),
		CohenKappa:   cohenKappa(m1, m2, universe, log),
		EntryCount:   len(m1),
	}
	return r, nil
}

// Jaccard returns |a∩b| / |a∪b| for two theme sets, defined as 1.0 when
// both sets are empty (vacuous identity).
func Jaccard(a, b map[string]bool) float64 {
	union := len(b)
	inter := 0
	for th := range a {
		if b[th] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

func jaccardScores(m1, m2 mapping.Mapping) []float64 {
	scores := make([]float64, len(m1))
	for i := range m1 {
		scores[i] = Jaccard(m1[i].ThemeSet(), m2[i].ThemeSet())
	}
	return scores
}

func aggregateJaccard(scores []float64) JaccardStats {
	if len(scores) == 0 {
		return JaccardStats{Scores: []float64{}}
	}
	return JaccardStats{
		Mean:   mean(scores),
		Median: median(scores),
		StdDev: stddev(scores),
		Min:    minOf(scores),
		Max:    maxOf(scores),
		Scores: scores,
	}
}

func agreementCount(m1, m2 mapping.Mapping) int {
	count := 0
	for i := range m1 {
		if setsEqual(m1[i].ThemeSet(), m2[i].ThemeSet()) {
			count++
		}
	}
	return count
}

func themeChanges(m1, m2 mapping.Mapping) ThemeChanges {
	var c ThemeChanges
	for i := range m1 {
		s1 := m1[i].ThemeSet()
		s2 := m2[i].ThemeSet()
		inter := 0
		for th := range s1 {
			if s2[th] {
				inter++
			}
		}
		c.Additions += len(s2) - inter
		c.Removals += len(s1) - inter
		// Replacement approximation: matched add+remove pairs. Deliberately
		// overlaps with the addition/removal counts above; consumers depend
		// on this arithmetic.
		minLen := len(s1)
		if len(s2) < minLen {
			minLen = len(s2)
		}
		c.Replacements += minLen - inter
	}
	return c
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for th := range a {
		if !b[th] {
			return false
		}
	}
	return true
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// --- Math helpers ---

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// median averages the two middle values for even-length input.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stddev is the population standard deviation.
func stddev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(vals)))
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
