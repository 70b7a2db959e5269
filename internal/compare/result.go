// Package compare implements the comparison engine: per-item and aggregate
// agreement statistics between two theme mappings of equal length, plus the
// natural-language summary and report rendering over those statistics.
package compare

import "fmt"

// JaccardStats aggregates the per-entry Jaccard similarity scores.
type JaccardStats struct {
	Mean   float64   `json:"mean"`
	Median float64   `json:"median"`
	StdDev float64   `json:"std_dev"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Scores []float64 `json:"scores"`
}

// ThemeDistribution holds per-theme frequency counts for each mapping.
// encoding/json emits map keys sorted, so serialization is deterministic.
type ThemeDistribution struct {
	Mapping1 map[string]int `json:"mapping1"`
	Mapping2 map[string]int `json:"mapping2"`
}

// ResponseAgreement is the fraction of entries whose theme sets are equal.
type ResponseAgreement struct {
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// ThemeChanges counts theme edits summed across all entries. Replacements
// use the min(len1,len2)-intersection approximation: a matched add+remove
// pair is attributed to replacement rather than counted twice.
type ThemeChanges struct {
	Additions    int `json:"additions"`
	Removals     int `json:"removals"`
	Replacements int `json:"replacements"`
}

// Total is the sum of all change counts.
func (c ThemeChanges) Total() int {
	return c.Additions + c.Removals + c.Replacements
}

// KappaStats holds per-theme Cohen's kappa scores. Degenerate lists themes
// whose expected agreement was exactly 1 (kappa defined as 0.0 there), so
// the fallback is distinguishable from a genuinely computed score.
type KappaStats struct {
	Mean       float64            `json:"mean"`
	Scores     map[string]float64 `json:"scores"`
	Degenerate []string           `json:"degenerate_themes,omitempty"`
}

// Result is the aggregate record produced by Compare.
type Result struct {
	JaccardSimilarity JaccardStats      `json:"jaccard_similarity"`
	ThemeDistribution ThemeDistribution `json:"theme_distribution"`
	ResponseAgreement ResponseAgreement `json:"response_agreement"`
	ThemeChanges      ThemeChanges      `json:"theme_changes"`
	CohenKappa        KappaStats        `json:"cohen_kappa"`

	// EntryCount is the number of compared entries (same for both sides).
	EntryCount int `json:"entry_count"`
}

// SizeMismatchError reports two mappings of different length passed to
// Compare. Fatal: no partial result is produced.
type SizeMismatchError struct {
	Len1, Len2 int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("theme mapping sizes do not match: %d vs %d", e.Len1, e.Len2)
}
