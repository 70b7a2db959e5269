package compare

import (
	"fmt"
	"strings"
)

// KappaTier maps a mean kappa to its qualitative agreement label:
// fair (≤ 0.4), moderate (≤ 0.6), substantial (above).
func KappaTier(meanKappa float64) string {
	switch {
	case meanKappa > 0.6:
		return "substantial"
	case meanKappa > 0.4:
		return "moderate"
	default:
		return "fair"
	}
}

// Summary renders the fixed-template natural-language paragraph for both
// technical and non-technical readers. Purely a formatting function over
// the already-computed result; deterministic.
func Summary(r *Result, entryCount int) string {
	totalChanges := r.ThemeChanges.Total()
	avgChanges := 0.0
	if entryCount > 0 {
		avgChanges = float64(totalChanges) / float64(entryCount)
	}

	var b strings.Builder
	b.WriteString("# Theme Mapping Comparison Summary\n\n")
	b.WriteString(fmt.Sprintf(
		"The comparison between the two theme mappings reveals an average Jaccard "+
			"similarity of %.2f across all %d consultation responses. ",
		r.JaccardSimilarity.Mean, entryCount))
	b.WriteString(fmt.Sprintf(
		"Exactly %.1f%% of responses received identical theme mappings in both sets. ",
		r.ResponseAgreement.Percentage))
	b.WriteString(fmt.Sprintf(
		"The analysis identified a total of %d theme differences, averaging %.2f changes "+
			"per response, which included %d additions, %d removals, and approximately "+
			"%d theme replacements. ",
		totalChanges, avgChanges,
		r.ThemeChanges.Additions, r.ThemeChanges.Removals, r.ThemeChanges.Replacements))
	b.WriteString(fmt.Sprintf(
		"Cohen's Kappa coefficient, which measures inter-rater reliability while "+
			"accounting for chance agreement, averaged %.2f across all themes, indicating "+
			"%s agreement between the two mapping approaches. ",
		r.CohenKappa.Mean, KappaTier(r.CohenKappa.Mean)))
	b.WriteString(
		"The variation observed suggests that while the two assignments capture many of " +
			"the same patterns, there remain meaningful differences in thematic " +
			"interpretation that may warrant consideration when implementing fully " +
			"automated consultation analysis systems.")
	return b.String()
}
