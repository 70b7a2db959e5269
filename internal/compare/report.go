package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ReportMode controls how FormatReport renders its tables.
type ReportMode int

const (
	ASCII    ReportMode = iota // fixed-width terminal tables
	Markdown                   // GitHub-flavoured Markdown tables
)

// FormatReport produces the human-readable comparison report: aggregate
// statistics, per-theme frequency comparison, and per-theme kappa with
// degenerate fallbacks marked.
func FormatReport(r *Result, mode ReportMode) string {
	var b strings.Builder

	b.WriteString("=== Theme Mapping Comparison Report ===\n")
	b.WriteString(fmt.Sprintf("Responses compared: %d\n\n", r.EntryCount))

	agg := newTable(mode)
	agg.AppendHeader(table.Row{"Metric", "Value"})
	agg.AppendRows([]table.Row{
		{"Jaccard mean", fmt.Sprintf("%.3f", r.JaccardSimilarity.Mean)},
		{"Jaccard median", fmt.Sprintf("%.3f", r.JaccardSimilarity.Median)},
		{"Jaccard std dev", fmt.Sprintf("%.3f", r.JaccardSimilarity.StdDev)},
		{"Jaccard min", fmt.Sprintf("%.3f", r.JaccardSimilarity.Min)},
		{"Jaccard max", fmt.Sprintf("%.3f", r.JaccardSimilarity.Max)},
		{"Identical responses", fmt.Sprintf("%d (%.1f%%)", r.ResponseAgreement.Count, r.ResponseAgreement.Percentage)},
		{"Theme additions", r.ThemeChanges.Additions},
		{"Theme removals", r.ThemeChanges.Removals},
		{"Theme replacements (approx)", r.ThemeChanges.Replacements},
		{"Mean Cohen's kappa", fmt.Sprintf("%.3f (%s)", r.CohenKappa.Mean, KappaTier(r.CohenKappa.Mean))},
	})
	b.WriteString(render(agg, mode))
	b.WriteString("\n\n")

	b.WriteString("--- Theme frequency ---\n")
	freq := newTable(mode)
	freq.AppendHeader(table.Row{"Theme", "Mapping 1", "Mapping 2", "Kappa"})
	freq.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	degenerate := make(map[string]bool, len(r.CohenKappa.Degenerate))
	for _, th := range r.CohenKappa.Degenerate {
		degenerate[th] = true
	}
	for _, th := range sortedThemes(r) {
		kappa := fmt.Sprintf("%.3f", r.CohenKappa.Scores[th])
		if degenerate[th] {
			kappa = "0.000*"
		}
		freq.AppendRow(table.Row{th, r.ThemeDistribution.Mapping1[th], r.ThemeDistribution.Mapping2[th], kappa})
	}
	b.WriteString(render(freq, mode))
	b.WriteString("\n")
	if len(r.CohenKappa.Degenerate) > 0 {
		b.WriteString("* degenerate: expected agreement is 1, kappa defined as 0.0\n")
	}
	return b.String()
}

// sortedThemes returns the union of themes across both distributions and
// the kappa scores, sorted.
func sortedThemes(r *Result) []string {
	seen := make(map[string]bool)
	for th := range r.ThemeDistribution.Mapping1 {
		seen[th] = true
	}
	for th := range r.ThemeDistribution.Mapping2 {
		seen[th] = true
	}
	for th := range r.CohenKappa.Scores {
		seen[th] = true
	}
	themes := make([]string, 0, len(seen))
	for th := range seen {
		themes = append(themes, th)
	}
	sort.Strings(themes)
	return themes
}

func newTable(mode ReportMode) table.Writer {
	w := table.NewWriter()
	if mode == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(w table.Writer, mode ReportMode) string {
	if mode == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
