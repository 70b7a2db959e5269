package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"themediff/internal/compare"
	"themediff/internal/mapping"
	"themediff/internal/store"
)

var compareFlags struct {
	mapping1 string
	mapping2 string
	output   string
	summary  string
	markdown bool
	record   bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two theme mappings and quantify their variation",
	Long: "Compare computes per-response Jaccard similarity, theme frequency\n" +
		"distributions, response agreement, change counts, and per-theme Cohen's\n" +
		"kappa between two theme mappings of equal length.",
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareFlags.mapping1, "mapping1", "", "First mapping file (default: <data_dir>/theme_mapping_1.json)")
	f.StringVar(&compareFlags.mapping2, "mapping2", "", "Second mapping file (default: <data_dir>/theme_mapping_2.json)")
	f.StringVar(&compareFlags.output, "output", "", "Results JSON file (default: <data_dir>/comparison_results.json)")
	f.StringVar(&compareFlags.summary, "summary", "", "Summary file (default: <data_dir>/summary.md)")
	f.BoolVar(&compareFlags.markdown, "markdown", false, "Render the report tables as Markdown")
	f.BoolVar(&compareFlags.record, "record", true, "Record the run in the history store")
}

func runCompare(_ *cobra.Command, _ []string) error {
	path1 := compareFlags.mapping1
	if path1 == "" {
		path1 = cfg.Mapping1Path()
	}
	path2 := compareFlags.mapping2
	if path2 == "" {
		path2 = cfg.Mapping2Path()
	}
	output := compareFlags.output
	if output == "" {
		output = cfg.ResultsPath()
	}
	summaryPath := compareFlags.summary
	if summaryPath == "" {
		summaryPath = cfg.SummaryPath()
	}

	m1, err := mapping.LoadFile(path1)
	if err != nil {
		return err
	}
	m2, err := mapping.LoadFile(path2)
	if err != nil {
		return err
	}

	result, err := compare.Compare(m1, m2)
	if err != nil {
		return err
	}
	if err := compare.WriteResultFile(result, output); err != nil {
		return err
	}
	summary := compare.Summary(result, len(m1))
	if err := compare.WriteSummaryFile(summary, summaryPath); err != nil {
		return err
	}

	mode := compare.ASCII
	if compareFlags.markdown {
		mode = compare.Markdown
	}
	fmt.Println(compare.FormatReport(result, mode))

	if compareFlags.record {
		st, err := openStore()
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
			id, err := st.SaveRun(&store.Run{
				EntryCount:     result.EntryCount,
				VariationLevel: cfg.VariationLevel,
				Seed:           cfg.Seed,
				MeanJaccard:    result.JaccardSimilarity.Mean,
				AgreementPct:   result.ResponseAgreement.Percentage,
				MeanKappa:      result.CohenKappa.Mean,
				Additions:      result.ThemeChanges.Additions,
				Removals:       result.ThemeChanges.Removals,
				Replacements:   result.ThemeChanges.Replacements,
				ArtifactDir:    cfg.DataDir,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded run %d\n", id)
		}
	}

	fmt.Printf("Wrote results to %s and summary to %s\n", output, summaryPath)
	return nil
}
