package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"themediff/internal/compare"
	"themediff/internal/mapping"
	"themediff/internal/vary"
)

var varyFlags struct {
	input  string
	output string
	level  float64
	seed   int64
}

var varyCmd = &cobra.Command{
	Use:   "vary",
	Short: "Create a randomly varied copy of a theme mapping",
	Long: "Vary perturbs a theme mapping with controlled randomness: per entry,\n" +
		"each theme may be removed, new themes added (up to 5 per entry), and\n" +
		"themes replaced, each with probability equal to the variation level.",
	RunE: runVary,
}

func init() {
	f := varyCmd.Flags()
	f.StringVar(&varyFlags.input, "input", "", "Input mapping file (default: <data_dir>/theme_mapping_1.json)")
	f.StringVar(&varyFlags.output, "output", "", "Output mapping file (default: <data_dir>/theme_mapping_2.json)")
	f.Float64Var(&varyFlags.level, "level", -1, "Variation level 0.0-1.0 (default: config variation_level)")
	f.Int64Var(&varyFlags.seed, "seed", 0, "Random seed (default: config seed)")
}

func runVary(_ *cobra.Command, _ []string) error {
	input := varyFlags.input
	if input == "" {
		input = cfg.Mapping1Path()
	}
	output := varyFlags.output
	if output == "" {
		output = cfg.Mapping2Path()
	}
	level := varyFlags.level
	if level < 0 {
		level = cfg.VariationLevel
	}
	seed := varyFlags.seed
	if seed == 0 {
		seed = cfg.Seed
	}

	m, err := mapping.LoadFile(input)
	if err != nil {
		return err
	}
	if len(m) == 0 {
		return fmt.Errorf("no theme mapping in %s", input)
	}

	varied := vary.New(level, newRng(seed)).Vary(m)
	if err := mapping.WriteFile(varied, output); err != nil {
		return err
	}

	// Quick variation analysis against the original.
	if r, err := compare.Compare(m, varied); err == nil {
		fmt.Printf("Varied %d entries (level %.2f): mean Jaccard %.3f, %.1f%% identical, %d changes\n",
			len(m), level, r.JaccardSimilarity.Mean, r.ResponseAgreement.Percentage, r.ThemeChanges.Total())
	}
	fmt.Printf("Wrote varied mapping to %s\n", output)
	return nil
}
