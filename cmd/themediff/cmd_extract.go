package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"themediff/internal/extract"
	"themediff/internal/mapping"
)

var extractFlags struct {
	input  string
	output string
	seed   int64
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Assign a baseline theme mapping to responses (random fallback)",
	RunE:  runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringVar(&extractFlags.input, "input", "", "Responses file (default: <data_dir>/synthetic_responses.json)")
	f.StringVar(&extractFlags.output, "output", "", "Output mapping file (default: <data_dir>/theme_mapping_1.json)")
	f.Int64Var(&extractFlags.seed, "seed", 0, "Random seed (default: config seed)")
}

func runExtract(_ *cobra.Command, _ []string) error {
	input := extractFlags.input
	if input == "" {
		input = cfg.ResponsesPath()
	}
	output := extractFlags.output
	if output == "" {
		output = cfg.Mapping1Path()
	}
	seed := extractFlags.seed
	if seed == 0 {
		seed = cfg.Seed
	}

	responses, err := mapping.LoadResponses(input)
	if err != nil {
		return err
	}
	if len(responses) == 0 {
		return fmt.Errorf("no responses in %s", input)
	}

	x := extract.New(cfg.Themes, newRng(seed))
	m := x.Extract(responses)
	x.LogDistribution(m)

	if err := mapping.WriteFile(m, output); err != nil {
		return err
	}
	fmt.Printf("Wrote theme mapping for %d responses to %s\n", len(m), output)
	return nil
}
