package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"themediff/internal/generate"
	"themediff/internal/pipeline"
)

var pipelineFlags struct {
	count        int
	level        float64
	seed         int64
	skipGenerate bool
	keyFile      string
}

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full flow: generate, extract, vary, compare, summarize",
	RunE:  runPipeline,
}

func init() {
	f := pipelineCmd.Flags()
	f.IntVar(&pipelineFlags.count, "count", 0, "Number of responses to generate (default: config)")
	f.Float64Var(&pipelineFlags.level, "level", -1, "Variation level 0.0-1.0 (default: config)")
	f.Int64Var(&pipelineFlags.seed, "seed", 0, "Random seed (default: config)")
	f.BoolVar(&pipelineFlags.skipGenerate, "skip-generate", false, "Reuse the existing responses file instead of calling the API")
	f.StringVar(&pipelineFlags.keyFile, "api-key-file", ".openai-api-key", "Path to API key file (env OPENAI_API_KEY wins)")
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	if pipelineFlags.count > 0 {
		cfg.ResponseCount = pipelineFlags.count
	}
	if pipelineFlags.level >= 0 {
		cfg.VariationLevel = pipelineFlags.level
	}
	if pipelineFlags.seed != 0 {
		cfg.Seed = pipelineFlags.seed
	}
	if err := cfg.Check(); err != nil {
		return err
	}

	var client generate.ChatClient
	if !pipelineFlags.skipGenerate {
		c, err := newChatClient(pipelineFlags.keyFile)
		if err != nil {
			return err
		}
		client = c
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	out, err := pipeline.New(cfg, client, st).Run(cmd.Context())
	if err != nil {
		return err
	}

	for _, t := range out.Timings {
		fmt.Printf("  %-10s %s\n", t.Name, t.Duration.Round(time.Millisecond))
	}
	fmt.Println()
	fmt.Println(out.Summary)
	if out.RunID > 0 {
		fmt.Printf("\nRecorded run %d\n", out.RunID)
	}
	return nil
}
