package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"themediff/internal/generate"
	"themediff/internal/mapping"
)

var generateFlags struct {
	count   int
	output  string
	keyFile string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic consultation responses via a chat API",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&generateFlags.count, "count", 0, "Number of responses (default: config response_count)")
	f.StringVar(&generateFlags.output, "output", "", "Output file (default: <data_dir>/synthetic_responses.json)")
	f.StringVar(&generateFlags.keyFile, "api-key-file", ".openai-api-key", "Path to API key file (env OPENAI_API_KEY wins)")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	count := generateFlags.count
	if count <= 0 {
		count = cfg.ResponseCount
	}
	output := generateFlags.output
	if output == "" {
		output = cfg.ResponsesPath()
	}

	client, err := newChatClient(generateFlags.keyFile)
	if err != nil {
		return err
	}
	g := generate.New(client, cfg.Question, newRng(cfg.Seed),
		generate.WithBatchSize(cfg.BatchSize),
		generate.WithParallel(cfg.Parallel))

	responses, err := g.Generate(cmd.Context(), count)
	if err != nil {
		return err
	}
	if err := mapping.WriteResponses(responses, output); err != nil {
		return err
	}
	fmt.Printf("Wrote %d responses to %s\n", len(responses), output)
	return nil
}
