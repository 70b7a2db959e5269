// themediff generates synthetic consultation responses, assigns theme
// mappings, perturbs them with controlled randomness, and quantifies the
// disagreement between the two mappings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"themediff/internal/config"
	"themediff/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string
}

// cfg is the resolved configuration, available to every subcommand after
// PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "themediff",
	Short: "Quantify disagreement between two theme mappings",
	Long: "Themediff generates synthetic consultation responses, assigns themes,\n" +
		"creates a randomly varied second mapping, and measures how much the two\n" +
		"mappings agree (Jaccard similarity, Cohen's kappa, change counts).",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, _ []string) error {
	if rootFlags.configPath != "" {
		loaded, err := config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		def := config.Default()
		cfg = &def
	}
	if cmd.Flags().Changed("log-level") || cfg.Log.Level == "" {
		cfg.Log.Level = rootFlags.logLevel
	}
	if cmd.Flags().Changed("log-format") || cfg.Log.Format == "" {
		cfg.Log.Format = rootFlags.logFormat
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = rootFlags.logFile
	}
	level := logging.ParseLevel(cfg.Log.Level)
	if cfg.Log.File != "" {
		return logging.InitFile(level, cfg.Log.Format, cfg.Log.File)
	}
	logging.Init(level, cfg.Log.Format)
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to config file (YAML or JSON)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVar(&rootFlags.logFile, "log-file", "", "Also write logs to this file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(varyCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
