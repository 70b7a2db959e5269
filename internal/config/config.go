// Package config defines the pipeline configuration and its YAML/JSON
// loader. Format is detected by extension or by content.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Config holds every tunable of the pipeline. Zero values are filled in
// from Default by the loader.
type Config struct {
	// DataDir is where all pipeline artifacts are written.
	DataDir string `yaml:"data_dir" json:"data_dir"`
	// Question is the consultation question responses are generated for.
	Question string `yaml:"question" json:"question"`
	// ResponseCount is how many synthetic responses to generate.
	ResponseCount int `yaml:"response_count" json:"response_count"`
	// BatchSize is the per-request generation batch size.
	BatchSize int `yaml:"batch_size" json:"batch_size"`
	// Parallel bounds concurrent generation requests.
	Parallel int `yaml:"parallel" json:"parallel"`
	// VariationLevel is the per-edit probability in [0,1].
	VariationLevel float64 `yaml:"variation_level" json:"variation_level"`
	// Seed drives every pseudorandom source; runs with equal seeds and
	// inputs are identical.
	Seed int64 `yaml:"seed" json:"seed"`
	// Themes is the theme set for fallback extraction; empty = Theme A..J.
	Themes []string `yaml:"themes" json:"themes"`
	// Model is the chat completion model for generation.
	Model string `yaml:"model" json:"model"`
	// BaseURL optionally overrides the chat API endpoint.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// StorePath is the SQLite run-history DB ("" = default, "-" = disabled).
	StorePath string `yaml:"store_path" json:"store_path"`

	Log LogConfig `yaml:"log" json:"log"`
}

// LogConfig controls slog setup.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text, json
	File   string `yaml:"file" json:"file"`     // optional log file tee
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		DataDir:        "data",
		Question:       "What changes would you like to see in the education system in your area over the next five years?",
		ResponseCount:  300,
		BatchSize:      25,
		Parallel:       1,
		VariationLevel: 0.3,
		Seed:           1,
		Model:          "gpt-4o",
		Log:            LogConfig{Level: "info", Format: "text"},
	}
}

// LoadFromPath reads a config file (YAML or JSON) and returns the parsed
// Config with defaults applied.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses config bytes. ext is the file extension for format hint;
// empty = detect from content (JSON if it starts with '{', else YAML).
func Load(data []byte, ext string) (*Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	c := Default()
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Check validates field ranges.
func (c *Config) Check() error {
	if c.VariationLevel < 0.0 || c.VariationLevel > 1.0 {
		return fmt.Errorf("variation_level must be between 0.0 and 1.0, got %g", c.VariationLevel)
	}
	if c.ResponseCount < 0 {
		return fmt.Errorf("response_count must not be negative, got %d", c.ResponseCount)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	return nil
}

// Paths for pipeline artifacts under DataDir.

func (c *Config) ResponsesPath() string { return filepath.Join(c.DataDir, "synthetic_responses.json") }
func (c *Config) Mapping1Path() string  { return filepath.Join(c.DataDir, "theme_mapping_1.json") }
func (c *Config) Mapping2Path() string  { return filepath.Join(c.DataDir, "theme_mapping_2.json") }
func (c *Config) ResultsPath() string   { return filepath.Join(c.DataDir, "comparison_results.json") }
func (c *Config) SummaryPath() string   { return filepath.Join(c.DataDir, "summary.md") }
