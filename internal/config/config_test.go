package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Check(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if c.ResponseCount != 300 {
		t.Errorf("ResponseCount = %d, want 300", c.ResponseCount)
	}
	if c.VariationLevel != 0.3 {
		t.Errorf("VariationLevel = %v, want 0.3", c.VariationLevel)
	}
	if c.Log.Level != "info" || c.Log.Format != "text" {
		t.Errorf("Log = %+v, want info/text", c.Log)
	}
}

func TestLoadYAML(t *testing.T) {
	data := []byte(`
data_dir: /tmp/out
response_count: 50
variation_level: 0.7
seed: 42
themes:
  - Economy
  - Health
log:
  level: debug
`)
	c, err := Load(data, ".yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "/tmp/out" {
		t.Errorf("DataDir = %q, want /tmp/out", c.DataDir)
	}
	if c.ResponseCount != 50 {
		t.Errorf("ResponseCount = %d, want 50", c.ResponseCount)
	}
	if c.VariationLevel != 0.7 {
		t.Errorf("VariationLevel = %v, want 0.7", c.VariationLevel)
	}
	if c.Seed != 42 {
		t.Errorf("Seed = %d, want 42", c.Seed)
	}
	if len(c.Themes) != 2 || c.Themes[0] != "Economy" {
		t.Errorf("Themes = %v", c.Themes)
	}
	if c.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", c.Log.Level)
	}
	// Unset fields keep their defaults.
	if c.BatchSize != 25 {
		t.Errorf("BatchSize = %d, want default 25", c.BatchSize)
	}
	if c.Model != "gpt-4o" {
		t.Errorf("Model = %q, want default gpt-4o", c.Model)
	}
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{"response_count": 10, "batch_size": 5, "model": "gpt-4o-mini"}`)
	c, err := Load(data, ".json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ResponseCount != 10 || c.BatchSize != 5 {
		t.Errorf("got %d/%d, want 10/5", c.ResponseCount, c.BatchSize)
	}
	if c.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", c.Model)
	}
}

func TestLoadContentSniffing(t *testing.T) {
	c, err := Load([]byte(`  {"seed": 7}`), "")
	if err != nil {
		t.Fatalf("Load json content: %v", err)
	}
	if c.Seed != 7 {
		t.Errorf("Seed = %d, want 7", c.Seed)
	}

	c, err = Load([]byte("seed: 9\n"), "")
	if err != nil {
		t.Fatalf("Load yaml content: %v", err)
	}
	if c.Seed != 9 {
		t.Errorf("Seed = %d, want 9", c.Seed)
	}
}

func TestLoadYmlAlias(t *testing.T) {
	c, err := Load([]byte("seed: 3\n"), ".yml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Seed != 3 {
		t.Errorf("Seed = %d, want 3", c.Seed)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load([]byte("whatever"), ".toml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"variation level too high", "variation_level: 1.5"},
		{"variation level negative", "variation_level: -0.1"},
		{"negative response count", "response_count: -1"},
		{"zero batch size", "batch_size: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data), ".yaml"); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("response_count: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if c.ResponseCount != 20 {
		t.Errorf("ResponseCount = %d, want 20", c.ResponseCount)
	}

	if _, err := LoadFromPath(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestArtifactPaths(t *testing.T) {
	c := Config{DataDir: "workdir"}
	tests := []struct {
		got  string
		want string
	}{
		{c.ResponsesPath(), "synthetic_responses.json"},
		{c.Mapping1Path(), "theme_mapping_1.json"},
		{c.Mapping2Path(), "theme_mapping_2.json"},
		{c.ResultsPath(), "comparison_results.json"},
		{c.SummaryPath(), "summary.md"},
	}
	for _, tt := range tests {
		if !strings.HasPrefix(tt.got, "workdir"+string(filepath.Separator)) {
			t.Errorf("%q not under DataDir", tt.got)
		}
		if filepath.Base(tt.got) != tt.want {
			t.Errorf("base = %q, want %q", filepath.Base(tt.got), tt.want)
		}
	}
}
