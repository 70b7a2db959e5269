package pipeline

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"themediff/internal/config"
	"themediff/internal/mapping"
	"themediff/internal/store"
)

// scriptedClient returns a fixed JSON completion for every call.
type scriptedClient struct {
	responses []string
}

func (c *scriptedClient) Complete(_ context.Context, _, _ string) (string, error) {
	out := `{"responses": [`
	for i, r := range c.responses {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", r)
	}
	return out + `]}`, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.ResponseCount = 4
	cfg.BatchSize = 4
	cfg.VariationLevel = 0.5
	cfg.Seed = 42
	return &cfg
}

func writeResponsesFixture(t *testing.T, cfg *config.Config, responses []string) {
	t.Helper()
	if err := mapping.WriteResponses(responses, cfg.ResponsesPath()); err != nil {
		t.Fatalf("write responses fixture: %v", err)
	}
}

func TestRunWithoutClientLoadsExistingResponses(t *testing.T) {
	cfg := testConfig(t)
	writeResponsesFixture(t, cfg, []string{"r1", "r2", "r3", "r4"})

	out, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Result == nil {
		t.Fatal("Result is nil")
	}
	if out.Result.EntryCount != 4 {
		t.Errorf("EntryCount = %d, want 4", out.Result.EntryCount)
	}
	if out.Summary == "" {
		t.Error("Summary is empty")
	}
	if out.RunID != 0 {
		t.Errorf("RunID = %d, want 0 with no store", out.RunID)
	}
}

func TestRunWithoutClientMissingResponsesFile(t *testing.T) {
	cfg := testConfig(t)

	_, err := New(cfg, nil, nil).Run(context.Background())
	if err == nil {
		t.Fatal("expected error when responses file is absent")
	}
}

func TestRunWithClientWritesAllArtifacts(t *testing.T) {
	cfg := testConfig(t)
	client := &scriptedClient{responses: []string{"r1", "r2", "r3", "r4"}}

	out, err := New(cfg, client, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, path := range []string{
		cfg.ResponsesPath(),
		cfg.Mapping1Path(),
		cfg.Mapping2Path(),
		cfg.ResultsPath(),
		cfg.SummaryPath(),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact missing: %v", err)
		}
	}

	m1, err := mapping.LoadFile(cfg.Mapping1Path())
	if err != nil {
		t.Fatalf("load mapping 1: %v", err)
	}
	m2, err := mapping.LoadFile(cfg.Mapping2Path())
	if err != nil {
		t.Fatalf("load mapping 2: %v", err)
	}
	if len(m1) != 4 || len(m2) != 4 {
		t.Errorf("mapping lengths = %d, %d, want 4, 4", len(m1), len(m2))
	}
	if out.Result.EntryCount != 4 {
		t.Errorf("EntryCount = %d, want 4", out.Result.EntryCount)
	}
}

func TestRunStageTimings(t *testing.T) {
	cfg := testConfig(t)
	writeResponsesFixture(t, cfg, []string{"r1", "r2"})

	out, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var names []string
	for _, timing := range out.Timings {
		names = append(names, timing.Name)
	}
	want := []string{"generate", "extract", "vary", "compare", "summarize"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("stage names mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	writeResponsesFixture(t, cfg, []string{"r1", "r2", "r3"})

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	out, err := New(cfg, nil, st).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.RunID == 0 {
		t.Fatal("RunID not set with store wired")
	}

	run, err := st.GetRun(out.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.EntryCount != 3 {
		t.Errorf("EntryCount = %d, want 3", run.EntryCount)
	}
	if run.Seed != cfg.Seed {
		t.Errorf("Seed = %d, want %d", run.Seed, cfg.Seed)
	}
	if run.VariationLevel != cfg.VariationLevel {
		t.Errorf("VariationLevel = %v, want %v", run.VariationLevel, cfg.VariationLevel)
	}
	if run.ArtifactDir != cfg.DataDir {
		t.Errorf("ArtifactDir = %q, want %q", run.ArtifactDir, cfg.DataDir)
	}
}

func TestRunReproducibleWithSeed(t *testing.T) {
	responses := []string{"r1", "r2", "r3", "r4", "r5"}

	runOnce := func() (mapping.Mapping, mapping.Mapping) {
		cfg := testConfig(t)
		writeResponsesFixture(t, cfg, responses)
		if _, err := New(cfg, nil, nil).Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		m1, err := mapping.LoadFile(cfg.Mapping1Path())
		if err != nil {
			t.Fatal(err)
		}
		m2, err := mapping.LoadFile(cfg.Mapping2Path())
		if err != nil {
			t.Fatal(err)
		}
		return m1, m2
	}

	a1, a2 := runOnce()
	b1, b2 := runOnce()
	if diff := cmp.Diff(a1, b1); diff != "" {
		t.Errorf("baseline mappings differ across identical-seed runs:\n%s", diff)
	}
	if diff := cmp.Diff(a2, b2); diff != "" {
		t.Errorf("varied mappings differ across identical-seed runs:\n%s", diff)
	}
}

func TestRunVariationLevelZero(t *testing.T) {
	cfg := testConfig(t)
	cfg.VariationLevel = 0.0
	writeResponsesFixture(t, cfg, []string{"r1", "r2", "r3"})

	if _, err := New(cfg, nil, nil).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	m1, err := mapping.LoadFile(cfg.Mapping1Path())
	if err != nil {
		t.Fatal(err)
	}
	m2, err := mapping.LoadFile(cfg.Mapping2Path())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m1, m2); diff != "" {
		t.Errorf("level 0 should produce identical mappings:\n%s", diff)
	}
}
