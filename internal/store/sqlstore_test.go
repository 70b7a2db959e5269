package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTestStore(t *testing.T) *SqlStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun() *Run {
	return &Run{
		EntryCount:     300,
		VariationLevel: 0.3,
		Seed:           42,
		MeanJaccard:    0.71,
		AgreementPct:   38.5,
		MeanKappa:      0.44,
		Additions:      120,
		Removals:       95,
		Replacements:   80,
		ArtifactDir:    "data",
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := openTestStore(t)

	r := sampleRun()
	id, err := s.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == 0 {
		t.Error("SaveRun returned zero id")
	}
	if r.ID != id {
		t.Errorf("SaveRun did not backfill ID: %d vs %d", r.ID, id)
	}
	if r.CreatedAt == "" {
		t.Error("SaveRun did not fill CreatedAt")
	}

	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("run mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSaveRunKeepsExplicitCreatedAt(t *testing.T) {
	s := openTestStore(t)

	r := sampleRun()
	r.CreatedAt = "2026-08-30T12:00:00Z"
	id, err := s.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, err := s.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.CreatedAt != "2026-08-30T12:00:00Z" {
		t.Errorf("CreatedAt = %q, want explicit timestamp kept", got.CreatedAt)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(9999)
	if err == nil {
		t.Fatal("expected error for missing run")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not-found", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		r := sampleRun()
		r.Seed = int64(i)
		id, err := s.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	for i, r := range runs {
		if want := ids[len(ids)-1-i]; r.ID != want {
			t.Errorf("runs[%d].ID = %d, want %d", i, r.ID, want)
		}
	}
}

func TestListRunsLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.SaveRun(sampleRun()); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	runs, err := s.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestListRunsEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := s.SaveRun(sampleRun()); err != nil {
		t.Errorf("SaveRun on fresh file store: %v", err)
	}
}

func TestOpenExistingDBMigratesCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	id, err := s1.SaveRun(sampleRun())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.GetRun(id)
	if err != nil {
		t.Fatalf("GetRun after reopen: %v", err)
	}
	if diff := cmp.Diff(sampleRun(), got, cmpopts.IgnoreFields(Run{}, "ID", "CreatedAt")); diff != "" {
		t.Errorf("run mismatch after reopen (-want +got):\n%s", diff)
	}
}
