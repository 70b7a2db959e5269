// Package store persists comparison run history. Each pipeline or compare
// invocation records one Run row; the history command reads them back.
package store

// DefaultDBPath is the default relative path for the SQLite DB.
// Open() creates the parent dir (e.g. .themediff).
const DefaultDBPath = ".themediff/themediff.db"

// Run is one recorded comparison run.
type Run struct {
	ID             int64
	CreatedAt      string // ISO 8601 UTC
	EntryCount     int
	VariationLevel float64
	Seed           int64
	MeanJaccard    float64
	AgreementPct   float64
	MeanKappa      float64
	Additions      int
	Removals       int
	Replacements   int
	ArtifactDir    string
}

// Store is the run-history persistence facade.
type Store interface {
	SaveRun(r *Run) (int64, error)
	GetRun(id int64) (*Run, error)
	// ListRuns returns runs newest-first, at most limit (0 = all).
	ListRuns(limit int) ([]*Run, error)
	Close() error
}
