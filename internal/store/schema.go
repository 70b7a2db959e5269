package store

// schemaVersionV1 is the current run-history schema.
const schemaVersionV1 = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at      TEXT NOT NULL,
	entry_count     INTEGER NOT NULL,
	variation_level REAL NOT NULL,
	seed            INTEGER NOT NULL,
	mean_jaccard    REAL NOT NULL,
	agreement_pct   REAL NOT NULL,
	mean_kappa      REAL NOT NULL,
	additions       INTEGER NOT NULL,
	removals        INTEGER NOT NULL,
	replacements    INTEGER NOT NULL,
	artifact_dir    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`
