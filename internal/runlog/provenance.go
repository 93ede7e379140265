// Package runlog appends one Entry per algorithm invocation to a
// provenance_log table in the same SQLite file as the store package's
// runs table — the qualitative companion to that quantitative record.
package runlog

import (
	"database/sql"
	"fmt"
	"time"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS provenance_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	instance    TEXT NOT NULL,
	algo        TEXT NOT NULL,
	decision    TEXT NOT NULL,
	reason      TEXT,
	duration_ns INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// EnsureSchema creates the provenance_log table if it does not already
// exist. Callers typically run this once against the same *sql.DB the
// store package opened.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("runlog: migrate: %w", err)
	}
	return nil
}

// #region record
// Record writes one Entry to the provenance_log table.
func Record(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := db.Exec(
		`INSERT INTO provenance_log (run_id, instance, algo, decision, reason, duration_ns, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Instance, entry.Algo, entry.Decision,
		nullIfEmpty(entry.Reason), entry.DurationNS, entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("runlog: record entry: %w", err)
	}
	return nil
}

// #endregion record

// #region helpers
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
