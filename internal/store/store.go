// Package store persists one row per algorithm invocation (instance,
// parameters, timing, outcome) to SQLite and aggregates timing
// statistics across runs, dropping any group that contains a timeout.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	instance    TEXT NOT NULL,
	n           INTEGER NOT NULL,
	iseq        INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	algo        TEXT NOT NULL,
	time_ns     INTEGER,
	result      INTEGER,
	timed_out   INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// allowedGroupColumns is the set of runs columns Aggregate may group by —
// a fixed allow-list since groupBy strings are spliced directly into SQL.
var allowedGroupColumns = map[string]bool{
	"instance": true, "n": true, "iseq": true, "kind": true, "algo": true,
}

// #region store-struct
// Store manages the runs table in a SQLite database.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database at dbPath and ensures the schema
// exists.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("store: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an already-open database connection, skipping the
// journal-mode pragma, for callers that need to seed or corrupt the
// schema directly.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// #endregion constructor

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g.
// runlog, which writes to the same SQLite file).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #region insert
// Insert writes one Row to the runs table.
func (s *Store) Insert(row Row) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, instance, n, iseq, kind, algo, time_ns, result, timed_out, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.RunID, row.Instance, row.N, boolToInt(row.Iseq), row.Kind, row.Algo,
		nullableInt(row.TimeNS, row.TimedOut), nullableBool(row.Result, row.TimedOut),
		boolToInt(row.TimedOut), row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert row: %w", err)
	}
	return nil
}

// #endregion insert

// #region rows
// Rows returns every row in the runs table, in insertion order, for
// driver-level consumers (e.g. the CSV exporter) that need the raw,
// ungrouped data rather than Aggregate's statistics.
func (s *Store) Rows() ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, instance, n, iseq, kind, algo, time_ns, result, timed_out, created_at FROM runs ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var iseq, timedOut int
		var timeNS sql.NullInt64
		var result sql.NullInt64
		if err := rows.Scan(&r.ID, &r.RunID, &r.Instance, &r.N, &iseq, &r.Kind, &r.Algo, &timeNS, &result, &timedOut, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		r.Iseq = iseq != 0
		r.TimedOut = timedOut != 0
		r.TimeNS = timeNS.Int64
		r.Result = result.Int64 != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// #endregion rows

// #region aggregate
// Aggregate computes min/max/mean/median/std of time_ns, grouped by the
// requested runs columns, dropping any group that contains a timed-out
// run (spec's "drop any group containing a timeout" rule). groupBy
// entries must be one of instance, n, iseq, kind, algo.
func (s *Store) Aggregate(groupBy []string) ([]AggregateRow, error) {
	if len(groupBy) == 0 {
		return nil, fmt.Errorf("store: Aggregate requires at least one groupBy column")
	}
	for _, col := range groupBy {
		if !allowedGroupColumns[col] {
			return nil, fmt.Errorf("store: Aggregate: unknown groupBy column %q", col)
		}
	}
	groupExpr := strings.Join(groupBy, ", ")
	groupsQuery := fmt.Sprintf(
		`SELECT %s FROM runs GROUP BY %s HAVING SUM(timed_out) = 0`,
		groupExpr, groupExpr,
	)
	rows, err := s.db.Query(groupsQuery)
	if err != nil {
		return nil, fmt.Errorf("store: aggregate groups: %w", err)
	}
	defer rows.Close()

	var out []AggregateRow
	for rows.Next() {
		vals := make([]any, len(groupBy))
		ptrs := make([]any, len(groupBy))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("store: scan group: %w", err)
		}

		times, err := s.groupTimes(groupBy, vals)
		if err != nil {
			return nil, err
		}
		if len(times) == 0 {
			continue
		}

		groupKey := make(map[string]string, len(groupBy))
		for i, col := range groupBy {
			groupKey[col] = fmt.Sprint(vals[i])
		}
		out = append(out, AggregateRow{
			GroupKey: groupKey,
			Count:    len(times),
			MinNS:    times[0],
			MaxNS:    times[len(times)-1],
			MeanNS:   mean(times),
			MedianNS: median(times),
			StdDevNS: stddev(times),
		})
	}
	return out, rows.Err()
}

// groupTimes fetches every non-timed-out time_ns value for one group, in
// ascending order, for the derived-statistic math Aggregate performs in
// Go rather than in SQL (SQLite has no built-in MEDIAN/STDDEV).
func (s *Store) groupTimes(groupBy []string, keyVals []any) ([]float64, error) {
	whereParts := make([]string, len(groupBy))
	for i, col := range groupBy {
		whereParts[i] = col + " = ?"
	}
	q := fmt.Sprintf(
		`SELECT time_ns FROM runs WHERE %s AND timed_out = 0 ORDER BY time_ns`,
		strings.Join(whereParts, " AND "),
	)
	rows, err := s.db.Query(q, keyVals...)
	if err != nil {
		return nil, fmt.Errorf("store: fetch group times: %w", err)
	}
	defer rows.Close()

	var times []float64
	for rows.Next() {
		var t int64
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("store: scan time: %w", err)
		}
		times = append(times, float64(t))
	}
	return times, rows.Err()
}

// #endregion aggregate

// #region stats
func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func median(v []float64) float64 {
	n := len(v)
	if n%2 == 1 {
		return v[n/2]
	}
	return (v[n/2-1] + v[n/2]) / 2
}

// stddev computes the sample standard deviation (Bessel's correction);
// a single-element group has a standard deviation of 0 by convention.
func stddev(v []float64) float64 {
	if len(v) < 2 {
		return 0
	}
	m := mean(v)
	var sumSq float64
	for _, x := range v {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(v)-1))
}

// #endregion stats

// #region helpers
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableInt(v int64, isNull bool) any {
	if isNull {
		return nil
	}
	return v
}

func nullableBool(v bool, isNull bool) any {
	if isNull {
		return nil
	}
	return boolToInt(v)
}

// #endregion helpers
