package runlog

import "time"

// #region entry
// Entry is a single row in the provenance_log table: the qualitative
// narrative of one algorithm invocation, independent of the quantitative
// runs table in store — "why a result was what it was", not just what it
// was.
type Entry struct {
	RunID      string
	Instance   string
	Algo       string
	Decision   string // "exchangeable" | "not_exchangeable" | "timeout"
	Reason     string // free text; replay.Bench writes "completed" or "exceeded <timeout> timeout"
	DurationNS int64
	CreatedAt  time.Time
}

// #endregion entry
