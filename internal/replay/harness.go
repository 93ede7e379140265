// Package replay runs one algorithm over every instance file in a
// corpus directory under a wall-clock timeout per instance, producing
// rows for the results store and entries for the run log — the
// benchmark driver behind cmd/deft-bench, grounded on the teacher's
// internal/replay harness.
package replay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deftlab/deft/internal/algorithm"
	"github.com/deftlab/deft/internal/codec"
	"github.com/deftlab/deft/internal/factor"
	"github.com/deftlab/deft/internal/runlog"
	"github.com/deftlab/deft/internal/store"
)

// DefaultTimeout is the per-instance wall-clock budget when Bench is
// called with a non-positive timeout.
const DefaultTimeout = 1800 * time.Second

// instanceNamePattern matches the generator's naming convention:
// asc-n=2-true, same-n=4-false, mixed-n=4-p=0.5-true.
var instanceNamePattern = regexp.MustCompile(`^(asc|same|mixed)-n=(\d+)(?:-p=[0-9.]+)?-(true|false)$`)

// Bench walks every *.cbor file in corpusDir, runs algo against each
// loaded instance pair under timeout, and returns one store.Row and one
// runlog.Entry per instance it was able to load and parse. Files whose
// name does not match the generator's naming convention, or that fail
// to load, are skipped — Bench itself never panics on a corrupt corpus
// file; only algorithm.Run can panic, and only on an unknown algorithm
// name.
func Bench(corpusDir string, algo string, timeout time.Duration) ([]store.Row, []runlog.Entry) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dirEntries, err := os.ReadDir(corpusDir)
	if err != nil {
		return nil, nil
	}

	runID := uuid.NewString()
	var rows []store.Row
	var entries []runlog.Entry

	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".cbor" {
			continue
		}
		instance := strings.TrimSuffix(de.Name(), ".cbor")
		n, iseq, kind, ok := parseInstanceName(instance)
		if !ok {
			continue
		}
		f1, f2, err := codec.Load(filepath.Join(corpusDir, de.Name()))
		if err != nil {
			continue
		}

		result, timedOut, elapsed := runOne(algorithm.Name(algo), f1, f2, timeout)
		now := time.Now().UTC()

		rows = append(rows, store.Row{
			RunID:     runID,
			Instance:  instance,
			N:         n,
			Iseq:      iseq,
			Kind:      kind,
			Algo:      algo,
			TimeNS:    elapsed.Nanoseconds(),
			Result:    result,
			TimedOut:  timedOut,
			CreatedAt: now.Format(time.RFC3339Nano),
		})
		entries = append(entries, runlog.Entry{
			RunID:      runID,
			Instance:   instance,
			Algo:       algo,
			Decision:   decisionString(result, timedOut),
			Reason:     reasonString(timedOut, timeout),
			DurationNS: elapsed.Nanoseconds(),
			CreatedAt:  now,
		})
	}
	return rows, entries
}

// runOne runs algo against f1/f2 under a wall-clock timeout. The core
// algorithm itself is never given a context and cannot be cancelled: if
// it has not returned by the deadline, runOne reports a timeout and
// abandons the goroutine, matching the "no cancellation inside the
// algorithm" invariant — only the harness boundary imposes a deadline.
// A panic from algorithm.Run (an unknown algorithm name) is re-raised in
// the caller's goroutine.
func runOne(algo algorithm.Name, f1, f2 *factor.Factor, timeout time.Duration) (result, timedOut bool, elapsed time.Duration) {
	type outcome struct {
		result   bool
		panicVal any
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{panicVal: p}
			}
		}()
		done <- outcome{result: algorithm.Run(algo, f1, f2)}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case o := <-done:
		if o.panicVal != nil {
			panic(o.panicVal)
		}
		return o.result, false, time.Since(start)
	case <-ctx.Done():
		return false, true, timeout
	}
}

func decisionString(result, timedOut bool) string {
	switch {
	case timedOut:
		return "timeout"
	case result:
		return "exchangeable"
	default:
		return "not_exchangeable"
	}
}

func reasonString(timedOut bool, timeout time.Duration) string {
	if timedOut {
		return fmt.Sprintf("exceeded %s timeout", timeout)
	}
	return "completed"
}

// parseInstanceName extracts a corpus instance file's n, iseq, and kind
// from its generator-assigned name. ok is false for any name that does
// not match the generator's naming convention.
func parseInstanceName(name string) (n int, iseq bool, kind string, ok bool) {
	m := instanceNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false, "", false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false, "", false
	}
	return n, m[3] == "true", m[1], true
}
