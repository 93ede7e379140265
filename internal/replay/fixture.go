package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/deftlab/deft/internal/store"
)

// #region fixture-types

// Fixture pins an expected outcome per (instance, algo) pair, independent
// of the generator's iseq ground truth — useful for regression-style
// harness tests that should fail loudly if a future change flips a
// known decision.
type Fixture struct {
	Description  string               `json:"description"`
	Expectations []FixtureExpectation `json:"expectations"`
}

// FixtureExpectation is one pinned (instance, algo) -> outcome pair.
type FixtureExpectation struct {
	Instance string `json:"instance"`
	Algo     string `json:"algo"`
	Expected bool   `json:"expected"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("replay: parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// #endregion fixture-loader

// #region fixture-verify

// Verify checks rows against f's pinned expectations, returning one
// mismatch description per expectation that is not matched by a row
// with the same non-timed-out outcome. An expectation with no
// corresponding row, or whose row timed out, is also a mismatch.
func (f *Fixture) Verify(rows []store.Row) []string {
	byKey := make(map[string]store.Row, len(rows))
	for _, r := range rows {
		byKey[r.Instance+"/"+r.Algo] = r
	}

	var mismatches []string
	for _, exp := range f.Expectations {
		key := exp.Instance + "/" + exp.Algo
		row, ok := byKey[key]
		switch {
		case !ok:
			mismatches = append(mismatches, fmt.Sprintf("%s: no matching run recorded", key))
		case row.TimedOut:
			mismatches = append(mismatches, fmt.Sprintf("%s: run timed out, expected %v", key, exp.Expected))
		case row.Result != exp.Expected:
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %v, got %v", key, exp.Expected, row.Result))
		}
	}
	return mismatches
}

// #endregion fixture-verify
