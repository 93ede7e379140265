// Package eval runs all three exchangeability algorithms over the same
// factor pair and reports whether they agree — the oracle-agreement
// testable property from spec.md §8.
package eval

import (
	"fmt"

	"github.com/deftlab/deft/internal/algorithm"
	"github.com/deftlab/deft/internal/factor"
)

// #region eval-harness
// Harness runs naive, filter, and deft over the same pair and compares
// their verdicts.
type Harness struct{}

// NewHarness constructs a Harness. There is currently no configuration;
// the constructor exists so call sites read the same way regardless of
// whether a future option needs to be threaded through.
func NewHarness() *Harness {
	return &Harness{}
}

// Run dispatches f1, f2 through all three algorithms via the façade and
// reports whether they agree.
func (h *Harness) Run(f1, f2 *factor.Factor) Result {
	naive := algorithm.Run(algorithm.Naive, f1, f2)
	filter := algorithm.Run(algorithm.Filter, f1, f2)
	deft := algorithm.Run(algorithm.Deft, f1, f2)
	agree := naive == filter && filter == deft

	reason := "naive, filter, and deft agree"
	if !agree {
		reason = fmt.Sprintf("disagreement: naive=%v filter=%v deft=%v", naive, filter, deft)
	}

	return Result{
		Naive:  naive,
		Filter: filter,
		Deft:   deft,
		Agree:  agree,
		Reason: reason,
	}
}

// #endregion eval-harness
