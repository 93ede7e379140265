// Package update applies a candidate permutation to a working copy of a
// factor and decides whether the result matches another factor's table.
// It is the single place full-table equality after permutation is
// checked, shared by the permutation oracle and DEFT's leaf verification.
package update

import (
	"fmt"

	"github.com/deftlab/deft/internal/factor"
)

// Decision records what Apply decided: whether the candidate permutation
// reproduces the other factor's table, and why.
type Decision struct {
	Action string // "commit" | "reject"
	Reason string
}

// Accepted reports whether d represents a verified match.
func (d Decision) Accepted() bool {
	return d.Action == "commit"
}

// Apply reorders a deep copy of target by pi (a total permutation of
// 0..target.Arity()-1) and compares the result against other using
// factor.EqualTables — spec.md §4.4's is_swap_successful check. target
// and other must have equal arity; Apply panics otherwise, since arity
// agreement is the façade's responsibility (spec.md §7's structural
// check), not this function's.
func Apply(pi []int, target, other *factor.Factor) Decision {
	if target.Arity() != other.Arity() {
		panic(fmt.Sprintf("update: Apply: arity mismatch %d != %d", target.Arity(), other.Arity()))
	}
	candidate := target.DeepCopy()
	candidate.PermuteInPlace(pi)
	if factor.EqualTables(candidate, other) {
		return Decision{Action: "commit", Reason: "permuted table matches target table"}
	}
	return Decision{Action: "reject", Reason: "permuted table does not match target table"}
}
