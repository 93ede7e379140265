// Package oracle implements the brute-force permutation search used by
// the naive and filter baseline algorithms: the ground truth that DEFT is
// validated against.
package oracle

import (
	"github.com/deftlab/deft/internal/factor"
	"github.com/deftlab/deft/internal/gate"
	"github.com/deftlab/deft/internal/projection"
	"github.com/deftlab/deft/internal/update"
)

// PermuteArgs searches every permutation of 0..n-1 in lexicographic order
// and accepts the first one under which f1's table, once permuted,
// equals f2's table (spec.md §4.3's permute_args!). On success it mutates
// f1 in place so its argument order and table agree with f2, and returns
// true. f1 and f2 must have equal arity — callers are expected to have
// already checked that, as Naive and Filter do.
func PermuteArgs(f1, f2 *factor.Factor) bool {
	n := f1.Arity()
	found := false
	projection.PermutationsFunc(n, func(pi []int) bool {
		if update.Apply(pi, f1, f2).Accepted() {
			f1.PermuteInPlace(pi)
			found = true
			return false
		}
		return true
	})
	return found
}

// Naive is spec.md §4.3's is_exchangeable_naive: arity mismatch is an
// immediate false; otherwise both factors are deep-copied and searched
// via PermuteArgs, leaving the caller's originals untouched.
func Naive(f1, f2 *factor.Factor) bool {
	if gate.EvaluateArity(f1, f2).Vetoed {
		return false
	}
	return PermuteArgs(f1.DeepCopy(), f2.DeepCopy())
}

// Filter is spec.md §4.3's is_exchangeable_filter: arity mismatch or a
// bucket-multiset mismatch is an immediate false; otherwise it falls
// through to the same brute-force search as Naive on deep copies.
func Filter(f1, f2 *factor.Factor) bool {
	if gate.EvaluateBucket(f1, f2).Vetoed {
		return false
	}
	return PermuteArgs(f1.DeepCopy(), f2.DeepCopy())
}
