// Package deft implements the DEFT algorithm: constraint construction
// over bucket-aligned configurations, intersected across a bounded
// prefix of signatures, followed by a backtracking search over the
// resulting position→position candidate sets. Full-table verification at
// every leaf makes the search sound regardless of how much (or little)
// constraint propagation the cut-off allows — see spec.md §4.4 and §9.
package deft

import (
	"sort"

	"github.com/deftlab/deft/internal/bucket"
	"github.com/deftlab/deft/internal/constraint"
	"github.com/deftlab/deft/internal/factor"
	"github.com/deftlab/deft/internal/gate"
	"github.com/deftlab/deft/internal/projection"
	"github.com/deftlab/deft/internal/update"
)

// DefaultCutoff is the number of ascending-degree-of-freedom signatures
// DEFT inspects before it stops propagating constraints and starts
// backtracking, per spec.md §4.4's "heuristic cut-off". Fixed at 5 in the
// reference implementation; exposed here as a constructor parameter, not
// a package-level global, so it is a tunable rather than a hidden
// constant.
const DefaultCutoff = 5

// Engine runs DEFT with a fixed cut-off. It holds no mutable state and
// is safe to reuse across concurrent calls — all backtracking state is
// method-local.
type Engine struct {
	cutoff int
}

// New returns an Engine with the given cut-off. A non-positive cutoff is
// replaced with DefaultCutoff.
func New(cutoff int) *Engine {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &Engine{cutoff: cutoff}
}

// Deft runs DEFT with DefaultCutoff — the convenience entry point used by
// the algorithm façade when no tuning is needed.
func Deft(f1, f2 *factor.Factor) bool {
	return New(DefaultCutoff).Check(f1, f2)
}

// Check implements spec.md §4.4's is_exchangeable_deft end to end: arity
// veto, deep-copy, constraint construction over a bounded prefix of
// ascending-DoF signatures, and backtracking search with a full-table
// leaf check. Neither f1 nor f2 is mutated.
func (e *Engine) Check(f1, f2 *factor.Factor) bool {
	if gate.EvaluateArity(f1, f2).Vetoed {
		return false
	}
	f1c := f1.DeepCopy()
	f2c := f2.DeepCopy()
	n := f1c.Arity()

	b1 := bucket.BuildOrdered(f1c, false)
	b2 := bucket.BuildOrdered(f2c, true)

	factorSet, ok := e.buildFactorSet(b1, b2, n)
	if !ok {
		return false
	}
	return search(factorSet, n, f1c, f2c)
}

// buildFactorSet walks b2's ascending-DoF signature order up to e.cutoff
// signatures, building and intersecting each one's bucket_set into
// factor_set per spec.md §4.4 step 5.
func (e *Engine) buildFactorSet(b1, b2 bucket.Ordered, n int) (map[int]map[int]bool, bool) {
	var factorSet map[int]map[int]bool
	processed := 0
	for _, sig := range b2.Signatures {
		if processed >= e.cutoff {
			break
		}
		bucketSet, ok := constraint.BuildBucketSet(b1.Potentials[sig], b2.Potentials[sig], b2.Configs[sig], n)
		if !ok {
			return nil, false
		}
		if factorSet == nil {
			factorSet = bucketSet
		} else if !constraint.Intersect(factorSet, bucketSet) {
			return nil, false
		}
		processed++
	}
	if factorSet == nil {
		// No signature was inspected (cutoff<=0 or a trivial factor):
		// fall back to the unconstrained full cross-product so
		// backtracking still explores every permutation. Sound, just
		// unpruned — the leaf check remains the source of truth.
		full := constraint.FullSet(n)
		factorSet = make(map[int]map[int]bool, n)
		for i := 0; i < n; i++ {
			clone := make(map[int]bool, n)
			for k, v := range full {
				clone[k] = v
			}
			factorSet[i] = clone
		}
	}
	return factorSet, true
}

// search performs the backtracking step of spec.md §4.4 step 6: choose
// the lowest-numbered unassigned position, try its candidate positions
// in ascending order, reject any candidate already used, and verify a
// complete candidate mapping at the leaf via update.Apply, which permutes
// a fresh deep copy of f2 and checks full-table equality against f1. f1
// and f2 are treated as read-only throughout.
func search(factorSet map[int]map[int]bool, n int, f1, f2 *factor.Factor) bool {
	keys := make([]int, 0, len(factorSet))
	for k := range factorSet {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	candidates := make(map[int][]int, len(factorSet))
	for k, set := range factorSet {
		vals := make([]int, 0, len(set))
		for v := range set {
			vals = append(vals, v)
		}
		sort.Ints(vals)
		candidates[k] = vals
	}

	curr := make(map[int]int, n)
	used := make([]bool, n)

	var backtrack func(idx int) bool
	backtrack = func(idx int) bool {
		if idx == len(keys) {
			if !projection.IsPermutation(curr, n) {
				return false
			}
			pi := projection.Expand(curr, n)
			return update.Apply(pi, f2, f1).Accepted()
		}
		key := keys[idx]
		for _, c := range candidates[key] {
			if used[c] {
				continue
			}
			used[c] = true
			curr[key] = c
			if backtrack(idx + 1) {
				return true
			}
			delete(curr, key)
			used[c] = false
		}
		return false
	}

	return backtrack(0)
}
