// Package projection builds total permutation arrays from the partial
// swap rules produced by DEFT's backtracking search and applies them to
// factors.
package projection

import (
	"fmt"

	"github.com/deftlab/deft/internal/factor"
)

// Expand turns a partial swap rule r (position → position, as built by
// DEFT's backtracking search once every key is assigned) into the total
// permutation array π that factor.PermuteInPlace expects, per spec.md
// §4.4's "permutation application semantics": π is initialized to the
// identity on 0..n-1, then for every key p in r, π[r[p]] = p. n must be
// at least as large as every key and value appearing in r.
func Expand(r map[int]int, n int) []int {
	pi := make([]int, n)
	for i := range pi {
		pi[i] = i
	}
	for p, q := range r {
		if q < 0 || q >= n {
			panic(fmt.Sprintf("projection: swap rule target %d out of range [0,%d)", q, n))
		}
		pi[q] = p
	}
	return pi
}

// IsPermutation reports whether r, once expanded to a full index set
// 0..n-1, is injective — every target position is used at most once.
// DEFT's backtracking search already enforces this incrementally (a
// candidate is rejected the moment it collides with an already-used
// value), but the leaf check re-verifies it explicitly per spec.md §4.4
// step 6, since nothing about a complete key set guarantees the values
// are distinct without that incremental check having run.
func IsPermutation(r map[int]int, n int) bool {
	if len(r) != n {
		return false
	}
	seen := make(map[int]bool, n)
	for _, q := range r {
		if q < 0 || q >= n || seen[q] {
			return false
		}
		seen[q] = true
	}
	return true
}

// Apply returns a deep copy of f with the partial swap rule r expanded
// and applied via factor.PermuteInPlace. f is never mutated.
func Apply(f *factor.Factor, r map[int]int) *factor.Factor {
	out := f.DeepCopy()
	out.PermuteInPlace(Expand(r, f.Arity()))
	return out
}

// Permutations returns every permutation of 0..n-1 in the module's one
// fixed lexicographic order, used by the naive permutation oracle's
// brute-force search. The result is generated eagerly; callers needing
// early exit should use PermutationsFunc instead to avoid allocating all
// n! permutations when n is large.
func Permutations(n int) [][]int {
	var out [][]int
	PermutationsFunc(n, func(p []int) bool {
		out = append(out, append([]int(nil), p...))
		return true
	})
	return out
}

// PermutationsFunc calls visit with every permutation of 0..n-1 in
// lexicographic order, stopping early the moment visit returns false.
// The slice passed to visit is reused between calls and must not be
// retained past the call.
func PermutationsFunc(n int, visit func([]int) bool) {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	if !visit(p) {
		return
	}
	for nextPermutation(p) {
		if !visit(p) {
			return
		}
	}
}

// nextPermutation advances p to its lexicographic successor in place and
// reports whether a successor exists (false once p is the last, fully
// descending, permutation).
func nextPermutation(p []int) bool {
	n := len(p)
	i := n - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := n - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
