// Package constraint builds one bucket's contribution to DEFT's
// factor_set: the per-position candidate-position sets that backtracking
// search narrows down, per spec.md §4.4 step 5.
package constraint

import "sort"

// Homogeneous reports whether every potential in values is equal — the
// fast-path bucket that carries no positional information, so every
// position is left free to swap with every other.
func Homogeneous(values []float64) bool {
	if len(values) == 0 {
		return true
	}
	first := values[0]
	for _, v := range values[1:] {
		if v != first {
			return false
		}
	}
	return true
}

// ValuePositions groups the indices of row by the Boolean value found
// there, in ascending index order — spec.md §4.4's valuepositions.
func ValuePositions(row []bool) map[bool][]int {
	out := map[bool][]int{true: nil, false: nil}
	for i, v := range row {
		out[v] = append(out[v], i)
	}
	return out
}

// FullSet returns the set {0, ..., n-1}, used for the homogeneous
// fast-path where every position is unconstrained.
func FullSet(n int) map[int]bool {
	s := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		s[i] = true
	}
	return s
}

// union returns a ∪ b as a new set, never mutating its inputs.
func union(a map[int]bool, b []int) map[int]bool {
	out := make(map[int]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for _, v := range b {
		out[v] = true
	}
	return out
}

// Intersect implements spec.md §4.4's key-wise intersection: for every
// key of a, a[key] is replaced by its intersection with b[key]. The
// operation is driven by a's keys only — a precondition this module
// always satisfies, since every key set arising in this codebase is a
// subset of positions 0..n-1. Intersect mutates a in place and returns
// false the moment any entry becomes empty, leaving a in a
// partially-updated (but never semantically used) state — callers must
// discard a entirely on a false return.
func Intersect(a, b map[int]map[int]bool) bool {
	for key, aSet := range a {
		bSet := b[key]
		for v := range aSet {
			if !bSet[v] {
				delete(aSet, v)
			}
		}
		if len(aSet) == 0 {
			return false
		}
	}
	return true
}

// isPermutationMultiset reports whether a and b, once sorted, contain the
// same values — the per-bucket multiset equality check from spec.md §4.4
// step 5's first bullet.
func isPermutationMultiset(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]float64(nil), a...)
	sb := append([]float64(nil), b...)
	sort.Float64s(sa)
	sort.Float64s(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// BuildBucketSet builds the bucket_set for one signature: b1Potentials
// and b2Potentials are B1[s] and B2[s] (in buckets_ordered's aligned
// order), b2Configs is cfgs2[s] (the configurations that produced
// b2Potentials), and n is the shared arity. It returns (nil, false) when
// the bucket's multisets disagree — the caller must treat this as an
// immediate "not exchangeable". Otherwise it returns the bucket's
// position→candidate-positions map.
//
// Every row and "other row" consulted while building item sets comes
// from cfgs2 (F2's configurations), even when the index being iterated
// was located via a value match in B1 — this mirrors the reference
// algorithm exactly: bucket sizes are determined solely by signature and
// arity, so B1[s] and B2[s] (and therefore their index ranges) always
// have identical length, making a B1-derived index valid to re-use
// against cfgs2.
func BuildBucketSet(b1Potentials, b2Potentials []float64, b2Configs [][]bool, n int) (map[int]map[int]bool, bool) {
	if !isPermutationMultiset(b1Potentials, b2Potentials) {
		return nil, false
	}

	if Homogeneous(b2Potentials) {
		full := FullSet(n)
		bucketSet := make(map[int]map[int]bool, n)
		for i := 0; i < n; i++ {
			bucketSet[i] = cloneSet(full)
		}
		return bucketSet, true
	}

	var bucketSet map[int]map[int]bool
	for index, value := range b2Potentials {
		row := b2Configs[index]

		var matching []int
		for k, v := range b1Potentials {
			if v == value {
				matching = append(matching, k)
			}
		}

		itemSet := make(map[int]map[int]bool, n)
		for _, k := range matching {
			otherRow := b2Configs[k]
			vp := ValuePositions(otherRow)
			for p, v := range row {
				if itemSet[p] == nil {
					itemSet[p] = make(map[int]bool)
				}
				itemSet[p] = union(itemSet[p], vp[v])
			}
		}

		if bucketSet == nil {
			bucketSet = itemSet
			continue
		}
		if !Intersect(bucketSet, itemSet) {
			return nil, false
		}
	}
	return bucketSet, true
}

func cloneSet(s map[int]bool) map[int]bool {
	out := make(map[int]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
