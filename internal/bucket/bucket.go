// Package bucket implements the bucket engine: grouping a factor's
// potential entries by the Hamming-weight signature of their assignment,
// with an optional degree-of-freedom ordering used to drive DEFT's
// constraint construction.
package bucket

import (
	"sort"

	"github.com/deftlab/deft/internal/factor"
)

// Signature is the pair (#true, #false) for an assignment. Stored as a
// 2-tuple rather than collapsed to just #true to match the reference
// convention and leave room for a non-Boolean extension (out of scope
// here, see spec.md §9).
type Signature struct {
	True  int
	False int
}

// Of returns the signature of assignment c.
func Of(c []bool) Signature {
	t := factor.CountTrue(c)
	return Signature{True: t, False: len(c) - t}
}

// Buckets returns, for every signature reachable from f's arity, the
// multiset of potentials at assignments carrying that signature. The
// multiset is represented as a sorted []float64 so that two buckets can
// be compared for equality with reflect.DeepEqual or a simple loop.
func Buckets(f *factor.Factor) map[Signature][]float64 {
	out := make(map[Signature][]float64)
	for _, c := range factor.EnumerateAssignments(f.Arity()) {
		s := Of(c)
		out[s] = append(out[s], f.Potential(c))
	}
	for _, vals := range out {
		sort.Float64s(vals)
	}
	return out
}

// Equal reports whether two bucket maps have the same set of signatures
// and, for every signature, the same multiset of potentials. This is the
// "bucket necessity" check from spec.md §8 property 6, and the filter
// algorithm's early-rejection test.
func Equal(a, b map[Signature][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for s, av := range a {
		bv, ok := b[s]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}

// Ordered is the sibling pair of sequences bucket_ordered returns for one
// signature: the potentials at that signature and, aligned index-for-
// index, the configurations (assignments) that produced them — both in
// the module's one fixed enumeration order (factor.EnumerateAssignments).
type Ordered struct {
	Signatures []Signature
	Potentials map[Signature][]float64
	Configs    map[Signature][][]bool
}

// DegreeOfFreedom computes ∏_{v ∈ unique(values)} count(values == v), the
// heuristic used to order buckets by how constraining they are. Lower is
// more constraining (the buckets with the fewest repeated values carry
// the most positional information).
func DegreeOfFreedom(values []float64) int {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	dof := 1
	for _, c := range counts {
		dof *= c
	}
	return dof
}

// BuildOrdered groups f's assignments by signature, in the module's
// canonical enumeration order, and — when dosort is true — sorts the
// signature list ascending by degree of freedom (ties broken by
// first-insertion order, i.e. a stable sort), implementing spec.md
// §4.2's buckets_ordered. When dosort is false, the signature order is
// simply first-insertion order (the order signatures are first
// encountered while enumerating assignments).
func BuildOrdered(f *factor.Factor, dosort bool) Ordered {
	n := f.Arity()
	out := Ordered{
		Potentials: make(map[Signature][]float64),
		Configs:    make(map[Signature][][]bool),
	}
	seen := make(map[Signature]bool)
	for _, c := range factor.EnumerateAssignments(n) {
		s := Of(c)
		if !seen[s] {
			seen[s] = true
			out.Signatures = append(out.Signatures, s)
		}
		out.Potentials[s] = append(out.Potentials[s], f.Potential(c))
		out.Configs[s] = append(out.Configs[s], c)
	}
	if dosort {
		sort.SliceStable(out.Signatures, func(i, j int) bool {
			return DegreeOfFreedom(out.Potentials[out.Signatures[i]]) < DegreeOfFreedom(out.Potentials[out.Signatures[j]])
		})
	}
	return out
}
