// Package gate implements the algorithm façade's early-rejection vetoes:
// structural conditions that decide "not exchangeable" without running a
// permutation search, per spec.md §4.5 and §7.
package gate

import (
	"fmt"

	"github.com/deftlab/deft/internal/bucket"
	"github.com/deftlab/deft/internal/factor"
)

// VetoType enumerates the structural veto categories the façade checks
// before delegating to an algorithm's search.
type VetoType string

const (
	VetoArity  VetoType = "arity_mismatch"
	VetoBucket VetoType = "bucket_mismatch"
)

// VetoSignal records one detected structural veto.
type VetoSignal struct {
	Type   VetoType
	Reason string
}

// Decision is the outcome of Evaluate: either a hard veto (short-circuit
// to "not exchangeable") or a pass allowing the caller's search to run.
type Decision struct {
	Vetoed bool
	Signal VetoSignal // zero value when Vetoed is false
}

// EvaluateArity runs only the arity check — the veto every algorithm
// applies unconditionally per spec.md §4.3/§4.4 step 1.
func EvaluateArity(f1, f2 *factor.Factor) Decision {
	if f1.Arity() != f2.Arity() {
		return Decision{Vetoed: true, Signal: VetoSignal{
			Type:   VetoArity,
			Reason: fmt.Sprintf("arity %d != %d", f1.Arity(), f2.Arity()),
		}}
	}
	return Decision{}
}

// EvaluateBucket runs the arity check followed by the bucket-multiset
// check the filter algorithm applies per spec.md §4.3's
// is_exchangeable_filter and §8 property 6 ("bucket necessity"). Because
// it runs EvaluateArity itself, callers need not run it first
// (oracle.Filter calls EvaluateBucket alone).
func EvaluateBucket(f1, f2 *factor.Factor) Decision {
	if d := EvaluateArity(f1, f2); d.Vetoed {
		return d
	}
	if !bucket.Equal(bucket.Buckets(f1), bucket.Buckets(f2)) {
		return Decision{Vetoed: true, Signal: VetoSignal{
			Type:   VetoBucket,
			Reason: "bucket multiset mismatch",
		}}
	}
	return Decision{}
}
