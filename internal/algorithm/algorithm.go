// Package algorithm is the single entry point spec.md §4.5 describes: a
// name-parameterised dispatch to one of the three exchangeability
// algorithms. Callers never import oracle or deft directly — Run is the
// one seam the rest of the repository (eval, replay, cmd tools) depends
// on.
package algorithm

import (
	"fmt"

	"github.com/deftlab/deft/internal/deft"
	"github.com/deftlab/deft/internal/factor"
	"github.com/deftlab/deft/internal/oracle"
)

// Name identifies one of the three algorithms by the exact strings
// spec.md §6 uses on the command line and in the results store.
type Name string

const (
	Naive  Name = "naive"
	Filter Name = "filter"
	Deft   Name = "deft"
)

// Run dispatches to naive, filter, or deft and returns whether f1 and f2
// are exchangeable. Neither input is mutated; each algorithm owns its own
// working copies (spec.md §4's Ownership note). An unknown name is a
// programmer error, not a data error, and panics rather than returning
// an error value — spec.md §7 calls this out explicitly.
func Run(name Name, f1, f2 *factor.Factor) bool {
	switch name {
	case Naive:
		return oracle.Naive(f1, f2)
	case Filter:
		return oracle.Filter(f1, f2)
	case Deft:
		return deft.Deft(f1, f2)
	default:
		panic(fmt.Sprintf("algorithm: unknown algorithm name %q", name))
	}
}

// Parse validates a string against the three known algorithm names,
// returning an error for anything else — the boundary where an
// externally supplied string (a CLI flag, a stored row) is converted
// into the programmer-error-on-misuse Name type that Run expects.
func Parse(s string) (Name, error) {
	switch Name(s) {
	case Naive, Filter, Deft:
		return Name(s), nil
	default:
		return "", fmt.Errorf("algorithm: unknown algorithm name %q", s)
	}
}
