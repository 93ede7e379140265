package deft

import (
	"testing"

	"github.com/deftlab/deft/internal/factor"
	"github.com/deftlab/deft/internal/oracle"
	"github.com/deftlab/deft/internal/projection"
)

func mk(names []string, pots ...float64) *factor.Factor {
	n := len(names)
	args := make([]factor.DRV, n)
	for i, nm := range names {
		args[i] = factor.DRV{Name: nm}
	}
	var entries []factor.Entry
	for i, c := range factor.EnumerateAssignments(n) {
		entries = append(entries, factor.Entry{Assignment: c, Potential: pots[i]})
	}
	return factor.New("F", args, entries)
}

func TestCheckReflexive(t *testing.T) {
	f := mk([]string{"R1", "R2", "R3"}, 1, 2, 3, 4, 5, 6, 7, 8)
	if !Deft(f, f.DeepCopy()) {
		t.Fatal("expected a factor to be exchangeable with its own deep copy")
	}
}

func TestCheckS2Swap(t *testing.T) {
	f1 := mk([]string{"R1", "R2"}, 1, 2, 3, 4)
	f2 := mk([]string{"R2", "R1"}, 1, 3, 2, 4)
	if !Deft(f1, f2) {
		t.Fatal("expected swap-permuted twin to be exchangeable")
	}
}

func TestCheckS3NotExchangeable(t *testing.T) {
	f1 := mk([]string{"R1", "R2"}, 1, 2, 3, 4)
	f2 := mk([]string{"R1", "R2"}, 1, 2, 3, 5)
	if Deft(f1, f2) {
		t.Fatal("expected mismatched potential to be rejected")
	}
}

func TestCheckArityMismatch(t *testing.T) {
	f1 := mk([]string{"R1", "R2"}, 1, 2, 3, 4)
	f2 := mk([]string{"R1", "R2", "R3"}, 1, 2, 3, 4, 5, 6, 7, 8)
	if Deft(f1, f2) {
		t.Fatal("expected arity mismatch to reject")
	}
}

func TestCheckDoesNotMutateInputs(t *testing.T) {
	f1 := mk([]string{"R1", "R2"}, 1, 2, 3, 4)
	f2 := mk([]string{"R2", "R1"}, 1, 3, 2, 4)
	before1, before2 := f1.DeepCopy(), f2.DeepCopy()
	Deft(f1, f2)
	if !factor.Equal(f1, before1) || !factor.Equal(f2, before2) {
		t.Fatal("Check mutated its inputs")
	}
}

func TestCheckS5AgreesWithNaive(t *testing.T) {
	f1 := mk([]string{"R1", "R2", "R3"}, 1, 2, 3, 4, 5, 6, 6, 7)
	f2 := mk([]string{"R4", "R5", "R6"}, 1, 3, 5, 6, 2, 4, 6, 7)
	want := oracle.Naive(f1, f2)
	if got := Deft(f1, f2); got != want {
		t.Fatalf("Deft = %v, oracle.Naive = %v, expected agreement", got, want)
	}
}

func TestCheckAgreesWithNaiveOverAllPermutationsOfFourArgs(t *testing.T) {
	// Every permutation of a 4-argument factor's arguments yields an
	// exchangeable twin; DEFT must agree with the brute-force oracle on
	// each of the 24.
	base := mk([]string{"R1", "R2", "R3", "R4"}, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	for _, pi := range projection.Permutations(4) {
		twin := base.DeepCopy()
		twin.PermuteInPlace(pi)
		want := oracle.Naive(base, twin)
		if got := Deft(base, twin); got != want {
			t.Fatalf("perm %v: Deft = %v, oracle.Naive = %v", pi, got, want)
		}
	}
}

func TestCheckHomogeneousFallsBackToFullSearch(t *testing.T) {
	// A constant-potential factor has no distinguishing buckets at all;
	// every permutation should be accepted.
	f1 := mk([]string{"R1", "R2", "R3"}, 9, 9, 9, 9, 9, 9, 9, 9)
	f2 := mk([]string{"R3", "R1", "R2"}, 9, 9, 9, 9, 9, 9, 9, 9)
	if !Deft(f1, f2) {
		t.Fatal("expected constant-potential factors to be exchangeable")
	}
}

func TestNewClampsNonPositiveCutoff(t *testing.T) {
	e := New(0)
	if e.cutoff != DefaultCutoff {
		t.Fatalf("cutoff = %d, want %d", e.cutoff, DefaultCutoff)
	}
	e = New(-3)
	if e.cutoff != DefaultCutoff {
		t.Fatalf("cutoff = %d, want %d", e.cutoff, DefaultCutoff)
	}
}

func TestLowCutoffStillAgreesWithNaive(t *testing.T) {
	// A cutoff of 1 leaves most positions unconstrained by propagation,
	// forcing the backtracking search itself to do the work; the result
	// must still agree with the oracle.
	f1 := mk([]string{"R1", "R2", "R3"}, 1, 2, 3, 4, 5, 6, 6, 7)
	f2 := mk([]string{"R4", "R5", "R6"}, 1, 3, 5, 6, 2, 4, 6, 7)
	want := oracle.Naive(f1, f2)
	if got := New(1).Check(f1, f2); got != want {
		t.Fatalf("cutoff=1: Check = %v, oracle.Naive = %v", got, want)
	}
}
