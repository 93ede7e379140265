package projection

import (
	"reflect"
	"testing"

	"github.com/deftlab/deft/internal/factor"
)

func TestExpandIdentityOnEmptyRule(t *testing.T) {
	pi := Expand(map[int]int{}, 3)
	if !reflect.DeepEqual(pi, []int{0, 1, 2}) {
		t.Fatalf("Expand(empty) = %v, want identity", pi)
	}
}

func TestExpandSwap(t *testing.T) {
	// r: position 0 -> target 1, position 1 -> target 0.
	pi := Expand(map[int]int{0: 1, 1: 0}, 2)
	if !reflect.DeepEqual(pi, []int{1, 0}) {
		t.Fatalf("Expand(swap) = %v, want [1 0]", pi)
	}
}

func TestIsPermutation(t *testing.T) {
	if !IsPermutation(map[int]int{0: 1, 1: 0}, 2) {
		t.Fatal("expected total bijective rule to be a permutation")
	}
	if IsPermutation(map[int]int{0: 1}, 2) {
		t.Fatal("expected partial rule to be rejected")
	}
	if IsPermutation(map[int]int{0: 1, 1: 1}, 2) {
		t.Fatal("expected colliding targets to be rejected")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	f := factor.New("F", []factor.DRV{{Name: "R1"}, {Name: "R2"}}, []factor.Entry{
		{Assignment: []bool{true, true}, Potential: 1},
		{Assignment: []bool{true, false}, Potential: 2},
		{Assignment: []bool{false, true}, Potential: 3},
		{Assignment: []bool{false, false}, Potential: 4},
	})
	before := f.DeepCopy()
	_ = Apply(f, map[int]int{0: 1, 1: 0})
	if !factor.Equal(f, before) {
		t.Fatal("Apply mutated its input")
	}
}

func TestPermutationsCountAndDistinct(t *testing.T) {
	perms := Permutations(4)
	if len(perms) != 24 {
		t.Fatalf("got %d permutations of 4, want 24", len(perms))
	}
	seen := make(map[string]bool)
	for _, p := range perms {
		seen[keyOf(p)] = true
	}
	if len(seen) != 24 {
		t.Fatalf("permutations not distinct: %d unique of %d", len(seen), len(perms))
	}
}

func TestPermutationsFuncEarlyExit(t *testing.T) {
	count := 0
	PermutationsFunc(5, func(p []int) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Fatalf("expected early exit after 3 visits, got %d", count)
	}
}

func keyOf(p []int) string {
	b := make([]byte, len(p))
	for i, v := range p {
		b[i] = byte('0' + v)
	}
	return string(b)
}
