package update

import (
	"testing"

	"github.com/deftlab/deft/internal/factor"
)

func TestApplyAcceptsWitnessPermutation(t *testing.T) {
	f1 := factor.New("F1", []factor.DRV{{Name: "R1"}, {Name: "R2"}}, []factor.Entry{
		{Assignment: []bool{true, true}, Potential: 1},
		{Assignment: []bool{true, false}, Potential: 2},
		{Assignment: []bool{false, true}, Potential: 3},
		{Assignment: []bool{false, false}, Potential: 4},
	})
	f2 := factor.New("F2", []factor.DRV{{Name: "R2"}, {Name: "R1"}}, []factor.Entry{
		{Assignment: []bool{true, true}, Potential: 1},
		{Assignment: []bool{false, true}, Potential: 2},
		{Assignment: []bool{true, false}, Potential: 3},
		{Assignment: []bool{false, false}, Potential: 4},
	})
	d := Apply([]int{1, 0}, f1, f2)
	if !d.Accepted() {
		t.Fatalf("expected swap permutation to be accepted, got %+v", d)
	}
}

func TestApplyRejectsWrongPermutation(t *testing.T) {
	f1 := factor.New("F1", []factor.DRV{{Name: "R1"}, {Name: "R2"}}, []factor.Entry{
		{Assignment: []bool{true, true}, Potential: 1},
		{Assignment: []bool{true, false}, Potential: 2},
		{Assignment: []bool{false, true}, Potential: 3},
		{Assignment: []bool{false, false}, Potential: 4},
	})
	f2 := f1.DeepCopy()
	f2.Table[factor.Key([]bool{false, false})] = 99
	d := Apply([]int{0, 1}, f1, f2)
	if d.Accepted() {
		t.Fatalf("expected identity permutation against differing table to be rejected, got %+v", d)
	}
}

func TestApplyDoesNotMutateTarget(t *testing.T) {
	f1 := factor.New("F1", []factor.DRV{{Name: "R1"}}, []factor.Entry{
		{Assignment: []bool{true}, Potential: 1},
		{Assignment: []bool{false}, Potential: 2},
	})
	before := f1.DeepCopy()
	Apply([]int{0}, f1, f1)
	if !factor.Equal(f1, before) {
		t.Fatal("Apply mutated its target argument")
	}
}

func TestApplyPanicsOnArityMismatch(t *testing.T) {
	f1 := factor.New("F1", []factor.DRV{{Name: "R1"}}, []factor.Entry{
		{Assignment: []bool{true}, Potential: 1},
		{Assignment: []bool{false}, Potential: 2},
	})
	f2 := factor.New("F2", []factor.DRV{{Name: "R1"}, {Name: "R2"}}, []factor.Entry{
		{Assignment: []bool{true, true}, Potential: 1},
		{Assignment: []bool{true, false}, Potential: 2},
		{Assignment: []bool{false, true}, Potential: 3},
		{Assignment: []bool{false, false}, Potential: 4},
	})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on arity mismatch")
		}
	}()
	Apply([]int{0}, f1, f2)
}
