package generator

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/deftlab/deft/internal/codec"
	"github.com/deftlab/deft/internal/factor"
	"github.com/deftlab/deft/internal/oracle"
)

func TestAscendingPotentials(t *testing.T) {
	f := Ascending(2)
	cfgs := factor.EnumerateAssignments(2)
	for i, c := range cfgs {
		if f.Potential(c) != float64(i+1) {
			t.Fatalf("potential at index %d = %v, want %v", i, f.Potential(c), i+1)
		}
	}
}

func TestConstantPotentials(t *testing.T) {
	f := Constant(3, 1)
	for _, c := range factor.EnumerateAssignments(3) {
		if f.Potential(c) != 1 {
			t.Fatalf("expected constant potential 1, got %v", f.Potential(c))
		}
	}
}

func TestMixedIsDeterministicGivenSameSeed(t *testing.T) {
	rngA := rand.New(rand.NewSource(42))
	rngB := rand.New(rand.NewSource(42))
	a := Mixed(4, 0.5, rngA)
	b := Mixed(4, 0.5, rngB)
	if !factor.EqualTables(a, b) {
		t.Fatal("expected Mixed to be deterministic given identical seeds")
	}
}

func TestPerturbChangesExactlyOneEntry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := Ascending(3)
	perturbed := Perturb(f, rng)
	diffs := 0
	for _, c := range factor.EnumerateAssignments(3) {
		if f.Potential(c) != perturbed.Potential(c) {
			diffs++
		}
	}
	if diffs != 1 {
		t.Fatalf("expected exactly one perturbed entry, got %d", diffs)
	}
	if factor.EqualTables(f, perturbed) {
		t.Fatal("expected perturbed factor to differ from the original")
	}
}

func TestPerturbDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := Ascending(3)
	before := f.DeepCopy()
	Perturb(f, rng)
	if !factor.Equal(f, before) {
		t.Fatal("Perturb mutated its input")
	}
}

func TestShuffleArgsPreservesExchangeabilityWithOriginal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := Ascending(4)
	shuffled := ShuffleArgs(f, rng)
	if !oracle.Naive(f, shuffled) {
		t.Fatal("expected a pure argument shuffle to remain exchangeable with the original")
	}
}

func TestShuffleArgsDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	f := Ascending(3)
	before := f.DeepCopy()
	ShuffleArgs(f, rng)
	if !factor.Equal(f, before) {
		t.Fatal("ShuffleArgs mutated its input")
	}
}

func TestCorpusWritesExpectedFileCount(t *testing.T) {
	dir := t.TempDir()
	err := Corpus(dir, []int{2, 4}, []string{"asc", "same", "mixed"}, []float64{0.1, 0.5}, 123)
	if err != nil {
		t.Fatalf("Corpus: %v", err)
	}
	// Per n: asc(2) + same(2) + mixed(2 ps * 2 iseq = 4) = 8 files; 2 n's = 16.
	matches, err := filepath.Glob(filepath.Join(dir, "*.cbor"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 16 {
		t.Fatalf("expected 16 instance files, got %d: %v", len(matches), matches)
	}
}

func TestCorpusInstancesRoundTripAndGroundTruthHolds(t *testing.T) {
	dir := t.TempDir()
	if err := Corpus(dir, []int{2}, []string{"asc"}, nil, 55); err != nil {
		t.Fatalf("Corpus: %v", err)
	}
	trueF1, trueF2, err := codec.Load(filepath.Join(dir, "asc-n=2-true.cbor"))
	if err != nil {
		t.Fatalf("Load true instance: %v", err)
	}
	if !oracle.Naive(trueF1, trueF2) {
		t.Fatal("expected iseq=true instance to be naive-exchangeable")
	}

	falseF1, falseF2, err := codec.Load(filepath.Join(dir, "asc-n=2-false.cbor"))
	if err != nil {
		t.Fatalf("Load false instance: %v", err)
	}
	if oracle.Naive(falseF1, falseF2) {
		t.Fatal("expected iseq=false instance to be non-exchangeable")
	}
}

func TestCorpusIsReproducibleAcrossRuns(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	if err := Corpus(dirA, []int{2}, []string{"same"}, nil, 99); err != nil {
		t.Fatal(err)
	}
	if err := Corpus(dirB, []int{2}, []string{"same"}, nil, 99); err != nil {
		t.Fatal(err)
	}
	a1, a2, err := codec.Load(filepath.Join(dirA, "same-n=2-true.cbor"))
	if err != nil {
		t.Fatal(err)
	}
	b1, b2, err := codec.Load(filepath.Join(dirB, "same-n=2-true.cbor"))
	if err != nil {
		t.Fatal(err)
	}
	if !factor.Equal(a1, b1) || !factor.Equal(a2, b2) {
		t.Fatal("expected identical (ns, kinds, ps, seed) to reproduce identical instances")
	}
}
