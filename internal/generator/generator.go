// Package generator builds the deterministic instance corpus used to
// exercise and benchmark the three exchangeability algorithms: ascending,
// constant, and mixed potential tables, argument-order perturbation, and
// the single-entry perturbation that manufactures a non-exchangeable
// pair.
package generator

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/deftlab/deft/internal/codec"
	"github.com/deftlab/deft/internal/factor"
	"github.com/deftlab/deft/internal/projection"
)

func names(n int) []factor.DRV {
	args := make([]factor.DRV, n)
	for i := range args {
		args[i] = factor.DRV{Name: fmt.Sprintf("R%d", i+1)}
	}
	return args
}

// Ascending builds an n-argument factor whose potentials are 1..2^n in
// the module's canonical assignment order.
func Ascending(n int) *factor.Factor {
	cfgs := factor.EnumerateAssignments(n)
	entries := make([]factor.Entry, len(cfgs))
	for i, c := range cfgs {
		entries[i] = factor.Entry{Assignment: c, Potential: float64(i + 1)}
	}
	return factor.New("asc", names(n), entries)
}

// Constant builds an n-argument factor whose every potential equals
// value.
func Constant(n int, value float64) *factor.Factor {
	cfgs := factor.EnumerateAssignments(n)
	entries := make([]factor.Entry, len(cfgs))
	for i, c := range cfgs {
		entries[i] = factor.Entry{Assignment: c, Potential: value}
	}
	return factor.New("same", names(n), entries)
}

// Mixed builds an n-argument factor where each assignment's potential is
// 1 with probability p, else the next value of a running counter seeded
// at 1. rng is caller-supplied so repeated generation is reproducible
// without any package-level mutable PRNG.
func Mixed(n int, p float64, rng *rand.Rand) *factor.Factor {
	cfgs := factor.EnumerateAssignments(n)
	entries := make([]factor.Entry, len(cfgs))
	counter := 1.0
	for i, c := range cfgs {
		var v float64
		if rng.Float64() < p {
			v = 1
		} else {
			counter++
			v = counter
		}
		entries[i] = factor.Entry{Assignment: c, Potential: v}
	}
	return factor.New("mixed", names(n), entries)
}

// Perturb returns a deep copy of f with one uniformly random assignment's
// potential replaced by original + 2^n, the construction used to
// manufacture a non-exchangeable f2 when a corpus entry's iseq is false.
// f is never mutated.
func Perturb(f *factor.Factor, rng *rand.Rand) *factor.Factor {
	out := f.DeepCopy()
	cfgs := factor.EnumerateAssignments(f.Arity())
	idx := rng.Intn(len(cfgs))
	key := factor.Key(cfgs[idx])
	out.Table[key] = out.Table[key] + float64(uint64(1)<<uint(f.Arity()))
	return out
}

// ShuffleArgs returns a deep copy of f with its arguments reordered by a
// uniformly random permutation, applied via projection so potentials
// move with their arguments and the result remains semantically
// identical to f. f is never mutated.
func ShuffleArgs(f *factor.Factor, rng *rand.Rand) *factor.Factor {
	n := f.Arity()
	pi := rng.Perm(n)
	r := make(map[int]int, n)
	for p, q := range pi {
		r[q] = p
	}
	return projection.Apply(f, r)
}

// Corpus writes the full named instance corpus to dir: for every n in ns
// and every kind in kinds ("asc", "same", "mixed"), both an iseq=true and
// an iseq=false instance, and for "mixed" one instance per p in ps. Every
// instance is generated from a rand.Rand seeded deterministically from
// seed combined with the instance's own parameters, so regenerating the
// same (ns, kinds, ps, seed) always reproduces byte-identical files.
func Corpus(dir string, ns []int, kinds []string, ps []float64, seed int64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("generator: mkdir %s: %w", dir, err)
	}
	for _, n := range ns {
		for _, kind := range kinds {
			if kind == "mixed" {
				for _, p := range ps {
					if err := writeInstance(dir, n, kind, p, seed); err != nil {
						return err
					}
				}
				continue
			}
			if err := writeInstance(dir, n, kind, 0, seed); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeInstance(dir string, n int, kind string, p float64, seed int64) error {
	for _, iseq := range []bool{true, false} {
		name := instanceName(n, kind, p, iseq)
		rng := rand.New(rand.NewSource(instanceSeed(seed, name)))

		var f1 *factor.Factor
		switch kind {
		case "asc":
			f1 = Ascending(n)
		case "same":
			f1 = Constant(n, 1)
		case "mixed":
			f1 = Mixed(n, p, rng)
		default:
			return fmt.Errorf("generator: unknown kind %q", kind)
		}

		f2 := f1.DeepCopy()
		if !iseq {
			f2 = Perturb(f2, rng)
		}
		f1 = ShuffleArgs(f1, rng)
		f2 = ShuffleArgs(f2, rng)

		path := filepath.Join(dir, name+".cbor")
		if err := codec.Save(path, f1, f2); err != nil {
			return fmt.Errorf("generator: writing %s: %w", path, err)
		}
	}
	return nil
}

// instanceName builds the corpus naming convention from spec.md §6:
// asc-n=NN-ISEQ, same-n=NN-ISEQ, mixed-n=NN-p=PPP-ISEQ.
func instanceName(n int, kind string, p float64, iseq bool) string {
	if kind == "mixed" {
		return fmt.Sprintf("mixed-n=%d-p=%.1f-%v", n, p, iseq)
	}
	return fmt.Sprintf("%s-n=%d-%v", kind, n, iseq)
}

// instanceSeed derives a per-instance seed from the corpus seed and the
// instance's own name, so every instance's randomness is reproducible in
// isolation without depending on generation order.
func instanceSeed(seed int64, name string) int64 {
	h := int64(seed)
	for _, c := range name {
		h = h*31 + int64(c)
	}
	return h
}
