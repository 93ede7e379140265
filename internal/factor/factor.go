// Package factor implements the discrete Boolean factor model: an ordered
// list of Boolean random variables together with a complete potential
// table over their joint assignments.
package factor

import (
	"fmt"
	"math"
	"strings"
)

// DRV is a discrete random variable with range {true, false}, in that
// order. Every DRV in this module is Boolean; the Name is used for
// display, equality and ArgPosition, never for table lookup.
type DRV struct {
	Name string
}

// Factor is a tuple (Name, Args, Table). Table maps every complete
// assignment of Args (in argument order) to a potential. A Factor is
// valid (see IsValid) when every one of the 2^len(Args) assignments is
// present.
type Factor struct {
	Name  string
	Args  []DRV
	Table map[string]float64
}

// New builds a Factor from a list of (assignment, potential) entries.
// Duplicate assignments are not expected; when they occur the last entry
// in iteration order wins, matching the reference implementation.
func New(name string, args []DRV, entries []Entry) *Factor {
	table := make(map[string]float64, len(entries))
	for _, e := range entries {
		table[Key(e.Assignment)] = e.Potential
	}
	return &Factor{Name: name, Args: append([]DRV(nil), args...), Table: table}
}

// Entry pairs one complete assignment with its potential.
type Entry struct {
	Assignment []bool
	Potential  float64
}

// Arity returns the number of arguments of f.
func (f *Factor) Arity() int {
	return len(f.Args)
}

// RVs returns f's argument list.
func (f *Factor) RVs() []DRV {
	return f.Args
}

// ArgPosition returns the position of the DRV named name within f.Args,
// and whether it was found. No caller in this module relies on the
// sentinel value used when ok is false.
func (f *Factor) ArgPosition(name string) (int, bool) {
	for i, a := range f.Args {
		if a.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Potential returns the potential stored at assignment c, or NaN if c is
// not present in f.Table. Callers must treat NaN as "no match" — this
// function never panics or returns an error.
func (f *Factor) Potential(c []bool) float64 {
	v, ok := f.Table[Key(c)]
	if !ok {
		return math.NaN()
	}
	return v
}

// IsValid reports whether every one of the 2^Arity() assignments is
// present in f.Table.
func (f *Factor) IsValid() bool {
	n := f.Arity()
	if n == 0 {
		return len(f.Table) == 1
	}
	want := 1 << n
	if len(f.Table) != want {
		return false
	}
	for _, c := range EnumerateAssignments(n) {
		if _, ok := f.Table[Key(c)]; !ok {
			return false
		}
	}
	return true
}

// DeepCopy returns a Factor with its own Args slice and Table map, sharing
// no mutable state with f.
func (f *Factor) DeepCopy() *Factor {
	args := append([]DRV(nil), f.Args...)
	table := make(map[string]float64, len(f.Table))
	for k, v := range f.Table {
		table[k] = v
	}
	return &Factor{Name: f.Name, Args: args, Table: table}
}

// Equal reports structural equality: same name, same argument sequence
// (names, in order), and the same table as a mapping (key and value for
// every entry).
func Equal(a, b *Factor) bool {
	if a.Name != b.Name {
		return false
	}
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i].Name != b.Args[i].Name {
			return false
		}
	}
	if len(a.Table) != len(b.Table) {
		return false
	}
	for k, v := range a.Table {
		bv, ok := b.Table[k]
		if !ok || bv != v {
			return false
		}
	}
	return true
}

// EqualTables reports whether a and b agree on every assignment's
// potential, ignoring argument names — the "full-table equality" check
// used by the permutation oracle and by DEFT's leaf verification. a and b
// must have the same arity.
func EqualTables(a, b *Factor) bool {
	if a.Arity() != b.Arity() {
		return false
	}
	for _, c := range EnumerateAssignments(a.Arity()) {
		av, bv := a.Potential(c), b.Potential(c)
		if av != bv {
			return false
		}
	}
	return true
}

// Key returns the canonical string key for assignment c: one character
// per position, "T" for true and "F" for false, in argument order. This
// is the table's map key and the unit the instance codec round-trips.
func Key(c []bool) string {
	var b strings.Builder
	b.Grow(len(c))
	for _, v := range c {
		if v {
			b.WriteByte('T')
		} else {
			b.WriteByte('F')
		}
	}
	return b.String()
}

// Assignment parses a Key-format string back into a []bool. It panics on
// a malformed key ('T'/'F' only); callers only ever pass keys produced by
// Key or EnumerateAssignments.
func Assignment(key string) []bool {
	c := make([]bool, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case 'T':
			c[i] = true
		case 'F':
			c[i] = false
		default:
			panic(fmt.Sprintf("factor: malformed assignment key %q", key))
		}
	}
	return c
}

// EnumerateAssignments returns every complete assignment of n Boolean
// variables in the module's one fixed canonical order: starting from
// all-true and counting down to all-false, treating position 0 (the
// first argument) as the most significant bit and true as the 1 bit.
// This reproduces the reference implementation's reverse-sorted
// Cartesian product and is the single definition of assignment order
// used throughout this module — bucket construction, configuration
// recording, and constraint/swap enumeration all call this function
// rather than deriving their own order.
func EnumerateAssignments(n int) [][]bool {
	if n <= 0 {
		return [][]bool{{}}
	}
	total := 1 << n
	out := make([][]bool, total)
	for i := range out {
		bits := total - 1 - i
		c := make([]bool, n)
		for pos := 0; pos < n; pos++ {
			shift := n - 1 - pos
			c[pos] = (bits>>shift)&1 == 1
		}
		out[i] = c
	}
	return out
}

// CountTrue returns the number of true values in c.
func CountTrue(c []bool) int {
	n := 0
	for _, v := range c {
		if v {
			n++
		}
	}
	return n
}

// PermuteInPlace reorders f's arguments and rewrites every assignment key
// according to the total permutation pi (len(pi) == f.Arity(), a bijection
// on 0..n-1): the new argument at position i is the old argument at
// position pi[i], and the new table's entry at assignment d (where
// d[i] = c[pi[i]] for every old assignment c) takes c's potential. This
// is the "permutation application semantics" shared by the permutation
// oracle and DEFT's leaf verification.
func (f *Factor) PermuteInPlace(pi []int) {
	n := f.Arity()
	if len(pi) != n {
		panic(fmt.Sprintf("factor: PermuteInPlace: permutation length %d != arity %d", len(pi), n))
	}
	newArgs := make([]DRV, n)
	for i, p := range pi {
		newArgs[i] = f.Args[p]
	}
	newTable := make(map[string]float64, len(f.Table))
	for key, v := range f.Table {
		c := Assignment(key)
		d := make([]bool, n)
		for i, p := range pi {
			d[i] = c[p]
		}
		newTable[Key(d)] = v
	}
	f.Args = newArgs
	f.Table = newTable
}
