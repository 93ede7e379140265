// deft-inspect loads one instance file and prints both factors, their
// bucket-by-signature breakdown, and the degree-of-freedom ordering DEFT
// would search them in — a debugging aid, not part of the core.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/deftlab/deft/internal/bucket"
	"github.com/deftlab/deft/internal/codec"
	"github.com/deftlab/deft/internal/factor"
)

func main() {
	jsonOut := pflag.Bool("json", false, "output as JSON instead of a table")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: deft-inspect [--json] <instance-file>")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	args := pflag.Args()
	if len(args) != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	f1, f2, err := codec.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "deft-inspect: %v\n", err)
		os.Exit(1)
	}

	out := inspectOutput{
		F1:          summarizeFactor(f1),
		F2:          summarizeFactor(f2),
		F1Buckets:   summarizeBuckets(f1),
		F2Buckets:   summarizeBuckets(f2),
		F2DofOrder:  summarizeDofOrder(f2),
	}

	if *jsonOut {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "deft-inspect: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}
	printTable(out)
}

type factorSummary struct {
	Name  string   `json:"name"`
	Args  []string `json:"args"`
	Arity int      `json:"arity"`
}

type bucketSummary struct {
	Signature  string    `json:"signature"`
	Potentials []float64 `json:"potentials"`
}

type inspectOutput struct {
	F1         factorSummary   `json:"f1"`
	F2         factorSummary   `json:"f2"`
	F1Buckets  []bucketSummary `json:"f1_buckets"`
	F2Buckets  []bucketSummary `json:"f2_buckets"`
	F2DofOrder []string        `json:"f2_dof_order"`
}

func summarizeFactor(f *factor.Factor) factorSummary {
	args := make([]string, f.Arity())
	for i, a := range f.RVs() {
		args[i] = a.Name
	}
	return factorSummary{Name: f.Name, Args: args, Arity: f.Arity()}
}

func summarizeBuckets(f *factor.Factor) []bucketSummary {
	buckets := bucket.Buckets(f)
	sigs := make([]bucket.Signature, 0, len(buckets))
	for s := range buckets {
		sigs = append(sigs, s)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].True < sigs[j].True })

	out := make([]bucketSummary, len(sigs))
	for i, s := range sigs {
		out[i] = bucketSummary{
			Signature:  fmt.Sprintf("(%d true, %d false)", s.True, s.False),
			Potentials: buckets[s],
		}
	}
	return out
}

func summarizeDofOrder(f *factor.Factor) []string {
	ordered := bucket.BuildOrdered(f, true)
	out := make([]string, len(ordered.Signatures))
	for i, s := range ordered.Signatures {
		out[i] = fmt.Sprintf("(%d true, %d false) dof=%d", s.True, s.False, bucket.DegreeOfFreedom(ordered.Potentials[s]))
	}
	return out
}

func printTable(out inspectOutput) {
	fmt.Printf("F1: %s(%v)\n", out.F1.Name, out.F1.Args)
	fmt.Printf("F2: %s(%v)\n", out.F2.Name, out.F2.Args)

	fmt.Println("\nF1 buckets:")
	for _, b := range out.F1Buckets {
		fmt.Printf("  %-20s %v\n", b.Signature, b.Potentials)
	}
	fmt.Println("\nF2 buckets:")
	for _, b := range out.F2Buckets {
		fmt.Printf("  %-20s %v\n", b.Signature, b.Potentials)
	}

	fmt.Println("\nF2 degree-of-freedom search order (ascending = most constraining first):")
	for i, s := range out.F2DofOrder {
		fmt.Printf("  %d. %s\n", i+1, s)
	}
}
