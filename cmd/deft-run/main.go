// deft-run runs one algorithm over one instance file and prints the
// external-interface contract from spec.md §6 to stdout: a single line
// of the form MEAN_TIME_NS,ISEQ_BOOL.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/deftlab/deft/internal/algorithm"
	"github.com/deftlab/deft/internal/codec"
)

func main() {
	repeat := pflag.IntP("repeat", "r", 1, "number of times to repeat the run, averaging time_ns over the repeats")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: deft-run [--repeat N] <instance-file> <algo>")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	args := pflag.Args()
	if len(args) != 2 {
		pflag.Usage()
		os.Exit(2)
	}
	path, algoArg := args[0], args[1]

	algo, err := algorithm.Parse(algoArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deft-run: %v\n", err)
		os.Exit(2)
	}
	if *repeat < 1 {
		*repeat = 1
	}

	f1, f2, err := codec.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deft-run: %v\n", err)
		os.Exit(1)
	}

	var totalNS int64
	var iseq bool
	for i := 0; i < *repeat; i++ {
		start := time.Now()
		iseq = algorithm.Run(algo, f1, f2)
		totalNS += time.Since(start).Nanoseconds()
	}
	meanNS := totalNS / int64(*repeat)

	fmt.Printf("%d,%v\n", meanNS, iseq)
}
