// deft-aggregate reads the results store and writes the per-run results
// CSV (instance,n,iseq,type,algo,time), optionally printing grouped
// timing statistics that drop any group containing a timeout.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/deftlab/deft/internal/store"
)

func main() {
	dbPath := pflag.String("db", "results.db", "path to the results SQLite database")
	outPath := pflag.String("out", "results.csv", "path to write the results CSV to")
	groupBy := pflag.String("group-by", "", "comma-separated columns to print grouped timing stats for (instance,n,iseq,kind,algo)")
	pflag.Parse()

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deft-aggregate: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	rows, err := st.Rows()
	if err != nil {
		fmt.Fprintf(os.Stderr, "deft-aggregate: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(*outPath, rows); err != nil {
		fmt.Fprintf(os.Stderr, "deft-aggregate: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("deft-aggregate: wrote %d rows to %s\n", len(rows), *outPath)

	if *groupBy != "" {
		cols := strings.Split(*groupBy, ",")
		agg, err := st.Aggregate(cols)
		if err != nil {
			fmt.Fprintf(os.Stderr, "deft-aggregate: %v\n", err)
			os.Exit(1)
		}
		printAggregate(cols, agg)
	}
}

// writeCSV writes rows in the instance,n,iseq,type,algo,time shape
// spec.md §6 defines: time is milliseconds, or the literal "timeout"
// when the row timed out.
func writeCSV(path string, rows []store.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"instance", "n", "iseq", "type", "algo", "time"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		timeField := "timeout"
		if !r.TimedOut {
			timeField = strconv.FormatFloat(float64(r.TimeNS)/1e6, 'f', -1, 64)
		}
		record := []string{r.Instance, strconv.Itoa(r.N), strconv.FormatBool(r.Iseq), r.Kind, r.Algo, timeField}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return w.Error()
}

func printAggregate(cols []string, agg []store.AggregateRow) {
	fmt.Printf("\n%s  count  min_ns  max_ns  mean_ns  median_ns  stddev_ns\n", strings.Join(cols, ","))
	for _, a := range agg {
		keyParts := make([]string, len(cols))
		for i, c := range cols {
			keyParts[i] = a.GroupKey[c]
		}
		fmt.Printf("%s  %d  %.0f  %.0f  %.2f  %.2f  %.2f\n",
			strings.Join(keyParts, ","), a.Count, a.MinNS, a.MaxNS, a.MeanNS, a.MedianNS, a.StdDevNS)
	}
}
