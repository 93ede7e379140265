// deft-bench runs one algorithm over every instance file in a corpus
// directory, writing timing/outcome rows to the results store and
// narrative entries to the run log, wrapping replay.Bench.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/deftlab/deft/internal/replay"
	"github.com/deftlab/deft/internal/runlog"
	"github.com/deftlab/deft/internal/store"
)

// benchConfig is the optional --config file shape, for per-algo timeout
// overrides that are awkward to pass as repeated flags.
type benchConfig struct {
	Corpus      string           `yaml:"corpus"`
	DB          string           `yaml:"db"`
	Algos       []string         `yaml:"algos"`
	TimeoutSecs int              `yaml:"timeout_secs"`
	PerAlgo     map[string]int   `yaml:"per_algo_timeout_secs"`
}

func main() {
	corpus := pflag.String("corpus", "corpus", "directory of instance files to benchmark")
	dbPath := pflag.String("db", "results.db", "path to the results SQLite database")
	configPath := pflag.String("config", "", "path to a YAML file with corpus/db/algos/timeouts; flags override matching fields")
	timeoutSecs := pflag.Int("timeout", 1800, "per-instance wall-clock timeout in seconds")
	var algos []string
	pflag.StringSliceVar(&algos, "algos", []string{"naive", "filter", "deft"}, "algorithms to benchmark")
	pflag.Parse()

	cfg := benchConfig{Corpus: *corpus, DB: *dbPath, Algos: algos, TimeoutSecs: *timeoutSecs}
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "deft-bench: %v\n", err)
			os.Exit(1)
		}
	}

	st, err := store.NewStore(cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deft-bench: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()
	if err := runlog.EnsureSchema(st.DB()); err != nil {
		fmt.Fprintf(os.Stderr, "deft-bench: %v\n", err)
		os.Exit(1)
	}

	for _, algo := range cfg.Algos {
		timeout := time.Duration(cfg.TimeoutSecs) * time.Second
		if perAlgo, ok := cfg.PerAlgo[algo]; ok {
			timeout = time.Duration(perAlgo) * time.Second
		}

		fmt.Printf("deft-bench: running %s over %s (timeout %s)\n", algo, cfg.Corpus, timeout)
		rows, entries := replay.Bench(cfg.Corpus, algo, timeout)

		for _, row := range rows {
			if err := st.Insert(row); err != nil {
				fmt.Fprintf(os.Stderr, "deft-bench: %v\n", err)
				os.Exit(1)
			}
		}
		for _, entry := range entries {
			if err := runlog.Record(st.DB(), entry); err != nil {
				fmt.Fprintf(os.Stderr, "deft-bench: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Printf("deft-bench: %s: %d instances recorded\n", algo, len(rows))
	}
}

func loadConfig(path string, cfg *benchConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fileCfg benchConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fileCfg.Corpus != "" && !pflag.CommandLine.Changed("corpus") {
		cfg.Corpus = fileCfg.Corpus
	}
	if fileCfg.DB != "" && !pflag.CommandLine.Changed("db") {
		cfg.DB = fileCfg.DB
	}
	if len(fileCfg.Algos) > 0 && !pflag.CommandLine.Changed("algos") {
		cfg.Algos = fileCfg.Algos
	}
	if fileCfg.TimeoutSecs != 0 && !pflag.CommandLine.Changed("timeout") {
		cfg.TimeoutSecs = fileCfg.TimeoutSecs
	}
	cfg.PerAlgo = fileCfg.PerAlgo
	return nil
}
