// Package main is the entry point for the coranking command. It loads a
// high-dimensional point set and its embedding, builds the co-ranking matrix
// and prints trustworthiness, continuity and LCMC as JSON.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/TrevorS/coranking"
	"github.com/TrevorS/coranking/internal/config"
	"github.com/TrevorS/coranking/internal/dataset"
)

// report is the JSON document written to stdout.
type report struct {
	Points    int               `json:"points"`
	HighDims  int               `json:"high_dims"`
	LowDims   int               `json:"low_dims"`
	Metric    string            `json:"metric"`
	Backend   string            `json:"backend"`
	MatrixSum int64             `json:"matrix_sum"`
	Matrix    [][]int64         `json:"matrix,omitempty"`
	Quality   coranking.Quality `json:"quality"`
	Curves    coranking.Curves  `json:"curves"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("coranking", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file")
	envPath := flags.String("env-file", ".env", "path to a .env file (ignored if missing)")
	high := flags.String("high", "", "high-dimensional point set (.csv or .xlsx)")
	low := flags.String("low", "", "low-dimensional point set (.csv or .xlsx)")
	k := flags.Int("k", config.DefaultK, "neighborhood size for the single-K report")
	minK := flags.Int("min-k", 0, "first K of the curves (0 means 1)")
	maxK := flags.Int("max-k", 0, "end of the curves, exclusive (0 means n-1)")
	metric := flags.String("metric", config.DefaultMetric, "distance metric: euclidean, manhattan, cosine, chebyshev")
	backend := flags.String("backend", config.DefaultBackend, "numeric backend: portable or gonum")
	workers := flags.Int("workers", 0, "worker goroutines (0 means runtime.NumCPU())")
	includeMatrix := flags.Bool("matrix", false, "include the co-ranking matrix in the output")
	logLevel := flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "coranking: load %s: %v\n", *envPath, err)
		return 1
	}

	cfg, errs := config.Load(*configPath)
	if cfg == nil {
		for _, err := range errs {
			fmt.Fprintf(stderr, "coranking: %v\n", err)
		}
		return 1
	}

	// Flags set explicitly on the command line win over file and environment.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "high":
			cfg.HighPath = *high
		case "low":
			cfg.LowPath = *low
		case "k":
			cfg.K = *k
		case "min-k":
			cfg.MinK = *minK
		case "max-k":
			cfg.MaxK = *maxK
		case "metric":
			cfg.Metric = *metric
		case "backend":
			cfg.Backend = *backend
		case "workers":
			cfg.Workers = *workers
		case "matrix":
			cfg.IncludeMatrix = *includeMatrix
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	errs = append(errs, cfg.Validate()...)
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if len(errs) > 0 {
		for _, err := range errs {
			logger.Error("invalid configuration", slog.Any("error", err))
		}
		return 1
	}

	rep, err := evaluate(cfg, logger)
	if err != nil {
		logger.Error("evaluation failed", slog.Any("error", err))
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logger.Error("write report", slog.Any("error", err))
		return 1
	}
	return 0
}

// evaluate loads both point sets and computes the report.
func evaluate(cfg *config.Config, logger *slog.Logger) (*report, error) {
	high, err := dataset.NewReader(cfg.HighPath, logger).Read()
	if err != nil {
		return nil, err
	}
	low, err := dataset.NewReader(cfg.LowPath, logger).Read()
	if err != nil {
		return nil, err
	}

	metric, ok := coranking.MetricByName(cfg.Metric)
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", cfg.Metric)
	}
	libCfg := coranking.DefaultConfig()
	libCfg.Metric = metric
	libCfg.Backend = coranking.BackendName(cfg.Backend)
	libCfg.Workers = cfg.Workers

	start := time.Now()
	q, err := coranking.Build(high, low, libCfg)
	if err != nil {
		return nil, err
	}
	logger.Info("co-ranking matrix built",
		slog.Int("points", len(high)),
		slog.Int("size", q.Rows),
		slog.Duration("elapsed", time.Since(start)),
	)

	e, err := coranking.NewEvaluator(q, libCfg)
	if err != nil {
		return nil, err
	}
	quality, err := e.Report(cfg.K)
	if err != nil {
		return nil, err
	}
	curves, err := e.Curves(cfg.MinK, cfg.MaxK)
	if err != nil {
		return nil, err
	}
	logger.Debug("metrics evaluated",
		slog.String("backend", string(e.Backend())),
		slog.Int("curve_points", len(curves.Ks)),
	)

	rep := &report{
		Points:    len(high),
		HighDims:  len(high[0]),
		LowDims:   len(low[0]),
		Metric:    cfg.Metric,
		Backend:   string(e.Backend()),
		MatrixSum: q.Sum(),
		Quality:   quality,
		Curves:    curves,
	}
	if cfg.IncludeMatrix {
		rep.Matrix = q.ToRows()
	}
	return rep, nil
}
