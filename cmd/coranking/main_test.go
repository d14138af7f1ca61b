package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// highCSV is a 5×5 arange matrix with a header; lowCSV swaps rows 0 and 2.
const (
	highCSV = "a,b,c,d,e\n0,1,2,3,4\n5,6,7,8,9\n10,11,12,13,14\n15,16,17,18,19\n20,21,22,23,24\n"
	lowCSV  = "10,11,12,13,14\n5,6,7,8,9\n0,1,2,3,4\n15,16,17,18,19\n20,21,22,23,24\n"
)

func writeInputs(t *testing.T) (dir, high, low string) {
	t.Helper()
	dir = t.TempDir()
	high = filepath.Join(dir, "high.csv")
	low = filepath.Join(dir, "low.csv")
	require.NoError(t, os.WriteFile(high, []byte(highCSV), 0o600))
	require.NoError(t, os.WriteFile(low, []byte(lowCSV), 0o600))
	return dir, high, low
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HIGH", "LOW", "K", "MIN_K", "MAX_K", "METRIC",
		"BACKEND", "WORKERS", "INCLUDE_MATRIX", "LOG_LEVEL",
	} {
		t.Setenv("CORANKING_"+key, "")
	}
}

func runCLI(t *testing.T, args ...string) (int, report, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	var rep report
	if code == 0 && stdout.Len() > 0 {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep), stdout.String())
	}
	return code, rep, stderr.String()
}

func TestRun_Report(t *testing.T) {
	clearEnv(t)
	dir, high, low := writeInputs(t)

	code, rep, stderr := runCLI(t,
		"-env-file", filepath.Join(dir, "missing.env"),
		"-high", high, "-low", low,
		"-k", "1", "-matrix", "-workers", "2",
	)
	require.Equal(t, 0, code, stderr)

	require.Equal(t, 5, rep.Points)
	require.Equal(t, 5, rep.HighDims)
	require.Equal(t, 5, rep.LowDims)
	require.Equal(t, "euclidean", rep.Metric)
	require.Equal(t, "portable", rep.Backend)
	require.EqualValues(t, 20, rep.MatrixSum)
	require.Equal(t, [][]int64{
		{4, 0, 0, 1},
		{0, 2, 2, 1},
		{0, 2, 3, 0},
		{1, 1, 0, 3},
	}, rep.Matrix)

	require.Equal(t, 1, rep.Quality.K)
	require.InDelta(t, 0.8666666666666667, rep.Quality.Trustworthiness, 1e-12)
	require.InDelta(t, 0.8666666666666667, rep.Quality.Continuity, 1e-12)
	require.InDelta(t, 0.55, rep.Quality.LCMC, 1e-12)

	require.Equal(t, []int{1, 2, 3}, rep.Curves.Ks)
	require.Equal(t, 1, rep.Curves.Summary.BestK)
}

func TestRun_ConfigFileAndEnvFile(t *testing.T) {
	clearEnv(t)
	dir, high, low := writeInputs(t)

	configPath := filepath.Join(dir, "coranking.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"high: "+high+"\nlow: "+low+"\nk: 2\nmin_k: 2\nmax_k: 4\nbackend: portable\n"), 0o600))

	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("CORANKING_BACKEND=gonum\n"), 0o600))
	// godotenv only fills unset variables.
	require.NoError(t, os.Unsetenv("CORANKING_BACKEND"))
	t.Cleanup(func() { os.Unsetenv("CORANKING_BACKEND") })

	code, rep, stderr := runCLI(t, "-config", configPath, "-env-file", envPath)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "gonum", rep.Backend)
	require.Equal(t, 2, rep.Quality.K)
	require.Equal(t, []int{2, 3}, rep.Curves.Ks)
	require.Nil(t, rep.Matrix)
}

func TestRun_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	dir, high, low := writeInputs(t)
	t.Setenv("CORANKING_K", "3")
	t.Setenv("CORANKING_METRIC", "cosine")

	code, rep, stderr := runCLI(t,
		"-env-file", filepath.Join(dir, "missing.env"),
		"-high", high, "-low", low, "-k", "4", "-metric", "manhattan",
	)
	require.Equal(t, 0, code, stderr)
	require.Equal(t, 4, rep.Quality.K)
	require.Equal(t, "manhattan", rep.Metric)
}

func TestRun_Errors(t *testing.T) {
	clearEnv(t)
	dir, high, low := writeInputs(t)
	noEnv := filepath.Join(dir, "missing.env")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantLog  string
	}{
		{"unknown flag", []string{"-bogus"}, 2, "flag provided but not defined"},
		{"missing paths", []string{"-env-file", noEnv}, 1, "high data path is required"},
		{"bad backend", []string{"-env-file", noEnv, "-high", high, "-low", low, "-backend", "cuda"}, 1, "backend must be portable or gonum"},
		{"k too large", []string{"-env-file", noEnv, "-high", high, "-low", low, "-k", "5"}, 1, "K must be in [1, 4], got 5"},
		{"missing file", []string{"-env-file", noEnv, "-high", filepath.Join(dir, "x.csv"), "-low", low}, 1, "evaluation failed"},
		{"missing config", []string{"-env-file", noEnv, "-config", filepath.Join(dir, "x.yaml")}, 1, "failed to load config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			require.Equal(t, tt.wantCode, code, stderr)
			require.True(t, strings.Contains(stderr, tt.wantLog), "stderr %q does not contain %q", stderr, tt.wantLog)
		})
	}
}

func TestRun_MismatchedPointCounts(t *testing.T) {
	clearEnv(t)
	dir, high, _ := writeInputs(t)
	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("1\n2\n3\n"), 0o600))

	code, _, stderr := runCLI(t, "-env-file", filepath.Join(dir, "missing.env"), "-high", high, "-low", short)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "high data has 5 rows, low data has 3")
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-h"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Zero(t, stdout.Len(), "help must not print a report")
	require.Contains(t, stderr.String(), "-min-k")

	code, rep, _ := runCLI(t, "-help")
	require.Equal(t, 0, code)
	require.Zero(t, rep.Points)
}
