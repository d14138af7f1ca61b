// Package config loads settings for the coranking command.
// It uses koanf to read an optional YAML file, then lets environment
// variables override file values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all settings for one coranking run.
type Config struct {
	// Input point sets
	HighPath string `koanf:"high"`
	LowPath  string `koanf:"low"`

	// Neighborhood sizes
	K    int `koanf:"k"`
	MinK int `koanf:"min_k"` // 0 means 1
	MaxK int `koanf:"max_k"` // 0 means n-1

	// Computation
	Metric  string `koanf:"metric"`
	Backend string `koanf:"backend"`
	Workers int    `koanf:"workers"` // 0 means runtime.NumCPU()

	// Output
	IncludeMatrix bool   `koanf:"include_matrix"`
	LogLevel      string `koanf:"log_level"`
}

// Configuration validation errors.
var (
	ErrMissingHighPath = errors.New("high data path is required")
	ErrMissingLowPath  = errors.New("low data path is required")
	ErrInvalidK        = errors.New("k must be >= 1")
	ErrInvalidRange    = errors.New("min_k and max_k must be >= 0")
	ErrInvalidWorkers  = errors.New("workers must be >= 0")
	ErrInvalidMetric   = errors.New("metric must be one of euclidean, manhattan, cosine, chebyshev")
	ErrInvalidBackend  = errors.New("backend must be portable or gonum")
	ErrInvalidLogLevel = errors.New("log_level must be one of debug, info, warn, error")
)

// Default values.
const (
	DefaultK        = 5
	DefaultMetric   = "euclidean"
	DefaultBackend  = "portable"
	DefaultLogLevel = "info"
)

// EnvPrefix prefixes every environment variable the loader reads,
// e.g. CORANKING_K or CORANKING_BACKEND.
const EnvPrefix = "CORANKING_"

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if valid).
// If a config file path is provided and the file cannot be loaded, an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	intField := func(key string, def int) int {
		v, err := getEnvIntOrDefault(EnvPrefix+strings.ToUpper(key), k, key, def)
		if err != nil {
			loadErrs = append(loadErrs, err)
		}
		return v
	}

	cfg := &Config{
		HighPath:      getEnvOrDefault(EnvPrefix+"HIGH", k.String("high"), ""),
		LowPath:       getEnvOrDefault(EnvPrefix+"LOW", k.String("low"), ""),
		K:             intField("k", DefaultK),
		MinK:          intField("min_k", 0),
		MaxK:          intField("max_k", 0),
		Metric:        getEnvOrDefault(EnvPrefix+"METRIC", k.String("metric"), DefaultMetric),
		Backend:       getEnvOrDefault(EnvPrefix+"BACKEND", k.String("backend"), DefaultBackend),
		Workers:       intField("workers", 0),
		IncludeMatrix: getEnvBool(EnvPrefix+"INCLUDE_MATRIX", k.Bool("include_matrix")),
		LogLevel:      getEnvOrDefault(EnvPrefix+"LOG_LEVEL", k.String("log_level"), DefaultLogLevel),
	}

	return cfg, loadErrs
}

// Validate checks the config and returns every problem found.
func (c *Config) Validate() []error {
	var errs []error
	if c.HighPath == "" {
		errs = append(errs, ErrMissingHighPath)
	}
	if c.LowPath == "" {
		errs = append(errs, ErrMissingLowPath)
	}
	if c.K < 1 {
		errs = append(errs, ErrInvalidK)
	}
	if c.MinK < 0 || c.MaxK < 0 {
		errs = append(errs, ErrInvalidRange)
	}
	if c.Workers < 0 {
		errs = append(errs, ErrInvalidWorkers)
	}
	switch c.Metric {
	case "euclidean", "manhattan", "cosine", "chebyshev":
	default:
		errs = append(errs, ErrInvalidMetric)
	}
	switch c.Backend {
	case "portable", "gonum":
	default:
		errs = append(errs, ErrInvalidBackend)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// ParseLogLevel maps a level name to its slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, ErrInvalidLogLevel
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefault parses an integer from the environment, falling back to
// the koanf value when the key exists in the file, and to def otherwise.
func getEnvIntOrDefault(envKey string, k *koanf.Koanf, koanfKey string, def int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return def, fmt.Errorf("%s must be a valid integer, got %q", envKey, val)
		}
		return n, nil
	}
	if k.Exists(koanfKey) {
		return k.Int(koanfKey), nil
	}
	return def, nil
}

// getEnvBool reads a boolean flag from the environment; unrecognized values
// keep the fallback.
func getEnvBool(envKey string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(envKey)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}
