// Package config reads termplan settings from the environment.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/termplan/internal/contract"
)

// Config holds process-wide settings. Zero values are never used directly;
// Load always starts from DefaultConfig.
type Config struct {
	DBPath          string
	MaxTerms        int
	MaxPerTerm      int
	SolverTimeoutMs int
	LogUseCases     bool
	LogLevel        slog.Level
}

// DefaultConfig returns the settings used when no environment overrides
// are present. The database lives under the user's home directory.
func DefaultConfig() Config {
	dbPath := filepath.Join(".termplan", "termplan.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, dbPath)
	}
	return Config{
		DBPath:          dbPath,
		MaxTerms:        contract.DefaultMaxTerms,
		MaxPerTerm:      contract.DefaultMaxPerTerm,
		SolverTimeoutMs: 30000,
		LogUseCases:     false,
		LogLevel:        slog.LevelInfo,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or invalid values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TERMPLAN_DB"); v != "" {
		cfg.DBPath = v
	}
	applyPositiveInt(&cfg.MaxTerms, "TERMPLAN_MAX_TERMS")
	applyPositiveInt(&cfg.MaxPerTerm, "TERMPLAN_MAX_PER_TERM")
	applyPositiveInt(&cfg.SolverTimeoutMs, "TERMPLAN_SOLVER_TIMEOUT_MS")
	if v := os.Getenv("TERMPLAN_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv("TERMPLAN_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			cfg.LogLevel = level
		}
	}

	return cfg
}

// SolverTimeout returns the solver time limit as a duration.
func (c Config) SolverTimeout() time.Duration {
	return time.Duration(c.SolverTimeoutMs) * time.Millisecond
}

// PlanRequest returns a request for targets carrying the configured limits.
func (c Config) PlanRequest(targets ...string) contract.PlanRequest {
	req := contract.NewPlanRequest(targets...)
	req.MaxTerms = c.MaxTerms
	req.MaxPerTerm = c.MaxPerTerm
	req.Timeout = c.SolverTimeout()
	return req
}

func applyPositiveInt(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}
