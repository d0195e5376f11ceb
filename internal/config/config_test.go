package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8, cfg.MaxTerms)
	assert.Equal(t, 5, cfg.MaxPerTerm)
	assert.Equal(t, 30*time.Second, cfg.SolverTimeout())
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "termplan.db", filepath.Base(cfg.DBPath))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TERMPLAN_DB", "/tmp/plans.db")
	t.Setenv("TERMPLAN_MAX_TERMS", "10")
	t.Setenv("TERMPLAN_MAX_PER_TERM", "3")
	t.Setenv("TERMPLAN_SOLVER_TIMEOUT_MS", "1500")
	t.Setenv("TERMPLAN_LOG", "true")
	t.Setenv("TERMPLAN_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "/tmp/plans.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.MaxTerms)
	assert.Equal(t, 3, cfg.MaxPerTerm)
	assert.Equal(t, 1500*time.Millisecond, cfg.SolverTimeout())
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("TERMPLAN_MAX_TERMS", "zero")
	t.Setenv("TERMPLAN_MAX_PER_TERM", "-2")
	t.Setenv("TERMPLAN_SOLVER_TIMEOUT_MS", "0")
	t.Setenv("TERMPLAN_LOG", "sometimes")
	t.Setenv("TERMPLAN_LOG_LEVEL", "loud")

	cfg := Load()
	def := DefaultConfig()

	assert.Equal(t, def.MaxTerms, cfg.MaxTerms)
	assert.Equal(t, def.MaxPerTerm, cfg.MaxPerTerm)
	assert.Equal(t, def.SolverTimeoutMs, cfg.SolverTimeoutMs)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestConfig_PlanRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTerms = 6
	cfg.SolverTimeoutMs = 250

	req := cfg.PlanRequest("CSC207H1")

	assert.Equal(t, []string{"CSC207H1"}, req.Targets)
	assert.Equal(t, 6, req.MaxTerms)
	assert.Equal(t, 5, req.MaxPerTerm)
	assert.Equal(t, 250*time.Millisecond, req.Timeout)
}
