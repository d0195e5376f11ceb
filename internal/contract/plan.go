package contract

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/termplan/internal/calendar"
)

// PlanStatus is the outcome of a planning request. Domain failures are
// statuses, not errors.
type PlanStatus string

const (
	StatusOptimal          PlanStatus = "Optimal"
	StatusFeasible         PlanStatus = "Feasible"
	StatusInfeasible       PlanStatus = "Infeasible"
	StatusTargetNotInGraph PlanStatus = "Error: Target not in graph"
	StatusNoRelevantNodes  PlanStatus = "Error: No relevant nodes"
	StatusPhase1Failed     PlanStatus = "Error: Phase 1 Failed"
	StatusInfeasiblePhase2 PlanStatus = "Error: Infeasible Phase 2"
	StatusRequirementCycle PlanStatus = "Error: Requirement cycle"
)

// UnknownStatus wraps a solver status code that is neither a solution nor
// a proof of infeasibility.
func UnknownStatus(code int) PlanStatus {
	return PlanStatus(fmt.Sprintf("Unknown/Error(%d)", code))
}

// HasSchedule reports whether a response with this status carries a schedule.
func (s PlanStatus) HasSchedule() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// IsError reports whether the status is an error or unknown variant, as
// opposed to a solution or a legitimate infeasibility.
func (s PlanStatus) IsError() bool {
	return strings.HasPrefix(string(s), "Error") || strings.HasPrefix(string(s), "Unknown")
}

const (
	DefaultMaxTerms   = 8
	DefaultMaxPerTerm = 5
)

type PlanRequest struct {
	Targets    []string
	MaxTerms   int
	MaxPerTerm int
	Completed  []string
	Timeout    time.Duration
	DryRun     bool
}

func NewPlanRequest(targets ...string) PlanRequest {
	return PlanRequest{
		Targets:    targets,
		MaxTerms:   DefaultMaxTerms,
		MaxPerTerm: DefaultMaxPerTerm,
	}
}

// Validate checks the request parameters. It returns a *PlanError.
func (r PlanRequest) Validate() error {
	if len(r.Targets) == 0 {
		return &PlanError{Code: ErrInvalidTargets, Message: "at least one target course is required"}
	}
	for _, t := range r.Targets {
		if strings.TrimSpace(t) == "" {
			return &PlanError{Code: ErrInvalidTargets, Message: "target course codes must not be blank"}
		}
	}
	if r.MaxTerms <= 0 {
		return &PlanError{Code: ErrInvalidMaxTerms, Message: fmt.Sprintf("max_terms must be > 0, got %d", r.MaxTerms)}
	}
	if r.MaxPerTerm <= 0 {
		return &PlanError{Code: ErrInvalidMaxPerTerm, Message: fmt.Sprintf("max_per_term must be > 0, got %d", r.MaxPerTerm)}
	}
	return nil
}

// TermPlan is one non-empty term of a schedule.
type TermPlan struct {
	Index   int      `json:"index"`
	Label   string   `json:"label"`
	Courses []string `json:"courses"`
}

// TermPlans orders a schedule by term and attaches calendar labels.
func TermPlans(schedule map[int][]string) []TermPlan {
	if len(schedule) == 0 {
		return nil
	}
	indices := make([]int, 0, len(schedule))
	for t := range schedule {
		indices = append(indices, t)
	}
	sort.Ints(indices)
	out := make([]TermPlan, len(indices))
	for i, t := range indices {
		out[i] = TermPlan{Index: t, Label: calendar.Label(t), Courses: schedule[t]}
	}
	return out
}

type PlanResponse struct {
	RunID       string     `json:"run_id,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
	Status      PlanStatus `json:"status"`
	Terms       []TermPlan `json:"terms"`
	// FinishTerm is the last occupied term index, -1 without a schedule.
	FinishTerm  int        `json:"finish_term"`
	CourseCount int        `json:"course_count"`
	// AlreadyDone lists requested targets dropped because they were completed.
	AlreadyDone []string   `json:"already_done,omitempty"`
	Fingerprint string     `json:"catalog_fingerprint"`
	Warnings    []string   `json:"warnings,omitempty"`
}

// Schedule returns the schedule as a term index → course codes map.
func (r PlanResponse) Schedule() map[int][]string {
	if len(r.Terms) == 0 {
		return nil
	}
	out := make(map[int][]string, len(r.Terms))
	for _, t := range r.Terms {
		out[t.Index] = t.Courses
	}
	return out
}

type PlanErrorCode string

const (
	ErrInvalidTargets    PlanErrorCode = "INVALID_TARGETS"
	ErrInvalidMaxTerms   PlanErrorCode = "INVALID_MAX_TERMS"
	ErrInvalidMaxPerTerm PlanErrorCode = "INVALID_MAX_PER_TERM"
	ErrEmptyCatalog      PlanErrorCode = "EMPTY_CATALOG"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
