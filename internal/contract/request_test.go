package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- PlanRequest constructor defaults ---

func TestNewPlanRequest_SetsDefaults(t *testing.T) {
	req := NewPlanRequest("CSC110Y1", "MAT137Y1")

	assert.Equal(t, []string{"CSC110Y1", "MAT137Y1"}, req.Targets)
	assert.Equal(t, 8, req.MaxTerms)
	assert.Equal(t, 5, req.MaxPerTerm)
	assert.Nil(t, req.Completed)
	assert.Zero(t, req.Timeout)
	assert.False(t, req.DryRun)
}

// --- Validation ---

func TestPlanRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  PlanRequest
		code PlanErrorCode
	}{
		{"no targets", NewPlanRequest(), ErrInvalidTargets},
		{"blank target", NewPlanRequest("A100H1", "  "), ErrInvalidTargets},
		{"zero terms", PlanRequest{Targets: []string{"A100H1"}, MaxTerms: 0, MaxPerTerm: 1}, ErrInvalidMaxTerms},
		{"negative per term", PlanRequest{Targets: []string{"A100H1"}, MaxTerms: 2, MaxPerTerm: -1}, ErrInvalidMaxPerTerm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			var perr *PlanError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.code, perr.Code)
		})
	}

	assert.NoError(t, NewPlanRequest("A100H1").Validate())
}

// --- Statuses ---

func TestPlanStatus_Classification(t *testing.T) {
	assert.True(t, StatusOptimal.HasSchedule())
	assert.True(t, StatusFeasible.HasSchedule())
	assert.False(t, StatusInfeasible.HasSchedule())
	assert.False(t, StatusInfeasible.IsError())

	for _, s := range []PlanStatus{StatusTargetNotInGraph, StatusNoRelevantNodes, StatusPhase1Failed, StatusInfeasiblePhase2, StatusRequirementCycle, UnknownStatus(3)} {
		assert.True(t, s.IsError(), string(s))
		assert.False(t, s.HasSchedule(), string(s))
	}
}

func TestUnknownStatus_Format(t *testing.T) {
	assert.Equal(t, PlanStatus("Unknown/Error(0)"), UnknownStatus(0))
}

func TestPlanResponse_Schedule(t *testing.T) {
	resp := PlanResponse{Terms: []TermPlan{{Index: 0, Courses: []string{"A"}}, {Index: 2, Courses: []string{"B", "C"}}}}
	assert.Equal(t, map[int][]string{0: {"A"}, 2: {"B", "C"}}, resp.Schedule())
	assert.Nil(t, PlanResponse{}.Schedule())
}

// --- Error types ---

func TestPlanError_ErrorString(t *testing.T) {
	err := &PlanError{Code: ErrInvalidMaxTerms, Message: "max_terms must be > 0, got 0"}
	assert.Equal(t, "INVALID_MAX_TERMS: max_terms must be > 0, got 0", err.Error())
}

func TestTermPlans_OrdersAndLabels(t *testing.T) {
	terms := TermPlans(map[int][]string{3: {"CSC236H1"}, 0: {"CSC110Y1"}, 1: {"CSC110Y1"}})

	assert.Equal(t, []TermPlan{
		{Index: 0, Label: "Year 1 Fall", Courses: []string{"CSC110Y1"}},
		{Index: 1, Label: "Year 1 Winter", Courses: []string{"CSC110Y1"}},
		{Index: 3, Label: "Year 2 Winter", Courses: []string{"CSC236H1"}},
	}, terms)
	assert.Nil(t, TermPlans(nil))

	resp := PlanResponse{Terms: terms}
	assert.Equal(t, map[int][]string{0: {"CSC110Y1"}, 1: {"CSC110Y1"}, 3: {"CSC236H1"}}, resp.Schedule())
}
