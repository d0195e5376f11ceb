package planner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/termplan/internal/contract"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/graph"
	"github.com/crillab/gophersat/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSolver delegates to gophersat and counts the solves.
type countingSolver struct {
	calls    int
	statuses []SolveStatus
}

func (s *countingSolver) Minimize(ctx context.Context, m *Model, obj Objective) Solution {
	s.calls++
	sol := NewSolver().Minimize(ctx, m, obj)
	s.statuses = append(s.statuses, sol.Status)
	return sol
}

func encodeCatalog(t *testing.T, courses map[string]*domain.Course, terms, perTerm int, targets ...string) *encoding {
	t.Helper()
	g, err := graph.Build(courses)
	require.NoError(t, err)
	sg, err := g.Relevant(targets)
	require.NoError(t, err)
	return encode(sg, terms, perTerm)
}

// chainCatalog is a ladder of n courses where each course needs one of two
// predecessors from each of two rungs below it. Proving the minimum course
// count over a wide horizon takes far longer than finding a plan.
func chainCatalog(n int) (map[string]*domain.Course, []string) {
	codes := make([]string, n)
	courses := make([]*domain.Course, n)
	for i := range codes {
		codes[i] = fmt.Sprintf("LAD%03dH1", 100+i)
		var opts []courseOpt
		if i >= 4 {
			opts = append(opts, requires(domain.AllOf(
				domain.AnyOf(c(codes[i-1]), c(codes[i-3])),
				domain.AnyOf(c(codes[i-2]), c(codes[i-4])),
			)))
		}
		courses[i] = mkCourse(codes[i], opts...)
	}
	return catalog(courses...), codes[n-3:]
}

func TestEncode_KeepsTakesRowsIntact(t *testing.T) {
	courses := catalog(
		mkCourse("A100H1"),
		mkCourse("B100H1", excludes("C100H1")),
		mkCourse("C100H1"),
		mkCourse("D100Y1", requires(domain.AnyOf(c("B100H1"), c("C100H1")))),
		mkCourse("E200H1", requires(domain.AllOf(c("A100H1"), c("D100Y1")))),
	)
	e := encodeCatalog(t, courses, 6, 2, "E200H1", "A100H1")

	next := 1
	for i, row := range e.takes {
		for s, v := range row {
			assert.Equal(t, next, v, "takes[%d][%d]", i, s)
			next++
		}
	}
}

func TestModel_ConstraintsCopyLiterals(t *testing.T) {
	m := newModel()
	lits := []int{m.newVar(), m.newVar(), m.newVar()}

	m.exactly(lits, 1)
	m.atMost(lits, 1)
	m.clause(lits...)

	assert.Equal(t, []int{1, 2, 3}, lits)
}

func TestGophersat_ExactlyOne(t *testing.T) {
	m := newModel()
	lits := []int{m.newVar(), m.newVar(), m.newVar()}
	m.exactly(lits, 1)

	var obj Objective
	obj.add(lits[0], 1)
	obj.add(lits[1], 1)
	sol := NewSolver().Minimize(context.Background(), m, obj)

	require.Equal(t, SolveOptimal, sol.Status)
	assert.Zero(t, sol.Cost)
	assert.False(t, sol.Value(lits[0]))
	assert.False(t, sol.Value(lits[1]))
	assert.True(t, sol.Value(lits[2]))
}

// pigeonhole puts n+1 pigeons into n holes with plain clauses, which no
// clause-learning search refutes quickly.
func pigeonhole(n int) *Model {
	m := newModel()
	in := make([][]int, n+1)
	for p := range in {
		in[p] = make([]int, n)
		for h := range in[p] {
			in[p][h] = m.newVar()
		}
		m.clause(in[p]...)
	}
	for h := 0; h < n; h++ {
		for p := 0; p <= n; p++ {
			for q := p + 1; q <= n; q++ {
				m.clause(-in[p][h], -in[q][h])
			}
		}
	}
	return m
}

func TestGophersat_TimeoutBoundsWallClock(t *testing.T) {
	const limit = 200 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), limit)
	defer cancel()

	started := time.Now()
	sol := NewSolver().Minimize(ctx, pigeonhole(13), Objective{})
	elapsed := time.Since(started)

	assert.Less(t, elapsed, limit+time.Second, "solver must return soon after the deadline")
	assert.Equal(t, SolveUnknown, sol.Status)
	assert.False(t, sol.HasModel())
}

func TestGophersat_CompletedSearchIsAProof(t *testing.T) {
	m := newModel()
	a := m.newVar()
	m.clause(a)

	sat := finalSolution(m, solver.Result{Status: solver.Sat, Model: []bool{true}, Weight: 3})
	assert.Equal(t, SolveOptimal, sat.Status)
	assert.Equal(t, 3, sat.Cost)
	assert.True(t, sat.Value(a))

	assert.Equal(t, SolveInfeasible, finalSolution(m, solver.Result{Status: solver.Unsat}).Status)
	assert.Equal(t, SolveUnknown, finalSolution(m, solver.Result{Status: solver.Indet}).Status)
}

func TestPlan_TimeoutReturnsBestScheduleFound(t *testing.T) {
	courses, targets := chainCatalog(40)
	r := req(24, 3, targets...)
	r.Timeout = time.Second

	started := time.Now()
	res, err := New().Plan(context.Background(), courses, r)
	elapsed := time.Since(started)
	require.NoError(t, err)

	assert.Less(t, elapsed, r.Timeout+2*time.Second)
	require.Equal(t, contract.StatusFeasible, res.Status)
	assert.NotEmpty(t, res.Schedule)
	for _, target := range targets {
		assert.Contains(t, starts(res.Schedule), target)
	}
}

func TestPlan_GenerousTimeoutKeepsProof(t *testing.T) {
	courses := catalog(
		mkCourse("A100H1"),
		mkCourse("B100H1"),
		mkCourse("C200H1", requires(domain.AnyOf(c("A100H1"), c("B100H1")))),
	)
	r := req(4, 2, "C200H1")
	r.Timeout = 30 * time.Second

	s := &countingSolver{}
	res, err := New(WithSolver(s)).Plan(context.Background(), courses, r)
	require.NoError(t, err)

	assert.Equal(t, contract.StatusOptimal, res.Status)
	assert.Equal(t, 2, s.calls, "phase 2 must run after a proven phase 1")
	assert.Equal(t, []SolveStatus{SolveOptimal, SolveOptimal}, s.statuses)
	assert.Equal(t, 2, res.CourseCount)
}
