// Package planner turns a course catalog and a planning request into a
// term-by-term schedule. It lowers the catalog into a dependency graph,
// keeps only the part relevant to the targets, encodes it as pseudo-boolean
// constraints and solves twice: first for the shortest schedule, then for
// the fewest courses within that length.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/termplan/internal/contract"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/graph"
)

// Result is the outcome of one planning call. Schedule is nil unless
// Status has a schedule.
type Result struct {
	Status      contract.PlanStatus
	Schedule    map[int][]string
	FinishTerm  int
	CourseCount int
	Stats       Stats
}

// Stats describes the size of the encoded model.
type Stats struct {
	Courses     int
	Gates       int
	Vars        int
	Constraints int
}

type Planner struct {
	solver Solver
	logger *slog.Logger
}

type Option func(*Planner)

// WithLogger sets the logger used for per-phase debug records.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSolver replaces the default gophersat solver.
func WithSolver(s Solver) Option {
	return func(p *Planner) {
		if s != nil {
			p.solver = s
		}
	}
}

func New(opts ...Option) *Planner {
	p := &Planner{
		solver: NewSolver(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan computes a schedule for req over courses. Invalid request parameters
// return a *contract.PlanError; every other outcome, including infeasibility
// and bad input data, is reported through Result.Status. courses is only
// read, so one catalog may be shared by concurrent calls.
func (p *Planner) Plan(ctx context.Context, courses map[string]*domain.Course, req contract.PlanRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	res := Result{FinishTerm: -1}

	g, err := graph.Build(courses, graph.WithCompleted(req.Completed...))
	if err != nil {
		if errors.Is(err, graph.ErrCycle) {
			p.logger.WarnContext(ctx, "catalog has a requirement cycle", "error", err)
			res.Status = contract.StatusRequirementCycle
			return res, nil
		}
		return Result{}, fmt.Errorf("building dependency graph: %w", err)
	}

	sg, err := g.Relevant(req.Targets)
	switch {
	case errors.Is(err, graph.ErrTargetNotInGraph):
		p.logger.DebugContext(ctx, "target not in graph", "error", err)
		res.Status = contract.StatusTargetNotInGraph
		return res, nil
	case errors.Is(err, graph.ErrNoRelevantNodes):
		res.Status = contract.StatusNoRelevantNodes
		return res, nil
	case err != nil:
		return Result{}, fmt.Errorf("pruning dependency graph: %w", err)
	}

	e := encode(sg, req.MaxTerms, req.MaxPerTerm)
	res.Stats = Stats{
		Courses:     len(sg.Courses),
		Gates:       len(sg.Gates),
		Vars:        e.base.Vars(),
		Constraints: e.base.Len(),
	}
	p.logger.DebugContext(ctx, "model encoded",
		"courses", res.Stats.Courses,
		"gates", res.Stats.Gates,
		"vars", res.Stats.Vars,
		"constraints", res.Stats.Constraints,
	)

	status, sol := p.optimize(ctx, e)
	res.Status = status
	if status.HasSchedule() {
		res.Schedule, res.FinishTerm, res.CourseCount = e.reconstruct(sol)
	}
	return res, nil
}
