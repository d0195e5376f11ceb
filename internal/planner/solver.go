package planner

import (
	"context"

	"github.com/crillab/gophersat/solver"
)

type SolveStatus int

const (
	SolveUnknown SolveStatus = iota
	SolveOptimal
	SolveFeasible
	SolveInfeasible
)

func (s SolveStatus) String() string {
	switch s {
	case SolveOptimal:
		return "optimal"
	case SolveFeasible:
		return "feasible"
	case SolveInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Objective is a weighted sum of positive literals to minimize.
type Objective struct {
	Lits    []int
	Weights []int
}

func (o *Objective) add(lit, weight int) {
	o.Lits = append(o.Lits, lit)
	o.Weights = append(o.Weights, weight)
}

// Solution is a solver answer. Code carries the raw solver status when
// Status is SolveUnknown.
type Solution struct {
	Status SolveStatus
	Code   int
	Cost   int
	values []bool
}

// HasModel reports whether the solution carries an assignment.
func (s Solution) HasModel() bool { return len(s.values) > 0 }

// Value returns the assignment of variable v. Variables the solver never
// saw are false.
func (s Solution) Value(v int) bool {
	i := v - 1
	return i >= 0 && i < len(s.values) && s.values[i]
}

// Solver minimizes an objective over a model. Minimize blocks until the
// search finishes or ctx is done. In the latter case it returns the best
// assignment found so far as SolveFeasible, or SolveUnknown if there is none.
type Solver interface {
	Minimize(ctx context.Context, m *Model, obj Objective) Solution
}

// NewSolver returns the gophersat-backed solver.
func NewSolver() Solver { return gophersatSolver{} }

type gophersatSolver struct{}

// Minimize follows the stream of improving results from gophersat. The
// solver ignores its stop channel, so on ctx expiry the search is abandoned
// rather than stopped: a goroutine drains it until it finishes.
func (gophersatSolver) Minimize(ctx context.Context, m *Model, obj Objective) Solution {
	if ctx.Err() != nil {
		return Solution{Status: SolveUnknown, Code: int(solver.Indet)}
	}

	pb := solver.ParsePBConstrs(m.Constraints())

	// Variables outside every constraint are free; at the optimum they are
	// false and contribute nothing, so leave them out of the cost.
	lits := make([]solver.Lit, 0, len(obj.Lits))
	weights := make([]int, 0, len(obj.Weights))
	for i, v := range obj.Lits {
		if !m.Referenced(v) {
			continue
		}
		lits = append(lits, solver.IntToLit(int32(v)))
		weights = append(weights, obj.Weights[i])
	}
	pb.SetCostFunc(lits, weights)

	s := solver.New(pb)
	results := make(chan solver.Result)
	final := make(chan solver.Result, 1)
	go func() { final <- s.Optimal(results, nil) }()

	var (
		best solver.Result
		seen bool
	)
	for {
		select {
		case res, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			best, seen = res, true
		case res := <-final:
			return finalSolution(m, res)
		case <-ctx.Done():
			select {
			case res := <-final:
				return finalSolution(m, res)
			default:
			}
			// TODO: stop the abandoned search once gophersat honours its stop channel.
			if results != nil {
				go drain(results)
			}
			if seen && best.Status == solver.Sat {
				return Solution{Status: SolveFeasible, Cost: best.Weight, values: settle(m, best.Model)}
			}
			return Solution{Status: SolveUnknown, Code: int(solver.Indet)}
		}
	}
}

// finalSolution maps the result of a completed search. A completed
// search is a proof, whatever the state of the context.
func finalSolution(m *Model, res solver.Result) Solution {
	switch res.Status {
	case solver.Unsat:
		return Solution{Status: SolveInfeasible}
	case solver.Sat:
		return Solution{Status: SolveOptimal, Cost: res.Weight, values: settle(m, res.Model)}
	default:
		return Solution{Status: SolveUnknown, Code: int(res.Status)}
	}
}

func drain(results <-chan solver.Result) {
	for range results {
	}
}

// settle clears free variables, which the solver may report either way.
func settle(m *Model, values []bool) []bool {
	out := make([]bool, len(values))
	for i, v := range values {
		out[i] = v && m.Referenced(i+1)
	}
	return out
}
