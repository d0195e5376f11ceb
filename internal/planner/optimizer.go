package planner

import (
	"context"

	"github.com/alexanderramin/termplan/internal/contract"
)

// optimize runs the two solves. Phase 1 minimizes the makespan over the
// base model. Phase 2 freezes the phase 1 makespan as an upper bound in a
// layer over the same base and minimizes the course count. If the time limit
// interrupts either phase, the best assignment found so far is returned as
// Feasible.
func (p *Planner) optimize(ctx context.Context, e *encoding) (contract.PlanStatus, Solution) {
	obj := e.finishObjective()
	if len(obj.Lits) == 0 {
		// A single-term horizon has no makespan to minimize.
		obj = e.countObjective()
	}
	first := p.solver.Minimize(ctx, e.base, obj)
	p.logger.DebugContext(ctx, "phase 1 solved", "status", first.Status, "cost", first.Cost)

	switch first.Status {
	case SolveInfeasible:
		return contract.StatusInfeasible, Solution{}
	case SolveUnknown:
		return contract.UnknownStatus(first.Code), Solution{}
	}
	if !first.HasModel() {
		return contract.StatusPhase1Failed, Solution{}
	}
	if first.Status == SolveFeasible {
		return contract.StatusFeasible, first
	}

	bound := max(e.finish(first), 0)
	second := p.solver.Minimize(ctx, e.boundFinish(bound), e.countObjective())
	p.logger.DebugContext(ctx, "phase 2 solved", "status", second.Status, "bound", bound, "cost", second.Cost)

	switch second.Status {
	case SolveOptimal:
		return contract.StatusOptimal, second
	case SolveFeasible:
		if second.HasModel() {
			return contract.StatusFeasible, second
		}
		return contract.StatusFeasible, first
	case SolveInfeasible:
		p.logger.ErrorContext(ctx, "phase 2 infeasible under phase 1 bound", "bound", bound)
		return contract.StatusInfeasiblePhase2, Solution{}
	default:
		if ctx.Err() != nil {
			return contract.StatusFeasible, first
		}
		return contract.UnknownStatus(second.Code), Solution{}
	}
}
