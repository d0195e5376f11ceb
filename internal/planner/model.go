package planner

import (
	"slices"

	"github.com/crillab/gophersat/solver"
)

// Model is a set of pseudo-boolean constraints over variables numbered from
// 1. A layer shares its parent's constraints and only appends, so the parent
// is never affected by constraints added to a layer.
type Model struct {
	vars    int
	constrs []solver.PBConstr
	used    []bool
}

func newModel() *Model {
	return &Model{used: []bool{false}}
}

func (m *Model) newVar() int {
	m.vars++
	m.used = append(m.used, false)
	return m.vars
}

// Vars returns the number of allocated variables.
func (m *Model) Vars() int { return m.vars }

// Len returns the number of constraints.
func (m *Model) Len() int { return len(m.constrs) }

// Constraints returns the constraint list. Callers must not modify it.
func (m *Model) Constraints() []solver.PBConstr { return m.constrs }

// Referenced reports whether variable v occurs in any constraint.
func (m *Model) Referenced(v int) bool {
	return v > 0 && v < len(m.used) && m.used[v]
}

func (m *Model) mark(lits []int) {
	for _, l := range lits {
		if l < 0 {
			l = -l
		}
		m.used[l] = true
	}
}

// clause adds the disjunction of lits.
func (m *Model) clause(lits ...int) {
	m.mark(lits)
	m.constrs = append(m.constrs, solver.PropClause(slices.Clone(lits)...))
}

// implies adds a → b.
func (m *Model) implies(a, b int) {
	m.clause(-a, b)
}

func (m *Model) atMost(lits []int, n int) {
	if len(lits) <= n {
		return
	}
	m.mark(lits)
	m.constrs = append(m.constrs, solver.AtMost(slices.Clone(lits), n))
}

// exactly adds sum(lits) = n. The gophersat constructors negate their
// literal slice in place, so they always get a private copy.
func (m *Model) exactly(lits []int, n int) {
	m.mark(lits)
	m.constrs = append(m.constrs, solver.Eq(slices.Clone(lits), ones(len(lits)), n)...)
}

func ones(n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// layer returns a model that extends m. Appending to the layer copies the
// shared constraint prefix rather than writing into m's backing array.
func (m *Model) layer() *Model {
	return &Model{
		vars:    m.vars,
		constrs: slices.Clip(m.constrs),
		used:    slices.Clone(m.used),
	}
}
