package planner

import (
	"github.com/alexanderramin/termplan/internal/calendar"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/graph"
)

// encoding holds the base model for one planning request and the variable
// layout needed to read a solution back. Rows are indexed by the compact
// subgraph index of a node; columns by term. A zero entry in a lazily
// filled row means the variable has not been allocated.
type encoding struct {
	sg      *graph.Subgraph
	terms   int
	perTerm int
	base    *Model

	takes    [][]int // [course][term], term < terms: starts in term
	active   [][]int // [gate][term], term <= terms: condition holds by term
	finished [][]int // [course][term], term <= terms: finished before term
	started  [][]int // [course][term], term <= terms: started in or before term
	late     []int   // [k], 1 <= k < terms: makespan >= k
}

func encode(sg *graph.Subgraph, terms, perTerm int) *encoding {
	e := &encoding{
		sg:      sg,
		terms:   terms,
		perTerm: perTerm,
		base:    newModel(),
	}
	e.declare()
	e.encodeCardinality()
	e.encodeAvailability()
	e.encodeDependencies()
	e.encodeGates()
	e.encodeCapacity()
	e.encodeExclusions()
	e.encodeMakespan()
	return e
}

func (e *encoding) declare() {
	m := e.base
	e.takes = make([][]int, len(e.sg.Courses))
	e.finished = make([][]int, len(e.sg.Courses))
	e.started = make([][]int, len(e.sg.Courses))
	for i := range e.sg.Courses {
		e.takes[i] = make([]int, e.terms)
		for s := range e.takes[i] {
			e.takes[i][s] = m.newVar()
		}
		e.finished[i] = make([]int, e.terms+1)
		e.started[i] = make([]int, e.terms+1)
	}
	e.active = make([][]int, len(e.sg.Gates))
	for i := range e.sg.Gates {
		e.active[i] = make([]int, e.terms+1)
		for s := range e.active[i] {
			e.active[i][s] = m.newVar()
		}
	}
	e.late = make([]int, max(e.terms, 1))
	for k := 1; k < e.terms; k++ {
		e.late[k] = m.newVar()
	}
}

func (e *encoding) node(id graph.NodeID) graph.Node { return e.sg.Graph.Node(id) }

func (e *encoding) encodeCardinality() {
	for i, id := range e.sg.Courses {
		if e.sg.IsTarget(id) {
			e.base.exactly(e.takes[i], 1)
		} else {
			e.base.atMost(e.takes[i], 1)
		}
	}
}

func (e *encoding) encodeAvailability() {
	for i, id := range e.sg.Courses {
		n := e.node(id)
		for s := 0; s < e.terms; s++ {
			if !n.Course.StartsIn(calendar.KindOf(s)) || s+n.Terms() > e.terms {
				e.base.clause(-e.takes[i][s])
			}
		}
	}
}

// qualifying returns the start variables of course ci that satisfy rel for
// a consumer evaluated at term s.
func (e *encoding) qualifying(ci, s int, rel domain.Relation) []int {
	length := e.node(e.sg.Courses[ci]).Terms()
	var lits []int
	for u := 0; u < e.terms; u++ {
		switch rel {
		case domain.RelationCorequisite:
			if u <= s {
				lits = append(lits, e.takes[ci][u])
			}
		default:
			if u+length <= s {
				lits = append(lits, e.takes[ci][u])
			}
		}
	}
	return lits
}

// doneBy returns a literal that is true iff node id satisfies rel at term s.
// Course helpers are defined as the OR of their qualifying starts, and are
// forced false when nothing qualifies.
func (e *encoding) doneBy(id graph.NodeID, s int, rel domain.Relation) int {
	idx := e.sg.Index(id)
	if e.node(id).Kind == graph.GateNode {
		return e.active[idx][s]
	}
	row := e.finished[idx]
	if rel == domain.RelationCorequisite {
		row = e.started[idx]
	}
	if row[s] != 0 {
		return row[s]
	}
	h := e.base.newVar()
	row[s] = h
	lits := e.qualifying(idx, s, rel)
	if len(lits) == 0 {
		e.base.clause(-h)
		return h
	}
	e.base.clause(append([]int{-h}, lits...)...)
	for _, q := range lits {
		e.base.implies(q, h)
	}
	return h
}

// encodeDependencies ties every start of a course to its direct
// requirements: a course predecessor must have a qualifying start, a gate
// predecessor must be active in the start term.
func (e *encoding) encodeDependencies() {
	for i, id := range e.sg.Courses {
		for _, edge := range e.sg.Graph.Predecessors(id) {
			from := e.node(edge.From)
			for s := 0; s < e.terms; s++ {
				start := e.takes[i][s]
				if from.Kind == graph.GateNode {
					e.base.implies(start, e.active[e.sg.Index(edge.From)][s])
					continue
				}
				lits := e.qualifying(e.sg.Index(edge.From), s, edge.Relation)
				e.base.clause(append([]int{-start}, lits...)...)
			}
		}
	}
}

// encodeGates defines active[g][s] as exactly the gate's operator applied to
// its children's done-by-s literals.
func (e *encoding) encodeGates() {
	for gi, id := range e.sg.Gates {
		g := e.node(id)
		children := e.sg.Graph.Predecessors(id)
		for s := 0; s <= e.terms; s++ {
			a := e.active[gi][s]
			if len(children) == 0 {
				e.base.clause(a)
				continue
			}
			done := make([]int, len(children))
			for j, edge := range children {
				done[j] = e.doneBy(edge.From, s, g.Relation)
			}
			switch g.Op {
			case domain.OpAnyOf:
				e.base.clause(append([]int{-a}, done...)...)
				for _, d := range done {
					e.base.implies(d, a)
				}
			default:
				back := make([]int, 0, len(done)+1)
				back = append(back, a)
				for _, d := range done {
					e.base.implies(a, d)
					back = append(back, -d)
				}
				e.base.clause(back...)
			}
		}
	}
}

// encodeCapacity bounds the courses occupying each term: starts in the
// term plus long courses started in the previous one.
func (e *encoding) encodeCapacity() {
	for s := 0; s < e.terms; s++ {
		var lits []int
		for i, id := range e.sg.Courses {
			lits = append(lits, e.takes[i][s])
			if s > 0 && e.node(id).Terms() > 1 {
				lits = append(lits, e.takes[i][s-1])
			}
		}
		e.base.atMost(lits, e.perTerm)
	}
}

func (e *encoding) encodeExclusions() {
	for _, pair := range e.sg.Graph.Exclusions() {
		if !e.sg.Contains(pair[0]) || !e.sg.Contains(pair[1]) {
			continue
		}
		lits := append(append([]int(nil), e.takes[e.sg.Index(pair[0])]...), e.takes[e.sg.Index(pair[1])]...)
		e.base.atMost(lits, 1)
	}
}

// encodeMakespan sets up the order encoding late[k] ⇔ finish ≥ k. Every
// start pushes the makespan to at least its finishing term.
func (e *encoding) encodeMakespan() {
	for k := 1; k+1 < e.terms; k++ {
		e.base.implies(e.late[k+1], e.late[k])
	}
	for i, id := range e.sg.Courses {
		length := e.node(id).Terms()
		for s := 0; s < e.terms; s++ {
			f := s + length - 1
			if f >= 1 && f < e.terms {
				e.base.implies(e.takes[i][s], e.late[f])
			}
		}
	}
}

// finishObjective is the makespan: the number of late bits set.
func (e *encoding) finishObjective() Objective {
	var obj Objective
	for k := 1; k < e.terms; k++ {
		obj.add(e.late[k], 1)
	}
	return obj
}

// countObjective weights every start by a constant larger than any possible
// sum of start terms, plus the term itself. Minimizing it minimizes the
// course count first and breaks ties toward earlier starts.
func (e *encoding) countObjective() Objective {
	w := len(e.sg.Courses)*e.terms + 1
	var obj Objective
	for i := range e.sg.Courses {
		for s := 0; s < e.terms; s++ {
			obj.add(e.takes[i][s], w+s)
		}
	}
	return obj
}

// boundFinish layers finish <= bound onto the base model.
func (e *encoding) boundFinish(bound int) *Model {
	m := e.base.layer()
	for k := bound + 1; k < e.terms; k++ {
		m.clause(-e.late[k])
	}
	return m
}

// startTerm returns the start term of course ci in sol, or -1.
func (e *encoding) startTerm(sol Solution, ci int) int {
	for s, v := range e.takes[ci] {
		if sol.Value(v) {
			return s
		}
	}
	return -1
}
