package graph

import (
	"github.com/alexanderramin/termplan/internal/domain"
)

// Option configures Build.
type Option func(*builder)

// WithCompleted marks courses as already taken. Requirements they meet are
// dropped, including any AnyOf with a completed alternative.
func WithCompleted(codes ...string) Option {
	return func(b *builder) {
		for _, c := range codes {
			b.completed[c] = true
		}
	}
}

type builder struct {
	g         *Graph
	courses   map[string]*domain.Course
	completed map[string]bool
}

// Build constructs the dependency graph for a catalog. Course nodes are
// created in code order, so node ids are stable for a given catalog.
// Requirement leaves that name unknown courses are dropped, since nothing
// can schedule them. Build fails with a *CycleError if the requirements are
// cyclic. The courses are never modified.
func Build(courses map[string]*domain.Course, opts ...Option) (*Graph, error) {
	b := &builder{
		g:         newGraph(len(courses)),
		courses:   courses,
		completed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}

	codes := domain.SortedCodes(courses)
	for _, code := range codes {
		id := b.g.addNode(Node{Kind: CourseNode, Course: courses[code]})
		b.g.byCode[code] = id
	}

	for _, code := range codes {
		c := courses[code]
		consumer := b.g.byCode[code]
		b.lower(b.settle(c.Prerequisites).Prune(b.keep), consumer, domain.RelationPrerequisite)
		b.lower(b.settle(c.Corequisites).Prune(b.keep), consumer, domain.RelationCorequisite)
	}

	b.collectExclusions(codes)

	if err := b.g.checkAcyclic(); err != nil {
		return nil, err
	}
	return b.g, nil
}

func (b *builder) keep(code string) bool {
	_, ok := b.courses[code]
	return ok && !b.completed[code]
}

// settle removes the parts of a tree that completed courses already meet.
// One completed alternative meets a whole AnyOf.
func (b *builder) settle(r domain.Requirement) domain.Requirement {
	if len(b.completed) == 0 {
		return r
	}
	out, _ := b.settleNode(r)
	return out
}

func (b *builder) settleNode(r domain.Requirement) (domain.Requirement, bool) {
	switch r.Kind {
	case domain.ReqCourse:
		if b.completed[r.Code] {
			return domain.Requirement{}, true
		}
	case domain.ReqAllOf, domain.ReqAnyOf:
		children := make([]domain.Requirement, 0, len(r.Children))
		for _, child := range r.Children {
			settled, met := b.settleNode(child)
			if met {
				if r.Kind == domain.ReqAnyOf {
					return domain.Requirement{}, true
				}
				continue
			}
			children = append(children, settled)
		}
		if len(children) == 0 {
			return domain.Requirement{}, true
		}
		return domain.Requirement{Kind: r.Kind, Children: children}, false
	}
	return r, false
}

// lower attaches a pruned requirement tree to consumer. Every gate in a
// pruned tree has at least two children.
func (b *builder) lower(req domain.Requirement, consumer NodeID, rel domain.Relation) {
	switch req.Kind {
	case domain.ReqCourse:
		b.g.addEdge(b.g.byCode[req.Code], consumer, rel)
	case domain.ReqAllOf, domain.ReqAnyOf:
		gate := b.g.addNode(Node{Kind: GateNode, Op: req.Operator(), Relation: rel})
		b.g.addEdge(gate, consumer, rel)
		for _, child := range req.Children {
			b.lower(child, gate, rel)
		}
	}
}

func (b *builder) collectExclusions(codes []string) {
	seen := make(map[[2]NodeID]bool)
	for _, code := range codes {
		a := b.g.byCode[code]
		for _, other := range b.courses[code].Exclusions {
			o, ok := b.g.byCode[other]
			if !ok || o == a {
				continue
			}
			pair := [2]NodeID{min(a, o), max(a, o)}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			b.g.exclusions = append(b.g.exclusions, pair)
		}
	}
}
