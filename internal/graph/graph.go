// Package graph lowers course requirement trees into a dependency graph of
// course nodes and synthetic gate nodes, and computes the subgraph relevant
// to a set of target courses.
//
// Nodes live in one arena and are addressed by NodeID. Edges point from a
// requirement (course or gate) to the node it gates. Every gate has at least
// two incoming edges and exactly one outgoing edge.
package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/termplan/internal/domain"
)

// NodeID addresses a node in a Graph's arena.
type NodeID int

type NodeKind uint8

const (
	CourseNode NodeKind = iota
	GateNode
)

// Node is either a course or a gate. Gates carry the operator of the
// requirement node they were lowered from and the relation of its tree.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Course   *domain.Course
	Op       domain.Operator
	Relation domain.Relation
}

// Terms returns how many terms a course node occupies. Gates occupy none.
func (n Node) Terms() int {
	if n.Kind != CourseNode {
		return 0
	}
	return n.Course.Duration.Terms()
}

// Label identifies the node in diagnostics.
func (n Node) Label() string {
	if n.Kind == CourseNode {
		return n.Course.Code
	}
	return fmt.Sprintf("%s#%d", n.Op, n.ID)
}

// Edge says From must be resolved, under Relation, before To.
type Edge struct {
	From     NodeID
	To       NodeID
	Relation domain.Relation
}

var (
	ErrCycle            = errors.New("requirement cycle")
	ErrTargetNotInGraph = errors.New("target not in graph")
	ErrNoRelevantNodes  = errors.New("no relevant nodes")
)

// CycleError names the courses on a detected requirement cycle.
type CycleError struct {
	Codes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(e.Codes, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// Graph is immutable once Build returns.
type Graph struct {
	nodes      []Node
	byCode     map[string]NodeID
	preds      [][]Edge
	succs      [][]Edge
	exclusions [][2]NodeID
}

func newGraph(capacity int) *Graph {
	return &Graph{
		nodes:  make([]Node, 0, capacity),
		byCode: make(map[string]NodeID, capacity),
		preds:  make([][]Edge, 0, capacity),
		succs:  make([][]Edge, 0, capacity),
	}
}

func (g *Graph) addNode(n Node) NodeID {
	id := NodeID(len(g.nodes))
	n.ID = id
	g.nodes = append(g.nodes, n)
	g.preds = append(g.preds, nil)
	g.succs = append(g.succs, nil)
	return id
}

func (g *Graph) addEdge(from, to NodeID, rel domain.Relation) {
	e := Edge{From: from, To: to, Relation: rel}
	g.succs[from] = append(g.succs[from], e)
	g.preds[to] = append(g.preds[to], e)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) Node { return g.nodes[id] }

// CourseID looks up the node of a course code.
func (g *Graph) CourseID(code string) (NodeID, bool) {
	id, ok := g.byCode[code]
	return id, ok
}

// Predecessors returns the edges into id.
func (g *Graph) Predecessors(id NodeID) []Edge { return g.preds[id] }

// Successors returns the edges out of id.
func (g *Graph) Successors(id NodeID) []Edge { return g.succs[id] }

// Exclusions returns mutually exclusive course pairs, lower id first.
func (g *Graph) Exclusions() [][2]NodeID { return g.exclusions }

// CourseCount returns the number of course nodes.
func (g *Graph) CourseCount() int { return len(g.byCode) }

// GateCount returns the number of gate nodes.
func (g *Graph) GateCount() int { return len(g.nodes) - len(g.byCode) }
