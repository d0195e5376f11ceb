package graph

import (
	"fmt"
)

// Subgraph is the set of nodes that can influence a set of targets. Courses
// and Gates are in ascending id order and each node has a compact index
// within its kind, used to lay out dense per-node arrays.
type Subgraph struct {
	Graph   *Graph
	Targets []NodeID
	Courses []NodeID
	Gates   []NodeID

	index  []int
	target []bool
}

// Relevant walks predecessor edges backwards from the targets and returns
// every node visited. All targets must name course nodes.
func (g *Graph) Relevant(targets []string) (*Subgraph, error) {
	sg := &Subgraph{
		Graph:  g,
		index:  make([]int, len(g.nodes)),
		target: make([]bool, len(g.nodes)),
	}
	for i := range sg.index {
		sg.index[i] = -1
	}

	visited := make([]bool, len(g.nodes))
	queue := make([]NodeID, 0, len(targets))
	for _, code := range targets {
		id, ok := g.byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotInGraph, code)
		}
		if sg.target[id] {
			continue
		}
		sg.target[id] = true
		sg.Targets = append(sg.Targets, id)
		visited[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range g.preds[id] {
			if !visited[e.From] {
				visited[e.From] = true
				queue = append(queue, e.From)
			}
		}
	}

	for id, seen := range visited {
		if !seen {
			continue
		}
		if g.nodes[id].Kind == CourseNode {
			sg.index[id] = len(sg.Courses)
			sg.Courses = append(sg.Courses, NodeID(id))
		} else {
			sg.index[id] = len(sg.Gates)
			sg.Gates = append(sg.Gates, NodeID(id))
		}
	}
	if len(sg.Courses)+len(sg.Gates) == 0 {
		return nil, ErrNoRelevantNodes
	}
	return sg, nil
}

// Index returns the compact index of id within its kind, or -1 if the node
// is not relevant.
func (sg *Subgraph) Index(id NodeID) int { return sg.index[id] }

// Contains reports whether id is in the subgraph.
func (sg *Subgraph) Contains(id NodeID) bool { return sg.index[id] >= 0 }

// IsTarget reports whether id is one of the requested targets.
func (sg *Subgraph) IsTarget(id NodeID) bool { return sg.target[id] }

// Codes returns the codes of the relevant courses in id order.
func (sg *Subgraph) Codes() []string {
	out := make([]string, len(sg.Courses))
	for i, id := range sg.Courses {
		out[i] = sg.Graph.nodes[id].Course.Code
	}
	return out
}
