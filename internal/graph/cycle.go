package graph

type color uint8

const (
	white color = iota
	grey
	black
)

// checkAcyclic runs a depth-first search over successor edges and returns a
// *CycleError naming the course nodes on the first back edge found.
func (g *Graph) checkAcyclic() error {
	state := make([]color, len(g.nodes))
	parent := make([]NodeID, len(g.nodes))

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		state[id] = grey
		for _, e := range g.succs[id] {
			switch state[e.To] {
			case white:
				parent[e.To] = id
				if err := visit(e.To); err != nil {
					return err
				}
			case grey:
				return g.cycleError(id, e.To, parent)
			}
		}
		state[id] = black
		return nil
	}

	for id := range g.nodes {
		if state[id] == white {
			if err := visit(NodeID(id)); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError walks parent links from tail back to head, the node the back
// edge returns to, and reports the courses in forward order.
func (g *Graph) cycleError(tail, head NodeID, parent []NodeID) error {
	path := []NodeID{tail}
	for cur := tail; cur != head; {
		cur = parent[cur]
		path = append(path, cur)
	}
	var codes []string
	for i := len(path) - 1; i >= 0; i-- {
		if n := g.nodes[path[i]]; n.Kind == CourseNode {
			codes = append(codes, n.Course.Code)
		}
	}
	if len(codes) > 0 {
		codes = append(codes, codes[0])
	}
	return &CycleError{Codes: codes}
}
