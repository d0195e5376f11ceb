package planner

import (
	"sort"
)

// finish returns the last term occupied in sol, or -1 if nothing starts.
func (e *encoding) finish(sol Solution) int {
	last := -1
	for i, id := range e.sg.Courses {
		if s := e.startTerm(sol, i); s >= 0 {
			last = max(last, s+e.node(id).Terms()-1)
		}
	}
	return last
}

// reconstruct reads a schedule out of sol. Long courses appear in both of
// their terms; terms after the makespan and empty terms are dropped.
func (e *encoding) reconstruct(sol Solution) (schedule map[int][]string, finish, count int) {
	schedule = make(map[int][]string)
	finish = -1
	for i, id := range e.sg.Courses {
		s := e.startTerm(sol, i)
		if s < 0 {
			continue
		}
		n := e.node(id)
		count++
		schedule[s] = append(schedule[s], n.Course.Code)
		if n.Terms() > 1 && s+1 < e.terms {
			schedule[s+1] = append(schedule[s+1], n.Course.Code)
		}
		finish = max(finish, s+n.Terms()-1)
	}
	for term, codes := range schedule {
		if term > finish || len(codes) == 0 {
			delete(schedule, term)
			continue
		}
		sort.Strings(codes)
	}
	return schedule, finish, count
}
