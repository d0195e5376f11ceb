package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type RequirementKind uint8

const (
	// ReqNone is the zero value: no requirement at all.
	ReqNone RequirementKind = iota
	ReqAllOf
	ReqAnyOf
	ReqCourse
	// ReqSatisfied is a non-course requirement (a standing or high school
	// prerequisite) that the planner treats as always true.
	ReqSatisfied
)

// Requirement is a boolean tree over course codes.
type Requirement struct {
	Kind     RequirementKind
	Code     string
	Note     string
	Children []Requirement
}

func AllOf(children ...Requirement) Requirement {
	return Requirement{Kind: ReqAllOf, Children: children}
}

func AnyOf(children ...Requirement) Requirement {
	return Requirement{Kind: ReqAnyOf, Children: children}
}

func CourseReq(code string) Requirement {
	return Requirement{Kind: ReqCourse, Code: code}
}

func Satisfied(note string) Requirement {
	return Requirement{Kind: ReqSatisfied, Note: note}
}

// IsEmpty reports whether the requirement imposes nothing.
func (r Requirement) IsEmpty() bool {
	return r.Kind == ReqNone
}

// IsGate reports whether r is an internal AllOf/AnyOf node.
func (r Requirement) IsGate() bool {
	return r.Kind == ReqAllOf || r.Kind == ReqAnyOf
}

// Operator returns the connective of a gate node.
func (r Requirement) Operator() Operator {
	if r.Kind == ReqAnyOf {
		return OpAnyOf
	}
	return OpAllOf
}

// Prune drops course leaves for which keep returns false, drops satisfied
// markers, and removes degenerate gates: a gate left without children
// disappears and a gate left with one child is replaced by that child.
// Repeated course leaves under one gate are collapsed. The receiver is not
// modified.
func (r Requirement) Prune(keep func(code string) bool) Requirement {
	switch r.Kind {
	case ReqCourse:
		if keep(r.Code) {
			return r
		}
		return Requirement{}
	case ReqAllOf, ReqAnyOf:
		var children []Requirement
		seen := make(map[string]bool)
		for _, child := range r.Children {
			pruned := child.Prune(keep)
			if pruned.IsEmpty() {
				continue
			}
			if pruned.Kind == ReqCourse {
				if seen[pruned.Code] {
					continue
				}
				seen[pruned.Code] = true
			}
			children = append(children, pruned)
		}
		switch len(children) {
		case 0:
			return Requirement{}
		case 1:
			return children[0]
		}
		return Requirement{Kind: r.Kind, Children: children}
	default:
		return Requirement{}
	}
}

// Codes returns every course code referenced by the tree, in tree order.
func (r Requirement) Codes() []string {
	var out []string
	r.walk(func(n Requirement) {
		if n.Kind == ReqCourse {
			out = append(out, n.Code)
		}
	})
	return out
}

func (r Requirement) walk(fn func(Requirement)) {
	fn(r)
	for _, child := range r.Children {
		child.walk(fn)
	}
}

// Evaluate reports whether the tree holds when done reports which course
// leaves are complete. Empty trees and satisfied markers hold.
func (r Requirement) Evaluate(done func(code string) bool) bool {
	switch r.Kind {
	case ReqCourse:
		return done(r.Code)
	case ReqAllOf:
		for _, child := range r.Children {
			if !child.Evaluate(done) {
				return false
			}
		}
		return true
	case ReqAnyOf:
		if len(r.Children) == 0 {
			return true
		}
		for _, child := range r.Children {
			if child.Evaluate(done) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// String renders the tree in a compact infix form, e.g. "A & (B | C)".
func (r Requirement) String() string {
	switch r.Kind {
	case ReqCourse:
		return r.Code
	case ReqSatisfied:
		return "<" + r.Note + ">"
	case ReqAllOf, ReqAnyOf:
		sep := " & "
		if r.Kind == ReqAnyOf {
			sep = " | "
		}
		parts := make([]string, 0, len(r.Children))
		for _, child := range r.Children {
			s := child.String()
			if child.IsGate() {
				s = "(" + s + ")"
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, sep)
	default:
		return ""
	}
}

// MarshalJSON encodes the nested-list form: ["all", "A", ["any", "B", "C"]].
// Satisfied markers encode as {"satisfied": note}; an empty tree as null.
func (r Requirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value())
}

func (r Requirement) value() any {
	switch r.Kind {
	case ReqCourse:
		return r.Code
	case ReqSatisfied:
		return map[string]string{"satisfied": r.Note}
	case ReqAllOf, ReqAnyOf:
		list := make([]any, 0, len(r.Children)+1)
		list = append(list, string(r.Operator()))
		for _, child := range r.Children {
			list = append(list, child.value())
		}
		return list
	default:
		return nil
	}
}

func (r *Requirement) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding requirement: %w", err)
	}
	parsed, err := RequirementFromValue(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RequirementFromValue converts a generically decoded JSON or YAML value
// into a Requirement. Strings shaped like course codes become course leaves
// and any other string becomes a satisfied marker. A list whose first element
// is not an operator is read as "all".
func RequirementFromValue(v any) (Requirement, error) {
	switch val := v.(type) {
	case nil:
		return Requirement{}, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return Requirement{}, nil
		}
		if code := NormalizeCode(s); IsCourseCode(code) {
			return CourseReq(code), nil
		}
		return Satisfied(s), nil
	case map[string]any:
		note, ok := val["satisfied"].(string)
		if !ok || len(val) != 1 {
			return Requirement{}, fmt.Errorf("requirement object must be {\"satisfied\": \"...\"}")
		}
		return Satisfied(note), nil
	case []any:
		if len(val) == 0 {
			return Requirement{}, nil
		}
		kind := ReqAllOf
		items := val
		if op, ok := val[0].(string); ok {
			switch Operator(strings.ToLower(op)) {
			case OpAllOf:
				items = val[1:]
			case OpAnyOf:
				kind = ReqAnyOf
				items = val[1:]
			}
		}
		children := make([]Requirement, 0, len(items))
		for i, item := range items {
			child, err := RequirementFromValue(item)
			if err != nil {
				return Requirement{}, fmt.Errorf("element %d: %w", i, err)
			}
			if !child.IsEmpty() {
				children = append(children, child)
			}
		}
		return Requirement{Kind: kind, Children: children}, nil
	default:
		return Requirement{}, fmt.Errorf("unsupported requirement value %v (%T)", v, v)
	}
}
