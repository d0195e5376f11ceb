package domain

// TermKind is the kind of an academic term. Kinds alternate by term index.
type TermKind string

const (
	TermPrimary   TermKind = "primary"
	TermSecondary TermKind = "secondary"
)

// Duration is how many consecutive terms a course occupies.
type Duration string

const (
	DurationShort Duration = "short"
	DurationLong  Duration = "long"
)

// Terms returns the number of terms a course of this duration occupies.
func (d Duration) Terms() int {
	if d == DurationLong {
		return 2
	}
	return 1
}

// Relation describes the timing a requirement imposes on its consumer.
type Relation string

const (
	// RelationPrerequisite requires the requirement to be finished before
	// the consumer starts.
	RelationPrerequisite Relation = "prerequisite"
	// RelationCorequisite requires the requirement to be started no later
	// than the consumer.
	RelationCorequisite Relation = "corequisite"
)

// Operator is the logical connective of an internal requirement node.
type Operator string

const (
	OpAllOf Operator = "all"
	OpAnyOf Operator = "any"
)

// ValidDurations is the canonical set of accepted duration strings.
var ValidDurations = map[string]bool{
	"short": true, "long": true,
}

// sessionKinds maps accepted session names to the term kind a course may
// start in. A nil entry is an accepted session that never becomes a start
// kind (summer terms are outside the two-kind calendar).
var sessionKinds = map[string]*TermKind{
	"fall":        kindPtr(TermPrimary),
	"primary":     kindPtr(TermPrimary),
	"fall-winter": kindPtr(TermPrimary),
	"winter":      kindPtr(TermSecondary),
	"secondary":   kindPtr(TermSecondary),
	"summer 1":    nil,
	"summer 2":    nil,
	"summer 1&2":  nil,
	"summer":      nil,
}

func kindPtr(k TermKind) *TermKind { return &k }

// ParseSession maps a session name to a start kind. ok is false for unknown
// names; kind is nil for accepted names that map to no kind.
func ParseSession(name string) (kind *TermKind, ok bool) {
	kind, ok = sessionKinds[normalizeSession(name)]
	return kind, ok
}
