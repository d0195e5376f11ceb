package domain

import "time"

// Catalog is an imported set of courses. Importing a catalog with the same
// name replaces its courses.
type Catalog struct {
	ID         string
	Name       string
	Source     string
	ImportedAt time.Time
}

// PlanRun is a persisted planning request and its outcome.
type PlanRun struct {
	ID          string
	Fingerprint string
	Targets     []string
	Completed   []string
	MaxTerms    int
	MaxPerTerm  int
	Status      string
	Schedule    map[int][]string
	FinishTerm  int
	CourseCount int
	DurationMs  int64
	CreatedAt   time.Time
}
