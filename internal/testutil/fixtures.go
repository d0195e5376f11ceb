package testutil

import (
	"time"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/google/uuid"
)

// Course options
type CourseOption func(*domain.Course)

func WithTitle(title string) CourseOption {
	return func(c *domain.Course) {
		c.Title = title
	}
}

func WithPrerequisites(r domain.Requirement) CourseOption {
	return func(c *domain.Course) {
		c.Prerequisites = r
	}
}

func WithCorequisites(r domain.Requirement) CourseOption {
	return func(c *domain.Course) {
		c.Corequisites = r
	}
}

func WithStartKinds(kinds ...domain.TermKind) CourseOption {
	return func(c *domain.Course) {
		c.StartKinds = kinds
	}
}

func WithExclusions(codes ...string) CourseOption {
	return func(c *domain.Course) {
		c.Exclusions = codes
	}
}

// NewTestCourse returns a course startable in every term whose duration
// follows its code.
func NewTestCourse(code string, opts ...CourseOption) *domain.Course {
	c := &domain.Course{
		Code:       code,
		Title:      "Course " + code,
		Duration:   domain.DurationFromCode(code),
		StartKinds: []domain.TermKind{domain.TermPrimary, domain.TermSecondary},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestCatalog(name string) *domain.Catalog {
	return &domain.Catalog{
		ID:         uuid.New().String(),
		Name:       name,
		Source:     "test",
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Plan run options
type PlanRunOption func(*domain.PlanRun)

func WithRunStatus(status string) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.Status = status
	}
}

func WithSchedule(schedule map[int][]string, finish int) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.Schedule = schedule
		r.FinishTerm = finish
		count := make(map[string]bool)
		for _, codes := range schedule {
			for _, c := range codes {
				count[c] = true
			}
		}
		r.CourseCount = len(count)
	}
}

func WithCreatedAt(t time.Time) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.CreatedAt = t
	}
}

func NewTestPlanRun(targets []string, opts ...PlanRunOption) *domain.PlanRun {
	r := &domain.PlanRun{
		ID:          uuid.New().String(),
		Fingerprint: "test-fingerprint",
		Targets:     targets,
		Completed:   []string{},
		MaxTerms:    8,
		MaxPerTerm:  5,
		Status:      "Infeasible",
		FinishTerm:  -1,
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
