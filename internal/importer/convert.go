package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/termplan/internal/domain"
)

// Catalog is a converted import ready for persistence.
type Catalog struct {
	Name    string
	Courses []*domain.Course
}

// Convert transforms a validated CatalogSchema into domain courses, sorted
// by code. Call ValidateCatalogSchema first; Convert assumes the schema is
// valid.
func Convert(schema *CatalogSchema) (*Catalog, error) {
	out := &Catalog{
		Name:    strings.TrimSpace(schema.Catalog.Name),
		Courses: make([]*domain.Course, 0, len(schema.Courses)),
	}
	for _, ci := range schema.Courses {
		c, err := convertCourse(ci)
		if err != nil {
			return nil, err
		}
		out.Courses = append(out.Courses, c)
	}
	sort.Slice(out.Courses, func(i, j int) bool { return out.Courses[i].Code < out.Courses[j].Code })
	return out, nil
}

func convertCourse(ci CourseImport) (*domain.Course, error) {
	code := domain.NormalizeCode(ci.Code)

	duration := domain.DurationFromCode(code)
	if ci.Duration != "" {
		duration = domain.Duration(strings.ToLower(ci.Duration))
	}

	prereq, err := domain.RequirementFromValue(ci.Prerequisites)
	if err != nil {
		return nil, fmt.Errorf("course %s prerequisites: %w", code, err)
	}
	coreq, err := domain.RequirementFromValue(ci.Corequisites)
	if err != nil {
		return nil, fmt.Errorf("course %s corequisites: %w", code, err)
	}

	c := &domain.Course{
		Code:          code,
		Title:         strings.TrimSpace(ci.Title),
		Duration:      duration,
		StartKinds:    startKinds(ci.Sessions),
		Prerequisites: prereq,
		Corequisites:  coreq,
		Exclusions:    normalizeCodes(ci.Exclusions),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// startKinds maps sessions to distinct start kinds, primary first.
func startKinds(sessions []string) []domain.TermKind {
	seen := make(map[domain.TermKind]bool)
	for _, s := range sessions {
		if kind, ok := domain.ParseSession(s); ok && kind != nil {
			seen[*kind] = true
		}
	}
	var kinds []domain.TermKind
	for _, k := range []domain.TermKind{domain.TermPrimary, domain.TermSecondary} {
		if seen[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func normalizeCodes(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = domain.NormalizeCode(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
