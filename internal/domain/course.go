package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var courseCodePattern = regexp.MustCompile(`^[A-Z]{1,4}[0-9]{2,4}[A-Z0-9]{0,3}$`)

// Course is a schedulable unit of study. Courses are built once from catalog
// data and treated as read-only afterwards; planning shares them by reference.
type Course struct {
	Code          string
	Title         string
	Duration      Duration
	StartKinds    []TermKind
	Prerequisites Requirement
	Corequisites  Requirement
	Exclusions    []string
}

// IsCourseCode reports whether s has the shape of a course code
// (e.g. CSC110Y1, MAT1001H). Requirement leaves that do not are
// treated as satisfied markers.
func IsCourseCode(s string) bool {
	return courseCodePattern.MatchString(s)
}

// DurationFromCode derives a duration from a course code: a 'Y' in the
// second-to-last position marks a year-long course.
func DurationFromCode(code string) Duration {
	if len(code) >= 2 && code[len(code)-2] == 'Y' {
		return DurationLong
	}
	return DurationShort
}

// Validate checks the invariants the planner relies on.
func (c *Course) Validate() error {
	if c.Code == "" {
		return fmt.Errorf("course code is required")
	}
	if c.Duration != DurationShort && c.Duration != DurationLong {
		return fmt.Errorf("course %s: invalid duration %q", c.Code, c.Duration)
	}
	for _, k := range c.StartKinds {
		if k != TermPrimary && k != TermSecondary {
			return fmt.Errorf("course %s: invalid term kind %q", c.Code, k)
		}
	}
	return nil
}

// StartsIn reports whether the course may start in a term of kind k.
// Long courses always start in a primary term regardless of their sessions.
func (c *Course) StartsIn(k TermKind) bool {
	if c.Duration == DurationLong {
		return k == TermPrimary
	}
	for _, sk := range c.StartKinds {
		if sk == k {
			return true
		}
	}
	return false
}

// DisplayName returns "CODE: Title", or just the code if untitled.
func (c *Course) DisplayName() string {
	if c.Title == "" {
		return c.Code
	}
	return c.Code + ": " + c.Title
}

// SortedCodes returns the codes of a course map in ascending order.
func SortedCodes(courses map[string]*Course) []string {
	codes := make([]string, 0, len(courses))
	for code := range courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// NormalizeCode upper-cases and trims a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
