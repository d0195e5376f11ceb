package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/termplan/internal/calendar"
	"github.com/alexanderramin/termplan/internal/domain"
)

// FormatCourseList renders the catalog as a table.
func FormatCourseList(courses []*domain.Course) string {
	if len(courses) == 0 {
		return Dim("No courses imported. Run `termplan import FILE`.") + "\n"
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			Bold(c.Code),
			c.Title,
			durationLabel(c.Duration),
			startsLabel(c),
			requirementOrDash(c.Prerequisites),
		})
	}
	return RenderTable([]string{"CODE", "TITLE", "LENGTH", "STARTS", "PREREQUISITES"}, rows) +
		Dim(plural(len(courses), "course")) + "\n"
}

// FormatCourse renders one course with its requirement trees.
func FormatCourse(c *domain.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Length"), durationLabel(c.Duration))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Starts"), startsLabel(c))
	if len(c.Exclusions) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Excludes"), strings.Join(c.Exclusions, ", "))
	}
	b.WriteString("\n" + StyleHeader.Render("Prerequisites") + "\n")
	b.WriteString(RenderRequirementTree(c.Prerequisites, nil))
	if !c.Corequisites.IsEmpty() {
		b.WriteString("\n" + StyleHeader.Render("Corequisites") + "\n")
		b.WriteString(RenderRequirementTree(c.Corequisites, nil))
	}
	return RenderBox(c.DisplayName(), strings.TrimRight(b.String(), "\n"))
}

func durationLabel(d domain.Duration) string {
	if d == domain.DurationLong {
		return "full year"
	}
	return "one term"
}

// startsLabel names the term kinds a course may start in. Long courses
// always start in the primary term.
func startsLabel(c *domain.Course) string {
	var names []string
	for _, k := range []domain.TermKind{domain.TermPrimary, domain.TermSecondary} {
		if c.StartsIn(k) {
			names = append(names, calendar.KindName(k))
		}
	}
	if len(names) == 0 {
		return StyleRed.Render("never")
	}
	return strings.Join(names, ", ")
}

func requirementOrDash(r domain.Requirement) string {
	if r.IsEmpty() {
		return Dim("--")
	}
	return r.String()
}
