package formatter

import (
	"strings"

	"github.com/alexanderramin/termplan/internal/domain"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderRequirementTree draws a requirement tree with box-drawing
// connectors. Gates render as "all of" / "any of"; satisfied markers are
// dimmed; codes the done func reports complete get a green check.
func RenderRequirementTree(r domain.Requirement, done func(code string) bool) string {
	if r.IsEmpty() {
		return Dim("none") + "\n"
	}
	if done == nil {
		done = func(string) bool { return false }
	}
	var b strings.Builder
	renderRequirement(&b, r, "", "", done)
	return b.String()
}

func renderRequirement(b *strings.Builder, r domain.Requirement, lead, childLead string, done func(string) bool) {
	b.WriteString(lead)
	switch r.Kind {
	case domain.ReqAllOf:
		b.WriteString(StyleBlue.Render("all of"))
	case domain.ReqAnyOf:
		b.WriteString(StyleBlue.Render("any of"))
	case domain.ReqCourse:
		if done(r.Code) {
			b.WriteString(StyleGreen.Render("✔ ") + Dim(r.Code))
		} else {
			b.WriteString(r.Code)
		}
	case domain.ReqSatisfied:
		b.WriteString(Dim(r.Note))
	}
	b.WriteString("\n")

	for i, child := range r.Children {
		last := i == len(r.Children)-1
		connector, next := treeBranch, treePipe
		if last {
			connector, next = treeCorner, treeBlank
		}
		renderRequirement(b, child, childLead+connector, childLead+next, done)
	}
}
