package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/termplan/internal/calendar"
	"github.com/alexanderramin/termplan/internal/contract"
)

// FormatPlan renders a planning response: a status line, the per-term
// schedule when there is one, then warnings and the recorded run id.
func FormatPlan(resp *contract.PlanResponse) string {
	var b strings.Builder

	b.WriteString(Header("Plan"))
	b.WriteString("\n")
	b.WriteString(StatusIndicator(resp.Status))

	switch {
	case len(resp.Terms) > 0:
		fmt.Fprintf(&b, "  %s", Dim(fmt.Sprintf("%s over %s, finishing %s",
			plural(resp.CourseCount, "course"),
			plural(resp.FinishTerm+1, "term"),
			calendar.Label(resp.FinishTerm))))
		b.WriteString("\n\n")
		b.WriteString(RenderSchedule(resp.Terms))
	case resp.Status.HasSchedule():
		b.WriteString("  " + Dim("nothing left to take"))
		b.WriteString("\n")
	default:
		b.WriteString("\n")
		b.WriteString(Dim(statusHint(resp.Status)))
		b.WriteString("\n")
	}

	if len(resp.AlreadyDone) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", StyleGreen.Render("✔"), Dim("already completed: "+strings.Join(resp.AlreadyDone, ", ")))
	}
	for _, w := range resp.Warnings {
		if strings.HasSuffix(w, " is already completed") {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("!"), w)
	}

	b.WriteString("\n")
	if resp.RunID != "" {
		fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("run %s · catalog %s", ShortID(resp.RunID), ShortID(resp.Fingerprint))))
	} else {
		fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("dry run, not recorded · catalog %s", ShortID(resp.Fingerprint))))
	}
	return b.String()
}

// RenderSchedule renders one row per term. A course that continues from the
// previous term is marked as such.
func RenderSchedule(terms []contract.TermPlan) string {
	rows := make([][]string, 0, len(terms))
	prev := map[string]bool{}
	prevIndex := -2
	for _, t := range terms {
		cells := make([]string, len(t.Courses))
		for i, code := range t.Courses {
			if prevIndex == t.Index-1 && prev[code] {
				cells[i] = Dim(code + " (cont.)")
			} else {
				cells[i] = StyleFg.Render(code)
			}
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", t.Index)),
			Bold(t.Label),
			strings.Join(cells, "  "),
		})
		prev = make(map[string]bool, len(t.Courses))
		for _, code := range t.Courses {
			prev[code] = true
		}
		prevIndex = t.Index
	}
	return RenderTable([]string{"#", "TERM", "COURSES"}, rows)
}

func statusHint(status contract.PlanStatus) string {
	switch status {
	case contract.StatusInfeasible:
		return "No schedule meets every requirement within the term and load limits.\nTry a larger --max-terms or --max-per-term."
	case contract.StatusTargetNotInGraph:
		return "A target is not in the imported catalog. Check the code with `termplan course list`."
	case contract.StatusNoRelevantNodes:
		return "There is nothing to schedule for these targets."
	case contract.StatusRequirementCycle:
		return "The catalog's requirements form a cycle; fix the catalog and import it again."
	case contract.StatusInfeasiblePhase2:
		return "The shortest schedule could not be reproduced when minimizing courses."
	default:
		return "The solver did not return a usable answer."
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
