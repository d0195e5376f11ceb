package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/termplan/internal/calendar"
	"github.com/alexanderramin/termplan/internal/contract"
	"github.com/alexanderramin/termplan/internal/domain"
)

// FormatHistory renders recent plan runs, newest first.
func FormatHistory(runs []*domain.PlanRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No plans recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		finish := Dim("--")
		if r.FinishTerm >= 0 {
			finish = calendar.Label(r.FinishTerm)
		}
		rows = append(rows, []string{
			Dim(ShortID(r.ID)),
			HumanTimestampFrom(r.CreatedAt, now),
			strings.Join(r.Targets, ", "),
			StatusStyle(contract.PlanStatus(r.Status)).Render(r.Status),
			finish,
			fmt.Sprintf("%d", r.CourseCount),
		})
	}
	return RenderTable([]string{"ID", "WHEN", "TARGETS", "STATUS", "FINISH", "COURSES"}, rows)
}

// FormatRun renders one recorded run in full.
func FormatRun(r *domain.PlanRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Run      "), r.ID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Created  "), r.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Targets  "), strings.Join(r.Targets, ", "))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Completed"), JoinOrDash(r.Completed))
	fmt.Fprintf(&b, "%s  %d terms, %d per term\n", Dim("Limits   "), r.MaxTerms, r.MaxPerTerm)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Catalog  "), ShortID(r.Fingerprint))
	fmt.Fprintf(&b, "%s  %s %s\n", Dim("Status   "), StatusIndicator(contract.PlanStatus(r.Status)), Dim(fmt.Sprintf("(%dms)", r.DurationMs)))
	if len(r.Schedule) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderSchedule(contract.TermPlans(r.Schedule)))
	}
	return b.String()
}
