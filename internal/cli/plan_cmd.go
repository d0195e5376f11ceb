package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/termplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		maxTerms   int
		maxPerTerm int
		completed  []string
		timeout    time.Duration
		dryRun     bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "plan [TARGET...]",
		Short: "Plan the shortest schedule that completes the target courses",
		Long: `Plan finds the fewest terms needed to complete every target course,
then the fewest courses within that many terms. Without targets on an
interactive terminal, a form asks for them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			targets := args
			if len(targets) == 0 {
				if !app.interactive() {
					return fmt.Errorf("at least one target course is required")
				}
				courses, err := app.Catalog.ListCourses(ctx)
				if err != nil {
					return err
				}
				if len(courses) == 0 {
					return fmt.Errorf("no courses imported; run `termplan import FILE` first")
				}
				prompt := app.PromptTargets
				if prompt == nil {
					prompt = promptPlanTargets
				}
				var picked []string
				targets, picked, err = prompt(courses)
				if err != nil {
					return err
				}
				completed = append(completed, picked...)
			}

			req := app.Config.PlanRequest(targets...)
			req.MaxTerms = maxTerms
			req.MaxPerTerm = maxPerTerm
			req.Completed = completed
			req.Timeout = timeout
			req.DryRun = dryRun

			stop := func() {}
			if app.interactive() && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Solving")
			}
			resp, err := app.Plans.Plan(ctx, req)
			stop()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxTerms, "max-terms", app.Config.MaxTerms, "Number of terms available")
	cmd.Flags().IntVar(&maxPerTerm, "max-per-term", app.Config.MaxPerTerm, "Maximum courses in one term")
	cmd.Flags().StringSliceVar(&completed, "completed", nil, "Courses already taken (comma-separated)")
	cmd.Flags().DurationVar(&timeout, "timeout", app.Config.SolverTimeout(), "Solver time limit; the best schedule found so far is returned")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not record the run in history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")

	return cmd
}
