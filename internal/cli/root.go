package cli

import (
	"github.com/alexanderramin/termplan/internal/config"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Catalog service.CatalogService
	Plans   service.PlanService
	Config  config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// PromptTargets asks for targets and completed courses when plan is run
	// without arguments. Nil uses the huh form.
	PromptTargets func(courses []*domain.Course) (targets, completed []string, err error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "termplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "termplan",
		Short:         "Shortest course schedules from a prerequisite catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newCatalogsCmd(app),
		newCourseCmd(app),
		newPlanCmd(app),
		newHistoryCmd(app),
	)

	return root
}
