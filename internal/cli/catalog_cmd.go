package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/termplan/internal/cli/formatter"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/repository"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a course catalog from JSON, JSONC or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Catalog.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported catalog %s: %d courses\n", formatter.Bold(result.Catalog.Name), result.CourseCount)
			if result.Removed > 0 {
				fmt.Fprintf(out, "%s\n", formatter.Dim(fmt.Sprintf("removed %d courses no longer listed", result.Removed)))
			}
			return nil
		},
	}
}

func newCatalogsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List imported catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogs, err := app.Catalog.ListCatalogs(cmd.Context())
			if err != nil {
				return err
			}
			if len(catalogs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No catalogs imported."))
				return nil
			}
			rows := make([][]string, 0, len(catalogs))
			for _, c := range catalogs {
				rows = append(rows, []string{formatter.Bold(c.Name), c.Source, formatter.HumanTimestamp(c.ImportedAt)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"NAME", "SOURCE", "IMPORTED"}, rows))
			return nil
		},
	}
}

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Browse imported courses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all courses",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				courses, err := app.Catalog.ListCourses(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseList(courses))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show CODE",
			Short: "Show a course and its requirements",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				course, err := app.Catalog.GetCourse(cmd.Context(), args[0])
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("course %s not found", domain.NormalizeCode(args[0]))
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourse(course))
				return nil
			},
		},
	)

	return cmd
}
