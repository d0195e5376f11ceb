package cli

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/cli/formatter"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// termplanHuhTheme returns a huh theme using the formatter palette.
func termplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[✔] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// courseOptions lists courses as multi-select options keyed by code.
func courseOptions(courses []*domain.Course) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(courses))
	for _, c := range courses {
		options = append(options, huh.NewOption(c.DisplayName(), c.Code))
	}
	return options
}

func validateTargets(codes []string) error {
	if len(codes) == 0 {
		return fmt.Errorf("pick at least one target course")
	}
	return nil
}

// planTargetsForm asks for targets first, then for courses already taken.
func planTargetsForm(courses []*domain.Course, targets, completed *[]string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Target courses").
				Description("Space to select, / to filter").
				Options(courseOptions(courses)...).
				Filterable(true).
				Height(12).
				Value(targets).
				Validate(validateTargets),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Already completed").
				Description("Leave empty if none").
				Options(courseOptions(courses)...).
				Filterable(true).
				Height(12).
				Value(completed),
		),
	).WithTheme(termplanHuhTheme()).WithShowHelp(false)
}

func promptPlanTargets(courses []*domain.Course) ([]string, []string, error) {
	var targets, completed []string
	if err := planTargetsForm(courses, &targets, &completed).Run(); err != nil {
		return nil, nil, err
	}
	return targets, completed, nil
}
