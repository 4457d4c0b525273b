package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avehner/ganttform/internal/cli/formatter"
	"github.com/avehner/ganttform/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ganttformHuhTheme returns a custom huh theme using the Gruvbox palette.
func ganttformHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runInitWizard collects any missing init inputs interactively, then
// materializes the project.
func runInitWizard(ctx context.Context, app *App, templateRef, name, manager, start *string) error {
	templates, err := app.Templates.List(ctx, true)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		return fmt.Errorf("no active templates available")
	}

	options := make([]huh.Option[string], 0, len(templates))
	for _, tpl := range templates {
		label := fmt.Sprintf("%s — %s", tpl.Name, formatter.FormatDays(tpl.EstimatedDurationDays))
		options = append(options, huh.NewOption(label, tpl.ID))
	}

	if *start == "" {
		*start = time.Now().Format(dateFlagLayout)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Template?").
				Options(options...).
				Value(templateRef),
			huh.NewInput().
				Title("Project Name").
				Value(name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Project Manager").
				Value(manager),
			huh.NewInput().
				Title("Start Date").
				Description("YYYY-MM-DD").
				Value(start).
				Validate(func(s string) error {
					_, err := time.Parse(dateFlagLayout, s)
					return err
				}),
		),
	).WithTheme(ganttformHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	startDate, err := time.Parse(dateFlagLayout, *start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", *start, err)
	}

	result, err := app.Materialize.CreateFromTemplate(ctx, *templateRef, *name, *manager, startDate)
	if err != nil {
		return err
	}
	printInitResult(result)
	return nil
}

func printInitResult(result *service.MaterializeResult) {
	p := result.Project
	fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
	fmt.Printf("  %d tasks, %d dependencies, %d nested\n",
		result.TaskCount, result.DependencyCount, result.HierarchyCount)
	fmt.Printf("  %s\n", formatter.DateRange(p.StartDate, p.EndDate))
}
