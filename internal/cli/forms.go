package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/mlowery/punchin/internal/domain"
)

func punchinHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
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

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateEntityName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("name is required")
	}
	if len(s) > 32 {
		return fmt.Errorf("name must be at most 32 characters")
	}
	return nil
}

// pickTaskForm builds a select over every active task, labeled with its
// company/project path, writing the chosen task ID into result.
func pickTaskForm(ctx context.Context, app *App, result *int64) (*huh.Form, error) {
	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no tasks configured; run `punchin configure` first")
	}

	projects, err := projectsByID(ctx, app)
	if err != nil {
		return nil, err
	}
	companyNames, err := companyNamesByID(ctx, app)
	if err != nil {
		return nil, err
	}

	opts := make([]huh.Option[int64], 0, len(tasks))
	for _, task := range tasks {
		p := projects[task.ProjectID]
		label := fmt.Sprintf("%s  (%s / %s)", task.Name, companyNames[p.CompanyID], p.Name)
		opts = append(opts, huh.NewOption(label, task.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Pick a task to start").
				Options(opts...).
				Value(result),
		),
	).WithTheme(punchinHuhTheme()).WithShowHelp(false)

	return form, nil
}

// configureForm collects a company/project/task chain in one form.
func configureForm(companyName, projectName, taskName *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company").
				Placeholder("Acme").
				Value(companyName).
				Validate(validateEntityName),
			huh.NewInput().
				Title("Project").
				Placeholder("Website").
				Value(projectName).
				Validate(validateEntityName),
			huh.NewInput().
				Title("Task").
				Placeholder("Design").
				Value(taskName).
				Validate(validateEntityName),
		),
	).WithTheme(punchinHuhTheme()).WithShowHelp(false)
}

func taskPath(ctx context.Context, app *App, task *domain.Task) string {
	project, err := app.Projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return task.Name
	}
	company, err := app.Companies.GetByID(ctx, project.CompanyID)
	if err != nil {
		return fmt.Sprintf("%s / %s", project.Name, task.Name)
	}
	return fmt.Sprintf("%s / %s / %s", company.Name, project.Name, task.Name)
}
