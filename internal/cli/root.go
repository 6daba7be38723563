package cli

import (
	"github.com/mlowery/punchin/internal/repository"
	"github.com/mlowery/punchin/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services and repositories used by CLI commands.
type App struct {
	Catalog *service.Catalog
	Tracker *service.Tracker

	Companies repository.CompanyRepo
	Projects  repository.ProjectRepo
	Tasks     repository.TaskRepo
	Sessions  repository.SessionRepo
	Reports   repository.ReportRepo

	// IsInteractive reports whether stdin is a terminal; pickers and the
	// watch view are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "punchin" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "punchin",
		Short: "Track work time across companies, projects, and tasks",
	}

	root.AddCommand(
		newCompanyCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newConfigureCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newSessionCmd(app),
		newReportCmd(app),
	)

	return root
}
