package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigureCmd(app *App) *cobra.Command {
	var company, project, task string
	var start bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Create or reactivate a company/project/task chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Flags cover scripted use; the form fills whatever is missing.
			if company == "" || project == "" || task == "" {
				if !app.interactive() {
					return fmt.Errorf("--company, --project, and --task are required in non-interactive mode")
				}
				if err := configureForm(&company, &project, &task).Run(); err != nil {
					return err
				}
			}

			created, err := app.Catalog.Configure(ctx, company, project, task)
			if err != nil {
				return err
			}

			fmt.Printf("Configured %s\n", taskPath(ctx, app, created))

			if start {
				if _, err := app.Tracker.Start(ctx, created.ID); err != nil {
					return err
				}
				fmt.Printf("Started tracking %s\n", created.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringVar(&task, "task", "", "Task name")
	cmd.Flags().BoolVar(&start, "start", false, "Start tracking the task immediately")

	return cmd
}
