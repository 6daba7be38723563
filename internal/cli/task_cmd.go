package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskRemoveCmd(app),
		newTaskRestoreCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var company, project string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a task under a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := app.Catalog.AddTask(context.Background(), company, project, args[0])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Println("Nothing to add.")
				return nil
			}
			fmt.Printf("Added task %s under %s/%s\n", args[0], company, project)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tasks, err := app.Tasks.List(ctx)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			projects, err := projectsByID(ctx, app)
			if err != nil {
				return err
			}
			companyNames, err := companyNamesByID(ctx, app)
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "PROJECT", "COMPANY", "STATUS", "CREATED"}
			rows := make([][]string, 0, len(tasks))
			for _, task := range tasks {
				p := projects[task.ProjectID]
				rows = append(rows, []string{
					strconv.FormatInt(task.ID, 10),
					task.Name,
					p.Name,
					companyNames[p.CompanyID],
					formatter.ActivePill(task.IsActive),
					formatter.HumanTimestamp(task.CreatedAt),
				})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Tasks.Remove(context.Background(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %d not found or already removed", id)
			}
			fmt.Printf("Removed task %d\n", id)
			return nil
		},
	}
}

func newTaskRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore a removed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Tasks.Activate(context.Background(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %d not found or already active", id)
			}
			fmt.Printf("Restored task %d\n", id)
			return nil
		},
	}
}
