package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/mlowery/punchin/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectRemoveCmd(app),
		newProjectRestoreCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a project under a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := app.Catalog.AddProject(context.Background(), company, args[0])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Println("Nothing to add.")
				return nil
			}
			fmt.Printf("Added project %s under %s\n", args[0], company)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projects, err := app.Projects.List(ctx)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			companyNames, err := companyNamesByID(ctx, app)
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "COMPANY", "STATUS", "CREATED"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.Name,
					companyNames[p.CompanyID],
					formatter.ActivePill(p.IsActive),
					formatter.HumanTimestamp(p.CreatedAt),
				})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Projects.Remove(context.Background(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("project %d not found or already removed", id)
			}
			fmt.Printf("Removed project %d\n", id)
			return nil
		},
	}
}

func newProjectRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore a removed project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Projects.Activate(context.Background(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("project %d not found or already active", id)
			}
			fmt.Printf("Restored project %d\n", id)
			return nil
		},
	}
}

func companyNamesByID(ctx context.Context, app *App) (map[int64]string, error) {
	companies, err := app.Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names, nil
}

func projectsByID(ctx context.Context, app *App) (map[int64]domain.Project, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	return byID, nil
}
