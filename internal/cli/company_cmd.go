package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}

func newCompanyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage companies",
	}

	cmd.AddCommand(
		newCompanyAddCmd(app),
		newCompanyListCmd(app),
		newCompanyRemoveCmd(app),
		newCompanyRestoreCmd(app),
	)

	return cmd
}

func newCompanyAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Create one or more companies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := app.Catalog.AddCompanies(context.Background(), args)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Println("Nothing to add.")
				return nil
			}
			fmt.Printf("Added %d company(ies)\n", len(args))
			return nil
		},
	}
}

func newCompanyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			companies, err := app.Companies.List(context.Background())
			if err != nil {
				return err
			}

			if len(companies) == 0 {
				fmt.Println("No companies found.")
				return nil
			}

			headers := []string{"ID", "NAME", "STATUS", "CREATED"}
			rows := make([][]string, 0, len(companies))
			for _, c := range companies {
				rows = append(rows, []string{
					strconv.FormatInt(c.ID, 10),
					c.Name,
					formatter.ActivePill(c.IsActive),
					formatter.HumanTimestamp(c.CreatedAt),
				})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newCompanyRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a company (sessions stay on disk)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Companies.Remove(context.Background(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("company %d not found or already removed", id)
			}
			fmt.Printf("Removed company %d\n", id)
			return nil
		},
	}
}

func newCompanyRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Restore a removed company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Companies.Activate(context.Background(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("company %d not found or already active", id)
			}
			fmt.Printf("Restored company %d\n", id)
			return nil
		},
	}
}
