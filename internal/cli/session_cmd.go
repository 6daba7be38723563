package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect recorded sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := app.Sessions.ListWithDetails(context.Background())
			if err != nil {
				return err
			}

			if len(details) == 0 {
				fmt.Println("No sessions recorded.")
				return nil
			}

			headers := []string{"ID", "COMPANY", "PROJECT", "TASK", "STARTED", "DURATION"}
			rows := make([][]string, 0, len(details))
			for _, d := range details {
				duration := formatter.FormatElapsedMS(d.DurationMS)
				if d.EndTime == nil {
					duration = formatter.RunningPill() + " " + duration
				}
				rows = append(rows, []string{
					strconv.FormatInt(d.ID, 10),
					d.CompanyName,
					d.ProjectName,
					d.TaskName,
					formatter.HumanTimestamp(time.UnixMilli(d.StartTime)),
					duration,
				})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a session from all reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.Tracker.Remove(context.Background(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("session %d not found or already removed", id)
			}
			fmt.Printf("Removed session %d\n", id)
			return nil
		},
	}
}
