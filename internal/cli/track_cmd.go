package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start [TASK]",
		Short: "Start tracking a task (closes any running session)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 1 {
				task, err := app.Tracker.StartByName(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Started tracking %s\n", taskPath(ctx, app, task))
				return nil
			}

			if !app.interactive() {
				return fmt.Errorf("task name is required in non-interactive mode")
			}

			var taskID int64
			form, err := pickTaskForm(ctx, app, &taskID)
			if err != nil {
				return err
			}
			if err := form.Run(); err != nil {
				return err
			}

			if _, err := app.Tracker.Start(ctx, taskID); err != nil {
				return err
			}
			task, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			fmt.Printf("Started tracking %s\n", taskPath(ctx, app, task))
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			open, err := app.Tracker.Current(ctx)
			if err != nil {
				return err
			}
			if open == nil {
				fmt.Println("No session is running.")
				return nil
			}

			elapsed := open.DurationMS(time.Now())

			if _, err := app.Tracker.Stop(ctx); err != nil {
				return err
			}

			task, err := app.Tasks.GetByID(ctx, open.TaskID)
			if err != nil {
				fmt.Printf("Stopped after %s\n", formatter.FormatElapsedMS(elapsed))
				return nil
			}
			fmt.Printf("Stopped %s after %s\n", task.Name, formatter.FormatElapsedMS(elapsed))
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if watch {
				if !app.interactive() {
					return fmt.Errorf("--watch requires an interactive terminal")
				}
				return runWatch(app)
			}

			open, err := app.Tracker.Current(ctx)
			if err != nil {
				return err
			}
			if open == nil {
				fmt.Println("Idle. Nothing is being tracked.")
				return nil
			}

			path := "unknown task"
			if task, err := app.Tasks.GetByID(ctx, open.TaskID); err == nil {
				path = taskPath(ctx, app, task)
			}

			body := fmt.Sprintf("%s  %s\nElapsed %s, started %s",
				formatter.RunningPill(), formatter.Bold(path),
				formatter.FormatElapsedMS(open.DurationMS(time.Now())),
				formatter.FormatClock(open.StartTime))
			fmt.Println(formatter.RenderBox("Tracking", body))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Live full-screen timer view")

	return cmd
}
