package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/mlowery/punchin/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// reportSort is a pflag.Value constraining --sort to its two valid modes.
type reportSort string

const (
	sortCanonical reportSort = "canonical"
	sortBusiest   reportSort = "busiest"
)

var _ pflag.Value = (*reportSort)(nil)

func (s *reportSort) String() string { return string(*s) }

func (s *reportSort) Set(v string) error {
	switch reportSort(v) {
	case sortCanonical, sortBusiest:
		*s = reportSort(v)
		return nil
	default:
		return fmt.Errorf("invalid sort %q (want canonical or busiest)", v)
	}
}

func (s *reportSort) Type() string { return "sort" }

func newReportCmd(app *App) *cobra.Command {
	var includeDeleted bool
	sort := sortCanonical

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Daily hours per task",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Reports.Daily(context.Background(), domain.ReportOptions{
				IncludeDeleted: includeDeleted,
				BusiestFirst:   sort == sortBusiest,
			})
			if err != nil {
				return err
			}

			if len(rows) == 0 {
				fmt.Println("No completed sessions to report.")
				return nil
			}

			headers := []string{"DAY", "COMPANY", "PROJECT", "TASK", "TIME", "HOURS"}
			if includeDeleted {
				headers = append(headers, "")
			}

			out := make([][]string, 0, len(rows))
			var totalSeconds int64
			for _, r := range rows {
				totalSeconds += r.TotalSeconds
				row := []string{
					r.Day,
					r.CompanyName,
					r.ProjectName,
					r.TaskName,
					formatter.FormatSeconds(r.TotalSeconds),
					formatter.FormatHours(r.TotalHours),
				}
				if includeDeleted {
					row = append(row, formatter.DeletedMark(r.IsDeleted))
				}
				out = append(out, row)
			}

			fmt.Println(formatter.Header("Daily report"))
			fmt.Print(formatter.RenderTable(headers, out))
			fmt.Printf("\n%s %s across %s rows\n",
				formatter.Bold("Total:"),
				formatter.FormatSeconds(totalSeconds),
				strconv.Itoa(len(rows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "include-deleted", false, "Include rows whose task chain or session was removed")
	cmd.Flags().Var(&sort, "sort", "Row order: canonical or busiest")

	return cmd
}
