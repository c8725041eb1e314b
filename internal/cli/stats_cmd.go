package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tempus-hq/tempus-backend-go/internal/cli/formatter"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/service/ledger"
)

func newStatsCmd(app *App) *cobra.Command {
	var userID int64
	var year, month int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a user's monthly attendance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			u, err := app.Users.GetByID(ctx, userID)
			if err != nil {
				return fmt.Errorf("looking up user %d: %w", userID, err)
			}

			start, err := app.Calendar.MonthStart(year, month)
			if err != nil {
				return err
			}
			end, err := app.Calendar.MonthEnd(year, month)
			if err != nil {
				return err
			}

			punches, err := app.Punches.FindInRange(ctx, u.ID, start, end)
			if err != nil {
				return fmt.Errorf("loading punches: %w", err)
			}

			days := app.Calendar.Days(punches)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleBold.Render(fmt.Sprintf("%s  %04d/%02d", u.Name(), year, month)))
			fmt.Fprint(cmd.OutOrStdout(), formatStats(app.Calendar, days, ledger.Summarize(days)))
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID")
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month (1-12)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func formatStats(calendar ledger.Calendar, days []ledger.DayAggregate, stats ledger.MonthAggregate) string {
	if len(days) == 0 {
		return formatter.StyleDim.Render("No punches recorded this month.") + "\n"
	}

	var rows [][]string
	for _, day := range days {
		for i, s := range day.WorkSessions {
			breakTime := "-"
			if i == 0 {
				breakTime = ledger.FormatMinutes(day.BreakMinutes)
			}
			note := ""
			if s.Start.IsEdited || s.End.IsEdited {
				note = formatter.StyleYellow.Render("edited")
			}
			rows = append(rows, []string{
				day.DateKey,
				calendar.FormatClock(s.Start.Timestamp),
				calendar.FormatClock(s.End.Timestamp),
				breakTime,
				ledger.FormatMinutes(s.Minutes),
				note,
			})
		}
		if !day.Complete {
			in := "-"
			if open, ok := lastWorkPunch(day.Punches); ok {
				in = calendar.FormatClock(open.Timestamp)
			}
			rows = append(rows, []string{day.DateKey, in, "-", "-", "-", formatter.StyleRed.Render("missing clock-out")})
		} else if day.DanglingBreak && !day.HasWork() {
			rows = append(rows, []string{day.DateKey, "-", "-", "-", "-", formatter.StyleYellow.Render("unpaired break")})
		}
	}

	var b strings.Builder
	b.WriteString(formatter.RenderTable([]string{"DATE", "IN", "OUT", "BREAK", "WORK", "NOTE"}, rows))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Working days: %s   Total: %s\n",
		formatter.StyleBold.Render(fmt.Sprintf("%d", stats.WorkingDays)),
		formatter.StyleBold.Render(ledger.FormatMinutes(stats.TotalWorkingMinutes)),
	))
	if len(stats.IncompleteDays) > 0 {
		b.WriteString(formatter.StyleRed.Render("Incomplete: "+strings.Join(stats.IncompleteDays, ", ")) + "\n")
	}
	return b.String()
}

func lastWorkPunch(punches []punch.ClassifiedPunch) (punch.ClassifiedPunch, bool) {
	for i := len(punches) - 1; i >= 0; i-- {
		if punches[i].Kind == punch.KindWork {
			return punches[i], true
		}
	}
	return punch.ClassifiedPunch{}, false
}
