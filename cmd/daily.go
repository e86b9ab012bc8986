package cmd

import (
	"fmt"
	"slices"

	"github.com/boppreh/activity/internal/cli"
	"github.com/boppreh/activity/internal/pipeline"
	"github.com/boppreh/activity/internal/report"

	"github.com/spf13/cobra"
)

var flagDailyDays int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily activity table",
	Args:  cobra.NoArgs,
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDailyDays, "days", "n", 7, "Number of days to show, counting today")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	if flagDailyDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", flagDailyDays)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logs := cfg.Logs()
	result, err := pipeline.LoadDays(logs, nowFunc(), flagDailyDays, cfg.CounterOptions(), progress())
	if err != nil {
		return err
	}
	logf("  Loaded %d daily logs from %s\n", len(result.Days), logs.Dir)

	out := cmd.OutOrStdout()
	if len(result.Days) == 0 {
		fmt.Fprintf(out, "\n  No activity logs in the last %d days.\n", flagDailyDays)
		return nil
	}

	days := pipeline.AggregateDays(result.Days, cfg.General.SamplingInterval)
	builder := report.NewBuilder(cfg.BuilderOptions())

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("DAILY ACTIVITY  Last %dd", flagDailyDays)))
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(days))
	trend := make([]float64, 0, len(days))
	for _, d := range days {
		top := ""
		if d.TopKey != "" {
			top = fmt.Sprintf("%s (%s)", builder.Label(d.TopKey),
				cli.FormatPercent(float64(d.TopCount)/float64(d.Samples)))
		}
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(d.Date.Weekday()),
			cli.FormatDuration(d.ActiveSecs),
			cli.FormatNumber(int64(d.Samples)),
			cli.FormatNumber(int64(d.DistinctKeys)),
			top,
		})
		trend = append(trend, d.ActiveSecs)
	}
	slices.Reverse(trend)

	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Active", "Samples", "Keys", "Top"},
		Rows:    rows,
	}))
	fmt.Fprintf(out, "  Trend  %s\n", cli.RenderSparkline(trend))
	if n := len(result.Missing); n > 0 {
		fmt.Fprintln(out, cli.RenderMuted(fmt.Sprintf("  %d of %d days had no log", n, flagDailyDays)))
	}

	return nil
}
