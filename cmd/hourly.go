package cmd

import (
	"fmt"
	"strings"

	"github.com/boppreh/activity/internal/cli"
	"github.com/boppreh/activity/internal/model"
	"github.com/boppreh/activity/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagHourlyDays int

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Activity by hour of day",
	Args:  cobra.NoArgs,
	RunE:  runHourly,
}

func init() {
	hourlyCmd.Flags().IntVarP(&flagHourlyDays, "days", "n", 7, "Number of days to average, counting today")
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(cmd *cobra.Command, _ []string) error {
	if flagHourlyDays < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", flagHourlyDays)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := cfg.CounterOptions()
	opts.Key = model.KeyHour

	logs := cfg.Logs()
	result, err := pipeline.LoadDays(logs, nowFunc(), flagHourlyDays, opts, progress())
	if err != nil {
		return err
	}
	logf("  Loaded %d daily logs from %s\n", len(result.Days), logs.Dir)

	out := cmd.OutOrStdout()
	if len(result.Days) == 0 {
		fmt.Fprintf(out, "\n  No activity logs in the last %d days.\n", flagHourlyDays)
		return nil
	}

	hours := pipeline.AggregateHourly(pipeline.Sum(result.Days), cfg.General.SamplingInterval, len(result.Days))

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("ACTIVITY BY HOUR  Last %dd (local time)", flagHourlyDays)))
	fmt.Fprintln(out)

	peak := hours[0]
	for _, h := range hours[1:] {
		if h.ActiveSecs > peak.ActiveSecs {
			peak = h
		}
	}

	maxBarWidth := 40
	for _, h := range hours {
		barLen := 0
		if peak.ActiveSecs > 0 {
			barLen = int(h.ActiveSecs / peak.ActiveSecs * float64(maxBarWidth))
		}
		bar := strings.Repeat("█", barLen)
		fmt.Fprintf(out, "  %02d:00 │ %7s │ %s\n", h.Hour, cli.FormatDuration(h.ActiveSecs), bar)
	}

	fmt.Fprintf(out, "\n  Peak: %02d:00 (%s per day)\n\n", peak.Hour, cli.FormatDuration(peak.ActiveSecs))
	return nil
}
