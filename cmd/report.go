package cmd

import (
	"fmt"
	"iter"

	"github.com/boppreh/activity/internal/cli"
	"github.com/boppreh/activity/internal/model"
	"github.com/boppreh/activity/internal/pipeline"
	"github.com/boppreh/activity/internal/report"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Per-period activity table (default command)",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", flagFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logs := cfg.Logs()
	opts := cfg.CounterOptions()
	builder := report.NewBuilder(cfg.BuilderOptions())
	now := nowFunc()

	periods := cfg.Periods()
	summaries := make([]report.Summary, len(periods))
	loaded := 0
	for i, p := range periods {
		res, err := pipeline.LoadPeriod(logs, p, now, opts, progress())
		if err != nil {
			return err
		}
		loaded += len(res.Days)
		summaries[i] = builder.Build(res.Days)
	}
	logf("  Loaded %s daily logs from %s\n", cli.FormatNumber(int64(loaded)), logs.Dir)

	out := cmd.OutOrStdout()

	if flagFormat == "json" {
		reports := make([]report.PeriodReport, len(periods))
		for i, p := range periods {
			reports[i] = report.NewPeriodReport(p, summaries[i])
		}
		return report.EncodeJSON(out, reports)
	}

	headers := make([]string, len(periods))
	columns := make([]iter.Seq[model.SummaryEntry], len(periods))
	for i, p := range periods {
		headers[i] = p.Name
		columns[i] = summaries[i].Entries()
	}

	layout := report.Layout{
		TableWidth: tableWidth(cfg, out),
		LabelWidth: cfg.Report.MaxLabelLength,
	}
	if isTerminal(out) {
		layout.HeaderStyle = cli.BoldHeader
	}
	return report.Render(out, layout, headers, columns)
}
