// Package cmd implements the activity CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/boppreh/activity/internal/cli"
	"github.com/boppreh/activity/internal/config"
	"github.com/boppreh/activity/internal/pipeline"
	"github.com/boppreh/activity/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagLogDir      string
	flagFilter      string
	flagByTitle     bool
	flagIdleCeiling float64
	flagWidth       int
	flagFormat      string
	flagQuiet       bool
	flagVerbose     bool
)

// nowFunc anchors day offsets; replaced in tests.
var nowFunc = time.Now

var rootCmd = &cobra.Command{
	Use:   "activity",
	Short: "Summarize daily activity logs",
	Long: "Summarize the activity logs written by the sampling daemon: active time\n" +
		"per process or window title for today, yesterday and the past week.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runReport,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
	pf.StringVarP(&flagLogDir, "log-dir", "d", "", "Directory holding the daily activity logs")
	pf.StringVarP(&flagFilter, "filter", "f", "", "Only count samples whose title or process contains every word")
	pf.BoolVar(&flagByTitle, "by-title", false, "Tally by window title instead of process name")
	pf.Float64Var(&flagIdleCeiling, "idle-ceiling", pipeline.DefaultIdleCeiling, "Idle seconds after which a sequence is dropped")
	pf.IntVarP(&flagWidth, "width", "w", report.DefaultTableWidth, "Table width in columns (0 = terminal width)")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Report days without a log")
}

// loadConfig reads the config file and applies any flags given on the
// command line on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-dir") {
		cfg.General.LogDir = flagLogDir
	}
	if flags.Changed("filter") {
		cfg.Tracking.Filter = flagFilter
	}
	if flags.Changed("by-title") {
		cfg.Tracking.TrackBy = config.TrackByProcess
		if flagByTitle {
			cfg.Tracking.TrackBy = config.TrackByTitle
		}
	}
	if flags.Changed("idle-ceiling") {
		cfg.Tracking.IdleCeiling = flagIdleCeiling
	}
	if flags.Changed("width") {
		cfg.Report.TableWidth = flagWidth
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// logf writes a progress line to stderr unless --quiet is set.
func logf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// progress returns the per-day callback used while loading logs.
func progress() pipeline.ProgressFunc {
	return func(date time.Time, found bool) {
		if flagVerbose && !found {
			fmt.Fprintf(os.Stderr, "  No log for %s, skipping\n", date.Format("2006-01-02"))
		}
	}
}

// tableWidth resolves a configured width of 0 to the terminal's width.
func tableWidth(cfg config.Config, out io.Writer) int {
	if cfg.Report.TableWidth > 0 {
		return cfg.Report.TableWidth
	}
	if f, ok := out.(*os.File); ok {
		return cli.TerminalWidth(f, report.DefaultTableWidth)
	}
	return report.DefaultTableWidth
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && cli.IsTerminal(f)
}
