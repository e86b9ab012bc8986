package cmd

import (
	"fmt"

	"github.com/boppreh/activity/internal/cli"
	"github.com/boppreh/activity/internal/config"
	"github.com/boppreh/activity/internal/source"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	fmt.Fprintf(out, "  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	logs := cfg.Logs()
	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Log directory:     %s\n", logs.Dir)
	fmt.Fprintf(out, "    Log file layout:   %s\n", cfg.General.LogFileLayout)
	fmt.Fprintf(out, "    Sampling interval: %gs\n", cfg.General.SamplingInterval)

	found, err := source.ScanDir(logs.Dir, cfg.General.LogFileLayout)
	if err != nil {
		fmt.Fprintf(out, "    Daily logs:        unreadable (%v)\n", err)
	} else if len(found) == 0 {
		fmt.Fprintln(out, "    Daily logs:        none found")
	} else {
		fmt.Fprintf(out, "    Daily logs:        %s (newest %s)\n",
			cli.FormatNumber(int64(len(found))), found[0].Date.Format("2006-01-02"))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Tracking]")
	fmt.Fprintf(out, "    Idle ceiling: %gs\n", cfg.Tracking.IdleCeiling)
	fmt.Fprintf(out, "    Track by:     %s\n", cfg.KeyField())
	if cfg.Tracking.Filter != "" {
		fmt.Fprintf(out, "    Filter:       %s\n", cfg.Tracking.Filter)
	} else {
		fmt.Fprintln(out, "    Filter:       none")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Report]")
	fmt.Fprintf(out, "    Beautify names:   %v\n", cfg.Report.BeautifyNames)
	fmt.Fprintf(out, "    Max label length: %d\n", cfg.Report.MaxLabelLength)
	if cfg.Report.TableWidth == 0 {
		fmt.Fprintln(out, "    Table width:      terminal")
	} else {
		fmt.Fprintf(out, "    Table width:      %d\n", cfg.Report.TableWidth)
	}
	for _, p := range cfg.Report.Periods {
		fmt.Fprintf(out, "    Period:           %s (days %d..%d)\n", p.Name, p.Start, p.End-1)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `activity setup` to reconfigure.")
	return nil
}
