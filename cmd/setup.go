package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/boppreh/activity/internal/cli"
	"github.com/boppreh/activity/internal/config"
	"github.com/boppreh/activity/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the form fields as the user edits them.
type setupValues struct {
	logDir      string
	interval    string
	trackBy     string
	idleCeiling string
	filter      string
	beautify    bool
	width       string
}

func newSetupValues(cfg config.Config) setupValues {
	return setupValues{
		logDir:      config.LogDir(cfg),
		interval:    strconv.FormatFloat(cfg.General.SamplingInterval, 'g', -1, 64),
		trackBy:     cfg.KeyField().String(),
		idleCeiling: strconv.FormatFloat(cfg.Tracking.IdleCeiling, 'g', -1, 64),
		filter:      cfg.Tracking.Filter,
		beautify:    cfg.Report.BeautifyNames,
		width:       strconv.Itoa(cfg.Report.TableWidth),
	}
}

// apply copies the edited values into cfg. The fields have already passed
// their validators.
func (v setupValues) apply(cfg *config.Config) error {
	interval, err := strconv.ParseFloat(strings.TrimSpace(v.interval), 64)
	if err != nil {
		return fmt.Errorf("sampling interval: %w", err)
	}
	ceiling, err := strconv.ParseFloat(strings.TrimSpace(v.idleCeiling), 64)
	if err != nil {
		return fmt.Errorf("idle ceiling: %w", err)
	}
	width, err := strconv.Atoi(strings.TrimSpace(v.width))
	if err != nil {
		return fmt.Errorf("table width: %w", err)
	}

	cfg.General.LogDir = strings.TrimSpace(v.logDir)
	if cfg.General.LogDir == config.DefaultLogDir() {
		cfg.General.LogDir = ""
	}
	cfg.General.SamplingInterval = interval
	cfg.Tracking.TrackBy = v.trackBy
	cfg.Tracking.IdleCeiling = ceiling
	cfg.Tracking.Filter = strings.TrimSpace(v.filter)
	cfg.Report.BeautifyNames = v.beautify
	cfg.Report.TableWidth = width
	return cfg.Validate()
}

func positiveFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return errors.New("enter a positive number of seconds")
	}
	return nil
}

func nonNegativeFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return errors.New("enter zero or a positive number of seconds")
	}
	return nil
}

func nonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("enter a whole number, 0 for the terminal width")
	}
	return nil
}

func newSetupForm(v *setupValues, found int) *huh.Form {
	logDesc := "Where the sampling daemon writes one log per day."
	if found > 0 {
		logDesc = fmt.Sprintf("%s Currently %s logs found.", logDesc, cli.FormatNumber(int64(found)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Log directory").
				Description(logDesc).
				Value(&v.logDir),
			huh.NewInput().
				Title("Sampling interval (seconds)").
				Description("Seconds between two samples taken by the daemon.").
				Validate(positiveFloat).
				Value(&v.interval),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Track activity by").
				Options(
					huh.NewOption("Process name", config.TrackByProcess),
					huh.NewOption("Window title", config.TrackByTitle),
				).
				Value(&v.trackBy),
			huh.NewInput().
				Title("Idle ceiling (seconds)").
				Description("A sequence that goes idle for longer than this is not counted.").
				Validate(nonNegativeFloat).
				Value(&v.idleCeiling),
			huh.NewInput().
				Title("Filter").
				Description("Space separated words every counted sample must contain. Empty counts all.").
				Value(&v.filter),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Beautify process names?").
				Description(`"sublime_text.exe" is shown as "Sublime Text".`).
				Value(&v.beautify),
			huh.NewInput().
				Title("Table width").
				Validate(nonNegativeInt).
				Value(&v.width),
		),
	)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		// A config that fails to load is replaced with defaults.
		fmt.Printf("  Ignoring existing config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	values := newSetupValues(cfg)
	logs, _ := source.ScanDir(config.LogDir(cfg), cfg.General.LogFileLayout)

	fmt.Println()
	fmt.Println("  Welcome to activity!")
	fmt.Println()

	if err := newSetupForm(&values, len(logs)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := values.apply(&cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `activity setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
