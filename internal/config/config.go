package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/boppreh/activity/internal/model"
	"github.com/boppreh/activity/internal/pipeline"
	"github.com/boppreh/activity/internal/report"
	"github.com/boppreh/activity/internal/source"
)

// LogDirEnv overrides the configured log directory.
const LogDirEnv = "ACTIVITY_LOG_DIR"

// Track-by spellings accepted in the config file.
const (
	TrackByProcess = "process"
	TrackByTitle   = "title"
)

// Config holds all activity configuration.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Tracking TrackingConfig `toml:"tracking"`
	Report   ReportConfig   `toml:"report"`
}

// GeneralConfig describes where the sampling daemon writes its logs.
type GeneralConfig struct {
	LogDir           string  `toml:"log_dir,omitempty"`
	LogFileLayout    string  `toml:"log_file_layout"`
	SamplingInterval float64 `toml:"sampling_interval"`
}

// TrackingConfig holds counting preferences.
type TrackingConfig struct {
	IdleCeiling float64 `toml:"idle_ceiling"`
	TrackBy     string  `toml:"track_by"`
	Filter      string  `toml:"filter,omitempty"`
}

// ReportConfig holds presentation settings.
type ReportConfig struct {
	BeautifyNames  bool           `toml:"beautify_names"`
	MaxLabelLength int            `toml:"max_label_length"`
	TableWidth     int            `toml:"table_width"`
	Periods        []PeriodConfig `toml:"periods"`
}

// PeriodConfig is one report column.
type PeriodConfig struct {
	Name  string `toml:"name"`
	Start int    `toml:"start"`
	End   int    `toml:"end"`
}

// DefaultPeriods returns today, yesterday and the week before yesterday.
func DefaultPeriods() []PeriodConfig {
	return []PeriodConfig{
		{Name: "Today", Start: 0, End: 1},
		{Name: "Yesterday", Start: 1, End: 2},
		{Name: "Past Week (average)", Start: 2, End: 9},
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogFileLayout:    source.DefaultLayout,
			SamplingInterval: report.DefaultSamplingInterval,
		},
		Tracking: TrackingConfig{
			IdleCeiling: pipeline.DefaultIdleCeiling,
			TrackBy:     TrackByProcess,
		},
		Report: ReportConfig{
			BeautifyNames:  true,
			MaxLabelLength: report.DefaultMaxLabelLength,
			TableWidth:     report.DefaultTableWidth,
			Periods:        DefaultPeriods(),
		},
	}
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(XDGConfigHome(), "activity", "config.toml")
}

// DefaultLogDir returns the directory the daemon logs to when none is configured.
func DefaultLogDir() string {
	return filepath.Join(XDGDataHome(), "activity", "logs")
}

// Load reads and validates the config file at path, or at Path() when path
// is empty. A missing file yields the defaults. ACTIVITY_LOG_DIR, when set,
// replaces the file's log directory.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// A file that lists periods replaces the defaults instead of merging into them.
	cfg.Report.Periods = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return DefaultConfig(), fmt.Errorf("parsing config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if cfg.Report.Periods == nil {
		cfg.Report.Periods = DefaultPeriods()
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, or to Path() when path is empty.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	return f.Close()
}

// Exists returns true if a config file exists at path, or at Path() when
// path is empty.
func Exists(path string) bool {
	if path == "" {
		path = Path()
	}
	_, err := os.Stat(path)
	return err == nil
}

func applyEnv(cfg *Config) {
	if dir := os.Getenv(LogDirEnv); dir != "" {
		cfg.General.LogDir = dir
	}
}

// LogDir returns the configured log directory, or the default one.
func LogDir(cfg Config) string {
	if cfg.General.LogDir != "" {
		return cfg.General.LogDir
	}
	return DefaultLogDir()
}

// Validate reports every setting that cannot produce a report.
func (c Config) Validate() error {
	var errs []error
	if c.General.SamplingInterval <= 0 {
		errs = append(errs, fmt.Errorf("general.sampling_interval must be positive, got %v", c.General.SamplingInterval))
	}
	if c.Tracking.IdleCeiling < 0 {
		errs = append(errs, fmt.Errorf("tracking.idle_ceiling must not be negative, got %v", c.Tracking.IdleCeiling))
	}
	if _, err := ParseTrackBy(c.Tracking.TrackBy); err != nil {
		errs = append(errs, err)
	}
	if c.Report.MaxLabelLength < 4 {
		errs = append(errs, fmt.Errorf("report.max_label_length must be at least 4, got %d", c.Report.MaxLabelLength))
	}
	if c.Report.TableWidth < 0 {
		errs = append(errs, fmt.Errorf("report.table_width must not be negative, got %d", c.Report.TableWidth))
	}
	if len(c.Report.Periods) == 0 {
		errs = append(errs, errors.New("report.periods is empty"))
	}
	for i, p := range c.Report.Periods {
		if p.Start < 0 || p.End <= p.Start {
			errs = append(errs, fmt.Errorf("report.periods[%d] %q: need 0 <= start < end, got %d..%d", i, p.Name, p.Start, p.End))
		}
	}
	return errors.Join(errs...)
}

// ParseTrackBy maps a track_by setting to the tallied field.
func ParseTrackBy(s string) (model.KeyField, error) {
	switch strings.ToLower(s) {
	case TrackByProcess, "":
		return model.KeyProcess, nil
	case TrackByTitle:
		return model.KeyTitle, nil
	}
	return model.KeyProcess, fmt.Errorf("tracking.track_by must be %q or %q, got %q", TrackByProcess, TrackByTitle, s)
}

// KeyField returns the tallied field. Call Validate first.
func (c Config) KeyField() model.KeyField {
	k, _ := ParseTrackBy(c.Tracking.TrackBy)
	return k
}

// CounterOptions returns the options for counting one day's samples.
func (c Config) CounterOptions() pipeline.CounterOptions {
	return pipeline.CounterOptions{
		IdleCeiling: c.Tracking.IdleCeiling,
		Key:         c.KeyField(),
		Filter:      pipeline.ParseFilter(c.Tracking.Filter),
	}
}

// BuilderOptions returns the options for building period summaries.
func (c Config) BuilderOptions() report.BuilderOptions {
	return report.BuilderOptions{
		IntervalSecs:   c.General.SamplingInterval,
		Key:            c.KeyField(),
		BeautifyNames:  c.Report.BeautifyNames,
		MaxLabelLength: c.Report.MaxLabelLength,
	}
}

// Periods returns the configured report columns.
func (c Config) Periods() []model.Period {
	out := make([]model.Period, len(c.Report.Periods))
	for i, p := range c.Report.Periods {
		out[i] = model.Period{Name: p.Name, Start: p.Start, End: p.End}
	}
	return out
}

// Logs returns the resolver for the daily log files.
func (c Config) Logs() source.DailyLogs {
	return source.DailyLogs{Dir: LogDir(c), Layout: c.General.LogFileLayout}
}
