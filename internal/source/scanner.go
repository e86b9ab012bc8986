package source

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultLayout is the daemon's daily log file name, as a time layout.
const DefaultLayout = "2006-01-02.log"

// Resolver maps a calendar date to that day's log file.
// found is false when the day has no log; err is reserved for
// failures other than absence.
type Resolver interface {
	Locate(date time.Time) (path string, found bool, err error)
}

// DailyLogs resolves daily logs stored as one file per day in Dir.
type DailyLogs struct {
	Dir    string
	Layout string // file name layout; DefaultLayout when empty
}

func (d DailyLogs) layout() string {
	if d.Layout == "" {
		return DefaultLayout
	}
	return d.Layout
}

// Path returns where the log for date lives, whether or not it exists.
func (d DailyLogs) Path(date time.Time) string {
	return filepath.Join(d.Dir, date.Format(d.layout()))
}

// Locate implements Resolver.
func (d DailyLogs) Locate(date time.Time) (string, bool, error) {
	path := d.Path(date)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, false, nil
		}
		return path, false, err
	}
	if info.IsDir() {
		return path, false, nil
	}
	return path, true, nil
}

// ScanDir lists the daily logs present in dir, newest first.
// Files whose names do not match the layout are ignored.
func ScanDir(dir, layout string) ([]DiscoveredLog, error) {
	if layout == "" {
		layout = DefaultLayout
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []DiscoveredLog
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		date, err := time.ParseInLocation(layout, e.Name(), time.Local)
		if err != nil {
			continue
		}
		logs = append(logs, DiscoveredLog{
			Path: filepath.Join(dir, e.Name()),
			Date: date,
		})
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
	return logs, nil
}
