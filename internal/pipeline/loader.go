package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/boppreh/activity/internal/model"
	"github.com/boppreh/activity/internal/source"
)

// LoadResult holds the daily tallies obtained for a period.
type LoadResult struct {
	Period  model.Period
	Days    []model.DailyTally
	Missing []time.Time // dates with no log, newest first
}

// ProgressFunc is called after each day offset is processed.
// date is the day just handled and found reports whether it had a log.
type ProgressFunc func(date time.Time, found bool)

// LoadPeriod tallies every day of period, counting back from now.
// Days without a log are skipped. Parse failures and I/O errors other than
// absence abort the whole load.
func LoadPeriod(logs source.Resolver, period model.Period, now time.Time, opts CounterOptions, progressFn ProgressFunc) (*LoadResult, error) {
	result := &LoadResult{Period: period}

	for offset := period.Start; offset < period.End; offset++ {
		date := now.AddDate(0, 0, -offset)

		dt, found, err := loadDay(logs, date, opts)
		if err != nil {
			return nil, err
		}
		if progressFn != nil {
			progressFn(date, found)
		}
		if !found {
			result.Missing = append(result.Missing, date)
			continue
		}
		result.Days = append(result.Days, dt)
	}

	return result, nil
}

// LoadDays tallies the last n days including today, newest first.
func LoadDays(logs source.Resolver, now time.Time, n int, opts CounterOptions, progressFn ProgressFunc) (*LoadResult, error) {
	return LoadPeriod(logs, model.Period{Name: fmt.Sprintf("Last %dd", n), Start: 0, End: n}, now, opts, progressFn)
}

func loadDay(logs source.Resolver, date time.Time, opts CounterOptions) (model.DailyTally, bool, error) {
	path, found, err := logs.Locate(date)
	if err != nil {
		return model.DailyTally{}, false, fmt.Errorf("locating log for %s: %w", date.Format("2006-01-02"), err)
	}
	if !found {
		return model.DailyTally{}, false, nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the configured log dir
	if err != nil {
		if os.IsNotExist(err) {
			// Removed between Locate and Open.
			return model.DailyTally{}, false, nil
		}
		return model.DailyTally{}, false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	tally, err := CountLines(f, opts)
	if err != nil {
		return model.DailyTally{}, false, fmt.Errorf("%s: %w", path, err)
	}

	return model.DailyTally{Date: date, Path: path, Tally: tally}, true, nil
}
