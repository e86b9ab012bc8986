// Package pipeline turns daily activity logs into tallies and aggregates them.
package pipeline

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/boppreh/activity/internal/model"
)

// Sum merges every daily tally into a new aggregate tally.
func Sum(days []model.DailyTally) model.Tally {
	total := make(model.Tally)
	for _, d := range days {
		total.Merge(d.Tally)
	}
	return total
}

// Rank returns the keys of t by descending count. Equal counts are ordered
// by key so the result is stable across runs.
func Rank(t model.Tally) []model.KeyCount {
	ranked := make([]model.KeyCount, 0, len(t))
	for k, n := range t {
		ranked = append(ranked, model.KeyCount{Key: k, Count: n})
	}
	slices.SortFunc(ranked, func(a, b model.KeyCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return ranked
}

// AggregateDays computes per-day totals, in the order of days.
// intervalSecs is the daemon's sampling interval.
func AggregateDays(days []model.DailyTally, intervalSecs float64) []model.DailyActivity {
	out := make([]model.DailyActivity, 0, len(days))
	for _, d := range days {
		da := model.DailyActivity{
			Date:         d.Date,
			Samples:      d.Tally.Total(),
			DistinctKeys: len(d.Tally),
		}
		da.ActiveSecs = float64(da.Samples) * intervalSecs
		if ranked := Rank(d.Tally); len(ranked) > 0 {
			da.TopKey = ranked[0].Key
			da.TopCount = ranked[0].Count
		}
		out = append(out, da)
	}
	return out
}

// AggregateHourly spreads an hour-keyed tally (see model.KeyHour) over the
// 24 hours of the day, averaging active time over daysPresent days. Samples
// with an unknown hour are left out.
func AggregateHourly(t model.Tally, intervalSecs float64, daysPresent int) []model.HourlyActivity {
	hours := make([]model.HourlyActivity, 24)
	for h := range hours {
		hours[h].Hour = h
	}
	for key, n := range t {
		h, err := strconv.Atoi(key)
		if err != nil || h < 0 || h >= len(hours) {
			continue
		}
		hours[h].Samples += n
	}
	if daysPresent > 0 {
		for h := range hours {
			hours[h].ActiveSecs = float64(hours[h].Samples) * intervalSecs / float64(daysPresent)
		}
	}
	return hours
}
