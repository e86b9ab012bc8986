// Package report builds and renders per-period activity summaries.
package report

import (
	"fmt"
	"iter"
	"slices"

	"github.com/boppreh/activity/internal/model"
	"github.com/boppreh/activity/internal/pipeline"
)

// DefaultSamplingInterval is the daemon's default seconds between samples.
const DefaultSamplingInterval = 5.0

// BuilderOptions configures summary construction.
type BuilderOptions struct {
	IntervalSecs   float64
	Key            model.KeyField
	BeautifyNames  bool
	MaxLabelLength int
}

// Builder turns daily tallies into ranked summaries.
type Builder struct {
	opts BuilderOptions
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts BuilderOptions) *Builder {
	return &Builder{opts: opts}
}

// Summary is the aggregated activity of one period.
type Summary struct {
	DaysPresent  int
	TotalSeconds float64

	timing Timing
	ranked []model.KeyCount
	label  func(string) string
}

// Build sums days and prepares the ranked summary.
func (b *Builder) Build(days []model.DailyTally) Summary {
	total := pipeline.Sum(days)
	timing := NewTiming(b.opts.IntervalSecs, len(days))

	return Summary{
		DaysPresent:  len(days),
		TotalSeconds: timing.Seconds(total.Total()),
		timing:       timing,
		ranked:       pipeline.Rank(total),
		label:        b.Label,
	}
}

// Label returns the display form of a tallied key.
func (b *Builder) Label(key string) string {
	if b.opts.Key == model.KeyProcess && b.opts.BeautifyNames {
		return FormatProcessName(key, b.opts.MaxLabelLength)
	}
	return key
}

// Len returns the number of distinct keys in the summary.
func (s Summary) Len() int {
	return len(s.ranked)
}

// Total returns the synthetic first entry covering every key.
func (s Summary) Total() model.SummaryEntry {
	count := 0
	for _, kc := range s.ranked {
		count += kc.Count
	}
	return model.SummaryEntry{
		Label:      fmt.Sprintf("Total (%d entries)", len(s.ranked)),
		Time:       FormatActiveTime(s.TotalSeconds, s.TotalSeconds),
		Count:      count,
		Seconds:    s.TotalSeconds,
		Percentage: 1,
		IsTotal:    true,
	}
}

// Entries yields the Total entry followed by one entry per key, most active
// first. Each call starts over from the beginning.
func (s Summary) Entries() iter.Seq[model.SummaryEntry] {
	return func(yield func(model.SummaryEntry) bool) {
		if !yield(s.Total()) {
			return
		}
		for _, kc := range s.ranked {
			secs := s.timing.Seconds(kc.Count)
			label := kc.Key
			if s.label != nil {
				label = s.label(kc.Key)
			}
			entry := model.SummaryEntry{
				Label:      label,
				Time:       FormatActiveTime(secs, s.TotalSeconds),
				Key:        kc.Key,
				Count:      kc.Count,
				Seconds:    secs,
				Percentage: Percentage(secs, s.TotalSeconds),
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Collect materializes Entries.
func (s Summary) Collect() []model.SummaryEntry {
	return slices.Collect(s.Entries())
}
