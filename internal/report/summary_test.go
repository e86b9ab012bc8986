package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/activity/internal/model"
)

func day(t model.Tally) model.DailyTally {
	return model.DailyTally{Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), Tally: t}
}

func processBuilder() *Builder {
	return NewBuilder(BuilderOptions{
		IntervalSecs:   60,
		Key:            model.KeyProcess,
		BeautifyNames:  true,
		MaxLabelLength: DefaultMaxLabelLength,
	})
}

func TestBuild_AveragesOverPresentDays(t *testing.T) {
	s := processBuilder().Build([]model.DailyTally{
		day(model.Tally{"a.exe": 6, "b.exe": 2}),
		day(model.Tally{"a.exe": 4}),
	})

	assert.Equal(t, 2, s.DaysPresent)
	assert.Equal(t, 2, s.Len())
	assert.InDelta(t, 360.0, s.TotalSeconds, 1e-9)

	entries := s.Collect()
	require.Len(t, entries, 3)

	assert.Equal(t, "Total (2 entries)", entries[0].Label)
	assert.Equal(t, "100% -  0:06", entries[0].Time)
	assert.True(t, entries[0].IsTotal)
	assert.Equal(t, 12, entries[0].Count)

	assert.Equal(t, "A", entries[1].Label)
	assert.Equal(t, "a.exe", entries[1].Key)
	assert.Equal(t, "83% -  0:05", entries[1].Time)
	assert.InDelta(t, 300.0, entries[1].Seconds, 1e-9)

	assert.Equal(t, "B", entries[2].Label)
	assert.Equal(t, "17% -  0:01", entries[2].Time)
}

func TestBuild_NoDays(t *testing.T) {
	s := processBuilder().Build(nil)

	entries := s.Collect()
	require.Len(t, entries, 1)
	assert.Equal(t, "Total (0 entries)", entries[0].Label)
	assert.Equal(t, "100%", entries[0].Time)
	assert.Zero(t, s.TotalSeconds)
}

func TestBuild_EmptyDaysStillCount(t *testing.T) {
	s := processBuilder().Build([]model.DailyTally{
		day(model.Tally{"a.exe": 10}),
		day(model.Tally{}),
	})
	assert.Equal(t, 2, s.DaysPresent)
	assert.InDelta(t, 300.0, s.TotalSeconds, 1e-9)
}

func TestBuild_TiesOrderedByKey(t *testing.T) {
	s := processBuilder().Build([]model.DailyTally{
		day(model.Tally{"zed.exe": 3, "alpha.exe": 3, "mid.exe": 5}),
	})

	var keys []string
	for e := range s.Entries() {
		if !e.IsTotal {
			keys = append(keys, e.Key)
		}
	}
	assert.Equal(t, []string{"mid.exe", "alpha.exe", "zed.exe"}, keys)
}

func TestBuild_TitlesNotBeautified(t *testing.T) {
	b := NewBuilder(BuilderOptions{
		IntervalSecs:   5,
		Key:            model.KeyTitle,
		BeautifyNames:  true,
		MaxLabelLength: 4,
	})
	entries := b.Build([]model.DailyTally{day(model.Tally{"my_document.txt - editor": 1})}).Collect()
	require.Len(t, entries, 2)
	assert.Equal(t, "my_document.txt - editor", entries[1].Label)
}

func TestBuild_BeautifyDisabled(t *testing.T) {
	b := NewBuilder(BuilderOptions{IntervalSecs: 5, Key: model.KeyProcess})
	entries := b.Build([]model.DailyTally{day(model.Tally{"sublime_text.exe": 1})}).Collect()
	require.Len(t, entries, 2)
	assert.Equal(t, "sublime_text.exe", entries[1].Label)
}

func TestSummaryEntries_Restartable(t *testing.T) {
	s := processBuilder().Build([]model.DailyTally{
		day(model.Tally{"a.exe": 1, "b.exe": 2, "c.exe": 3}),
	})

	first := s.Collect()
	second := s.Collect()
	assert.Equal(t, first, second)

	var taken []string
	for e := range s.Entries() {
		taken = append(taken, e.Label)
		if len(taken) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Total (3 entries)", "C"}, taken)
	assert.Len(t, s.Collect(), 4)
}

func TestSummaryEntries_PercentagesSumToOne(t *testing.T) {
	s := processBuilder().Build([]model.DailyTally{
		day(model.Tally{"a.exe": 7, "b.exe": 11, "c.exe": 13}),
		day(model.Tally{"b.exe": 2}),
	})

	var sum float64
	for e := range s.Entries() {
		if e.IsTotal {
			assert.Equal(t, 1.0, e.Percentage)
			continue
		}
		sum += e.Percentage
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
