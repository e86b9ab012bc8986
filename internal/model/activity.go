// Package model defines domain types for activity samples, tallies and summaries.
package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// KeyField selects which sample field is tallied.
type KeyField int

const (
	// KeyProcess tallies samples by process name.
	KeyProcess KeyField = iota
	// KeyTitle tallies samples by window title.
	KeyTitle
	// KeyHour tallies samples by local hour of day, "00" to "23".
	KeyHour
)

// String returns the config spelling of the key field.
func (k KeyField) String() string {
	switch k {
	case KeyTitle:
		return "title"
	case KeyHour:
		return "hour"
	}
	return "process"
}

// Sample is one observation written by the sampling daemon.
type Sample struct {
	Timestamp   string // kept verbatim, only decoded when tallying by hour
	IdleSeconds float64
	ProcessName string
	Title       string
}

// Key returns the tracked key of the sample for the given field.
func (s Sample) Key(field KeyField) string {
	switch field {
	case KeyTitle:
		return s.Title
	case KeyHour:
		t, ok := s.Time()
		if !ok {
			return UnknownHour
		}
		return fmt.Sprintf("%02d", t.Hour())
	}
	return s.ProcessName
}

// UnknownHour is the hour key of a sample whose timestamp does not parse.
const UnknownHour = "??"

// Time decodes the Unix epoch timestamp into local time.
func (s Sample) Time() (time.Time, bool) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s.Timestamp), 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, false
	}
	whole := int64(secs)
	return time.Unix(whole, int64((secs-float64(whole))*1e9)), true
}

// Tally counts occurrences per tracked key.
type Tally map[string]int

// Add increments the count for key by one.
func (t Tally) Add(key string) {
	t[key]++
}

// Merge adds every count from other into t.
func (t Tally) Merge(other Tally) {
	for k, n := range other {
		t[k] += n
	}
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Clone returns an independent copy of t.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	out.Merge(t)
	return out
}

// Period is a named range of day offsets counted backward from today.
// Start is inclusive and End exclusive, so (0, 1) is today only.
type Period struct {
	Name  string
	Start int
	End   int
}

// Days returns how many day offsets the period spans.
func (p Period) Days() int {
	if p.End <= p.Start {
		return 0
	}
	return p.End - p.Start
}

// DailyTally is the tally of a single day's log.
type DailyTally struct {
	Date  time.Time
	Path  string
	Tally Tally
}

// SummaryEntry is one row of a period summary.
type SummaryEntry struct {
	Label      string  `json:"label"`
	Time       string  `json:"time"`
	Key        string  `json:"key,omitempty"`
	Count      int     `json:"count"`
	Seconds    float64 `json:"seconds"`
	Percentage float64 `json:"percentage"`
	IsTotal    bool    `json:"is_total,omitempty"`
}
