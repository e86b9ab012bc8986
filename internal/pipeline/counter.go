package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/boppreh/activity/internal/model"
	"github.com/boppreh/activity/internal/source"
)

// DefaultIdleCeiling is how long, in seconds, a user may be idle before the
// running activity sequence stops counting.
const DefaultIdleCeiling = 5 * 60

// CounterOptions configures how a day's samples are tallied.
type CounterOptions struct {
	IdleCeiling float64
	Key         model.KeyField
	Filter      []string // lower-cased words; every one must match title or process
}

// ParseFilter splits a space separated filter into lower-cased words.
func ParseFilter(filter string) []string {
	return strings.Fields(strings.ToLower(filter))
}

// Matches reports whether s contains every filter word in its title or
// process name, ignoring case. An empty filter matches everything.
func (o CounterOptions) Matches(s model.Sample) bool {
	if len(o.Filter) == 0 {
		return true
	}
	title := strings.ToLower(s.Title)
	process := strings.ToLower(s.ProcessName)
	for _, word := range o.Filter {
		if !strings.Contains(title, word) && !strings.Contains(process, word) {
			return false
		}
	}
	return true
}

// SequenceState is the state of the activity sequence being accumulated.
type SequenceState int

const (
	// SequenceOpen means samples are still being added to the current sequence.
	SequenceOpen SequenceState = iota
	// SequenceCommitted means the last sequence was merged into the day's tally.
	SequenceCommitted
)

func (s SequenceState) String() string {
	if s == SequenceCommitted {
		return "committed"
	}
	return "open"
}

// Transition records what a single observed sample did to the counter.
type Transition uint8

const (
	// Committed: idle time reset, the previous sequence was merged.
	Committed Transition = 1 << iota
	// Discarded: idle ceiling exceeded, the open sequence was dropped.
	Discarded
	// Counted: the sample was added to the open sequence.
	Counted
	// Filtered: the sample was within the ceiling but failed the filter.
	Filtered
)

// Has reports whether every flag in f is set.
func (t Transition) Has(f Transition) bool {
	return t&f == f
}

// Counter splits a day's ordered samples into activity sequences and
// tallies the ones that never exceeded the idle ceiling.
//
// A sequence ends when a sample's idle time is not greater than the previous
// one (the user came back), or when the stream ends. A sequence that sees an
// idle time above the ceiling is dropped entirely.
type Counter struct {
	opts      CounterOptions
	committed model.Tally
	open      model.Tally
	prevIdle  float64
	state     SequenceState
	finished  bool
}

// NewCounter returns a counter for one day of samples.
func NewCounter(opts CounterOptions) *Counter {
	return &Counter{
		opts:      opts,
		committed: make(model.Tally),
		open:      make(model.Tally),
		state:     SequenceOpen,
	}
}

// State returns the current sequence state.
func (c *Counter) State() SequenceState {
	return c.state
}

// Pending returns the number of samples in the open sequence.
func (c *Counter) Pending() int {
	return c.open.Total()
}

// Observe feeds the next sample in chronological order.
func (c *Counter) Observe(s model.Sample) Transition {
	if c.finished {
		panic("pipeline: Observe called after Finish")
	}

	var t Transition
	if s.IdleSeconds <= c.prevIdle {
		c.commit()
		t |= Committed
	}
	c.state = SequenceOpen

	switch {
	case s.IdleSeconds > c.opts.IdleCeiling:
		clear(c.open)
		t |= Discarded
	case c.opts.Matches(s):
		c.open.Add(s.Key(c.opts.Key))
		t |= Counted
	default:
		t |= Filtered
	}

	c.prevIdle = s.IdleSeconds
	return t
}

// Finish commits the trailing sequence and returns the day's tally.
// The counter cannot be used afterwards.
func (c *Counter) Finish() model.Tally {
	if !c.finished {
		c.commit()
		c.finished = true
	}
	return c.committed
}

func (c *Counter) commit() {
	c.committed.Merge(c.open)
	clear(c.open)
	c.state = SequenceCommitted
}

// CountLines parses every line of r and returns the tally of active samples.
// Blank lines are skipped; any other undecodable line aborts with an error
// that wraps source.ErrMalformedLine.
func CountLines(r io.Reader, opts CounterOptions) (model.Tally, error) {
	c := NewCounter(opts)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := source.ParseLine(line)
		if err != nil {
			var pe *source.ParseError
			if errors.As(err, &pe) {
				pe.Line = lineNo
			}
			return nil, err
		}
		c.Observe(s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}

	return c.Finish(), nil
}
