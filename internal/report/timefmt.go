package report

import (
	"fmt"
	"math"
)

// Timing converts sample counts into seconds of activity per day.
type Timing struct {
	// Multiplier is the number of seconds one sample stands for, averaged
	// over the days that actually had a log. Zero when no day did.
	Multiplier float64
}

// NewTiming returns the timing for samples taken every intervalSecs over
// daysPresent days.
func NewTiming(intervalSecs float64, daysPresent int) Timing {
	if daysPresent <= 0 {
		return Timing{}
	}
	return Timing{Multiplier: intervalSecs / float64(daysPresent)}
}

// Seconds returns the active time represented by count samples.
func (t Timing) Seconds(count int) float64 {
	return float64(count) * t.Multiplier
}

// Percentage returns seconds as a fraction of total, or 1 when total is zero.
func Percentage(seconds, total float64) float64 {
	if total > 0 {
		return seconds / total
	}
	return 1
}

// FormatActiveTime renders seconds as a share of total and, when at least a
// minute, as hours and minutes: "42%" or "67% -  1:08".
func FormatActiveTime(seconds, total float64) string {
	pct := Percentage(seconds, total) * 100

	allMinutes := seconds / 60
	minutes := int(math.Mod(allMinutes, 60))
	hours := int(allMinutes / 60)

	if hours == 0 && minutes == 0 {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.0f%% - %2d:%02d", pct, hours, minutes)
}
