package model

import "time"

// DailyActivity holds per-day totals for a single calendar day.
type DailyActivity struct {
	Date         time.Time
	Samples      int
	DistinctKeys int
	ActiveSecs   float64
	TopKey       string
	TopCount     int
}

// KeyCount pairs a tracked key with its aggregated count.
type KeyCount struct {
	Key   string
	Count int
}

// HourlyActivity holds the average active time for one hour of the day.
type HourlyActivity struct {
	Hour       int
	Samples    int
	ActiveSecs float64 // per day with a log
}
