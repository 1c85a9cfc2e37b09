package model

import (
	"sort"
	"time"
)

// Interval is the span a submission is active: work happens on the days
// [Start, End), and End is always Start plus the submission duration.
type Interval struct {
	Start time.Time
	End   time.Time
}

// DurationDays returns the number of active days in the interval.
func (iv Interval) DurationDays() int {
	return DaysBetween(iv.Start, iv.End)
}

// Covers reports whether day falls inside the interval.
func (iv Interval) Covers(day time.Time) bool {
	return !day.Before(iv.Start) && day.Before(iv.End)
}

// Schedule maps submission ids to their intervals. Strategies grow it one
// placement at a time and return it; validators and scorers never mutate it.
type Schedule map[string]Interval

// Place records an interval for a submission, deriving the end date from the
// submission duration.
func (s Schedule) Place(sub Submission, start time.Time, cfg *Config) {
	s[sub.ID] = Interval{Start: start, End: sub.EndDate(start, cfg)}
}

// Has reports whether the submission is scheduled.
func (s Schedule) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy of the schedule.
func (s Schedule) Clone() Schedule {
	cp := make(Schedule, len(s))
	for id, iv := range s {
		cp[id] = iv
	}
	return cp
}

// Start returns the earliest start across all intervals, zero when empty.
func (s Schedule) Start() time.Time {
	var min time.Time
	for _, iv := range s {
		if min.IsZero() || iv.Start.Before(min) {
			min = iv.Start
		}
	}
	return min
}

// End returns the latest end across all intervals, zero when empty.
func (s Schedule) End() time.Time {
	var max time.Time
	for _, iv := range s {
		if iv.End.After(max) {
			max = iv.End
		}
	}
	return max
}

// MakespanDays is the span in days between the earliest and latest start.
func (s Schedule) MakespanDays() int {
	if len(s) == 0 {
		return 0
	}
	var min, max time.Time
	for _, iv := range s {
		if min.IsZero() || iv.Start.Before(min) {
			min = iv.Start
		}
		if iv.Start.After(max) {
			max = iv.Start
		}
	}
	return DaysBetween(min, max)
}

// IDs returns the scheduled submission ids in deterministic order.
func (s Schedule) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Day builds a UTC calendar day. All model dates are UTC midnights so day
// arithmetic stays exact.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns b minus a in whole days.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
