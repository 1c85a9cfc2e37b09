package validate

import (
	"fmt"
	"sort"
	"time"

	"github.com/jmottin/subsched/core/model"
)

// IssueOverLimit tags days whose load exceeds the concurrency cap.
const IssueOverLimit = "over_limit"

// LoadSegment is a maximal run of days with a constant number of active
// submissions. Segments cover [Start, End) and zero-load gaps between
// occupied runs are included so callers can integrate utilisation over the
// whole span.
type LoadSegment struct {
	Start time.Time
	End   time.Time
	Load  int
}

// LoadSegments computes the daily concurrency profile of a schedule with an
// event sweep. Zero-duration entries contribute no load. The result is sorted
// by start and nil when nothing in the schedule occupies a day.
func LoadSegments(s model.Schedule) []LoadSegment {
	type event struct {
		at    time.Time
		delta int
	}
	var events []event
	for _, iv := range s {
		if !iv.End.After(iv.Start) {
			continue
		}
		events = append(events, event{iv.Start, +1}, event{iv.End, -1})
	}
	if len(events) == 0 {
		return nil
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].at.Equal(events[j].at) {
			return events[i].at.Before(events[j].at)
		}
		return events[i].delta < events[j].delta
	})

	var segs []LoadSegment
	load := 0
	prev := events[0].at
	for _, ev := range events {
		if ev.at.After(prev) {
			segs = append(segs, LoadSegment{Start: prev, End: ev.at, Load: load})
			prev = ev.at
		}
		load += ev.delta
	}
	return segs
}

// Resources verifies the concurrency cap: no day may have more active
// submissions than max_concurrent_submissions allows. One violation is
// reported per day over the limit, carrying that day's load and excess.
func Resources(s model.Schedule, cfg *model.Config) model.ValidationResult {
	res := model.ValidationResult{Family: model.FamilyResource, Valid: true, Rate: 100}
	limit := cfg.MaxConcurrentSubmissions

	for _, seg := range LoadSegments(s) {
		days := model.DaysBetween(seg.Start, seg.End)
		res.Total += days
		if seg.Load <= limit {
			res.Compliant += days
			continue
		}
		for d := 0; d < days; d++ {
			day := seg.Start.AddDate(0, 0, d)
			res.Violations = append(res.Violations, model.Violation{
				Description: fmt.Sprintf("%d submissions active on %s (limit %d)", seg.Load, day.Format("2006-01-02"), limit),
				Severity:    model.SeverityMedium,
				Date:        day,
				Load:        seg.Load,
				Limit:       limit,
				Excess:      seg.Load - limit,
				Issue:       IssueOverLimit,
			})
		}
	}

	res.Valid = len(res.Violations) == 0
	if res.Total > 0 {
		res.Rate = float64(res.Compliant) / float64(res.Total) * 100
	}
	res.Summary = fmt.Sprintf("%d/%d days within the concurrency limit (%.1f%%)", res.Compliant, res.Total, res.Rate)
	return res
}

// ActiveOn lists the submissions whose interval covers the given day, sorted
// for stable output.
func ActiveOn(s model.Schedule, day time.Time) []string {
	var ids []string
	for id, iv := range s {
		if iv.Covers(day) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// LoadAt reports how many submissions are active on the given day.
func LoadAt(s model.Schedule, day time.Time) int {
	n := 0
	for _, iv := range s {
		if iv.Covers(day) {
			n++
		}
	}
	return n
}
