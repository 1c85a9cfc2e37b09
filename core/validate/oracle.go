package validate

import (
	"time"

	"github.com/jmottin/subsched/core/model"
)

// CanPlace is the placement oracle: it decides whether sub may legally start
// on day given everything already placed in s. Hard constraints always
// apply; the soft window is only considered when the run opts into strict
// placement. Callers pass the schedule without the candidate present.
func CanPlace(sub model.Submission, day time.Time, s model.Schedule, cfg *model.Config) bool {
	if !sub.EarliestStart.IsZero() && day.Before(sub.EarliestStart) {
		return false
	}
	if !MeetsDeadline(sub, day, cfg) {
		return false
	}
	if !DependenciesSatisfiedAt(sub, day, s, cfg) {
		return false
	}

	end := sub.EndDate(day, cfg)
	iv := model.Interval{Start: day, End: end}
	if _, hit := firstBlackoutDay(iv, cfg); hit {
		return false
	}
	if breaksConcurrency(iv, s, cfg) {
		return false
	}
	if !venueAllows(sub, cfg) {
		return false
	}
	if sub.Kind == model.KindPaper && breaksAnnualCycle(sub, day, s, cfg) {
		return false
	}
	if sub.Kind == model.KindPaper && missingRequiredAbstract(sub, day, s, cfg) {
		return false
	}
	if cfg.Options.EnforceSoftBlocks && !WithinSoftWindow(sub, day) {
		return false
	}
	return true
}

// breaksConcurrency reports whether adding iv would push any day of its span
// over the concurrency cap. Zero-duration intervals occupy no days.
func breaksConcurrency(iv model.Interval, s model.Schedule, cfg *model.Config) bool {
	if iv.DurationDays() == 0 {
		return false
	}
	for day := iv.Start; day.Before(iv.End); day = day.AddDate(0, 0, 1) {
		if LoadAt(s, day)+1 > cfg.MaxConcurrentSubmissions {
			return true
		}
	}
	return false
}

func venueAllows(sub model.Submission, cfg *model.Config) bool {
	if sub.ConferenceID == "" {
		return true
	}
	conf := cfg.Conference(sub.ConferenceID)
	if conf == nil {
		return false
	}
	return conf.CompatibleWith(sub)
}

// breaksAnnualCycle reports whether starting the paper on day would put two
// papers at the same conference less than a review cycle apart.
func breaksAnnualCycle(sub model.Submission, day time.Time, s model.Schedule, cfg *model.Config) bool {
	if sub.ConferenceID == "" {
		return false
	}
	for id, iv := range s {
		if id == sub.ID {
			continue
		}
		other := cfg.Submission(id)
		if other == nil || other.Kind != model.KindPaper || other.ConferenceID != sub.ConferenceID {
			continue
		}
		gap := model.DaysBetween(iv.Start, day)
		if gap < 0 {
			gap = -gap
		}
		if gap < model.SingleConferenceCycleDays {
			return true
		}
	}
	return false
}

// missingRequiredAbstract reports whether the paper's venue demands an
// abstract first and that abstract is not yet placed and finished by day.
func missingRequiredAbstract(sub model.Submission, day time.Time, s model.Schedule, cfg *model.Config) bool {
	if sub.ConferenceID == "" {
		return false
	}
	conf := cfg.Conference(sub.ConferenceID)
	if conf == nil || !conf.RequiresAbstractBeforePaper() {
		return false
	}
	absID := ExpectedAbstractID(sub, cfg)
	if absID == "" {
		return true
	}
	absIV, ok := s[absID]
	if !ok {
		return true
	}
	return absIV.End.After(day)
}
