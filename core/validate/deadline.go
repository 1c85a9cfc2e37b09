package validate

import (
	"fmt"
	"time"

	"github.com/jmottin/subsched/core/model"
)

// Issue tags used inside the deadline family. They are exported so the
// scoring package prices categories against the same tags the validators
// emit.
const (
	IssueDeadlineMissed = "deadline_missed"
	IssueLeadTime       = "lead_time"
	IssueEarliestStart  = "earliest_start"
	IssueBlackout       = "blackout"
)

// Deadlines verifies that every scheduled submission finishes on time when a
// deadline is declared, keeps its kind's lead-time margin, starts no earlier
// than its declared earliest start and avoids blackout dates. Every scheduled
// submission counts toward the rate, so earliest-start and blackout breaches
// lower it even without a declared deadline.
func Deadlines(s model.Schedule, cfg *model.Config) model.ValidationResult {
	res := model.ValidationResult{Family: model.FamilyDeadline, Valid: true, Rate: 100}
	if len(s) == 0 {
		res.Summary = "no submissions to validate"
		return res
	}

	for _, sid := range s.IDs() {
		iv := s[sid]
		sub := cfg.Submission(sid)
		if sub == nil {
			continue
		}
		res.Total++

		broken := false

		if !sub.EarliestStart.IsZero() && iv.Start.Before(sub.EarliestStart) {
			days := model.DaysBetween(iv.Start, sub.EarliestStart)
			res.Violations = append(res.Violations, model.Violation{
				SubmissionID:  sid,
				Description:   fmt.Sprintf("starts %d days before earliest start date", days),
				Severity:      model.SeverityMedium,
				Issue:         IssueEarliestStart,
				DaysViolation: days,
			})
			broken = true
		}

		if day, hit := firstBlackoutDay(iv, cfg); hit {
			res.Violations = append(res.Violations, model.Violation{
				SubmissionID: sid,
				Description:  fmt.Sprintf("active during blackout date %s", day.Format("2006-01-02")),
				Severity:     model.SeverityHigh,
				Issue:        IssueBlackout,
				Date:         day,
			})
			broken = true
		}

		deadline, ok := declaredDeadline(sub, cfg)
		if !ok {
			if !broken {
				res.Compliant++
			}
			continue
		}

		if iv.End.After(deadline) {
			daysLate := model.DaysBetween(deadline, iv.End)
			res.Violations = append(res.Violations, model.Violation{
				SubmissionID: sid,
				Description:  fmt.Sprintf("deadline missed by %d days", daysLate),
				Severity:     lateSeverity(daysLate),
				Issue:        IssueDeadlineMissed,
				ConferenceID: sub.ConferenceID,
				Deadline:     deadline,
				EndDate:      iv.End,
				DaysLate:     daysLate,
			})
			broken = true
		} else if lead := leadTimeDays(sub.Kind, cfg); lead > 0 {
			cutoff := deadline.AddDate(0, 0, -lead)
			if iv.End.After(cutoff) {
				shortfall := model.DaysBetween(cutoff, iv.End)
				res.Violations = append(res.Violations, model.Violation{
					SubmissionID: sid,
					Description:  fmt.Sprintf("finishes %d days inside the %d-day lead-time margin", shortfall, lead),
					Severity:     model.SeverityMedium,
					Issue:        IssueLeadTime,
					ConferenceID: sub.ConferenceID,
					Deadline:     deadline,
					EndDate:      iv.End,
					DaysLate:     shortfall,
				})
				broken = true
			}
		}

		if !broken {
			res.Compliant++
		}
	}

	res.Valid = len(res.Violations) == 0
	if res.Total > 0 {
		res.Rate = float64(res.Compliant) / float64(res.Total) * 100
	}
	res.Summary = fmt.Sprintf("%d/%d submissions pass deadline checks (%.1f%%)", res.Compliant, res.Total, res.Rate)
	return res
}

// MeetsDeadline is the single-submission deadline check used by the oracle:
// a submission starting on day must finish on or before its declared
// deadline. True when no deadline applies.
func MeetsDeadline(sub model.Submission, day time.Time, cfg *model.Config) bool {
	deadline, ok := declaredDeadline(&sub, cfg)
	if !ok {
		return true
	}
	return !sub.EndDate(day, cfg).After(deadline)
}

func declaredDeadline(sub *model.Submission, cfg *model.Config) (time.Time, bool) {
	if sub.ConferenceID == "" {
		return time.Time{}, false
	}
	conf := cfg.Conference(sub.ConferenceID)
	if conf == nil {
		return time.Time{}, false
	}
	return conf.Deadline(sub.Kind)
}

func leadTimeDays(kind model.SubmissionKind, cfg *model.Config) int {
	switch kind {
	case model.KindAbstract:
		return cfg.MinAbstractLeadTimeDays
	case model.KindPaper:
		// Drafting time is already part of the paper's duration.
		return 0
	default:
		return 0
	}
}

func lateSeverity(daysLate int) model.Severity {
	switch {
	case daysLate > 7:
		return model.SeverityHigh
	case daysLate > 1:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

// firstBlackoutDay returns the first active day of the interval that falls on
// a blackout date. Zero-duration work is checked on its start day.
func firstBlackoutDay(iv model.Interval, cfg *model.Config) (time.Time, bool) {
	if !cfg.Options.EnableBlackoutPeriods {
		return time.Time{}, false
	}
	if iv.DurationDays() == 0 {
		if cfg.IsBlackout(iv.Start) {
			return iv.Start, true
		}
		return time.Time{}, false
	}
	for day := iv.Start; day.Before(iv.End); day = day.AddDate(0, 0, 1) {
		if cfg.IsBlackout(day) {
			return day, true
		}
	}
	return time.Time{}, false
}
