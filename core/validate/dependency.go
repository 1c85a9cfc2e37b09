package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmottin/subsched/core/model"
)

// Issue tags used inside the dependency family.
const (
	IssueMissingDependency = "missing_dependency"
	IssueInvalidDependency = "invalid_dependency"
	IssueTimingViolation   = "timing_violation"
	IssueMissingAbstract   = "missing_abstract"
	IssueAbstractTiming    = "abstract_timing"
	IssueUnlinkedAbstract  = "unlinked_abstract"
)

// Dependencies verifies that every scheduled submission's dependencies exist,
// are scheduled, and finish no later than the dependent's start plus its
// allowed lead time. It also enforces abstract-before-paper chains at venues
// that require them. Circular chains are a configuration error caught by
// Config.Validate, so the traversal here never loops.
func Dependencies(s model.Schedule, cfg *model.Config) model.ValidationResult {
	res := model.ValidationResult{Family: model.FamilyDependency, Valid: true, Rate: 100}
	if len(s) == 0 {
		res.Summary = "no dependencies to validate"
		return res
	}

	for _, sid := range s.IDs() {
		iv := s[sid]
		sub := cfg.Submission(sid)
		if sub == nil || len(sub.DependsOn) == 0 {
			continue
		}

		for _, depID := range sub.DependsOn {
			res.Total++

			dep := cfg.Submission(depID)
			if dep == nil {
				res.Violations = append(res.Violations, model.Violation{
					SubmissionID: sid,
					Description:  fmt.Sprintf("dependency %s not found in config", depID),
					Severity:     model.SeverityHigh,
					DependencyID: depID,
					Issue:        IssueInvalidDependency,
				})
				continue
			}
			depIV, ok := s[depID]
			if !ok {
				res.Violations = append(res.Violations, model.Violation{
					SubmissionID: sid,
					Description:  fmt.Sprintf("dependency %s is not scheduled", depID),
					Severity:     model.SeverityHigh,
					DependencyID: depID,
					Issue:        IssueMissingDependency,
				})
				continue
			}

			allowed := iv.Start.AddDate(0, 0, sub.LeadTimeFromParents)
			if depIV.End.After(allowed) {
				days := model.DaysBetween(allowed, depIV.End)
				res.Violations = append(res.Violations, model.Violation{
					SubmissionID:  sid,
					Description:   fmt.Sprintf("dependency %s ends %d days after %s may start", depID, days, sid),
					Severity:      model.SeverityMedium,
					DependencyID:  depID,
					Issue:         IssueTimingViolation,
					DaysViolation: days,
				})
				continue
			}
			res.Compliant++
		}
	}

	chainViolations := abstractPaperChains(s, cfg, &res)
	res.Violations = append(res.Violations, chainViolations...)

	res.Valid = len(res.Violations) == 0
	if res.Total > 0 {
		res.Rate = float64(res.Compliant) / float64(res.Total) * 100
	}
	res.Summary = fmt.Sprintf("%d/%d dependencies satisfied (%.1f%%)", res.Compliant, res.Total, res.Rate)
	return res
}

// abstractPaperChains checks scheduled papers at abstract-then-paper venues:
// the expected abstract must be scheduled, finish before the paper starts and
// be listed in the paper's depends_on.
func abstractPaperChains(s model.Schedule, cfg *model.Config, res *model.ValidationResult) []model.Violation {
	var out []model.Violation

	for _, sid := range s.IDs() {
		iv := s[sid]
		sub := cfg.Submission(sid)
		if sub == nil || sub.Kind != model.KindPaper || sub.ConferenceID == "" {
			continue
		}
		conf := cfg.Conference(sub.ConferenceID)
		if conf == nil || !conf.RequiresAbstractBeforePaper() {
			continue
		}

		res.Total++
		absID := ExpectedAbstractID(*sub, cfg)
		if absID == "" {
			out = append(out, model.Violation{
				SubmissionID: sid,
				Description:  fmt.Sprintf("no abstract exists for paper %s at abstract-then-paper venue %s", sid, sub.ConferenceID),
				Severity:     model.SeverityHigh,
				Issue:        IssueMissingAbstract,
			})
			continue
		}

		absIV, scheduled := s[absID]
		if !scheduled {
			out = append(out, model.Violation{
				SubmissionID: sid,
				Description:  fmt.Sprintf("abstract %s is not scheduled", absID),
				Severity:     model.SeverityHigh,
				DependencyID: absID,
				Issue:        IssueMissingAbstract,
			})
			continue
		}

		linked := false
		for _, dep := range sub.DependsOn {
			if dep == absID {
				linked = true
				break
			}
		}
		if !linked {
			out = append(out, model.Violation{
				SubmissionID: sid,
				Description:  fmt.Sprintf("abstract %s is not listed in depends_on of %s", absID, sid),
				Severity:     model.SeverityHigh,
				DependencyID: absID,
				Issue:        IssueUnlinkedAbstract,
			})
			continue
		}

		if absIV.End.After(iv.Start) {
			days := model.DaysBetween(iv.Start, absIV.End)
			out = append(out, model.Violation{
				SubmissionID:  sid,
				Description:   fmt.Sprintf("paper starts %d days before abstract %s completes", days, absID),
				Severity:      model.SeverityHigh,
				DependencyID:  absID,
				Issue:         IssueAbstractTiming,
				DaysViolation: days,
			})
			continue
		}
		res.Compliant++
	}
	return out
}

// ExpectedAbstractID derives the abstract a paper is expected to follow.
// The id convention "<work>-pap-<conf>" maps to "<work>-abs-<conf>"; failing
// that, the first abstract among the paper's dependencies is used, then the
// first abstract in the config targeting the same conference.
func ExpectedAbstractID(paper model.Submission, cfg *model.Config) string {
	if strings.Contains(paper.ID, "-pap-") {
		derived := strings.Replace(paper.ID, "-pap-", "-abs-", 1)
		if cfg.Submission(derived) != nil {
			return derived
		}
	}
	for _, dep := range paper.DependsOn {
		if d := cfg.Submission(dep); d != nil && d.Kind == model.KindAbstract {
			return dep
		}
	}
	for _, cand := range cfg.Submissions {
		if cand.Kind == model.KindAbstract && cand.ConferenceID == paper.ConferenceID {
			return cand.ID
		}
	}
	return ""
}

// DependenciesSatisfiedAt is the single-submission dependency check used by
// the oracle: every dependency must be scheduled and finish no later than
// day plus the submission's allowed lead time.
func DependenciesSatisfiedAt(sub model.Submission, day time.Time, s model.Schedule, cfg *model.Config) bool {
	if len(sub.DependsOn) == 0 {
		return true
	}
	allowed := day.AddDate(0, 0, sub.LeadTimeFromParents)
	for _, depID := range sub.DependsOn {
		depIV, ok := s[depID]
		if !ok {
			return false
		}
		if depIV.End.After(allowed) {
			return false
		}
	}
	return true
}
