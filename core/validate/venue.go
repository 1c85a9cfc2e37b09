package validate

import (
	"fmt"
	"sort"

	"github.com/jmottin/subsched/core/model"
)

// Issue tags used inside the venue family.
const (
	IssueUnknownConference = "unknown_conference"
	IssueKindNotAccepted   = "kind_not_accepted"
	IssueTypeMismatch      = "type_mismatch"
	IssueAnnualCycle       = "annual_cycle"
)

// Venues verifies conference compatibility: every scheduled submission that
// targets a conference must target one that exists, accepts the submission's
// kind under its workflow, and matches its engineering orientation.
func Venues(s model.Schedule, cfg *model.Config) model.ValidationResult {
	res := model.ValidationResult{Family: model.FamilyVenue, Valid: true, Rate: 100}

	for _, sid := range s.IDs() {
		sub := cfg.Submission(sid)
		if sub == nil || sub.ConferenceID == "" {
			continue
		}
		res.Total++

		conf := cfg.Conference(sub.ConferenceID)
		if conf == nil {
			res.Violations = append(res.Violations, model.Violation{
				SubmissionID: sid,
				ConferenceID: sub.ConferenceID,
				Description:  fmt.Sprintf("conference %s not found in config", sub.ConferenceID),
				Severity:     model.SeverityHigh,
				Issue:        IssueUnknownConference,
			})
			continue
		}
		if !conf.Accepts(sub.Kind) {
			res.Violations = append(res.Violations, model.Violation{
				SubmissionID: sid,
				ConferenceID: conf.ID,
				Description:  fmt.Sprintf("conference %s does not accept %s submissions", conf.ID, sub.Kind),
				Severity:     model.SeverityHigh,
				Issue:        IssueKindNotAccepted,
			})
			continue
		}
		if !sub.Engineering && conf.Type == model.ConferenceEngineering {
			res.Violations = append(res.Violations, model.Violation{
				SubmissionID: sid,
				ConferenceID: conf.ID,
				Description:  fmt.Sprintf("non-engineering submission %s targets engineering venue %s", sid, conf.ID),
				Severity:     model.SeverityMedium,
				Issue:        IssueTypeMismatch,
			})
			continue
		}
		res.Compliant++
	}

	res.Valid = len(res.Violations) == 0
	if res.Total > 0 {
		res.Rate = float64(res.Compliant) / float64(res.Total) * 100
	}
	res.Summary = fmt.Sprintf("%d/%d venue targets compatible (%.1f%%)", res.Compliant, res.Total, res.Rate)
	return res
}

// SingleConference enforces the annual-cycle rule: two papers at the same
// conference must start at least 365 days apart. Papers are ordered by start
// and each adjacent pair is checked once.
func SingleConference(s model.Schedule, cfg *model.Config) model.ValidationResult {
	res := model.ValidationResult{Family: model.FamilySingleConference, Valid: true, Rate: 100}

	byConf := map[string][]string{}
	for _, sid := range s.IDs() {
		sub := cfg.Submission(sid)
		if sub == nil || sub.Kind != model.KindPaper || sub.ConferenceID == "" {
			continue
		}
		byConf[sub.ConferenceID] = append(byConf[sub.ConferenceID], sid)
	}

	confs := make([]string, 0, len(byConf))
	for cid := range byConf {
		confs = append(confs, cid)
	}
	sort.Strings(confs)

	for _, cid := range confs {
		papers := byConf[cid]
		sort.Slice(papers, func(i, j int) bool {
			a, b := s[papers[i]], s[papers[j]]
			if !a.Start.Equal(b.Start) {
				return a.Start.Before(b.Start)
			}
			return papers[i] < papers[j]
		})
		for i := 1; i < len(papers); i++ {
			res.Total++
			gap := model.DaysBetween(s[papers[i-1]].Start, s[papers[i]].Start)
			if gap < model.SingleConferenceCycleDays {
				res.Violations = append(res.Violations, model.Violation{
					SubmissionID: papers[i],
					ConferenceID: cid,
					Description:  fmt.Sprintf("papers %s and %s at %s start %d days apart (minimum %d)", papers[i-1], papers[i], cid, gap, model.SingleConferenceCycleDays),
					Severity:     model.SeverityHigh,
					FirstPaper:   papers[i-1],
					SecondPaper:  papers[i],
					DaysBetween:  gap,
					Issue:        IssueAnnualCycle,
				})
				continue
			}
			res.Compliant++
		}
	}

	res.Valid = len(res.Violations) == 0
	if res.Total > 0 {
		res.Rate = float64(res.Compliant) / float64(res.Total) * 100
	}
	res.Summary = fmt.Sprintf("%d/%d same-conference paper pairs a year apart (%.1f%%)", res.Compliant, res.Total, res.Rate)
	return res
}
