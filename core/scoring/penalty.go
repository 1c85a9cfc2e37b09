// Package scoring turns a schedule and its validation report into numbers:
// a priced penalty breakdown, a quality score and an efficiency score. Every
// price comes from the config's penalty cost table so callers can tune the
// economics without touching code.
package scoring

import (
	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

// PenaltyBreakdown itemises the penalty by category. Total is the sum of
// all categories minus the earliness bonus, floored at zero.
type PenaltyBreakdown struct {
	Deadline         float64 `json:"deadline"`
	Dependency       float64 `json:"dependency"`
	Resource         float64 `json:"resource"`
	Venue            float64 `json:"venue"`
	AbstractPaper    float64 `json:"abstract_paper"`
	Blackout         float64 `json:"blackout"`
	SoftBlock        float64 `json:"soft_block"`
	SingleConference float64 `json:"single_conference"`
	LeadTime         float64 `json:"lead_time"`
	SlackCost        float64 `json:"slack_cost"`
	EarlinessBonus   float64 `json:"earliness_bonus"`
	Total            float64 `json:"total"`
}

// Penalty prices a schedule against its validation report.
func Penalty(s model.Schedule, report model.Report, cfg *model.Config) PenaltyBreakdown {
	b := PenaltyBreakdown{
		Deadline:         deadlinePenalty(report, cfg),
		Dependency:       dependencyPenalty(report, cfg),
		Resource:         resourcePenalty(report, cfg),
		Venue:            venuePenalty(report, cfg),
		AbstractPaper:    abstractPaperPenalty(report, cfg),
		Blackout:         blackoutPenalty(report, cfg),
		SoftBlock:        softBlockPenalty(report, cfg),
		SingleConference: singleConferencePenalty(report, cfg),
		LeadTime:         leadTimePenalty(report, cfg),
		SlackCost:        SlackCost(s, cfg),
		EarlinessBonus:   earlinessBonus(s, cfg),
	}
	b.Total = b.Deadline + b.Dependency + b.Resource + b.Venue + b.AbstractPaper +
		b.Blackout + b.SoftBlock + b.SingleConference + b.LeadTime + b.SlackCost -
		b.EarlinessBonus
	if b.Total < 0 {
		b.Total = 0
	}
	return b
}

// deadlinePenalty prices lateness per day, honoring per-submission cost
// overrides.
func deadlinePenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilyDeadline)
	if res == nil {
		return 0
	}
	total := 0.0
	for _, v := range res.Violations {
		if v.Issue != validate.IssueDeadlineMissed {
			continue
		}
		perDay := cfg.PenaltyCosts.DefaultPenaltyPerDay
		if sub := cfg.Submission(v.SubmissionID); sub != nil && sub.PenaltyCostPerDay > 0 {
			perDay = sub.PenaltyCostPerDay
		}
		total += float64(v.DaysLate) * perDay
	}
	return total
}

func dependencyPenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilyDependency)
	if res == nil {
		return 0
	}
	total := 0.0
	for _, v := range res.Violations {
		switch v.Issue {
		case validate.IssueTimingViolation:
			total += float64(v.DaysViolation) * cfg.PenaltyCosts.DependencyViolationPerDay
		case validate.IssueMissingDependency, validate.IssueInvalidDependency:
			total += cfg.PenaltyCosts.MissingDependencyPenalty
		}
	}
	return total
}

func resourcePenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilyResource)
	if res == nil {
		return 0
	}
	total := 0.0
	for _, v := range res.Violations {
		total += float64(v.Excess) * cfg.PenaltyCosts.ResourceViolationPenalty
	}
	return total
}

func venuePenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilyVenue)
	if res == nil {
		return 0
	}
	return float64(len(res.Violations)) * cfg.PenaltyCosts.ConferenceCompatibility
}

// abstractPaperPenalty prices broken abstract-then-paper chains, reported
// inside the dependency family.
func abstractPaperPenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilyDependency)
	if res == nil {
		return 0
	}
	total := 0.0
	for _, v := range res.Violations {
		switch v.Issue {
		case validate.IssueMissingAbstract, validate.IssueAbstractTiming, validate.IssueUnlinkedAbstract:
			total += cfg.PenaltyCosts.AbstractPaperDependency
		}
	}
	return total
}

// blackoutPenalty scales the flat price by severity.
func blackoutPenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilyDeadline)
	if res == nil {
		return 0
	}
	total := 0.0
	for _, v := range res.Violations {
		if v.Issue != validate.IssueBlackout {
			continue
		}
		total += cfg.PenaltyCosts.BlackoutViolationPenalty * severityScale(v.Severity)
	}
	return total
}

func severityScale(s model.Severity) float64 {
	switch s {
	case model.SeverityHigh:
		return 2
	case model.SeverityMedium:
		return 1
	default:
		return 0.5
	}
}

func softBlockPenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilySoftBlock)
	if res == nil {
		return 0
	}
	return float64(len(res.Violations)) * cfg.PenaltyCosts.SoftBlockViolationPenalty
}

// singleConferencePenalty weighs top-tier venues heavier.
func singleConferencePenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilySingleConference)
	if res == nil {
		return 0
	}
	total := 0.0
	for _, v := range res.Violations {
		p := cfg.PenaltyCosts.SingleConferenceViolation
		if cfg.IsTopTier(v.ConferenceID) {
			p *= cfg.PenaltyCosts.TopTierViolationMultiplier
		}
		total += p
	}
	return total
}

func leadTimePenalty(report model.Report, cfg *model.Config) float64 {
	res := report.Family(model.FamilyDeadline)
	if res == nil {
		return 0
	}
	total := 0.0
	for _, v := range res.Violations {
		if v.Issue == validate.IssueLeadTime {
			total += cfg.PenaltyCosts.LeadTimeViolationPenalty
		}
	}
	return total
}

// earlinessBonus rewards finishing ahead of deadlines when the config prices
// early completion.
func earlinessBonus(s model.Schedule, cfg *model.Config) float64 {
	perDay := cfg.PenaltyCosts.EarlyCompletionBonusPerDay
	if perDay <= 0 {
		return 0
	}
	total := 0.0
	for _, sid := range s.IDs() {
		sub := cfg.Submission(sid)
		if sub == nil || sub.ConferenceID == "" {
			continue
		}
		conf := cfg.Conference(sub.ConferenceID)
		if conf == nil {
			continue
		}
		deadline, ok := conf.Deadline(sub.Kind)
		if !ok {
			continue
		}
		if early := model.DaysBetween(s[sid].End, deadline); early > 0 {
			total += float64(early) * perDay
		}
	}
	return total
}

// SlackCost prices the opportunity cost of slipping past a submission's own
// earliest start date: a monthly slip charge, a one-time full-year deferral
// at the configured threshold, and a kind-based missed-opportunity charge
// once the slip crosses the relevant cut-off. Submissions without an
// earliest start date carry no slack cost.
func SlackCost(s model.Schedule, cfg *model.Config) float64 {
	total := 0.0
	for _, sid := range s.IDs() {
		sub := cfg.Submission(sid)
		if sub == nil || sub.EarliestStart.IsZero() {
			continue
		}
		months := model.DaysBetween(sub.EarliestStart, s[sid].Start) / model.DaysPerMonth
		if months <= 0 {
			continue
		}

		total += float64(months) * cfg.PenaltyCosts.MonthlySlipPenalty
		if months >= cfg.SlackThresholds.FullYearDeferralMonths {
			total += cfg.PenaltyCosts.FullYearDeferralPenalty
		}
		total += missedOpportunity(sub, months, cfg)
	}
	return total
}

// missedOpportunity branches on the submission kind: a slipping paper at an
// abstract-then-paper venue forfeits that cycle's abstract+paper slot, at any
// other venue the cheaper poster slot; a slipping abstract forfeits a poster
// slot; posters forfeit nothing. Papers without a venue forfeit a generic
// abstract opportunity.
func missedOpportunity(sub *model.Submission, months int, cfg *model.Config) float64 {
	costs, th := cfg.PenaltyCosts, cfg.SlackThresholds
	conf := cfg.Conference(sub.ConferenceID)

	switch sub.Kind {
	case model.KindPaper:
		switch {
		case conf == nil:
			if months >= th.MissedPaperMonths {
				return costs.MissedAbstractPenalty
			}
		case conf.RequiresAbstractBeforePaper():
			if months >= th.MissedAbstractPaperMonths {
				return costs.MissedAbstractPaperPenalty
			}
		default:
			if months >= th.MissedPosterMonths {
				return costs.MissedPosterPenalty
			}
		}
	case model.KindAbstract:
		if months >= th.MissedAbstractMonths {
			return costs.MissedPosterPenalty
		}
	}
	return 0
}

// Score is the one-call wrapper used by comparison runs: it validates the
// schedule and prices it in one pass.
func Score(s model.Schedule, cfg *model.Config) (model.Report, PenaltyBreakdown) {
	report := validate.Schedule(s, cfg)
	return report, Penalty(s, report, cfg)
}
