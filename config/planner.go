package config

import (
	"fmt"
	"time"

	"github.com/jmottin/subsched/core/model"
)

// dateLayout is the calendar-day format used everywhere in config files.
const dateLayout = "2006-01-02"

// SubmissionConfig is the on-disk shape of a submission.
type SubmissionConfig struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Kind                 string   `json:"kind"`
	ConferenceID         string   `json:"conference_id"`
	DependsOn            []string `json:"depends_on"`
	DraftWindowMonths    int      `json:"draft_window_months"`
	LeadTimeFromParents  int      `json:"lead_time_from_parents"`
	EarliestStartDate    string   `json:"earliest_start_date"`
	PenaltyCostPerDay    float64  `json:"penalty_cost_per_day"`
	Engineering          bool     `json:"engineering"`
	CandidateConferences []string `json:"candidate_conferences"`
	CandidateKinds       []string `json:"candidate_kinds"`
}

// ConferenceConfig is the on-disk shape of a conference.
type ConferenceConfig struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Recurrence string            `json:"recurrence"`
	// Deadlines maps submission kinds to calendar days.
	Deadlines map[string]string `json:"deadlines"`
	// SubmissionTypes overrides the workflow inferred from the deadlines.
	SubmissionTypes string `json:"submission_types"`
}

// PlannerConfig is the on-disk shape of the whole planning problem.
type PlannerConfig struct {
	Submissions []SubmissionConfig `json:"submissions"`
	Conferences []ConferenceConfig `json:"conferences"`

	MinAbstractLeadTimeDays    int `json:"min_abstract_lead_time_days"`
	MinPaperLeadTimeDays       int `json:"min_paper_lead_time_days"`
	MaxConcurrentSubmissions   int `json:"max_concurrent_submissions"`
	DefaultPaperLeadTimeMonths int `json:"default_paper_lead_time_months"`

	BlackoutDates      []string `json:"blackout_dates"`
	SchedulingStart    string   `json:"scheduling_start"`
	TopTierConferences []string `json:"top_tier_conferences"`

	PenaltyCosts    model.PenaltyCosts    `json:"penalty_costs"`
	SlackThresholds model.SlackThresholds `json:"slack_thresholds"`
	PriorityWeights map[string]float64    `json:"priority_weights"`
	Options         model.Options         `json:"options"`

	// Strategy and Seed pick the default scheduling run.
	Strategy string `json:"strategy"`
	Seed     int64  `json:"seed"`
}

// SetDefaults fills unset knobs with the reference values. A zero value in
// the cost table means "use the default"; silencing a category entirely is
// done by raising thresholds instead.
func (c *PlannerConfig) SetDefaults() {
	if c.MinAbstractLeadTimeDays == 0 {
		c.MinAbstractLeadTimeDays = 14
	}
	if c.MinPaperLeadTimeDays == 0 {
		c.MinPaperLeadTimeDays = 90
	}
	if c.MaxConcurrentSubmissions == 0 {
		c.MaxConcurrentSubmissions = 3
	}
	if c.DefaultPaperLeadTimeMonths == 0 {
		c.DefaultPaperLeadTimeMonths = 3
	}
	if c.Strategy == "" {
		c.Strategy = "greedy"
	}
	if c.PriorityWeights == nil {
		c.PriorityWeights = map[string]float64{
			"paper":             3,
			"poster":            2,
			"abstract":          1,
			"engineering_paper": 2,
		}
	}

	defCosts := model.DefaultPenaltyCosts()
	mergeCosts(&c.PenaltyCosts, defCosts)
	defTh := model.DefaultSlackThresholds()
	if c.SlackThresholds.FullYearDeferralMonths == 0 {
		c.SlackThresholds.FullYearDeferralMonths = defTh.FullYearDeferralMonths
	}
	if c.SlackThresholds.MissedAbstractPaperMonths == 0 {
		c.SlackThresholds.MissedAbstractPaperMonths = defTh.MissedAbstractPaperMonths
	}
	if c.SlackThresholds.MissedPaperMonths == 0 {
		c.SlackThresholds.MissedPaperMonths = defTh.MissedPaperMonths
	}
	if c.SlackThresholds.MissedPosterMonths == 0 {
		c.SlackThresholds.MissedPosterMonths = defTh.MissedPosterMonths
	}
	if c.SlackThresholds.MissedAbstractMonths == 0 {
		c.SlackThresholds.MissedAbstractMonths = defTh.MissedAbstractMonths
	}

	defOpts := model.DefaultOptions()
	if c.Options.AbstractAdvanceDays == 0 {
		c.Options.AbstractAdvanceDays = defOpts.AbstractAdvanceDays
	}
	if c.Options.RandomnessFactor == 0 {
		c.Options.RandomnessFactor = defOpts.RandomnessFactor
	}
	if c.Options.LookaheadBonusIncrement == 0 {
		c.Options.LookaheadBonusIncrement = defOpts.LookaheadBonusIncrement
	}
	if c.Options.LookaheadDays == 0 {
		c.Options.LookaheadDays = defOpts.LookaheadDays
	}
	if c.Options.MaxBacktracks == 0 {
		c.Options.MaxBacktracks = defOpts.MaxBacktracks
	}
}

func mergeCosts(c *model.PenaltyCosts, def model.PenaltyCosts) {
	merge := func(dst *float64, d float64) {
		if *dst == 0 {
			*dst = d
		}
	}
	merge(&c.DefaultPenaltyPerDay, def.DefaultPenaltyPerDay)
	merge(&c.MissingDependencyPenalty, def.MissingDependencyPenalty)
	merge(&c.DependencyViolationPerDay, def.DependencyViolationPerDay)
	merge(&c.ResourceViolationPenalty, def.ResourceViolationPenalty)
	merge(&c.ConferenceCompatibility, def.ConferenceCompatibility)
	merge(&c.AbstractPaperDependency, def.AbstractPaperDependency)
	merge(&c.BlackoutViolationPenalty, def.BlackoutViolationPenalty)
	merge(&c.SoftBlockViolationPenalty, def.SoftBlockViolationPenalty)
	merge(&c.SingleConferenceViolation, def.SingleConferenceViolation)
	merge(&c.LeadTimeViolationPenalty, def.LeadTimeViolationPenalty)
	merge(&c.MonthlySlipPenalty, def.MonthlySlipPenalty)
	merge(&c.FullYearDeferralPenalty, def.FullYearDeferralPenalty)
	merge(&c.MissedAbstractPenalty, def.MissedAbstractPenalty)
	merge(&c.MissedPosterPenalty, def.MissedPosterPenalty)
	merge(&c.MissedAbstractPaperPenalty, def.MissedAbstractPaperPenalty)
	merge(&c.TopTierViolationMultiplier, def.TopTierViolationMultiplier)
}

// Validate performs the boundary checks that need only the raw strings; the
// deep referential checks run on the converted model.
func (c PlannerConfig) Validate() error {
	for _, s := range c.Submissions {
		if _, err := model.ParseSubmissionKind(s.Kind); err != nil {
			return fmt.Errorf("submission %s: %w", s.ID, err)
		}
		if s.EarliestStartDate != "" {
			if _, err := time.Parse(dateLayout, s.EarliestStartDate); err != nil {
				return fmt.Errorf("submission %s: bad earliest_start_date: %w", s.ID, err)
			}
		}
		for _, k := range s.CandidateKinds {
			if _, err := model.ParseSubmissionKind(k); err != nil {
				return fmt.Errorf("submission %s: %w", s.ID, err)
			}
		}
	}
	for _, conf := range c.Conferences {
		if _, err := model.ParseConferenceType(conf.Type); err != nil {
			return fmt.Errorf("conference %s: %w", conf.ID, err)
		}
		if conf.Recurrence != "" {
			if _, err := model.ParseRecurrence(conf.Recurrence); err != nil {
				return fmt.Errorf("conference %s: %w", conf.ID, err)
			}
		}
		if conf.SubmissionTypes != "" {
			if _, err := model.ParseWorkflow(conf.SubmissionTypes); err != nil {
				return fmt.Errorf("conference %s: %w", conf.ID, err)
			}
		}
		for kind, day := range conf.Deadlines {
			if _, err := model.ParseSubmissionKind(kind); err != nil {
				return fmt.Errorf("conference %s: %w", conf.ID, err)
			}
			if _, err := time.Parse(dateLayout, day); err != nil {
				return fmt.Errorf("conference %s: bad %s deadline: %w", conf.ID, kind, err)
			}
		}
	}
	for _, day := range c.BlackoutDates {
		if _, err := time.Parse(dateLayout, day); err != nil {
			return fmt.Errorf("bad blackout date: %w", err)
		}
	}
	if c.SchedulingStart != "" {
		if _, err := time.Parse(dateLayout, c.SchedulingStart); err != nil {
			return fmt.Errorf("bad scheduling_start: %w", err)
		}
	}
	return nil
}

// ToModel converts the validated file shape into the core model and runs the
// model's own referential validation.
func (c PlannerConfig) ToModel() (*model.Config, error) {
	out := &model.Config{
		MinAbstractLeadTimeDays:    c.MinAbstractLeadTimeDays,
		MinPaperLeadTimeDays:       c.MinPaperLeadTimeDays,
		MaxConcurrentSubmissions:   c.MaxConcurrentSubmissions,
		DefaultPaperLeadTimeMonths: c.DefaultPaperLeadTimeMonths,
		PenaltyCosts:               c.PenaltyCosts,
		SlackThresholds:            c.SlackThresholds,
		PriorityWeights:            c.PriorityWeights,
		Options:                    c.Options,
		TopTierConferences:         c.TopTierConferences,
	}

	for _, sc := range c.Submissions {
		kind, err := model.ParseSubmissionKind(sc.Kind)
		if err != nil {
			return nil, err
		}
		sub := model.Submission{
			ID:                   sc.ID,
			Title:                sc.Title,
			Kind:                 kind,
			ConferenceID:         sc.ConferenceID,
			DependsOn:            sc.DependsOn,
			DraftWindowMonths:    sc.DraftWindowMonths,
			LeadTimeFromParents:  sc.LeadTimeFromParents,
			PenaltyCostPerDay:    sc.PenaltyCostPerDay,
			Engineering:          sc.Engineering,
			CandidateConferences: sc.CandidateConferences,
		}
		if sc.EarliestStartDate != "" {
			sub.EarliestStart, _ = time.Parse(dateLayout, sc.EarliestStartDate)
		}
		for _, k := range sc.CandidateKinds {
			kk, err := model.ParseSubmissionKind(k)
			if err != nil {
				return nil, err
			}
			sub.CandidateKinds = append(sub.CandidateKinds, kk)
		}
		out.Submissions = append(out.Submissions, sub)
	}

	for _, cc := range c.Conferences {
		ctype, err := model.ParseConferenceType(cc.Type)
		if err != nil {
			return nil, err
		}
		conf := model.Conference{
			ID:   cc.ID,
			Name: cc.Name,
			Type: ctype,
		}
		if cc.Recurrence != "" {
			conf.Recurrence, _ = model.ParseRecurrence(cc.Recurrence)
		}
		if cc.SubmissionTypes != "" {
			conf.SubmissionTypes, _ = model.ParseWorkflow(cc.SubmissionTypes)
		}
		if len(cc.Deadlines) > 0 {
			conf.Deadlines = make(map[model.SubmissionKind]time.Time, len(cc.Deadlines))
			for kind, day := range cc.Deadlines {
				kk, err := model.ParseSubmissionKind(kind)
				if err != nil {
					return nil, err
				}
				d, err := time.Parse(dateLayout, day)
				if err != nil {
					return nil, err
				}
				conf.Deadlines[kk] = d
			}
		}
		out.Conferences = append(out.Conferences, conf)
	}

	for _, day := range c.BlackoutDates {
		d, err := time.Parse(dateLayout, day)
		if err != nil {
			return nil, err
		}
		out.BlackoutDates = append(out.BlackoutDates, d)
	}
	if c.SchedulingStart != "" {
		out.SchedulingStart, _ = time.Parse(dateLayout, c.SchedulingStart)
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
