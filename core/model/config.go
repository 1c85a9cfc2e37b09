package model

import (
	"fmt"
	"time"
)

// PenaltyCosts prices every penalty category. Zero values fall back to the
// reference defaults via Defaults, so categories are always driven by
// configuration, never hard-coded at the call site.
type PenaltyCosts struct {
	DefaultPenaltyPerDay        float64 `json:"default_penalty_per_day"`
	MissingDependencyPenalty    float64 `json:"missing_dependency_penalty"`
	DependencyViolationPerDay   float64 `json:"dependency_violation_per_day"`
	ResourceViolationPenalty    float64 `json:"resource_violation_penalty"`
	ConferenceCompatibility     float64 `json:"conference_compatibility_penalty"`
	AbstractPaperDependency     float64 `json:"abstract_paper_dependency_penalty"`
	BlackoutViolationPenalty    float64 `json:"blackout_violation_penalty"`
	SoftBlockViolationPenalty   float64 `json:"soft_block_violation_penalty"`
	SingleConferenceViolation   float64 `json:"single_conference_violation_penalty"`
	LeadTimeViolationPenalty    float64 `json:"lead_time_violation_penalty"`
	MonthlySlipPenalty          float64 `json:"default_monthly_slip_penalty"`
	FullYearDeferralPenalty     float64 `json:"default_full_year_deferral_penalty"`
	MissedAbstractPenalty       float64 `json:"missed_abstract_penalty"`
	MissedPosterPenalty         float64 `json:"missed_poster_penalty"`
	MissedAbstractPaperPenalty  float64 `json:"missed_abstract_paper_penalty"`
	EarlyCompletionBonusPerDay  float64 `json:"early_completion_bonus_per_day"`
	TopTierViolationMultiplier  float64 `json:"top_tier_violation_multiplier"`
}

// DefaultPenaltyCosts returns the reference price table.
func DefaultPenaltyCosts() PenaltyCosts {
	return PenaltyCosts{
		DefaultPenaltyPerDay:       100,
		MissingDependencyPenalty:   1000,
		DependencyViolationPerDay:  50,
		ResourceViolationPenalty:   200,
		ConferenceCompatibility:    300,
		AbstractPaperDependency:    400,
		BlackoutViolationPenalty:   100,
		SoftBlockViolationPenalty:  200,
		SingleConferenceViolation:  500,
		LeadTimeViolationPenalty:   150,
		MonthlySlipPenalty:         1000,
		FullYearDeferralPenalty:    5000,
		MissedAbstractPenalty:      3000,
		MissedPosterPenalty:        2000,
		MissedAbstractPaperPenalty: 4000,
		EarlyCompletionBonusPerDay: 0,
		TopTierViolationMultiplier: 1.5,
	}
}

// SlackThresholds hold the month cut-offs for the slack-cost opportunity
// penalties. The values are domain heuristics carried over from the reference
// system and deliberately configurable rather than re-derived.
type SlackThresholds struct {
	FullYearDeferralMonths    int `json:"full_year_deferral_months"`
	MissedAbstractPaperMonths int `json:"missed_abstract_paper_months"`
	MissedPaperMonths         int `json:"missed_paper_months"`
	MissedPosterMonths        int `json:"missed_poster_months"`
	MissedAbstractMonths      int `json:"missed_abstract_months"`
}

// DefaultSlackThresholds returns the reference month cut-offs.
func DefaultSlackThresholds() SlackThresholds {
	return SlackThresholds{
		FullYearDeferralMonths:    12,
		MissedAbstractPaperMonths: 6,
		MissedPaperMonths:         6,
		MissedPosterMonths:        4,
		MissedAbstractMonths:      3,
	}
}

// Options are the scheduling toggles every strategy honors.
type Options struct {
	EnableBlackoutPeriods         bool    `json:"enable_blackout_periods"`
	EnableEarlyAbstractScheduling bool    `json:"enable_early_abstract_scheduling"`
	EnforceSoftBlocks             bool    `json:"enforce_soft_blocks"`
	AbstractAdvanceDays           int     `json:"abstract_advance_days"`
	RandomnessFactor              float64 `json:"randomness_factor"`
	LookaheadBonusIncrement       float64 `json:"lookahead_bonus_increment"`
	LookaheadDays                 int     `json:"lookahead_days"`
	MaxBacktracks                 int     `json:"max_backtracks"`
}

// DefaultOptions returns the reference scheduling toggles.
func DefaultOptions() Options {
	return Options{
		AbstractAdvanceDays:     30,
		RandomnessFactor:        0.1,
		LookaheadBonusIncrement: 0.5,
		LookaheadDays:           30,
		MaxBacktracks:           5,
	}
}

// Config aggregates all submissions, conferences and global knobs. It is a
// read-only input for every validator, strategy and scorer; Validate is run
// once at the config boundary so downstream code can assume the invariants
// hold unconditionally.
type Config struct {
	Submissions []Submission
	Conferences []Conference

	MinAbstractLeadTimeDays    int
	MinPaperLeadTimeDays       int
	MaxConcurrentSubmissions   int
	DefaultPaperLeadTimeMonths int

	BlackoutDates []time.Time

	PenaltyCosts    PenaltyCosts
	SlackThresholds SlackThresholds
	PriorityWeights map[string]float64
	Options         Options

	// SchedulingStart overrides the derived window start when non-zero.
	SchedulingStart time.Time

	// TopTierConferences flags venues whose single-conference violations
	// carry extra weight.
	TopTierConferences []string
}

// Clone returns an independent deep copy; comparison runs hand one to each
// strategy so nothing shared crosses a strategy boundary.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Submissions = make([]Submission, len(c.Submissions))
	for i, s := range c.Submissions {
		s.DependsOn = append([]string(nil), s.DependsOn...)
		s.CandidateConferences = append([]string(nil), s.CandidateConferences...)
		s.CandidateKinds = append([]SubmissionKind(nil), s.CandidateKinds...)
		cp.Submissions[i] = s
	}
	cp.Conferences = make([]Conference, len(c.Conferences))
	for i, conf := range c.Conferences {
		if conf.Deadlines != nil {
			dl := make(map[SubmissionKind]time.Time, len(conf.Deadlines))
			for k, v := range conf.Deadlines {
				dl[k] = v
			}
			conf.Deadlines = dl
		}
		cp.Conferences[i] = conf
	}
	cp.BlackoutDates = append([]time.Time(nil), c.BlackoutDates...)
	cp.TopTierConferences = append([]string(nil), c.TopTierConferences...)
	if c.PriorityWeights != nil {
		pw := make(map[string]float64, len(c.PriorityWeights))
		for k, v := range c.PriorityWeights {
			pw[k] = v
		}
		cp.PriorityWeights = pw
	}
	return &cp
}

// Submission returns the submission with the given id, nil when absent.
func (c *Config) Submission(id string) *Submission {
	for i := range c.Submissions {
		if c.Submissions[i].ID == id {
			return &c.Submissions[i]
		}
	}
	return nil
}

// Conference returns the conference with the given id, nil when absent.
func (c *Config) Conference(id string) *Conference {
	for i := range c.Conferences {
		if c.Conferences[i].ID == id {
			return &c.Conferences[i]
		}
	}
	return nil
}

// IsBlackout reports whether day is a configured blackout date. Always false
// when blackout periods are disabled.
func (c *Config) IsBlackout(day time.Time) bool {
	if !c.Options.EnableBlackoutPeriods {
		return false
	}
	for _, b := range c.BlackoutDates {
		if b.Equal(day) {
			return true
		}
	}
	return false
}

// IsTopTier reports whether the conference is flagged as top tier.
func (c *Config) IsTopTier(conferenceID string) bool {
	for _, id := range c.TopTierConferences {
		if id == conferenceID {
			return true
		}
	}
	return false
}

// WindowStart is the first day strategies consider: the explicit scheduling
// start when set, otherwise the earliest declared earliest-start date,
// otherwise the earliest deadline minus the longest paper window.
func (c *Config) WindowStart() time.Time {
	if !c.SchedulingStart.IsZero() {
		return c.SchedulingStart
	}
	var min time.Time
	for _, s := range c.Submissions {
		if s.EarliestStart.IsZero() {
			continue
		}
		if min.IsZero() || s.EarliestStart.Before(min) {
			min = s.EarliestStart
		}
	}
	if !min.IsZero() {
		return min
	}
	var dl time.Time
	for _, conf := range c.Conferences {
		for _, d := range conf.Deadlines {
			if dl.IsZero() || d.Before(dl) {
				dl = d
			}
		}
	}
	if dl.IsZero() {
		return Day(time.Now().UTC().Year(), time.Now().UTC().Month(), time.Now().UTC().Day())
	}
	return dl.AddDate(0, -c.DefaultPaperLeadTimeMonths, 0).AddDate(0, 0, -c.MinPaperLeadTimeDays)
}

// WindowEnd is the last day strategies consider: the latest deadline plus a
// paper-length buffer, or a year past the window start when no deadline exists.
func (c *Config) WindowEnd() time.Time {
	var max time.Time
	for _, conf := range c.Conferences {
		for _, d := range conf.Deadlines {
			if d.After(max) {
				max = d
			}
		}
	}
	if max.IsZero() {
		return c.WindowStart().AddDate(1, 0, 0)
	}
	return max.AddDate(0, 0, 2*c.MinPaperLeadTimeDays)
}

// Validate reports the first configuration error: duplicate ids, dangling
// references, negative durations, a non-positive concurrency limit or a
// circular dependency chain. A nil error means every downstream invariant
// holds.
func (c *Config) Validate() error {
	if c.MinAbstractLeadTimeDays < 0 {
		return fmt.Errorf("min abstract lead time cannot be negative")
	}
	if c.MinPaperLeadTimeDays < 0 {
		return fmt.Errorf("min paper lead time cannot be negative")
	}
	if c.MaxConcurrentSubmissions < 1 {
		return fmt.Errorf("max concurrent submissions must be at least 1")
	}
	if c.DefaultPaperLeadTimeMonths < 0 {
		return fmt.Errorf("default paper lead time months cannot be negative")
	}

	confIDs := make(map[string]bool, len(c.Conferences))
	for _, conf := range c.Conferences {
		if err := conf.Validate(); err != nil {
			return err
		}
		if confIDs[conf.ID] {
			return fmt.Errorf("duplicate conference id %s", conf.ID)
		}
		confIDs[conf.ID] = true
	}

	subIDs := make(map[string]bool, len(c.Submissions))
	for _, sub := range c.Submissions {
		if err := sub.Validate(); err != nil {
			return err
		}
		if subIDs[sub.ID] {
			return fmt.Errorf("duplicate submission id %s", sub.ID)
		}
		subIDs[sub.ID] = true
	}

	for _, sub := range c.Submissions {
		if sub.ConferenceID != "" && !confIDs[sub.ConferenceID] {
			return fmt.Errorf("submission %s references unknown conference %s", sub.ID, sub.ConferenceID)
		}
		for _, cand := range sub.CandidateConferences {
			if !confIDs[cand] {
				return fmt.Errorf("submission %s lists unknown candidate conference %s", sub.ID, cand)
			}
		}
		for _, dep := range sub.DependsOn {
			if !subIDs[dep] {
				return fmt.Errorf("submission %s depends on nonexistent submission %s", sub.ID, dep)
			}
		}
	}

	if cycle := c.findDependencyCycle(); len(cycle) > 0 {
		return fmt.Errorf("circular dependency chain: %v", cycle)
	}
	return nil
}

// findDependencyCycle walks the dependency graph with three-color DFS and
// returns the first cycle found, nil when the graph is acyclic.
func (c *Config) findDependencyCycle() []string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(c.Submissions))
	deps := make(map[string][]string, len(c.Submissions))
	for _, s := range c.Submissions {
		deps[s.ID] = s.DependsOn
	}

	var stack []string
	var cycle []string
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, dep := range deps[id] {
			switch color[dep] {
			case gray:
				for i, v := range stack {
					if v == dep {
						cycle = append(append([]string{}, stack[i:]...), dep)
						return true
					}
				}
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, s := range c.Submissions {
		if color[s.ID] == white && visit(s.ID) {
			return cycle
		}
	}
	return nil
}
