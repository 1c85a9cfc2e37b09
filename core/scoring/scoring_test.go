package scoring

import (
	"testing"
	"time"

	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

func scoreConfig() *model.Config {
	return &model.Config{
		MinAbstractLeadTimeDays:  14,
		MinPaperLeadTimeDays:     90,
		MaxConcurrentSubmissions: 2,
		SchedulingStart:          model.Day(2025, time.January, 1),
		PenaltyCosts:             model.DefaultPenaltyCosts(),
		SlackThresholds:          model.DefaultSlackThresholds(),
		PriorityWeights: map[string]float64{
			"paper": 3, "poster": 2, "abstract": 1, "engineering_paper": 2,
		},
	}
}

func withPaper(cfg *model.Config, deadline time.Time) {
	cfg.Conferences = []model.Conference{{
		ID:        "conf",
		Name:      "Conf",
		Deadlines: map[model.SubmissionKind]time.Time{model.KindPaper: deadline},
	}}
	cfg.Submissions = []model.Submission{
		{ID: "p", Title: "P", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
	}
}

func TestPenaltyCleanSchedule(t *testing.T) {
	cfg := scoreConfig()
	withPaper(cfg, model.Day(2025, time.June, 1))

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)

	_, penalty := Score(s, cfg)
	if penalty.Total != 0 {
		t.Fatalf("clean schedule penalty = %v, want 0\n%+v", penalty.Total, penalty)
	}
}

// More days late must never cost less.
func TestDeadlinePenaltyMonotonic(t *testing.T) {
	cfg := scoreConfig()
	deadline := model.Day(2025, time.June, 1)
	withPaper(cfg, deadline)

	prev := -1.0
	for _, daysLate := range []int{1, 5, 30} {
		s := make(model.Schedule)
		s.Place(cfg.Submissions[0], deadline.AddDate(0, 0, daysLate-90), cfg)
		report := validate.Schedule(s, cfg)
		b := Penalty(s, report, cfg)
		if b.Deadline <= prev {
			t.Fatalf("%d days late: deadline penalty %v not above %v", daysLate, b.Deadline, prev)
		}
		want := float64(daysLate) * cfg.PenaltyCosts.DefaultPenaltyPerDay
		if b.Deadline != want {
			t.Fatalf("%d days late: deadline penalty %v, want %v", daysLate, b.Deadline, want)
		}
		prev = b.Deadline
	}
}

func TestDeadlinePenaltyPerSubmissionOverride(t *testing.T) {
	cfg := scoreConfig()
	deadline := model.Day(2025, time.June, 1)
	withPaper(cfg, deadline)
	cfg.Submissions[0].PenaltyCostPerDay = 7

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], deadline.AddDate(0, 0, 10-90), cfg)

	report := validate.Schedule(s, cfg)
	if b := Penalty(s, report, cfg); b.Deadline != 70 {
		t.Fatalf("deadline penalty = %v, want 70", b.Deadline)
	}
}

func TestSingleConferenceTopTierMultiplier(t *testing.T) {
	build := func(topTier bool) float64 {
		cfg := scoreConfig()
		cfg.Conferences = []model.Conference{{
			ID:        "conf",
			Name:      "Conf",
			Deadlines: map[model.SubmissionKind]time.Time{model.KindPaper: model.Day(2026, time.June, 1)},
		}}
		cfg.Submissions = []model.Submission{
			{ID: "p1", Title: "P1", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
			{ID: "p2", Title: "P2", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
		}
		if topTier {
			cfg.TopTierConferences = []string{"conf"}
		}
		s := make(model.Schedule)
		s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)
		s.Place(cfg.Submissions[1], model.Day(2025, time.June, 1), cfg)
		report := validate.Schedule(s, cfg)
		return Penalty(s, report, cfg).SingleConference
	}

	plain := build(false)
	weighted := build(true)
	if plain != 500 {
		t.Fatalf("plain violation = %v, want 500", plain)
	}
	if weighted != 750 {
		t.Fatalf("top-tier violation = %v, want 750", weighted)
	}
}

// Slack costs only apply to submissions that declare an earliest start date;
// starting late relative to the window alone costs nothing.
func TestSlackCostNeedsEarliestStart(t *testing.T) {
	cfg := scoreConfig()
	withPaper(cfg, model.Day(2027, time.December, 1))

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.July, 1), cfg)
	if got := SlackCost(s, cfg); got != 0 {
		t.Fatalf("slack cost without earliest start = %v, want 0", got)
	}
}

func TestSlackCostThresholds(t *testing.T) {
	cfg := scoreConfig()
	withPaper(cfg, model.Day(2027, time.December, 1))
	earliest := model.Day(2025, time.January, 1)
	cfg.Submissions[0].EarliestStart = earliest

	place := func(monthsLate int) float64 {
		s := make(model.Schedule)
		s.Place(cfg.Submissions[0], earliest.AddDate(0, 0, monthsLate*model.DaysPerMonth), cfg)
		return SlackCost(s, cfg)
	}

	if got := place(0); got != 0 {
		t.Fatalf("on-time slack cost = %v, want 0", got)
	}
	if got := place(2); got != 2*cfg.PenaltyCosts.MonthlySlipPenalty {
		t.Fatalf("2-month slack cost = %v", got)
	}
	// A paper slipping past the poster cut-off at a paper-only venue forfeits
	// that cycle's poster slot.
	want4 := 4*cfg.PenaltyCosts.MonthlySlipPenalty + cfg.PenaltyCosts.MissedPosterPenalty
	if got := place(4); got != want4 {
		t.Fatalf("4-month slack cost = %v, want %v", got, want4)
	}
	// Past a year: the deferral penalty joins in.
	want12 := 12*cfg.PenaltyCosts.MonthlySlipPenalty +
		cfg.PenaltyCosts.FullYearDeferralPenalty +
		cfg.PenaltyCosts.MissedPosterPenalty
	if got := place(12); got != want12 {
		t.Fatalf("12-month slack cost = %v, want %v", got, want12)
	}
}

// The missed-opportunity charge branches on the submission kind, not the
// venue workflow alone.
func TestSlackCostMissedOpportunityByKind(t *testing.T) {
	earliest := model.Day(2025, time.January, 1)
	costs := model.DefaultPenaltyCosts()

	cases := []struct {
		name     string
		sub      model.Submission
		workflow model.Workflow
		months   int
		want     float64
	}{
		{
			name:     "paper at abstract-then-paper venue",
			sub:      model.Submission{ID: "s", Title: "S", Kind: model.KindPaper, ConferenceID: "conf"},
			workflow: model.WorkflowAbstractThenPaper,
			months:   6,
			want:     6*costs.MonthlySlipPenalty + costs.MissedAbstractPaperPenalty,
		},
		{
			name:     "abstract forfeits a poster slot",
			sub:      model.Submission{ID: "s", Title: "S", Kind: model.KindAbstract, ConferenceID: "conf"},
			workflow: model.WorkflowAbstractOnly,
			months:   3,
			want:     3*costs.MonthlySlipPenalty + costs.MissedPosterPenalty,
		},
		{
			name:     "abstract below its cut-off",
			sub:      model.Submission{ID: "s", Title: "S", Kind: model.KindAbstract, ConferenceID: "conf"},
			workflow: model.WorkflowAbstractOnly,
			months:   2,
			want:     2 * costs.MonthlySlipPenalty,
		},
		{
			name:   "unassigned paper forfeits an abstract opportunity",
			sub:    model.Submission{ID: "s", Title: "S", Kind: model.KindPaper, CandidateConferences: []string{"conf"}},
			months: 6,
			want:   6*costs.MonthlySlipPenalty + costs.MissedAbstractPenalty,
		},
		{
			name:     "poster forfeits nothing",
			sub:      model.Submission{ID: "s", Title: "S", Kind: model.KindPoster, ConferenceID: "conf"},
			workflow: model.WorkflowPosterOnly,
			months:   6,
			want:     6 * costs.MonthlySlipPenalty,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := scoreConfig()
			cfg.Conferences = []model.Conference{{
				ID:              "conf",
				Name:            "Conf",
				SubmissionTypes: tc.workflow,
				Deadlines:       map[model.SubmissionKind]time.Time{tc.sub.Kind: model.Day(2027, time.December, 1)},
			}}
			tc.sub.EarliestStart = earliest
			cfg.Submissions = []model.Submission{tc.sub}

			s := make(model.Schedule)
			s.Place(tc.sub, earliest.AddDate(0, 0, tc.months*model.DaysPerMonth), cfg)
			if got := SlackCost(s, cfg); got != tc.want {
				t.Fatalf("slack cost = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQualityScoreBounds(t *testing.T) {
	cfg := scoreConfig()
	withPaper(cfg, model.Day(2025, time.June, 1))

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)
	report := validate.Schedule(s, cfg)

	q := QualityScore(s, report, cfg)
	if q < 0 || q > 100 {
		t.Fatalf("quality = %v out of range", q)
	}
	// Clean single submission: full compliance plus trivial structure terms.
	if q != 100 {
		t.Fatalf("quality = %v, want 100", q)
	}
}

func TestQualityDegradesWhenLate(t *testing.T) {
	cfg := scoreConfig()
	deadline := model.Day(2025, time.June, 1)
	withPaper(cfg, deadline)

	onTime := make(model.Schedule)
	onTime.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)
	late := make(model.Schedule)
	late.Place(cfg.Submissions[0], deadline.AddDate(0, 0, -60), cfg)

	qOn := QualityScore(onTime, validate.Schedule(onTime, cfg), cfg)
	qLate := QualityScore(late, validate.Schedule(late, cfg), cfg)
	if qLate >= qOn {
		t.Fatalf("late quality %v not below on-time %v", qLate, qOn)
	}
}

func TestRobustnessSingleSubmission(t *testing.T) {
	cfg := scoreConfig()
	s := model.Schedule{"only": {Start: model.Day(2025, time.January, 1), End: model.Day(2025, time.April, 1)}}
	if got := Robustness(s, cfg); got != 100 {
		t.Fatalf("single-submission robustness = %v, want 100", got)
	}
	if got := Balance(s); got != 100 {
		t.Fatalf("single-submission balance = %v, want 100", got)
	}
}

func TestEfficiencyScore(t *testing.T) {
	cfg := scoreConfig()

	if got := EfficiencyScore(model.Schedule{}, cfg); got != 0 {
		t.Fatalf("empty schedule efficiency = %v, want 0", got)
	}

	// One steady submission at half the cap for its whole span.
	cfg.MaxConcurrentSubmissions = 1
	s := model.Schedule{"p": {Start: model.Day(2025, time.January, 1), End: model.Day(2025, time.January, 31)}}
	got := EfficiencyScore(s, cfg)
	if got <= 0 || got > 100 {
		t.Fatalf("efficiency = %v out of range", got)
	}
	// Load 1 against a 0.8 target of cap 1 scores 75 on utilization; the
	// 30-day span for one submission scores a full 100 on the timeline.
	if got < 80 {
		t.Fatalf("efficiency = %v, want at least 80", got)
	}
}

func TestMetrics(t *testing.T) {
	cfg := scoreConfig()
	withPaper(cfg, model.Day(2025, time.June, 1))

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)

	m := Metrics(s, cfg)
	if m.ScheduledCount != 1 || m.SubmissionCount != 1 || m.CompletionRate != 100 {
		t.Fatalf("unexpected counts %+v", m)
	}
	if m.DurationDays != 90 || m.PeakUtilization != 1 {
		t.Fatalf("unexpected span: duration %d, peak %d", m.DurationDays, m.PeakUtilization)
	}
	if m.MonthlyDistribution["2025-01"] != 1 {
		t.Fatalf("monthly distribution %+v", m.MonthlyDistribution)
	}
	if m.ComplianceRate != 100 {
		t.Fatalf("compliance = %v, want 100", m.ComplianceRate)
	}
}
