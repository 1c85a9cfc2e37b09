package validate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jmottin/subsched/core/model"
)

func baseConfig() *model.Config {
	return &model.Config{
		MinAbstractLeadTimeDays:  14,
		MinPaperLeadTimeDays:     90,
		MaxConcurrentSubmissions: 2,
		SchedulingStart:          model.Day(2025, time.January, 1),
		PriorityWeights: map[string]float64{
			"paper": 3, "poster": 2, "abstract": 1, "engineering_paper": 2,
		},
	}
}

func paperConf(id string, deadline time.Time) model.Conference {
	return model.Conference{
		ID:        id,
		Name:      id,
		Deadlines: map[model.SubmissionKind]time.Time{model.KindPaper: deadline},
	}
}

func TestDeadlinesOnTime(t *testing.T) {
	cfg := baseConfig()
	cfg.Conferences = []model.Conference{paperConf("conf", model.Day(2025, time.June, 1))}
	cfg.Submissions = []model.Submission{
		{ID: "p", Title: "P", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)

	res := Deadlines(s, cfg)
	if !res.Valid || len(res.Violations) != 0 {
		t.Fatalf("expected clean result, got %+v", res.Violations)
	}
	if res.Rate != 100 {
		t.Fatalf("rate = %v, want 100", res.Rate)
	}
}

func TestDeadlinesLateSeverity(t *testing.T) {
	cases := []struct {
		daysLate int
		want     model.Severity
	}{
		{1, model.SeverityLow},
		{5, model.SeverityMedium},
		{20, model.SeverityHigh},
	}
	for _, tc := range cases {
		cfg := baseConfig()
		deadline := model.Day(2025, time.June, 1)
		cfg.Conferences = []model.Conference{paperConf("conf", deadline)}
		cfg.Submissions = []model.Submission{
			{ID: "p", Title: "P", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
		}

		start := deadline.AddDate(0, 0, tc.daysLate-90)
		s := make(model.Schedule)
		s.Place(cfg.Submissions[0], start, cfg)

		res := Deadlines(s, cfg)
		if len(res.Violations) != 1 {
			t.Fatalf("%d days late: %d violations, want 1", tc.daysLate, len(res.Violations))
		}
		v := res.Violations[0]
		if v.DaysLate != tc.daysLate || v.Severity != tc.want {
			t.Fatalf("%d days late: got %d/%s, want %d/%s", tc.daysLate, v.DaysLate, v.Severity, tc.daysLate, tc.want)
		}
	}
}

func TestDeadlinesAbstractLeadTime(t *testing.T) {
	cfg := baseConfig()
	deadline := model.Day(2025, time.June, 1)
	cfg.Conferences = []model.Conference{{
		ID:        "conf",
		Name:      "conf",
		Deadlines: map[model.SubmissionKind]time.Time{model.KindAbstract: deadline},
	}}
	cfg.Submissions = []model.Submission{
		{ID: "a", Title: "A", Kind: model.KindAbstract, ConferenceID: "conf"},
	}

	// Inside the 14-day margin but not past the deadline.
	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], deadline.AddDate(0, 0, -5), cfg)

	res := Deadlines(s, cfg)
	if len(res.Violations) != 1 || res.Violations[0].Issue != "lead_time" {
		t.Fatalf("expected one lead_time violation, got %+v", res.Violations)
	}
}

// A breach with no declared deadline still counts against the family rate.
func TestDeadlinesEarliestStartLowersRate(t *testing.T) {
	cfg := baseConfig()
	cfg.Submissions = []model.Submission{
		{ID: "po", Title: "Po", Kind: model.KindPoster, DraftWindowMonths: 1,
			EarliestStart: model.Day(2025, time.March, 1)},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)

	res := Deadlines(s, cfg)
	if res.Valid {
		t.Fatal("early start accepted")
	}
	if len(res.Violations) != 1 || res.Violations[0].Issue != IssueEarliestStart {
		t.Fatalf("expected one earliest_start violation, got %+v", res.Violations)
	}
	if res.Total != 1 || res.Compliant != 0 || res.Rate != 0 {
		t.Fatalf("rate counts: total %d compliant %d rate %v, want 1/0/0", res.Total, res.Compliant, res.Rate)
	}
}

func TestDeadlinesBlackout(t *testing.T) {
	cfg := baseConfig()
	cfg.Options.EnableBlackoutPeriods = true
	cfg.BlackoutDates = []time.Time{model.Day(2025, time.February, 1)}
	cfg.Conferences = []model.Conference{paperConf("conf", model.Day(2025, time.June, 1))}
	cfg.Submissions = []model.Submission{
		{ID: "p", Title: "P", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 15), cfg)

	res := Deadlines(s, cfg)
	found := false
	for _, v := range res.Violations {
		if v.Issue == "blackout" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected blackout violation, got %+v", res.Violations)
	}
}

// Abstract-then-paper chain checks: zero violations only when the abstract
// finishes before the paper starts and is listed in depends_on.
func TestDependencyAbstractPaperChain(t *testing.T) {
	build := func(dependsOn []string, paperStart time.Time) (*model.Config, model.Schedule) {
		cfg := baseConfig()
		cfg.Conferences = []model.Conference{{
			ID:              "conf",
			Name:            "conf",
			SubmissionTypes: model.WorkflowAbstractThenPaper,
			Deadlines: map[model.SubmissionKind]time.Time{
				model.KindAbstract: model.Day(2025, time.February, 1),
				model.KindPaper:    model.Day(2025, time.August, 1),
			},
		}}
		cfg.Submissions = []model.Submission{
			{ID: "A", Title: "A", Kind: model.KindAbstract, ConferenceID: "conf"},
			{ID: "P", Title: "P", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3, DependsOn: dependsOn},
		}
		s := make(model.Schedule)
		s.Place(cfg.Submissions[0], model.Day(2025, time.January, 10), cfg)
		s.Place(cfg.Submissions[1], paperStart, cfg)
		return cfg, s
	}

	cfg, s := build([]string{"A"}, model.Day(2025, time.February, 1))
	if res := Dependencies(s, cfg); !res.Valid {
		t.Fatalf("linked chain rejected: %+v", res.Violations)
	}

	cfg, s = build(nil, model.Day(2025, time.February, 1))
	res := Dependencies(s, cfg)
	if res.Valid || res.Violations[0].Issue != "unlinked_abstract" {
		t.Fatalf("expected unlinked_abstract, got %+v", res.Violations)
	}

	// Paper starting before the abstract completes.
	cfg, s = build([]string{"A"}, model.Day(2025, time.January, 5))
	res = Dependencies(s, cfg)
	if res.Valid {
		t.Fatalf("paper before abstract accepted")
	}
}

func TestDependencyTiming(t *testing.T) {
	cfg := baseConfig()
	cfg.Conferences = []model.Conference{paperConf("conf", model.Day(2025, time.December, 1))}
	cfg.Submissions = []model.Submission{
		{ID: "p1", Title: "P1", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
		{ID: "p2", Title: "P2", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3, DependsOn: []string{"p1"}},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)
	// Starts 30 days before p1 ends.
	s.Place(cfg.Submissions[1], model.Day(2025, time.March, 2), cfg)

	res := Dependencies(s, cfg)
	if res.Valid {
		t.Fatal("overlapping dependency accepted")
	}
	if res.Violations[0].Issue != "timing_violation" || res.Violations[0].DaysViolation <= 0 {
		t.Fatalf("unexpected violation %+v", res.Violations[0])
	}

	// Unscheduled dependency.
	delete(s, "p1")
	res = Dependencies(s, cfg)
	if res.Valid || res.Violations[0].Issue != "missing_dependency" {
		t.Fatalf("expected missing_dependency, got %+v", res.Violations)
	}
}

func TestResourcesSweep(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxConcurrentSubmissions = 1
	cfg.Conferences = []model.Conference{paperConf("conf", model.Day(2026, time.January, 1))}
	cfg.Submissions = []model.Submission{
		{ID: "p1", Title: "P1", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 1},
		{ID: "p2", Title: "P2", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 1},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)
	s.Place(cfg.Submissions[1], model.Day(2025, time.January, 21), cfg)

	res := Resources(s, cfg)
	// Jan 21 through Jan 30 inclusive carry two active submissions.
	if len(res.Violations) != 10 {
		t.Fatalf("violations = %d, want 10", len(res.Violations))
	}
	for _, v := range res.Violations {
		if v.Excess != 1 || v.Load != 2 {
			t.Fatalf("unexpected violation %+v", v)
		}
	}
}

// The sweep must agree with a naive per-day count on random schedules.
func TestResourcesSweepMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := baseConfig()
	cfg.MaxConcurrentSubmissions = 2

	for trial := 0; trial < 50; trial++ {
		s := make(model.Schedule)
		n := 2 + rng.Intn(6)
		for i := 0; i < n; i++ {
			start := model.Day(2025, time.January, 1).AddDate(0, 0, rng.Intn(60))
			dur := 1 + rng.Intn(40)
			id := string(rune('a' + i))
			s[id] = model.Interval{Start: start, End: start.AddDate(0, 0, dur)}
		}

		naive := 0
		for d := 0; d < 120; d++ {
			day := model.Day(2025, time.January, 1).AddDate(0, 0, d)
			if LoadAt(s, day) > cfg.MaxConcurrentSubmissions {
				naive++
			}
		}

		res := Resources(s, cfg)
		if len(res.Violations) != naive {
			t.Fatalf("trial %d: sweep %d violations, naive %d", trial, len(res.Violations), naive)
		}
	}
}

func TestVenues(t *testing.T) {
	cfg := baseConfig()
	cfg.Conferences = []model.Conference{{
		ID:        "eng",
		Name:      "eng",
		Type:      model.ConferenceEngineering,
		Deadlines: map[model.SubmissionKind]time.Time{model.KindPaper: model.Day(2025, time.June, 1)},
	}}
	cfg.Submissions = []model.Submission{
		{ID: "p", Title: "P", Kind: model.KindPaper, ConferenceID: "eng", DraftWindowMonths: 3},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)

	res := Venues(s, cfg)
	if res.Valid || res.Violations[0].Issue != "type_mismatch" {
		t.Fatalf("non-engineering paper at engineering venue accepted: %+v", res.Violations)
	}

	cfg.Submissions[0].Engineering = true
	if res := Venues(s, cfg); !res.Valid {
		t.Fatalf("engineering paper rejected: %+v", res.Violations)
	}

	// Workflow mismatch: poster at a paper-only venue.
	cfg.Submissions[0] = model.Submission{ID: "p", Title: "P", Kind: model.KindPoster, ConferenceID: "eng", Engineering: true}
	if res := Venues(s, cfg); res.Valid {
		t.Fatal("poster accepted at paper-only venue")
	}
}

func TestSingleConference(t *testing.T) {
	cfg := baseConfig()
	cfg.Conferences = []model.Conference{paperConf("conf", model.Day(2026, time.June, 1))}
	cfg.Submissions = []model.Submission{
		{ID: "p1", Title: "P1", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
		{ID: "p2", Title: "P2", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)
	s.Place(cfg.Submissions[1], model.Day(2025, time.June, 1), cfg)

	res := SingleConference(s, cfg)
	if res.Valid {
		t.Fatal("papers 151 days apart accepted")
	}
	v := res.Violations[0]
	if v.FirstPaper != "p1" || v.SecondPaper != "p2" || v.DaysBetween != 151 {
		t.Fatalf("unexpected violation %+v", v)
	}

	s["p2"] = model.Interval{Start: model.Day(2026, time.January, 2), End: model.Day(2026, time.April, 2)}
	if res := SingleConference(s, cfg); !res.Valid {
		t.Fatalf("papers a year apart rejected: %+v", res.Violations)
	}
}

func TestSoftBlocks(t *testing.T) {
	cfg := baseConfig()
	cfg.Conferences = []model.Conference{paperConf("conf", model.Day(2026, time.June, 1))}
	cfg.Submissions = []model.Submission{
		{ID: "p", Title: "P", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3,
			EarliestStart: model.Day(2025, time.January, 1)},
	}

	s := make(model.Schedule)
	s.Place(cfg.Submissions[0], model.Day(2025, time.April, 11), cfg)

	res := SoftBlocks(s, cfg)
	if res.Valid {
		t.Fatal("start 100 days past the anchor accepted")
	}
	if res.Violations[0].DaysViolation != 40 {
		t.Fatalf("magnitude = %d, want 40", res.Violations[0].DaysViolation)
	}

	s.Place(cfg.Submissions[0], model.Day(2025, time.February, 1), cfg)
	if res := SoftBlocks(s, cfg); !res.Valid {
		t.Fatalf("start inside the window rejected: %+v", res.Violations)
	}
}

func TestReportAggregation(t *testing.T) {
	cfg := baseConfig()
	report := Schedule(make(model.Schedule), cfg)
	if !report.Valid {
		t.Fatal("empty schedule reported invalid")
	}
	if report.ComplianceRate != 100 {
		t.Fatalf("compliance = %v, want 100", report.ComplianceRate)
	}
	if len(report.Results) != 6 {
		t.Fatalf("families = %d, want 6", len(report.Results))
	}
}

func TestOracle(t *testing.T) {
	cfg := baseConfig()
	cfg.MaxConcurrentSubmissions = 1
	cfg.Conferences = []model.Conference{paperConf("conf", model.Day(2025, time.June, 1))}
	cfg.Submissions = []model.Submission{
		{ID: "p1", Title: "P1", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
		{ID: "p2", Title: "P2", Kind: model.KindPaper, ConferenceID: "conf", DraftWindowMonths: 3},
	}

	s := make(model.Schedule)
	if !CanPlace(cfg.Submissions[0], model.Day(2025, time.January, 1), s, cfg) {
		t.Fatal("legal placement rejected")
	}
	// Finishing past the deadline.
	if CanPlace(cfg.Submissions[0], model.Day(2025, time.March, 15), s, cfg) {
		t.Fatal("deadline-breaking placement accepted")
	}

	s.Place(cfg.Submissions[0], model.Day(2025, time.January, 1), cfg)
	// Concurrency cap of one.
	if CanPlace(cfg.Submissions[1], model.Day(2025, time.February, 1), s, cfg) {
		t.Fatal("overlapping placement accepted at cap 1")
	}
}
