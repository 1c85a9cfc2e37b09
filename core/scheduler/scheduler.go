// Package scheduler builds submission schedules with interchangeable
// strategies. Every strategy shares the same contract: it consumes a
// validated configuration, owns the schedule it builds until returning it
// and never fails on empty input. Placement legality is always delegated to
// the validate package's oracle so strategies differ only in search order.
package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

// Strategy names a scheduling algorithm.
type Strategy string

const (
	StrategyGreedy       Strategy = "greedy"
	StrategyStochastic   Strategy = "stochastic"
	StrategyLookahead    Strategy = "lookahead"
	StrategyBacktracking Strategy = "backtracking"
	StrategyOptimal      Strategy = "optimal"
)

// Strategies lists every known strategy in comparison order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyGreedy,
		StrategyStochastic,
		StrategyLookahead,
		StrategyBacktracking,
		StrategyOptimal,
	}
}

// Scheduler is the per-strategy entry point.
type Scheduler interface {
	// Schedule places as many submissions as possible and returns the
	// result. Fewer entries than submissions means some had no legal day.
	Schedule(cfg *model.Config) model.Schedule

	// Name identifies the strategy.
	Name() Strategy
}

// New builds the scheduler for the given strategy. The seed only matters for
// the stochastic strategy.
func New(strategy Strategy, seed int64) (Scheduler, error) {
	switch strategy {
	case StrategyGreedy:
		return &Greedy{}, nil
	case StrategyStochastic:
		return NewStochastic(seed), nil
	case StrategyLookahead:
		return &Lookahead{}, nil
	case StrategyBacktracking:
		return &Backtracking{}, nil
	case StrategyOptimal:
		return NewOptimal(), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// assignVenues resolves submissions that list candidate conferences instead
// of a fixed venue: the first compatible candidate wins. It runs once before
// placement so deadline bounds and venue checks see the chosen conference.
func assignVenues(cfg *model.Config) {
	for i := range cfg.Submissions {
		sub := &cfg.Submissions[i]
		if sub.ConferenceID != "" {
			continue
		}
		for _, cid := range sub.CandidateConferences {
			conf := cfg.Conference(cid)
			if conf == nil || !conf.CompatibleWith(*sub) {
				continue
			}
			sub.ConferenceID = cid
			break
		}
	}
}

// priorityOrder returns the submissions in placement order: a topological
// pass keeps dependencies ahead of their dependents, and among the ready
// ones higher priority goes first, ties broken by earlier deadline then id.
func priorityOrder(cfg *model.Config) []model.Submission {
	indeg := make(map[string]int, len(cfg.Submissions))
	dependents := make(map[string][]string, len(cfg.Submissions))
	for _, sub := range cfg.Submissions {
		indeg[sub.ID] += 0
		for _, dep := range sub.DependsOn {
			indeg[sub.ID]++
			dependents[dep] = append(dependents[dep], sub.ID)
		}
	}

	ready := make([]string, 0, len(cfg.Submissions))
	for id, d := range indeg {
		if d == 0 {
			ready = append(ready, id)
		}
	}

	var out []model.Submission
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool {
			return placeBefore(cfg, *cfg.Submission(ready[i]), *cfg.Submission(ready[j]))
		})
		id := ready[0]
		ready = ready[1:]
		out = append(out, *cfg.Submission(id))
		for _, dep := range dependents[id] {
			indeg[dep]--
			if indeg[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	// Config validation rejects cycles, so every submission is emitted.
	return out
}

// placeBefore orders two submissions for placement: higher priority first,
// then the earlier deadline, then the id.
func placeBefore(cfg *model.Config, a, b model.Submission) bool {
	pa, pb := a.PriorityScore(cfg), b.PriorityScore(cfg)
	if pa != pb {
		return pa > pb
	}
	da, aok := submissionDeadline(a, cfg)
	db, bok := submissionDeadline(b, cfg)
	switch {
	case aok && bok && !da.Equal(db):
		return da.Before(db)
	case aok != bok:
		return aok
	}
	return a.ID < b.ID
}

func submissionDeadline(sub model.Submission, cfg *model.Config) (time.Time, bool) {
	if sub.ConferenceID == "" {
		return time.Time{}, false
	}
	conf := cfg.Conference(sub.ConferenceID)
	if conf == nil {
		return time.Time{}, false
	}
	return conf.Deadline(sub.Kind)
}

// scanStart is the first day worth trying for a submission: the scheduling
// window start, pushed to the submission's earliest start, and for abstracts
// under early-abstract scheduling pulled toward their deadline minus the
// configured advance.
func scanStart(sub model.Submission, cfg *model.Config) time.Time {
	from := cfg.WindowStart()
	if !sub.EarliestStart.IsZero() && sub.EarliestStart.After(from) {
		from = sub.EarliestStart
	}
	if sub.Kind == model.KindAbstract && cfg.Options.EnableEarlyAbstractScheduling {
		if deadline, ok := submissionDeadline(sub, cfg); ok {
			preferred := deadline.AddDate(0, 0, -cfg.Options.AbstractAdvanceDays)
			if preferred.After(from) {
				from = preferred
			}
		}
	}
	return from
}

// scanForward walks day by day from the given start until the oracle accepts
// a placement or the window ends.
func scanForward(sub model.Submission, from time.Time, s model.Schedule, cfg *model.Config) (time.Time, bool) {
	until := cfg.WindowEnd()
	for day := from; !day.After(until); day = day.AddDate(0, 0, 1) {
		if validate.CanPlace(sub, day, s, cfg) {
			return day, true
		}
	}
	return time.Time{}, false
}

// findDay is the common placement search: the preferred stretch first, then
// a plain scan from the submission's unshifted base.
func findDay(sub model.Submission, s model.Schedule, cfg *model.Config) (time.Time, bool) {
	preferred := scanStart(sub, cfg)
	if day, ok := scanForward(sub, preferred, s, cfg); ok {
		return day, true
	}
	base := cfg.WindowStart()
	if !sub.EarliestStart.IsZero() && sub.EarliestStart.After(base) {
		base = sub.EarliestStart
	}
	if base.Before(preferred) {
		return scanForward(sub, base, s, cfg)
	}
	return time.Time{}, false
}
