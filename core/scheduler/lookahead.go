package scheduler

import (
	"time"

	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

// Lookahead extends the greedy scan: instead of taking the first legal day
// it scores every legal candidate inside a bounded window and keeps the best
// one. The score rewards slack left for not-yet-scheduled dependents, a
// fixed increment per day of headroom within the window.
type Lookahead struct{}

// Name implements Scheduler.
func (l *Lookahead) Name() Strategy { return StrategyLookahead }

// Schedule implements Scheduler.
func (l *Lookahead) Schedule(cfg *model.Config) model.Schedule {
	assignVenues(cfg)
	s := make(model.Schedule, len(cfg.Submissions))
	order := priorityOrder(cfg)

	dependents := make(map[string][]model.Submission, len(order))
	for _, sub := range order {
		for _, dep := range sub.DependsOn {
			dependents[dep] = append(dependents[dep], sub)
		}
	}

	for _, sub := range order {
		day, ok := l.bestDay(sub, dependents[sub.ID], s, cfg)
		if ok {
			s.Place(sub, day, cfg)
		}
	}
	return s
}

// bestDay scans the lookahead window past the first legal day and keeps the
// highest-scoring candidate, earliest on ties.
func (l *Lookahead) bestDay(sub model.Submission, deps []model.Submission, s model.Schedule, cfg *model.Config) (time.Time, bool) {
	first, ok := findDay(sub, s, cfg)
	if !ok {
		return time.Time{}, false
	}

	window := cfg.Options.LookaheadDays
	best, bestScore := first, l.candidateScore(sub, first, deps, s, cfg)
	until := cfg.WindowEnd()
	for d := 1; d <= window; d++ {
		day := first.AddDate(0, 0, d)
		if day.After(until) {
			break
		}
		if !validate.CanPlace(sub, day, s, cfg) {
			continue
		}
		if score := l.candidateScore(sub, day, deps, s, cfg); score > bestScore {
			best, bestScore = day, score
		}
	}
	return best, true
}

// candidateScore prefers earlier days and adds the dependent-headroom bonus:
// for each unscheduled dependent with a deadline, the days between this
// placement's end and that deadline count toward the bonus, capped at the
// lookahead window.
func (l *Lookahead) candidateScore(sub model.Submission, day time.Time, deps []model.Submission, s model.Schedule, cfg *model.Config) float64 {
	end := sub.EndDate(day, cfg)
	score := -float64(model.DaysBetween(cfg.WindowStart(), day))

	for _, dep := range deps {
		if s.Has(dep.ID) {
			continue
		}
		deadline, ok := submissionDeadline(dep, cfg)
		if !ok {
			continue
		}
		headroom := model.DaysBetween(end.AddDate(0, 0, dep.DurationDays(cfg)), deadline)
		if headroom < 0 {
			headroom = 0
		}
		if headroom > cfg.Options.LookaheadDays {
			headroom = cfg.Options.LookaheadDays
		}
		score += float64(headroom) * cfg.Options.LookaheadBonusIncrement
	}
	return score
}
