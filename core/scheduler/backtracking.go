package scheduler

import (
	"time"

	"github.com/jmottin/subsched/core/model"
)

// Backtracking runs the greedy scan with an explicit decision stack: when a
// submission has no legal day it undoes the most recent placement and
// retries it from the next day, up to max_backtracks pops. The bound is a
// hard termination guarantee; exhausting it returns the best partial
// schedule seen.
type Backtracking struct{}

// Name implements Scheduler.
func (b *Backtracking) Name() Strategy { return StrategyBacktracking }

type placement struct {
	idx int
	day time.Time
}

// Schedule implements Scheduler.
func (b *Backtracking) Schedule(cfg *model.Config) model.Schedule {
	assignVenues(cfg)
	order := priorityOrder(cfg)
	s := make(model.Schedule, len(order))
	best := make(model.Schedule)

	// resume holds, per submission, the day the next scan starts from after
	// an undo invalidated its previous placement.
	resume := make(map[string]time.Time, len(order))
	var stack []placement
	pops := 0

	for idx := 0; idx < len(order); idx++ {
		sub := order[idx]
		if s.Has(sub.ID) {
			continue
		}

		day, ok := b.findFrom(sub, resume[sub.ID], s, cfg)
		if ok {
			s.Place(sub, day, cfg)
			stack = append(stack, placement{idx: idx, day: day})
			if len(s) > len(best) {
				best = s.Clone()
			}
			continue
		}

		if len(stack) == 0 || pops >= cfg.Options.MaxBacktracks {
			continue
		}

		// Undo the most recent decision and retry it from the next day;
		// processing rewinds to the popped submission.
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pops++
		undone := order[top.idx]
		delete(s, undone.ID)
		resume[undone.ID] = top.day.AddDate(0, 0, 1)
		delete(resume, sub.ID)
		idx = top.idx - 1
	}

	if len(best) > len(s) {
		return best
	}
	return s
}

// findFrom scans from the later of the submission's natural start and its
// resume day.
func (b *Backtracking) findFrom(sub model.Submission, resume time.Time, s model.Schedule, cfg *model.Config) (time.Time, bool) {
	if resume.IsZero() {
		return findDay(sub, s, cfg)
	}
	from := scanStart(sub, cfg)
	if resume.After(from) {
		from = resume
	}
	return scanForward(sub, from, s, cfg)
}
