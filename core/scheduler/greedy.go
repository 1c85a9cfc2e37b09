package scheduler

import (
	"github.com/jmottin/subsched/core/model"
)

// Greedy places submissions in priority order at the first legal day and
// never revisits a decision.
type Greedy struct{}

// Name implements Scheduler.
func (g *Greedy) Name() Strategy { return StrategyGreedy }

// Schedule implements Scheduler.
func (g *Greedy) Schedule(cfg *model.Config) model.Schedule {
	assignVenues(cfg)
	s := make(model.Schedule, len(cfg.Submissions))
	for _, sub := range priorityOrder(cfg) {
		if day, ok := findDay(sub, s, cfg); ok {
			s.Place(sub, day, cfg)
		}
	}
	return s
}
