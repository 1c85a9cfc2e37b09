package scheduler

import (
	"math/rand"
	"sort"
	"time"

	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

// Stochastic keeps the greedy skeleton but randomizes tie-breaks among
// near-equal priorities and jitters the day scan. Runs are reproducible for
// a given seed.
type Stochastic struct {
	rng *rand.Rand
}

// NewStochastic builds a stochastic scheduler seeded deterministically.
func NewStochastic(seed int64) *Stochastic {
	return &Stochastic{rng: rand.New(rand.NewSource(seed))}
}

// Name implements Scheduler.
func (st *Stochastic) Name() Strategy { return StrategyStochastic }

// Schedule implements Scheduler.
func (st *Stochastic) Schedule(cfg *model.Config) model.Schedule {
	assignVenues(cfg)
	s := make(model.Schedule, len(cfg.Submissions))
	for _, sub := range st.noisyOrder(cfg) {
		if day, ok := st.jitteredDay(sub, s, cfg); ok {
			s.Place(sub, day, cfg)
		}
	}
	return s
}

// noisyOrder reuses the topological pass but perturbs each priority score by
// up to the configured randomness factor, so near-equal submissions swap
// places between seeds while dependencies still precede dependents.
func (st *Stochastic) noisyOrder(cfg *model.Config) []model.Submission {
	noise := make(map[string]float64, len(cfg.Submissions))
	factor := cfg.Options.RandomnessFactor
	for _, sub := range cfg.Submissions {
		noise[sub.ID] = 1 + (st.rng.Float64()*2-1)*factor
	}

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
			a, b := cfg.Submission(ready[i]), cfg.Submission(ready[j])
			pa := a.PriorityScore(cfg) * noise[a.ID]
			pb := b.PriorityScore(cfg) * noise[b.ID]
			if pa != pb {
				return pa > pb
			}
			return a.ID < b.ID
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
	return out
}

// jitteredDay gathers the first few legal days for the submission and picks
// one at random instead of always taking the earliest.
func (st *Stochastic) jitteredDay(sub model.Submission, s model.Schedule, cfg *model.Config) (time.Time, bool) {
	first, ok := findDay(sub, s, cfg)
	if !ok {
		return time.Time{}, false
	}

	window := cfg.Options.LookaheadDays
	if window <= 0 {
		return first, true
	}
	candidates := []time.Time{first}
	until := cfg.WindowEnd()
	for d := 1; d <= window && len(candidates) < 4; d++ {
		day := first.AddDate(0, 0, d)
		if day.After(until) {
			break
		}
		if validate.CanPlace(sub, day, s, cfg) {
			candidates = append(candidates, day)
		}
	}
	return candidates[st.rng.Intn(len(candidates))], true
}
