package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmottin/subsched/core/logger"
	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/scoring"
)

// StrategyResult is one strategy's outcome in a comparison run.
type StrategyResult struct {
	RunID      string
	Strategy   Strategy
	Schedule   model.Schedule
	Report     model.Report
	Penalty    scoring.PenaltyBreakdown
	Quality    float64
	Efficiency float64
	Elapsed    time.Duration
	Err        error
}

// Comparator runs every strategy over independent copies of the same
// configuration and ranks the outcomes.
type Comparator struct {
	Seed int64
	Log  logger.Logger
}

// NewComparator builds a comparator; a nil logger is replaced by a no-op.
func NewComparator(seed int64, log logger.Logger) *Comparator {
	if log == nil {
		log = nopLogger{}
	}
	return &Comparator{Seed: seed, Log: log}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// RunAll executes every strategy in parallel, each against its own deep copy
// of the config, and returns the results ranked best first: lower penalty
// wins, quality breaks ties.
func (c *Comparator) RunAll(cfg *model.Config) []StrategyResult {
	strategies := Strategies()
	results := make([]StrategyResult, len(strategies))

	var wg sync.WaitGroup
	for i, name := range strategies {
		wg.Add(1)
		go func(i int, name Strategy) {
			defer wg.Done()
			results[i] = c.runOne(name, cfg.Clone())
		}(i, name)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Penalty.Total != results[j].Penalty.Total {
			return results[i].Penalty.Total < results[j].Penalty.Total
		}
		return results[i].Quality > results[j].Quality
	})
	return results
}

func (c *Comparator) runOne(name Strategy, cfg *model.Config) StrategyResult {
	res := StrategyResult{RunID: uuid.NewString(), Strategy: name}

	sched, err := New(name, c.Seed)
	if err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	res.Schedule = sched.Schedule(cfg)
	res.Elapsed = time.Since(start)

	res.Report, res.Penalty = scoring.Score(res.Schedule, cfg)
	res.Quality = scoring.QualityScore(res.Schedule, res.Report, cfg)
	res.Efficiency = scoring.EfficiencyScore(res.Schedule, cfg)

	c.Log.Infof("strategy %s placed %d/%d submissions, penalty %.0f, quality %.1f (run %s)",
		name, len(res.Schedule), len(cfg.Submissions), res.Penalty.Total, res.Quality, res.RunID)
	return res
}

// Best returns the top-ranked result, nil for an empty slice.
func Best(results []StrategyResult) *StrategyResult {
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}
