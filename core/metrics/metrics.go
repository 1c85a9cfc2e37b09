// Package metrics defines the sink interface scheduling runs report into.
// Implementations live under infra/metrics; a nil sink is always legal.
package metrics

import "time"

// RunMetrics is one strategy run's worth of observations.
type RunMetrics struct {
	Strategy        string
	RunID           string
	Scheduled       int
	Submissions     int
	TotalPenalty    float64
	QualityScore    float64
	EfficiencyScore float64
	ComplianceRate  float64
	Violations      map[string]int
	Elapsed         time.Duration
}

// Sink records scheduling observations.
type Sink interface {
	RecordRun(m RunMetrics) error
}

// Record forwards to the sink when one is present.
func Record(s Sink, m RunMetrics) error {
	if s == nil {
		return nil
	}
	return s.RecordRun(m)
}
