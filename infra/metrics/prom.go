// Package metrics provides the Prometheus implementation of the core sink.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	core "github.com/jmottin/subsched/core/metrics"
)

// PromSink exposes scheduling run observations as Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	scheduled  *prometheus.GaugeVec
	penalty    *prometheus.GaugeVec
	quality    *prometheus.GaugeVec
	efficiency *prometheus.GaugeVec
	compliance *prometheus.GaugeVec
	violations *prometheus.GaugeVec
	elapsed    *prometheus.HistogramVec
}

// NewPromSink creates a sink with collectors registered on reg.
func NewPromSink(reg prometheus.Registerer) *PromSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_runs_total",
			Help: "Scheduling runs per strategy",
		}, []string{"strategy"}),
		scheduled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scheduler_scheduled_submissions",
			Help: "Submissions placed in the last run per strategy",
		}, []string{"strategy"}),
		penalty: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scheduler_total_penalty",
			Help: "Total penalty of the last run per strategy",
		}, []string{"strategy"}),
		quality: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scheduler_quality_score",
			Help: "Quality score of the last run per strategy",
		}, []string{"strategy"}),
		efficiency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scheduler_efficiency_score",
			Help: "Efficiency score of the last run per strategy",
		}, []string{"strategy"}),
		compliance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scheduler_compliance_rate",
			Help: "Aggregate constraint compliance of the last run per strategy",
		}, []string{"strategy"}),
		violations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scheduler_constraint_violations",
			Help: "Constraint violations of the last run per strategy and family",
		}, []string{"strategy", "family"}),
		elapsed: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scheduler_run_duration_seconds",
			Help:    "Wall-clock duration of scheduling runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"strategy"}),
	}
	reg.MustRegister(s.runs, s.scheduled, s.penalty, s.quality, s.efficiency, s.compliance, s.violations, s.elapsed)
	return s
}

// RecordRun implements core metrics sink.
func (s *PromSink) RecordRun(m core.RunMetrics) error {
	s.runs.WithLabelValues(m.Strategy).Inc()
	s.scheduled.WithLabelValues(m.Strategy).Set(float64(m.Scheduled))
	s.penalty.WithLabelValues(m.Strategy).Set(m.TotalPenalty)
	s.quality.WithLabelValues(m.Strategy).Set(m.QualityScore)
	s.efficiency.WithLabelValues(m.Strategy).Set(m.EfficiencyScore)
	s.compliance.WithLabelValues(m.Strategy).Set(m.ComplianceRate)
	for family, n := range m.Violations {
		s.violations.WithLabelValues(m.Strategy, family).Set(float64(n))
	}
	s.elapsed.WithLabelValues(m.Strategy).Observe(m.Elapsed.Seconds())
	return nil
}
