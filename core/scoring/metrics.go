package scoring

import (
	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

// Metrics derives the full read-only summary of a schedule: counts, span,
// load profile, scores and compliance.
func Metrics(s model.Schedule, cfg *model.Config) model.ScheduleMetrics {
	report, penalty := Score(s, cfg)

	m := model.ScheduleMetrics{
		SubmissionCount:     len(cfg.Submissions),
		ScheduledCount:      len(s),
		MonthlyDistribution: map[string]int{},
		TotalPenalty:        penalty.Total,
		QualityScore:        QualityScore(s, report, cfg),
		EfficiencyScore:     EfficiencyScore(s, cfg),
		ComplianceRate:      report.ComplianceRate,
	}
	if m.SubmissionCount > 0 {
		m.CompletionRate = float64(m.ScheduledCount) / float64(m.SubmissionCount) * 100
	}
	if len(s) == 0 {
		return m
	}

	m.Start, m.End = s.Start(), s.End()
	m.Makespan = s.MakespanDays()
	m.DurationDays = model.DaysBetween(m.Start, m.End)

	occupied, sum := 0, 0
	for _, seg := range validate.LoadSegments(s) {
		days := model.DaysBetween(seg.Start, seg.End)
		occupied += days
		sum += days * seg.Load
		if seg.Load > m.PeakUtilization {
			m.PeakUtilization = seg.Load
		}
	}
	if occupied > 0 {
		m.AvgDailyLoad = float64(sum) / float64(occupied)
		m.UtilizationRate = m.AvgDailyLoad / float64(cfg.MaxConcurrentSubmissions) * 100
	}

	for _, sid := range s.IDs() {
		m.MonthlyDistribution[s[sid].Start.Format("2006-01")]++
	}
	return m
}
