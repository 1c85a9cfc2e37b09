package validate

import "github.com/jmottin/subsched/core/model"

// Schedule runs every constraint family over the schedule and aggregates the
// results into a single report. The overall compliance rate is the mean of
// the per-family rates.
func Schedule(s model.Schedule, cfg *model.Config) model.Report {
	results := []model.ValidationResult{
		Deadlines(s, cfg),
		Dependencies(s, cfg),
		Resources(s, cfg),
		Venues(s, cfg),
		SoftBlocks(s, cfg),
		SingleConference(s, cfg),
	}

	report := model.Report{Results: results, Valid: true}
	rateSum := 0.0
	for _, r := range results {
		if !r.Valid {
			report.Valid = false
		}
		rateSum += r.Rate
	}
	report.ComplianceRate = rateSum / float64(len(results))
	return report
}
