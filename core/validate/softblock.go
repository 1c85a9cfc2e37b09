package validate

import (
	"fmt"
	"time"

	"github.com/jmottin/subsched/core/model"
)

// IssueSoftBlock tags soft-block breaches.
const IssueSoftBlock = "soft_block"

// SoftBlocks verifies the advisory placement window: a submission with an
// earliest start date should begin within SoftBlockDays of it on either
// side. Breaches are medium severity with the magnitude counted beyond the
// window edge.
func SoftBlocks(s model.Schedule, cfg *model.Config) model.ValidationResult {
	res := model.ValidationResult{Family: model.FamilySoftBlock, Valid: true, Rate: 100}

	for _, sid := range s.IDs() {
		sub := cfg.Submission(sid)
		if sub == nil || sub.EarliestStart.IsZero() {
			continue
		}
		res.Total++

		beyond := daysOutsideWindow(s[sid].Start, sub.EarliestStart)
		if beyond > 0 {
			res.Violations = append(res.Violations, model.Violation{
				SubmissionID:  sid,
				Description:   fmt.Sprintf("%s starts %d days outside its preferred window", sid, beyond),
				Severity:      model.SeverityMedium,
				Issue:         IssueSoftBlock,
				DaysViolation: beyond,
			})
			continue
		}
		res.Compliant++
	}

	res.Valid = len(res.Violations) == 0
	if res.Total > 0 {
		res.Rate = float64(res.Compliant) / float64(res.Total) * 100
	}
	res.Summary = fmt.Sprintf("%d/%d preferred windows respected (%.1f%%)", res.Compliant, res.Total, res.Rate)
	return res
}

// daysOutsideWindow returns how many days start falls beyond the ±SoftBlockDays
// window around anchor, zero when inside.
func daysOutsideWindow(start, anchor time.Time) int {
	gap := model.DaysBetween(anchor, start)
	if gap < 0 {
		gap = -gap
	}
	if gap <= model.SoftBlockDays {
		return 0
	}
	return gap - model.SoftBlockDays
}

// WithinSoftWindow reports whether day respects the submission's preferred
// window, vacuously true without an earliest start date.
func WithinSoftWindow(sub model.Submission, day time.Time) bool {
	if sub.EarliestStart.IsZero() {
		return true
	}
	return daysOutsideWindow(day, sub.EarliestStart) == 0
}
