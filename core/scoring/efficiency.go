package scoring

import (
	"math"

	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

const (
	utilizationWeight = 0.6
	timelineWeight    = 0.4

	// targetUtilization is the fraction of the concurrency cap a healthy
	// schedule keeps busy on an average day.
	targetUtilization = 0.8

	// idealDaysPerSubmission anchors the timeline term: schedules much
	// shorter are implausibly packed, much longer ones waste the horizon.
	idealDaysPerSubmission = 30
)

// EfficiencyScore rates resource usage on a 0-100 scale: closeness of the
// average daily load to the utilization target, blended with how near the
// schedule span is to an ideal length for its submission count.
func EfficiencyScore(s model.Schedule, cfg *model.Config) float64 {
	if len(s) == 0 {
		return 0
	}
	return clampScore(Utilization(s, cfg)*utilizationWeight +
		TimelineEfficiency(s)*timelineWeight)
}

// Utilization scores the distance between the mean daily load and the
// target fraction of the concurrency cap.
func Utilization(s model.Schedule, cfg *model.Config) float64 {
	segs := validate.LoadSegments(s)
	if len(segs) == 0 {
		// Only zero-duration work: nothing occupies a day, nothing is
		// over- or under-used.
		return 100
	}
	occupied, sum := 0, 0
	for _, seg := range segs {
		days := model.DaysBetween(seg.Start, seg.End)
		occupied += days
		sum += days * seg.Load
	}
	if occupied == 0 {
		return 100
	}
	avg := float64(sum) / float64(occupied)
	target := targetUtilization * float64(cfg.MaxConcurrentSubmissions)
	return clampScore(100 - math.Abs(avg-target)/target*100)
}

// TimelineEfficiency compares the schedule span to the ideal length for its
// submission count.
func TimelineEfficiency(s model.Schedule) float64 {
	if len(s) == 0 {
		return 0
	}
	span := model.DaysBetween(s.Start(), s.End())
	ideal := idealDaysPerSubmission * len(s)
	if ideal == 0 {
		return 100
	}
	return clampScore(100 - math.Abs(float64(span-ideal))/float64(ideal)*100)
}
