package scoring

import (
	"gonum.org/v1/gonum/stat"

	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/validate"
)

// Weights of the compliance-rate base score.
const (
	deadlineWeight   = 0.4
	dependencyWeight = 0.3
	resourceWeight   = 0.3
)

// Blend of the base score against the structural terms.
const (
	baseBlend       = 0.7
	robustnessBlend = 0.15
	balanceBlend    = 0.15
)

// bufferScale converts average buffer days before deadlines into a
// 0-100 robustness score.
const bufferScale = 10.0

// QualityScore rates a schedule on a 0-100 scale: a weighted blend of the
// deadline, dependency and resource compliance rates, a robustness term
// rewarding buffer before deadlines and a balance term rewarding an even
// daily load. Single-submission schedules are structurally trivial and get
// full marks on both structural terms.
func QualityScore(s model.Schedule, report model.Report, cfg *model.Config) float64 {
	base := 0.0
	if r := report.Family(model.FamilyDeadline); r != nil {
		base += r.Rate * deadlineWeight
	}
	if r := report.Family(model.FamilyDependency); r != nil {
		base += r.Rate * dependencyWeight
	}
	if r := report.Family(model.FamilyResource); r != nil {
		base += r.Rate * resourceWeight
	}

	return clampScore(base*baseBlend +
		Robustness(s, cfg)*robustnessBlend +
		Balance(s)*balanceBlend)
}

// Robustness scores the average buffer between completion and deadline.
// Late submissions contribute a zero buffer rather than a negative one.
func Robustness(s model.Schedule, cfg *model.Config) float64 {
	if len(s) <= 1 {
		return 100
	}
	var buffers []float64
	for _, sid := range s.IDs() {
		sub := cfg.Submission(sid)
		if sub == nil || sub.ConferenceID == "" {
			continue
		}
		conf := cfg.Conference(sub.ConferenceID)
		if conf == nil {
			continue
		}
		deadline, ok := conf.Deadline(sub.Kind)
		if !ok {
			continue
		}
		buffer := float64(model.DaysBetween(s[sid].End, deadline))
		if buffer < 0 {
			buffer = 0
		}
		buffers = append(buffers, buffer)
	}
	if len(buffers) == 0 {
		return 100
	}
	return clampScore(stat.Mean(buffers, nil) * bufferScale)
}

// Balance scores how evenly the daily load spreads over the occupied span:
// a lower load variance scores higher.
func Balance(s model.Schedule) float64 {
	if len(s) <= 1 {
		return 100
	}
	segs := validate.LoadSegments(s)
	if len(segs) == 0 {
		return 100
	}
	var loads []float64
	for _, seg := range segs {
		days := model.DaysBetween(seg.Start, seg.End)
		for d := 0; d < days; d++ {
			loads = append(loads, float64(seg.Load))
		}
	}
	if len(loads) == 0 {
		return 100
	}
	return clampScore(100 - stat.Variance(loads, nil)*bufferScale)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
