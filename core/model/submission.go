package model

import (
	"fmt"
	"time"
)

// SubmissionKind defines the type of a submission.
type SubmissionKind int

const (
	KindPaper SubmissionKind = iota
	KindAbstract
	KindPoster
)

// String returns a human-readable representation of the submission kind.
func (k SubmissionKind) String() string {
	switch k {
	case KindPaper:
		return "paper"
	case KindAbstract:
		return "abstract"
	case KindPoster:
		return "poster"
	default:
		return "unknown"
	}
}

// ParseSubmissionKind converts a config-file string into a SubmissionKind.
func ParseSubmissionKind(s string) (SubmissionKind, error) {
	switch s {
	case "paper":
		return KindPaper, nil
	case "abstract":
		return KindAbstract, nil
	case "poster":
		return KindPoster, nil
	default:
		return 0, fmt.Errorf("unknown submission kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k SubmissionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SubmissionKind) UnmarshalText(b []byte) error {
	v, err := ParseSubmissionKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// DaysPerMonth converts draft windows expressed in months into days.
const DaysPerMonth = 30

// DefaultPosterDurationDays applies when a poster has no draft window.
const DefaultPosterDurationDays = 30

// Submission is a unit of work (abstract, paper or poster) to be scheduled.
type Submission struct {
	ID    string
	Title string
	Kind  SubmissionKind

	// ConferenceID is empty when the submission has not been assigned a venue.
	ConferenceID string
	DependsOn    []string

	DraftWindowMonths   int
	LeadTimeFromParents int

	// EarliestStart is the zero time when the submission may start any day.
	EarliestStart time.Time

	// PenaltyCostPerDay overrides the config default when > 0.
	PenaltyCostPerDay float64

	// Engineering drives priority weighting and venue compatibility.
	Engineering bool

	// CandidateConferences and CandidateKinds are consulted when
	// ConferenceID is unset.
	CandidateConferences []string
	CandidateKinds       []SubmissionKind
}

// Validate checks that the submission fields are sound.
func (s Submission) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("submission missing id")
	}
	if s.Title == "" {
		return fmt.Errorf("submission %s: missing title", s.ID)
	}
	if s.DraftWindowMonths < 0 {
		return fmt.Errorf("submission %s: draft window months cannot be negative", s.ID)
	}
	if s.LeadTimeFromParents < 0 {
		return fmt.Errorf("submission %s: lead time from parents cannot be negative", s.ID)
	}
	if s.PenaltyCostPerDay < 0 {
		return fmt.Errorf("submission %s: penalty cost per day cannot be negative", s.ID)
	}
	if s.Kind == KindPaper && s.ConferenceID == "" && len(s.CandidateConferences) == 0 {
		return fmt.Errorf("submission %s: paper needs a conference or candidate conferences", s.ID)
	}
	return nil
}

// DurationDays returns how many days the submission is actively worked on.
// Abstracts are instantaneous; posters and papers derive from their draft
// window, falling back to config defaults.
func (s Submission) DurationDays(cfg *Config) int {
	switch s.Kind {
	case KindAbstract:
		return 0
	case KindPoster:
		if s.DraftWindowMonths > 0 {
			return s.DraftWindowMonths * DaysPerMonth
		}
		return DefaultPosterDurationDays
	default:
		if s.DraftWindowMonths > 0 {
			return s.DraftWindowMonths * DaysPerMonth
		}
		return cfg.MinPaperLeadTimeDays
	}
}

// EndDate is the day work finishes when starting on start.
func (s Submission) EndDate(start time.Time, cfg *Config) time.Time {
	return start.AddDate(0, 0, s.DurationDays(cfg))
}

// PriorityScore computes the scheduling priority from the config weights.
// Engineering submissions receive a multiplicative bonus.
func (s Submission) PriorityScore(cfg *Config) float64 {
	if len(cfg.PriorityWeights) == 0 {
		return 1.0
	}
	base, ok := cfg.PriorityWeights[s.Kind.String()]
	if !ok {
		base = 1.0
	}
	if s.Engineering {
		bonus, ok := cfg.PriorityWeights["engineering_paper"]
		if !ok {
			bonus = 2.0
		}
		base *= bonus
	}
	return base
}
