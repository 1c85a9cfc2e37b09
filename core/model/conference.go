package model

import (
	"fmt"
	"time"
)

const (
	// SingleConferenceCycleDays is the minimum separation between two papers
	// sent to the same conference, one review cycle.
	SingleConferenceCycleDays = 365

	// SoftBlockDays is the advisory spacing kept between submissions to the
	// same conference family within a year.
	SoftBlockDays = 60
)

// ConferenceType distinguishes medical from engineering venues.
type ConferenceType int

const (
	ConferenceMedical ConferenceType = iota
	ConferenceEngineering
)

// String returns a human-readable representation of the conference type.
func (t ConferenceType) String() string {
	switch t {
	case ConferenceMedical:
		return "MEDICAL"
	case ConferenceEngineering:
		return "ENGINEERING"
	default:
		return "unknown"
	}
}

// ParseConferenceType converts a config-file string into a ConferenceType.
func ParseConferenceType(s string) (ConferenceType, error) {
	switch s {
	case "MEDICAL":
		return ConferenceMedical, nil
	case "ENGINEERING":
		return ConferenceEngineering, nil
	default:
		return 0, fmt.Errorf("unknown conference type %q", s)
	}
}

// Recurrence is the cadence at which a conference repeats.
type Recurrence int

const (
	RecurrenceAnnual Recurrence = iota
	RecurrenceBiennial
	RecurrenceQuarterly
)

// String returns a human-readable representation of the recurrence.
func (r Recurrence) String() string {
	switch r {
	case RecurrenceAnnual:
		return "annual"
	case RecurrenceBiennial:
		return "biennial"
	case RecurrenceQuarterly:
		return "quarterly"
	default:
		return "unknown"
	}
}

// ParseRecurrence converts a config-file string into a Recurrence.
func ParseRecurrence(s string) (Recurrence, error) {
	switch s {
	case "annual":
		return RecurrenceAnnual, nil
	case "biennial":
		return RecurrenceBiennial, nil
	case "quarterly":
		return RecurrenceQuarterly, nil
	default:
		return 0, fmt.Errorf("unknown recurrence %q", s)
	}
}

// Workflow describes which submission kinds a conference accepts and in
// which order.
type Workflow int

const (
	WorkflowUnset Workflow = iota
	WorkflowAbstractOnly
	WorkflowPaperOnly
	WorkflowPosterOnly
	WorkflowAbstractThenPaper
	WorkflowAbstractOrPaper
	WorkflowAllTypes
)

// String returns a human-readable representation of the workflow.
func (w Workflow) String() string {
	switch w {
	case WorkflowAbstractOnly:
		return "abstract_only"
	case WorkflowPaperOnly:
		return "paper_only"
	case WorkflowPosterOnly:
		return "poster_only"
	case WorkflowAbstractThenPaper:
		return "abstract_then_paper"
	case WorkflowAbstractOrPaper:
		return "abstract_or_paper"
	case WorkflowAllTypes:
		return "all_types"
	default:
		return "unset"
	}
}

// ParseWorkflow converts a config-file string into a Workflow.
func ParseWorkflow(s string) (Workflow, error) {
	switch s {
	case "abstract_only":
		return WorkflowAbstractOnly, nil
	case "paper_only":
		return WorkflowPaperOnly, nil
	case "poster_only":
		return WorkflowPosterOnly, nil
	case "abstract_then_paper":
		return WorkflowAbstractThenPaper, nil
	case "abstract_or_paper":
		return WorkflowAbstractOrPaper, nil
	case "all_types":
		return WorkflowAllTypes, nil
	default:
		return 0, fmt.Errorf("unknown workflow %q", s)
	}
}

// Conference is a venue with per-kind deadlines and an acceptance workflow.
type Conference struct {
	ID         string
	Name       string
	Type       ConferenceType
	Recurrence Recurrence

	// Deadlines maps a submission kind to its due date, at most one per kind.
	Deadlines map[SubmissionKind]time.Time

	// SubmissionTypes overrides the workflow inferred from Deadlines when
	// not WorkflowUnset.
	SubmissionTypes Workflow
}

// Validate checks that the conference fields are sound.
func (c Conference) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("conference missing id")
	}
	if c.Name == "" {
		return fmt.Errorf("conference %s: missing name", c.ID)
	}
	if len(c.Deadlines) == 0 {
		return fmt.Errorf("conference %s: no deadlines defined", c.ID)
	}
	return nil
}

// EffectiveWorkflow returns the explicit workflow when set, otherwise the
// workflow inferred from which kinds carry deadlines.
func (c Conference) EffectiveWorkflow() Workflow {
	if c.SubmissionTypes != WorkflowUnset {
		return c.SubmissionTypes
	}
	_, abs := c.Deadlines[KindAbstract]
	_, pap := c.Deadlines[KindPaper]
	_, pos := c.Deadlines[KindPoster]
	switch {
	case abs && pap && pos:
		return WorkflowAllTypes
	case abs && pap:
		return WorkflowAbstractOrPaper
	case abs:
		return WorkflowAbstractOnly
	case pap:
		return WorkflowPaperOnly
	case pos:
		return WorkflowPosterOnly
	default:
		return WorkflowAbstractOrPaper
	}
}

// Accepts reports whether the conference workflow accepts the given kind.
func (c Conference) Accepts(kind SubmissionKind) bool {
	switch c.EffectiveWorkflow() {
	case WorkflowAllTypes:
		return true
	case WorkflowAbstractOnly:
		return kind == KindAbstract
	case WorkflowPaperOnly:
		return kind == KindPaper
	case WorkflowPosterOnly:
		return kind == KindPoster
	case WorkflowAbstractThenPaper, WorkflowAbstractOrPaper:
		return kind == KindAbstract || kind == KindPaper
	default:
		return false
	}
}

// RequiresAbstractBeforePaper reports whether a paper at this venue must be
// preceded by its abstract.
func (c Conference) RequiresAbstractBeforePaper() bool {
	return c.EffectiveWorkflow() == WorkflowAbstractThenPaper
}

// Deadline returns the due date for the kind and whether one is declared.
func (c Conference) Deadline(kind SubmissionKind) (time.Time, bool) {
	d, ok := c.Deadlines[kind]
	return d, ok
}

// CompatibleWith reports whether a submission may target this venue.
// Engineering submissions may go anywhere; the rest must avoid engineering
// conferences.
func (c Conference) CompatibleWith(sub Submission) bool {
	kinds := sub.CandidateKinds
	if len(kinds) == 0 {
		kinds = []SubmissionKind{sub.Kind}
	}
	accepted := false
	for _, k := range kinds {
		if c.Accepts(k) {
			accepted = true
			break
		}
	}
	if !accepted {
		return false
	}
	return sub.Engineering || c.Type != ConferenceEngineering
}
