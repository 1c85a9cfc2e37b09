package model

import "time"

// Severity grades a violation.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ConstraintFamily names a validator family.
type ConstraintFamily string

const (
	FamilyDeadline         ConstraintFamily = "deadline"
	FamilyDependency       ConstraintFamily = "dependency"
	FamilyResource         ConstraintFamily = "resource"
	FamilyVenue            ConstraintFamily = "venue"
	FamilySoftBlock        ConstraintFamily = "soft_block"
	FamilySingleConference ConstraintFamily = "single_conference"
)

// Violation is a constraint breach reported as a value, never an error.
// Family-specific fields stay zero when they do not apply.
type Violation struct {
	SubmissionID string
	Description  string
	Severity     Severity

	// Deadline family.
	ConferenceID string
	Deadline     time.Time
	EndDate      time.Time
	DaysLate     int

	// Dependency family. Issue is one of "missing_dependency",
	// "invalid_dependency" or "timing_violation".
	DependencyID  string
	Issue         string
	DaysViolation int

	// Resource family.
	Date   time.Time
	Load   int
	Limit  int
	Excess int

	// Single-conference family.
	FirstPaper  string
	SecondPaper string
	DaysBetween int
}

// ValidationResult is the outcome of one constraint family over a schedule.
type ValidationResult struct {
	Family     ConstraintFamily
	Valid      bool
	Violations []Violation

	// Rate is the compliance/satisfaction percentage, 100 when Total is 0.
	Rate      float64
	Total     int
	Compliant int
	Summary   string
}

// Report aggregates one ValidationResult per family, the only sanctioned way
// external layers read schedule legality.
type Report struct {
	Results        []ValidationResult
	Valid          bool
	ComplianceRate float64
}

// Family returns the result for the given family, nil when absent.
func (r *Report) Family(f ConstraintFamily) *ValidationResult {
	for i := range r.Results {
		if r.Results[i].Family == f {
			return &r.Results[i]
		}
	}
	return nil
}

// TotalViolations counts violations across all families.
func (r *Report) TotalViolations() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Violations)
	}
	return n
}

// ScheduleMetrics summarises a schedule for external consumers. All fields
// are derived, read-only values.
type ScheduleMetrics struct {
	Makespan        int
	DurationDays    int
	SubmissionCount int
	ScheduledCount  int
	CompletionRate  float64

	PeakUtilization int
	AvgDailyLoad    float64
	UtilizationRate float64

	TotalPenalty    float64
	QualityScore    float64
	EfficiencyScore float64
	ComplianceRate  float64

	MonthlyDistribution map[string]int

	Start time.Time
	End   time.Time
}
