// Package validate implements the constraint validators shared by every
// scheduling strategy and scorer. Each family is a pure function from
// (Schedule, Config) to a ValidationResult; violations are reported as
// values, never as errors. The same checks, run in single-submission mode,
// form the placement oracle strategies consult before placing work.
package validate
