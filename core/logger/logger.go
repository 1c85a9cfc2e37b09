// Package logger defines the logging contract the core packages depend on.
// Concrete adapters live under infra/logger so the scheduling core stays
// free of logging dependencies.
package logger

// Logger is the leveled logging surface used across the scheduler.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a debug message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StructuredLogger is the subset adapters implement when they support
// structured fields.
type StructuredLogger interface {
	Debugw(msg string, fields map[string]any)
}
