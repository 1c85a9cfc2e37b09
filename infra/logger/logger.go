// Package logger provides the zerolog-backed implementation of the core
// logging interface used by the scheduler CLI and comparison runs.
package logger

import corelogger "github.com/jmottin/subsched/core/logger"

// Logger re-exports the core interface so callers wiring adapters only
// import this package.
type Logger = corelogger.Logger

// NopLogger discards everything. Strategies and sinks accept it when a
// caller has no logging configured.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the default logger for a component. Output format follows the
// APP_ENV environment variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
