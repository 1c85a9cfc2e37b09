package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleWriterInDev(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := New("scheduler-test")
	require.NotNil(t, l)
	l.Debugf("placing %d submissions", 3)
	l.Debugw("placement", map[string]any{"submission": "p1", "day": "2025-01-01"})
	l.Infof("strategy %s done", "greedy")
	l.Warnf("deadline pressure")
	l.Errorf("solver unavailable")
}

func TestJSONWriterByDefault(t *testing.T) {
	t.Setenv("APP_ENV", "")
	l := NewZerologLogger("scheduler-test")
	require.NotNil(t, l)
	l.Infof("run complete")
}

func TestNopLoggerDiscards(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("dropped")
	l.Debugw("dropped", map[string]any{"k": 1})
	l.Infof("dropped %d", 1)
	l.Warnf("dropped")
	l.Errorf("dropped")
}
