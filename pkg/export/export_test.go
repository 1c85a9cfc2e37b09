package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jmottin/subsched/core/model"
)

func sampleSchedule() model.Schedule {
	return model.Schedule{
		"w1-pap-icm": {Start: model.Day(2025, time.March, 1), End: model.Day(2025, time.May, 30)},
		"w1-abs-icm": {Start: model.Day(2025, time.January, 10), End: model.Day(2025, time.January, 10)},
	}
}

func TestEntriesOrdered(t *testing.T) {
	entries := Entries(sampleSchedule())
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].SubmissionID != "w1-abs-icm" || entries[1].SubmissionID != "w1-pap-icm" {
		t.Fatalf("entries not ordered by start: %+v", entries)
	}
	if entries[0].DurationDays != 0 || entries[1].DurationDays != 90 {
		t.Fatalf("durations wrong: %+v", entries)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSchedule()); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("round trip lost entries: %d", len(s))
	}
	if !s["w1-pap-icm"].Start.Equal(model.Day(2025, time.March, 1)) {
		t.Fatalf("start = %v", s["w1-pap-icm"].Start)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSchedule()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "submission_id,start,end,duration_days" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "w1-abs-icm,2025-01-10") {
		t.Fatalf("first row = %q", lines[1])
	}
}

func TestReadJSONRejectsBadEntries(t *testing.T) {
	bad := []string{
		`[{"submission_id":"x","start":"2025-13-01","end":"2025-01-02"}]`,
		`[{"submission_id":"x","start":"2025-01-02","end":"2025-01-01"}]`,
		`not json`,
	}
	for i, data := range bad {
		if _, err := ReadJSON(strings.NewReader(data)); err == nil {
			t.Fatalf("case %d: bad input accepted", i)
		}
	}
}
