// Package export reads and writes schedules in JSON and CSV form.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jmottin/subsched/core/model"
)

// dateLayout matches the calendar-day format of the config files.
const dateLayout = "2006-01-02"

// Entry is one schedule row in exported form.
type Entry struct {
	SubmissionID string `json:"submission_id"`
	Start        string `json:"start"`
	End          string `json:"end"`
	DurationDays int    `json:"duration_days"`
}

// Entries flattens a schedule into rows ordered by start day then id.
func Entries(s model.Schedule) []Entry {
	out := make([]Entry, 0, len(s))
	for _, id := range s.IDs() {
		iv := s[id]
		out = append(out, Entry{
			SubmissionID: id,
			Start:        iv.Start.Format(dateLayout),
			End:          iv.End.Format(dateLayout),
			DurationDays: iv.DurationDays(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].SubmissionID < out[j].SubmissionID
	})
	return out
}

// WriteJSON writes the schedule to w in JSON format.
func WriteJSON(w io.Writer, s model.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Entries(s))
}

// WriteCSV writes the schedule to w in CSV format.
func WriteCSV(w io.Writer, s model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"submission_id", "start", "end", "duration_days"}); err != nil {
		return err
	}
	for _, e := range Entries(s) {
		rec := []string{e.SubmissionID, e.Start, e.End, fmt.Sprint(e.DurationDays)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadJSON parses a schedule previously written with WriteJSON.
func ReadJSON(r io.Reader) (model.Schedule, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	s := make(model.Schedule, len(entries))
	for _, e := range entries {
		start, err := time.Parse(dateLayout, e.Start)
		if err != nil {
			return nil, fmt.Errorf("entry %s: bad start: %w", e.SubmissionID, err)
		}
		end, err := time.Parse(dateLayout, e.End)
		if err != nil {
			return nil, fmt.Errorf("entry %s: bad end: %w", e.SubmissionID, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("entry %s: end before start", e.SubmissionID)
		}
		s[e.SubmissionID] = model.Interval{Start: start, End: end}
	}
	return s, nil
}
