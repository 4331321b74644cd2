// Package exchange converts the task collection to and from external
// formats: JSON for durable persistence, CSV for spreadsheets, and ICS
// for calendar apps.
package exchange

import (
	"encoding/json"
	"fmt"
	"io"

	"dayplan/internal/task"
)

// taskRecord is the wire shape of the JSON file format. Field names
// stay stable across versions so an exported file round-trips.
type taskRecord struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	StartSlot   int    `json:"startSlot"`
	EndSlot     int    `json:"endSlot"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ColorIndex  int    `json:"colorIndex"`
	IsRepeated  bool   `json:"isRepeated,omitempty"`
	SeriesKey   string `json:"seriesKey,omitempty"`
	Source      string `json:"source,omitempty"`
	HarvestData string `json:"harvestData,omitempty"`
}

func toRecord(t *task.Task) taskRecord {
	return taskRecord{
		ID:          t.ID,
		Date:        t.Date,
		StartSlot:   t.StartSlot,
		EndSlot:     t.EndSlot,
		Title:       t.Title,
		Description: t.Description,
		ColorIndex:  t.ColorIndex,
		IsRepeated:  t.IsRepeated,
		SeriesKey:   t.SeriesKey,
		Source:      string(t.Source),
		HarvestData: t.HarvestData,
	}
}

func (r taskRecord) toTask() (*task.Task, error) {
	t, err := task.New(r.Date, r.StartSlot, r.EndSlot, r.Title, r.Description, r.ColorIndex)
	if err != nil {
		return nil, err
	}
	t.ID = r.ID
	t.IsRepeated = r.IsRepeated
	t.SeriesKey = r.SeriesKey
	t.Source = task.Source(r.Source)
	t.HarvestData = r.HarvestData
	return t, nil
}

// ExportJSON writes the collection as an indented JSON array.
func ExportJSON(w io.Writer, tasks []*task.Task) error {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ImportJSON parses a JSON array of task records. Records that fail
// validation poison the whole import; callers wanting degrade-to-empty
// semantics discard the error along with the result.
func ImportJSON(r io.Reader) ([]*task.Task, error) {
	var records []taskRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("import json: %w", err)
	}
	tasks := make([]*task.Task, 0, len(records))
	for i, rec := range records {
		t, err := rec.toTask()
		if err != nil {
			return nil, fmt.Errorf("import json: record %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
