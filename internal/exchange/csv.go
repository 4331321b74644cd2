package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"dayplan/internal/task"
)

var csvHeader = []string{"id", "date", "startSlot", "endSlot", "title", "description", "color"}

// ExportCSV writes the collection with a fixed header row. Title and
// description are quoted by the writer whenever they need it.
func ExportCSV(w io.Writer, tasks []*task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, t := range tasks {
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date,
			strconv.Itoa(t.StartSlot),
			strconv.Itoa(t.EndSlot),
			t.Title,
			t.Description,
			strconv.Itoa(t.ColorIndex),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// ImportCSV parses rows under the fixed header. Rows carrying extra
// trailing fields are tolerated; rows with fewer fields than the header
// are rejected.
func ImportCSV(r io.Reader) ([]*task.Task, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("import csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	start := 0
	if len(rows[0]) > 0 && rows[0][0] == csvHeader[0] {
		start = 1
	}

	var tasks []*task.Task
	for i, row := range rows[start:] {
		if len(row) < len(csvHeader) {
			return nil, fmt.Errorf("import csv: row %d: %d fields, want at least %d", i+1, len(row), len(csvHeader))
		}
		t, err := rowToTask(row)
		if err != nil {
			return nil, fmt.Errorf("import csv: row %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func rowToTask(row []string) (*task.Task, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("id %q: %w", row[0], err)
	}
	startSlot, err := strconv.Atoi(row[2])
	if err != nil {
		return nil, fmt.Errorf("startSlot %q: %w", row[2], err)
	}
	endSlot, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fmt.Errorf("endSlot %q: %w", row[3], err)
	}
	color, err := strconv.Atoi(row[6])
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", row[6], err)
	}

	t, err := task.New(row[1], startSlot, endSlot, row[4], row[5], color)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}
