// Package task defines the core domain types for dayplan.
package task

import (
	"errors"
	"fmt"

	"dayplan/internal/slot"
)

// Validation errors.
var (
	ErrInvalidSlotRange = errors.New("slot range must satisfy 0 <= start < end <= grid size")
	ErrInvalidDate      = errors.New("task date must be a YYYY-MM-DD day key")
)

// Domain errors.
var (
	ErrSlotConflict = errors.New("slot range conflicts with existing task")
	ErrTaskNotFound = errors.New("task not found")
)

// Source identifies where a task came from.
type Source string

const (
	// SourceHarvest marks tasks created from a Harvest Forecast assignment.
	SourceHarvest Source = "harvest"
)

// Task represents a scheduled item on the day grid. StartSlot/EndSlot
// form a half-open range; duration is (EndSlot-StartSlot) * 15 minutes.
type Task struct {
	ID          int64
	StartSlot   int
	EndSlot     int
	Title       string
	Description string
	ColorIndex  int
	Date        string // canonical "YYYY-MM-DD" day key
	IsRepeated  bool
	SeriesKey   string // empty unless assigned at series creation
	Source      Source // empty for user-created tasks
	HarvestData string // raw originating record, opaque to the core
}

// New creates a task with slot-range validation. date must already be a
// canonical day key.
func New(date string, startSlot, endSlot int, title, description string, colorIndex int) (*Task, error) {
	if len(date) != 10 {
		return nil, ErrInvalidDate
	}
	if startSlot < 0 || endSlot <= startSlot || endSlot > slot.Count {
		return nil, ErrInvalidSlotRange
	}
	return &Task{
		StartSlot:   startSlot,
		EndSlot:     endSlot,
		Title:       title,
		Description: description,
		ColorIndex:  colorIndex,
		Date:        date,
	}, nil
}

// Slots returns the number of slots the task occupies.
func (t *Task) Slots() int {
	return t.EndSlot - t.StartSlot
}

// DurationMinutes returns the task length in minutes.
func (t *Task) DurationMinutes() int {
	return t.Slots() * slot.DurationMinutes
}

// Contains returns true if the given slot falls inside the task's range.
func (t *Task) Contains(s int) bool {
	return s >= t.StartSlot && s < t.EndSlot
}

// Overlaps returns true if the other task occupies the same date and an
// intersecting slot range. Half-open test: aStart < bEnd && aEnd > bStart.
func (t *Task) Overlaps(other *Task) bool {
	if other == nil || t.Date != other.Date {
		return false
	}
	return t.StartSlot < other.EndSlot && t.EndSlot > other.StartSlot
}

// GroupingKey returns the key that ties series instances together. Tasks
// materialized as a series carry an explicit SeriesKey frozen at creation
// time; for anything else the key is derived live from the task's current
// fields, so two ungrouped tasks with identical shape form an implicit
// series.
func (t *Task) GroupingKey() string {
	if t.SeriesKey != "" {
		return t.SeriesKey
	}
	return DeriveKey(t.Title, t.Description, t.StartSlot, t.EndSlot)
}

// DeriveKey builds the implicit series grouping key.
func DeriveKey(title, description string, startSlot, endSlot int) string {
	return fmt.Sprintf("%s|%s|%d|%d", title, description, startSlot, endSlot)
}

// Template is a saved snapshot for quick re-creation of similar tasks.
// Its lifecycle is independent of any task's.
type Template struct {
	ID          int64
	Title       string
	Description string
	ColorIndex  int
}

// TemplateFrom snapshots the reusable fields of a task.
func TemplateFrom(t *Task) Template {
	return Template{
		Title:       t.Title,
		Description: t.Description,
		ColorIndex:  t.ColorIndex,
	}
}
