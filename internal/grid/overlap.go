// Package grid implements the slot-occupancy rules for a single day:
// overlap tests and the best-effort boundary adjustments used when a
// task edge is dragged into occupied space.
//
// All functions operate per date partition; tasks on other dates never
// affect the result. Adjustments are best-effort, not guaranteed
// conflict-free: callers must re-check HasOverlap on the result and
// reject the mutation if it still conflicts. Adjustment handles the
// common single-blocker case; verification is the correctness backstop
// for multi-blocker layouts.
package grid

import (
	"dayplan/internal/slot"
	"dayplan/internal/task"
)

// Occupied returns true if any task other than excludeID covers slot s
// on the given date.
func Occupied(tasks []*task.Task, date string, s int, excludeID int64) bool {
	for _, t := range tasks {
		if t.ID == excludeID || t.Date != date {
			continue
		}
		if t.Contains(s) {
			return true
		}
	}
	return false
}

// HasOverlap returns true if any task other than excludeID on the given
// date intersects the half-open range [start, end).
func HasOverlap(tasks []*task.Task, date string, start, end int, excludeID int64) bool {
	for _, t := range tasks {
		if t.ID == excludeID || t.Date != date {
			continue
		}
		if start < t.EndSlot && end > t.StartSlot {
			return true
		}
	}
	return false
}

// AdjustStart resolves a desired start slot for a task whose end edge is
// fixed at end. The desired value is clamped into the grid, then pushed
// just past the nearest blocking task below it, and finally capped at
// end-1 so at least one slot remains.
func AdjustStart(tasks []*task.Task, date string, desiredStart, end int, excludeID int64) int {
	adjusted := slot.Clamp(desiredStart)

	boundary := -1
	for _, t := range tasks {
		if t.ID == excludeID || t.Date != date {
			continue
		}
		if adjusted < t.EndSlot && end > t.StartSlot {
			// Only blockers that fit entirely below the fixed end can
			// define the new boundary.
			if t.EndSlot <= end && t.EndSlot > boundary {
				boundary = t.EndSlot
			}
		}
	}
	if boundary >= 0 {
		adjusted = boundary
	}

	if adjusted > end-1 {
		adjusted = end - 1
	}
	return adjusted
}

// AdjustEnd is the symmetric counterpart of AdjustStart: the start edge
// is fixed and the desired end is capped at the nearest blocking task
// above it, keeping at least one slot.
func AdjustEnd(tasks []*task.Task, date string, start, desiredEnd int, excludeID int64) int {
	adjusted := desiredEnd
	if adjusted > slot.Count {
		adjusted = slot.Count
	}
	if adjusted < start+1 {
		adjusted = start + 1
	}

	boundary := slot.Count + 1
	for _, t := range tasks {
		if t.ID == excludeID || t.Date != date {
			continue
		}
		if start < t.EndSlot && adjusted > t.StartSlot {
			if t.StartSlot >= start && t.StartSlot < boundary {
				boundary = t.StartSlot
			}
		}
	}
	if boundary <= slot.Count {
		adjusted = boundary
	}

	if adjusted < start+1 {
		adjusted = start + 1
	}
	return adjusted
}
