package harvest

import (
	"dayplan/internal/grid"
	"dayplan/internal/slot"
	"dayplan/internal/store"
	"dayplan/internal/task"
)

// PlaceItem schedules a normalized item on the grid at the given start
// slot. The end slot follows from the item's duration at four slots per
// hour, rounded up and clamped to the end of the grid. Placement is
// refused with ErrSlotConflict when the landing range touches an
// existing task; the day is left untouched in that case.
func PlaceItem(st *store.Store, item Item, date string, startSlot int) (*task.Task, error) {
	start := slot.Clamp(startSlot)
	end := start + slot.ForHours(item.DurationHours)
	if end > slot.Count {
		end = slot.Count
	}

	if grid.HasOverlap(st.All(), date, start, end, 0) {
		return nil, task.ErrSlotConflict
	}

	t, err := task.New(date, start, end, item.Title, item.Description, item.SuggestedColor)
	if err != nil {
		return nil, err
	}
	t.Source = task.SourceHarvest
	t.HarvestData = item.Raw
	return st.Create(t), nil
}
