// Package series materializes repeating tasks and deletes them at
// instance, this-and-forward, or whole-series granularity. No series
// state lives anywhere except the SeriesKey stamped on each task.
package series

import (
	"errors"
	"fmt"

	"github.com/teambition/rrule-go"

	"dayplan/internal/dateutil"
	"dayplan/internal/store"
	"dayplan/internal/task"
)

// MaxOccurrences caps how many future instances a single materialization
// may create.
const MaxOccurrences = 30

// Unit is the repeat cadence unit.
type Unit int

const (
	UnitDay Unit = iota
	UnitWeek
)

var (
	ErrUnknownTask    = errors.New("series: base task not found")
	ErrBadCadence     = errors.New("series: cadence count must be at least 1")
	ErrUnknownUnit    = errors.New("series: unknown cadence unit")
	ErrBadOccurrences = errors.New("series: occurrence count out of range")
)

// Options controls a materialization.
type Options struct {
	Unit         Unit
	Every        int  // repeat every N units
	WeekdaysOnly bool // shift weekend occurrences forward to the next weekday
	Occurrences  int  // future instances to create, capped at MaxOccurrences
}

// Materialize creates future occurrences of the task with the given id.
// Occurrence dates follow an rrule with the task's date as the seed; an
// occurrence that would land on a weekend is shifted forward to the next
// weekday when WeekdaysOnly is set, and an occurrence whose slot range
// conflicts with an existing task on its date is silently skipped. All
// created instances, and the base task itself, are stamped with the
// base's grouping key so the delete granularities can find them. The
// survivors land in the store as a single batch.
func Materialize(st *store.Store, baseID int64, opts Options) ([]*task.Task, error) {
	base := st.FindByID(baseID)
	if base == nil {
		return nil, ErrUnknownTask
	}
	if opts.Every < 1 {
		return nil, ErrBadCadence
	}
	if opts.Occurrences < 1 || opts.Occurrences > MaxOccurrences {
		return nil, ErrBadOccurrences
	}

	var freq rrule.Frequency
	switch opts.Unit {
	case UnitDay:
		freq = rrule.DAILY
	case UnitWeek:
		freq = rrule.WEEKLY
	default:
		return nil, ErrUnknownUnit
	}

	seed, err := dateutil.ParseDay(base.Date)
	if err != nil {
		return nil, fmt.Errorf("series: parse base date: %w", err)
	}

	// Count includes the seed itself, which is dropped below.
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: opts.Every,
		Count:    opts.Occurrences + 1,
		Dtstart:  seed,
	})
	if err != nil {
		return nil, fmt.Errorf("series: build rule: %w", err)
	}

	key := base.GroupingKey()

	var created []*task.Task
	for _, occ := range r.All()[1:] {
		if opts.WeekdaysOnly {
			occ = dateutil.NextWeekday(occ)
		}
		date := dateutil.DayKey(occ)

		if conflicts(st, created, date, base.StartSlot, base.EndSlot) {
			continue
		}

		t, err := task.New(date, base.StartSlot, base.EndSlot, base.Title, base.Description, base.ColorIndex)
		if err != nil {
			return nil, fmt.Errorf("series: occurrence on %s: %w", date, err)
		}
		t.IsRepeated = true
		t.SeriesKey = key
		created = append(created, t)
	}

	st.CreateBatch(created)

	repeated := true
	st.Update(base.ID, store.Patch{IsRepeated: &repeated, SeriesKey: &key})

	return created, nil
}

// conflicts reports whether the range collides with a stored task or
// with an occurrence accepted earlier in the same materialization.
// Weekend shifting can fold two occurrences onto one date; without the
// pending check the second would slip past the store and break the
// per-date non-overlap invariant.
func conflicts(st *store.Store, pending []*task.Task, date string, start, end int) bool {
	for _, t := range st.TasksOn(date) {
		if start < t.EndSlot && end > t.StartSlot {
			return true
		}
	}
	for _, t := range pending {
		if t.Date == date && start < t.EndSlot && end > t.StartSlot {
			return true
		}
	}
	return false
}

// DeleteInstance removes exactly one task.
func DeleteInstance(st *store.Store, id int64) error {
	if !st.Delete(id) {
		return ErrUnknownTask
	}
	return nil
}

// DeleteForward removes every task sharing the grouping key of the task
// with the given id whose date is on or after that task's date. The
// day-key form is zero padded, so string comparison is calendar order.
func DeleteForward(st *store.Store, id int64) (int, error) {
	anchor := st.FindByID(id)
	if anchor == nil {
		return 0, ErrUnknownTask
	}
	key := anchor.GroupingKey()

	var ids []int64
	for _, t := range st.All() {
		if t.GroupingKey() == key && t.Date >= anchor.Date {
			ids = append(ids, t.ID)
		}
	}
	return st.DeleteMany(ids), nil
}

// DeleteSeries removes every task sharing the grouping key of the task
// with the given id, regardless of date.
func DeleteSeries(st *store.Store, id int64) (int, error) {
	anchor := st.FindByID(id)
	if anchor == nil {
		return 0, ErrUnknownTask
	}
	key := anchor.GroupingKey()

	var ids []int64
	for _, t := range st.All() {
		if t.GroupingKey() == key {
			ids = append(ids, t.ID)
		}
	}
	return st.DeleteMany(ids), nil
}
