// Package store owns the canonical task collection for the lifetime of
// the app. Every mutation funnels through here so the per-date
// non-overlap invariant and id uniqueness hold no matter which surface
// (gesture machine, CLI, series engine, import) drives the change.
package store

import (
	"sort"
	"sync"
	"time"

	"dayplan/internal/grid"
	"dayplan/internal/slot"
	"dayplan/internal/task"
)

// PaletteSize is the number of entries in the host color palette. New
// tasks cycle through it per date partition.
const PaletteSize = 8

// Patch describes a partial task update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	ColorIndex  *int
	StartSlot   *int
	EndSlot     *int
	IsRepeated  *bool
	SeriesKey   *string
}

// Store holds all tasks across all dates. Mutation entry points are
// serialized with a mutex so overlap checks always see a consistent
// snapshot even if the host delivers callbacks concurrently.
type Store struct {
	mu         sync.Mutex
	tasks      []*task.Task
	selectedID int64
	lastID     int64
	now        func() time.Time
}

// Option configures optional store behavior.
type Option func(*Store)

// WithNow injects the clock used for id generation. Tests use this to
// make ids deterministic.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store seeded with an existing collection, typically the
// result of loading persisted state at startup.
func New(tasks []*task.Task, opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range tasks {
		s.tasks = append(s.tasks, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s
}

// nextID derives a creation-time id that stays strictly monotonic even
// when two creations land in the same millisecond.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Create appends a pre-validated task, assigning its id when unset.
// Returns the stored task.
func (s *Store) Create(t *task.Task) *task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(t)
}

func (s *Store) createLocked(t *task.Task) *task.Task {
	if t.ID == 0 {
		t.ID = s.nextID()
	} else if t.ID > s.lastID {
		s.lastID = t.ID
	}
	s.tasks = append(s.tasks, t)
	return t
}

// CreateBatch appends several tasks at once, assigning fresh ids. The
// series engine uses this so a materialized series lands as one append.
func (s *Store) CreateBatch(tasks []*task.Task) []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		s.createLocked(t)
	}
	return tasks
}

// Update merges the patch into the task with the given id. When the
// patch touches the slot range, the range is first re-derived to respect
// the one-slot minimum, then run through the adjust-then-verify overlap
// protocol; the whole update is refused (task unchanged, ok=false) if
// the adjusted range still conflicts.
func (s *Store) Update(id int64, p Patch) (*task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(id)
	if t == nil {
		return nil, false
	}

	if p.StartSlot != nil || p.EndSlot != nil {
		start := t.StartSlot
		end := t.EndSlot
		if p.StartSlot != nil {
			start = *p.StartSlot
		}
		if p.EndSlot != nil {
			end = *p.EndSlot
		}

		start = slot.Clamp(start)
		if end <= start {
			end = start + 1
		}
		if end > slot.Count {
			end = slot.Count
			if start >= end {
				start = end - 1
			}
		}

		start = grid.AdjustStart(s.tasks, t.Date, start, end, t.ID)
		end = grid.AdjustEnd(s.tasks, t.Date, start, end, t.ID)
		if grid.HasOverlap(s.tasks, t.Date, start, end, t.ID) {
			return t, false
		}
		t.StartSlot = start
		t.EndSlot = end
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ColorIndex != nil {
		t.ColorIndex = *p.ColorIndex
	}
	if p.IsRepeated != nil {
		t.IsRepeated = *p.IsRepeated
	}
	if p.SeriesKey != nil {
		t.SeriesKey = *p.SeriesKey
	}
	return t, true
}

// SetSlots replaces a task's slot range without adjustment. The gesture
// machine calls this after running the adjust-then-verify protocol
// itself; the range must already be conflict-free.
func (s *Store) SetSlots(id int64, start, end int) (*task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findLocked(id)
	if t == nil {
		return nil, false
	}
	if start < 0 || end <= start || end > slot.Count {
		return t, false
	}
	if grid.HasOverlap(s.tasks, t.Date, start, end, t.ID) {
		return t, false
	}
	t.StartSlot = start
	t.EndSlot = end
	return t, true
}

// Delete removes a task. The selection is cleared when the deleted task
// was selected.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(id)
}

func (s *Store) deleteLocked(id int64) bool {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if s.selectedID == id {
				s.selectedID = 0
			}
			return true
		}
	}
	return false
}

// DeleteMany removes several tasks at once and reports how many were
// actually present.
func (s *Store) DeleteMany(ids []int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range ids {
		if s.deleteLocked(id) {
			n++
		}
	}
	return n
}

// TasksOn returns the tasks scheduled on the given day key in insertion
// order. The slice is a copy; the tasks are shared.
func (s *Store) TasksOn(date string) []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*task.Task
	for _, t := range s.tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// All returns every task in insertion order.
func (s *Store) All() []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// FindByID returns the task with the given id, or nil.
func (s *Store) FindByID(id int64) *task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Store) findLocked(id int64) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Select marks a task as the current selection.
func (s *Store) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(id) != nil {
		s.selectedID = id
	}
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = 0
}

// Selected returns the currently selected task, or nil.
func (s *Store) Selected() *task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == 0 {
		return nil
	}
	return s.findLocked(s.selectedID)
}

// NextColor returns the palette index for the next task created on the
// given date: tasks cycle through the palette per date partition.
func (s *Store) NextColor(date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if t.Date == date {
			n++
		}
	}
	return n % PaletteSize
}

// Recent returns up to n tasks ordered most-recently-created first.
// Creation-time-derived ids make recency a simple id comparison.
func (s *Store) Recent(n int) []*task.Task {
	all := s.All()
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > n {
		all = all[:n]
	}
	return all
}
