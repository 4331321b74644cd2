package store

import (
	"testing"
	"time"

	"dayplan/internal/task"
)

func fixedClock(start int64) func() time.Time {
	ms := start
	return func() time.Time {
		t := time.UnixMilli(ms)
		ms += 1000
		return t
	}
}

func mustTask(t *testing.T, date string, start, end int, title string) *task.Task {
	t.Helper()
	tk, err := task.New(date, start, end, title, "", 0)
	if err != nil {
		t.Fatalf("task.New: %v", err)
	}
	return tk
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	// Clock stuck on one instant forces the collision path.
	s := New(nil, WithNow(func() time.Time { return time.UnixMilli(1700000000000) }))

	a := s.Create(mustTask(t, "2024-03-11", 0, 4, "a"))
	b := s.Create(mustTask(t, "2024-03-11", 4, 8, "b"))
	c := s.Create(mustTask(t, "2024-03-11", 8, 12, "c"))

	if a.ID != 1700000000000 {
		t.Fatalf("first id = %d", a.ID)
	}
	if b.ID <= a.ID || c.ID <= b.ID {
		t.Fatalf("ids not strictly increasing: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

func TestCreateRespectsSeededIDs(t *testing.T) {
	seed := mustTask(t, "2024-03-11", 0, 4, "seed")
	seed.ID = 42
	s := New([]*task.Task{seed}, WithNow(func() time.Time { return time.UnixMilli(10) }))

	fresh := s.Create(mustTask(t, "2024-03-11", 4, 8, "fresh"))
	if fresh.ID <= seed.ID {
		t.Fatalf("fresh id %d should exceed seeded id %d", fresh.ID, seed.ID)
	}
}

func TestTasksOnInsertionOrder(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	s.Create(mustTask(t, "2024-03-11", 40, 44, "later slot first"))
	s.Create(mustTask(t, "2024-03-12", 0, 4, "other day"))
	s.Create(mustTask(t, "2024-03-11", 0, 4, "earlier slot second"))

	got := s.TasksOn("2024-03-11")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "later slot first" || got[1].Title != "earlier slot second" {
		t.Fatalf("query is not insertion-ordered: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestUpdateDerivesMinimumDuration(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	tk := s.Create(mustTask(t, "2024-03-11", 10, 14, "t"))

	// End collapsed onto start: the pair is re-derived to one slot.
	end := 10
	got, ok := s.Update(tk.ID, Patch{EndSlot: &end})
	if !ok {
		t.Fatal("update refused")
	}
	if got.StartSlot != 10 || got.EndSlot != 11 {
		t.Fatalf("got [%d,%d), want [10,11)", got.StartSlot, got.EndSlot)
	}

	// Start pushed past the grid end corrects downward.
	start := 67
	end = 80
	got, ok = s.Update(tk.ID, Patch{StartSlot: &start, EndSlot: &end})
	if !ok {
		t.Fatal("update refused")
	}
	if got.StartSlot != 67 || got.EndSlot != 68 {
		t.Fatalf("got [%d,%d), want [67,68)", got.StartSlot, got.EndSlot)
	}
}

func TestUpdateAdjustsAroundNeighbor(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	s.Create(mustTask(t, "2024-03-11", 20, 24, "blocker"))
	tk := s.Create(mustTask(t, "2024-03-11", 16, 18, "t"))

	// Growing the end into the blocker stops at its start.
	end := 25
	got, ok := s.Update(tk.ID, Patch{EndSlot: &end})
	if !ok {
		t.Fatal("update refused")
	}
	if got.EndSlot != 20 {
		t.Fatalf("end = %d, want 20", got.EndSlot)
	}
}

func TestUpdateRefusedLeavesTaskUnchanged(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	s.Create(mustTask(t, "2024-03-11", 18, 30, "wide blocker"))
	tk := s.Create(mustTask(t, "2024-03-11", 10, 14, "t"))

	// Target range sits fully inside the blocker; adjustment cannot
	// free it, so the update is refused wholesale.
	start, end := 20, 24
	got, ok := s.Update(tk.ID, Patch{StartSlot: &start, EndSlot: &end})
	if ok {
		t.Fatal("update should have been refused")
	}
	if got.StartSlot != 10 || got.EndSlot != 14 {
		t.Fatalf("task mutated on refusal: [%d,%d)", got.StartSlot, got.EndSlot)
	}
}

func TestUpdateMetadataOnly(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	tk := s.Create(mustTask(t, "2024-03-11", 10, 14, "old"))

	title := "new"
	desc := "notes"
	got, ok := s.Update(tk.ID, Patch{Title: &title, Description: &desc})
	if !ok {
		t.Fatal("update refused")
	}
	if got.Title != "new" || got.Description != "notes" {
		t.Fatalf("metadata not applied: %q %q", got.Title, got.Description)
	}
	if got.StartSlot != 10 || got.EndSlot != 14 {
		t.Fatalf("slots moved on metadata-only update: [%d,%d)", got.StartSlot, got.EndSlot)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := New(nil)
	if _, ok := s.Update(999, Patch{}); ok {
		t.Fatal("update of unknown id should fail")
	}
}

func TestSetSlotsRefusesConflict(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	s.Create(mustTask(t, "2024-03-11", 20, 24, "blocker"))
	tk := s.Create(mustTask(t, "2024-03-11", 10, 14, "t"))

	if _, ok := s.SetSlots(tk.ID, 22, 26); ok {
		t.Fatal("conflicting SetSlots should be refused")
	}
	if tk.StartSlot != 10 || tk.EndSlot != 14 {
		t.Fatalf("task mutated: [%d,%d)", tk.StartSlot, tk.EndSlot)
	}
	if _, ok := s.SetSlots(tk.ID, 30, 34); !ok {
		t.Fatal("clean SetSlots refused")
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	tk := s.Create(mustTask(t, "2024-03-11", 10, 14, "t"))
	other := s.Create(mustTask(t, "2024-03-11", 20, 24, "other"))

	s.Select(tk.ID)
	if s.Selected() == nil {
		t.Fatal("selection not set")
	}

	s.Delete(other.ID)
	if s.Selected() == nil {
		t.Fatal("deleting an unselected task cleared the selection")
	}

	s.Delete(tk.ID)
	if s.Selected() != nil {
		t.Fatal("deleting the selected task must clear the selection")
	}
}

func TestDeleteMany(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	a := s.Create(mustTask(t, "2024-03-11", 0, 4, "a"))
	b := s.Create(mustTask(t, "2024-03-11", 4, 8, "b"))

	if n := s.DeleteMany([]int64{a.ID, b.ID, 999}); n != 2 {
		t.Fatalf("deleted %d, want 2", n)
	}
	if len(s.All()) != 0 {
		t.Fatal("tasks remain after DeleteMany")
	}
}

func TestNextColorCyclesPerDate(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	for i := 0; i < PaletteSize; i++ {
		if got := s.NextColor("2024-03-11"); got != i {
			t.Fatalf("color %d, want %d", got, i)
		}
		s.Create(mustTask(t, "2024-03-11", i*4, i*4+4, "t"))
	}
	if got := s.NextColor("2024-03-11"); got != 0 {
		t.Fatalf("palette did not wrap: %d", got)
	}
	if got := s.NextColor("2024-03-12"); got != 0 {
		t.Fatalf("other date should start fresh: %d", got)
	}
}

func TestRecent(t *testing.T) {
	s := New(nil, WithNow(fixedClock(1000)))
	s.Create(mustTask(t, "2024-03-11", 0, 4, "first"))
	s.Create(mustTask(t, "2024-03-11", 4, 8, "second"))
	s.Create(mustTask(t, "2024-03-12", 0, 4, "third"))

	got := s.Recent(2)
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Title != "third" || got[1].Title != "second" {
		t.Fatalf("recent order wrong: %q, %q", got[0].Title, got[1].Title)
	}
}
