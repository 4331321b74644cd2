package ui

import (
	"testing"

	"dayplan/internal/store"
	"dayplan/internal/task"
)

func mustTask(t *testing.T, id int64, date string, start, end int, title string) *task.Task {
	t.Helper()
	tk, err := task.New(date, start, end, title, "", 0)
	if err != nil {
		t.Fatalf("building task: %v", err)
	}
	tk.ID = id
	return tk
}

func TestMergeImportedPreservesIDs(t *testing.T) {
	st := store.New(nil)

	incoming := []*task.Task{
		mustTask(t, 100, "2026-03-10", 4, 8, "Standup"),
		mustTask(t, 200, "2026-03-10", 8, 12, "Review"),
	}

	accepted, skipped := mergeImported(st, incoming)
	st.CreateBatch(accepted)

	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(accepted) != 2 {
		t.Fatalf("accepted = %d, want 2", len(accepted))
	}
	if accepted[0].ID != 100 || accepted[1].ID != 200 {
		t.Fatalf("ids = %d, %d; want 100, 200 preserved", accepted[0].ID, accepted[1].ID)
	}

	// Recency ordering survives the restore.
	recent := st.Recent(2)
	if len(recent) != 2 || recent[0].ID != 200 || recent[1].ID != 100 {
		t.Fatalf("recent order wrong: %v", []int64{recent[0].ID, recent[1].ID})
	}
}

func TestMergeImportedReassignsOnlyCollidingIDs(t *testing.T) {
	existing := mustTask(t, 100, "2026-03-10", 0, 4, "Existing")
	st := store.New([]*task.Task{existing})

	incoming := []*task.Task{
		mustTask(t, 100, "2026-03-10", 4, 8, "Colliding id"),
		mustTask(t, 200, "2026-03-10", 8, 12, "Clean id"),
	}

	accepted, skipped := mergeImported(st, incoming)
	st.CreateBatch(accepted)

	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if accepted[0].ID == 100 || accepted[0].ID == 0 {
		t.Fatalf("colliding id not reassigned, got %d", accepted[0].ID)
	}
	if accepted[1].ID != 200 {
		t.Fatalf("clean id = %d, want 200 preserved", accepted[1].ID)
	}
}

func TestMergeImportedSkipsOverlaps(t *testing.T) {
	existing := mustTask(t, 100, "2026-03-10", 4, 8, "Existing")
	st := store.New([]*task.Task{existing})

	incoming := []*task.Task{
		mustTask(t, 200, "2026-03-10", 6, 10, "Overlaps existing"),
		mustTask(t, 300, "2026-03-10", 10, 14, "Fits"),
		mustTask(t, 400, "2026-03-10", 12, 16, "Overlaps accepted"),
	}

	accepted, skipped := mergeImported(st, incoming)

	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
	if len(accepted) != 1 || accepted[0].ID != 300 {
		t.Fatalf("accepted wrong: %v", accepted)
	}
}

func TestMergeImportedDuplicateIDsWithinBatch(t *testing.T) {
	st := store.New(nil)

	incoming := []*task.Task{
		mustTask(t, 100, "2026-03-10", 0, 4, "First"),
		mustTask(t, 100, "2026-03-11", 0, 4, "Second, same id"),
	}

	accepted, _ := mergeImported(st, incoming)
	st.CreateBatch(accepted)

	if accepted[0].ID != 100 {
		t.Fatalf("first id = %d, want 100", accepted[0].ID)
	}
	if accepted[1].ID == 100 || accepted[1].ID == 0 {
		t.Fatalf("duplicate id not reassigned, got %d", accepted[1].ID)
	}
}
