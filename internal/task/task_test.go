package task

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		tk, err := New("2025-01-15", 4, 8, "Standup", "daily sync", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tk.StartSlot != 4 || tk.EndSlot != 8 {
			t.Errorf("got range [%d,%d), want [4,8)", tk.StartSlot, tk.EndSlot)
		}
		if tk.Slots() != 4 {
			t.Errorf("Slots() = %d, want 4", tk.Slots())
		}
		if tk.DurationMinutes() != 60 {
			t.Errorf("DurationMinutes() = %d, want 60", tk.DurationMinutes())
		}
	})

	t.Run("empty title allowed", func(t *testing.T) {
		if _, err := New("2025-01-15", 0, 1, "", "", 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid ranges", func(t *testing.T) {
		cases := [][2]int{{-1, 3}, {3, 3}, {5, 4}, {0, 69}}
		for _, c := range cases {
			if _, err := New("2025-01-15", c[0], c[1], "x", "", 0); !errors.Is(err, ErrInvalidSlotRange) {
				t.Errorf("New with range [%d,%d) error = %v, want ErrInvalidSlotRange", c[0], c[1], err)
			}
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if _, err := New("bad", 0, 1, "x", "", 0); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("error = %v, want ErrInvalidDate", err)
		}
	})
}

func TestContains(t *testing.T) {
	tk := &Task{StartSlot: 10, EndSlot: 14}
	for s, want := range map[int]bool{9: false, 10: true, 13: true, 14: false} {
		if got := tk.Contains(s); got != want {
			t.Errorf("Contains(%d) = %v, want %v", s, got, want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := &Task{ID: 1, Date: "2025-01-15", StartSlot: 10, EndSlot: 14}

	tests := []struct {
		name  string
		other *Task
		want  bool
	}{
		{"nil", nil, false},
		{"different date", &Task{Date: "2025-01-16", StartSlot: 10, EndSlot: 14}, false},
		{"identical range", &Task{Date: "2025-01-15", StartSlot: 10, EndSlot: 14}, true},
		{"partial overlap", &Task{Date: "2025-01-15", StartSlot: 12, EndSlot: 16}, true},
		{"touching after", &Task{Date: "2025-01-15", StartSlot: 14, EndSlot: 16}, false},
		{"touching before", &Task{Date: "2025-01-15", StartSlot: 8, EndSlot: 10}, false},
		{"contained", &Task{Date: "2025-01-15", StartSlot: 11, EndSlot: 12}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupingKey(t *testing.T) {
	t.Run("derived from fields", func(t *testing.T) {
		tk := &Task{Title: "Standup", Description: "sync", StartSlot: 4, EndSlot: 6}
		want := "Standup|sync|4|6"
		if got := tk.GroupingKey(); got != want {
			t.Errorf("GroupingKey() = %q, want %q", got, want)
		}
	})

	t.Run("explicit key wins", func(t *testing.T) {
		tk := &Task{Title: "Standup", SeriesKey: "series-42", StartSlot: 4, EndSlot: 6}
		if got := tk.GroupingKey(); got != "series-42" {
			t.Errorf("GroupingKey() = %q, want %q", got, "series-42")
		}
	})

	t.Run("derived key tracks edits, explicit key does not", func(t *testing.T) {
		implicit := &Task{Title: "a", StartSlot: 0, EndSlot: 1}
		explicit := &Task{Title: "a", SeriesKey: "a||0|1", StartSlot: 0, EndSlot: 1}

		implicit.Title = "b"
		explicit.Title = "b"

		if implicit.GroupingKey() == explicit.GroupingKey() {
			t.Error("expected keys to diverge after title edit")
		}
	})
}

func TestTemplateFrom(t *testing.T) {
	tk := &Task{ID: 7, Title: "Review", Description: "PRs", ColorIndex: 3, StartSlot: 1, EndSlot: 2}
	tpl := TemplateFrom(tk)
	if tpl.Title != "Review" || tpl.Description != "PRs" || tpl.ColorIndex != 3 {
		t.Errorf("unexpected template: %+v", tpl)
	}
	if tpl.ID != 0 {
		t.Errorf("template must not inherit the task ID, got %d", tpl.ID)
	}
}
