package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dayplan/internal/dateutil"
	"dayplan/internal/grid"
	"dayplan/internal/slot"
	"dayplan/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		start       string
		end         string
		description string
		colorIndex  int
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task to the grid.

Times are 12-hour clock labels. When --end is omitted the task takes a
single 15-minute slot.

Example:
  dayplan add "Write documentation" --date=2025-01-10 --start="9:00 AM" --end="11:00 AM"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			day, err := dateutil.ParseDay(date)
			if err != nil {
				return err
			}
			dayKey := dateutil.DayKey(day)

			startSlot := slot.FromLabel(start)
			if slot.Label(startSlot) == "" {
				return fmt.Errorf("start %q is outside the grid", start)
			}

			endSlot := startSlot + 1
			if end != "" {
				endSlot = slot.FromLabel(end)
				if endSlot > slot.Count {
					endSlot = slot.Count
				}
			}

			if grid.HasOverlap(a.store.All(), dayKey, startSlot, endSlot, 0) {
				return fmt.Errorf("%w on %s", task.ErrSlotConflict, dayKey)
			}

			if !cmd.Flags().Changed("color") {
				colorIndex = a.store.NextColor(dayKey)
			}

			t, err := task.New(dayKey, startSlot, endSlot, args[0], description, colorIndex)
			if err != nil {
				return err
			}
			a.store.Create(t)

			if err := a.repo.CreateTask(context.Background(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Printf("Created task #%d: %s %s %s-%s\n",
				t.ID,
				t.Title,
				t.Date,
				slot.Label(t.StartSlot),
				endLabel(t.EndSlot),
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", `Start time ("h:mm AM/PM", required)`)
	cmd.Flags().StringVar(&end, "end", "", `End time ("h:mm AM/PM", default: one slot)`)
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().IntVar(&colorIndex, "color", 0, "Palette color index (default: cycles per day)")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// endLabel renders a task's exclusive end boundary. Slot 68 is the end
// of the grid and has no label of its own.
func endLabel(endSlot int) string {
	if endSlot >= slot.Count {
		return "12:00 AM"
	}
	return slot.Label(endSlot)
}
