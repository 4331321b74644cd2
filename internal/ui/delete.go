package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dayplan/internal/series"
	"dayplan/internal/task"
)

func (a *App) deleteCmd() *cobra.Command {
	var (
		forward     bool
		wholeSeries bool
	)

	cmd := &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task, or part of its series",
		Long: `Delete a task.

For a repeated task, --forward removes this occurrence and every later
one in the series, and --series removes the whole series.`,
		Example: `  dayplan delete 1700000000001
  dayplan delete 1700000000001 --forward
  dayplan delete 1700000000001 --series`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if forward && wholeSeries {
				return fmt.Errorf("--forward and --series are mutually exclusive")
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			if a.store.FindByID(id) == nil {
				return fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
			}

			// Snapshot the doomed ids before the store mutates, so the
			// repository sees the same set.
			doomed := a.doomedIDs(id, forward, wholeSeries)

			var n int
			switch {
			case forward:
				n, err = series.DeleteForward(a.store, id)
			case wholeSeries:
				n, err = series.DeleteSeries(a.store, id)
			default:
				err = series.DeleteInstance(a.store, id)
				n = 1
			}
			if err != nil {
				return err
			}

			if err := a.repo.DeleteTasks(context.Background(), doomed); err != nil {
				return fmt.Errorf("deleting tasks: %w", err)
			}

			fmt.Printf("Deleted %d task(s)\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&forward, "forward", false, "Also delete every later occurrence in the series")
	cmd.Flags().BoolVar(&wholeSeries, "series", false, "Delete the whole series")

	return cmd
}

// doomedIDs lists the ids a delete of the given granularity will remove.
func (a *App) doomedIDs(id int64, forward, wholeSeries bool) []int64 {
	if !forward && !wholeSeries {
		return []int64{id}
	}

	anchor := a.store.FindByID(id)
	key := anchor.GroupingKey()

	var ids []int64
	for _, t := range a.store.All() {
		if t.GroupingKey() != key {
			continue
		}
		if forward && t.Date < anchor.Date {
			continue
		}
		ids = append(ids, t.ID)
	}
	return ids
}
