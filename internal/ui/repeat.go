package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dayplan/internal/series"
)

func (a *App) repeatCmd() *cobra.Command {
	var (
		unit         string
		every        int
		count        int
		weekdaysOnly bool
	)

	cmd := &cobra.Command{
		Use:   "repeat [task-id]",
		Short: "Repeat a task on a daily or weekly cadence",
		Long: `Create future occurrences of a task.

Occurrences that collide with an existing task on their day are skipped.
With --weekdays, an occurrence landing on a weekend moves forward to the
next Monday.`,
		Example: `  dayplan repeat 1700000000001 --every=1 --unit=day --count=5
  dayplan repeat 1700000000001 --every=2 --unit=week --count=4 --weekdays`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			var u series.Unit
			switch unit {
			case "day":
				u = series.UnitDay
			case "week":
				u = series.UnitWeek
			default:
				return fmt.Errorf("unit must be day or week, got %q", unit)
			}

			created, err := series.Materialize(a.store, id, series.Options{
				Unit:         u,
				Every:        every,
				WeekdaysOnly: weekdaysOnly,
				Occurrences:  count,
			})
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.repo.CreateTasks(ctx, created); err != nil {
				return fmt.Errorf("persisting occurrences: %w", err)
			}
			if base := a.store.FindByID(id); base != nil {
				if err := a.repo.UpdateTask(ctx, base); err != nil {
					return fmt.Errorf("persisting series key: %w", err)
				}
			}

			skipped := count - len(created)
			fmt.Printf("Created %d occurrence(s)", len(created))
			if skipped > 0 {
				fmt.Printf(", skipped %d due to conflicts", skipped)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "day", "Cadence unit: day or week")
	cmd.Flags().IntVar(&every, "every", 1, "Repeat every N units")
	cmd.Flags().IntVar(&count, "count", 1, fmt.Sprintf("Occurrences to create (max %d)", series.MaxOccurrences))
	cmd.Flags().BoolVar(&weekdaysOnly, "weekdays", false, "Shift weekend occurrences to the next weekday")

	return cmd
}
