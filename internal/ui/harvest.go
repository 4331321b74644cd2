package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dayplan/internal/dateutil"
	"dayplan/internal/harvest"
	"dayplan/internal/slot"
)

func (a *App) harvestCmd() *cobra.Command {
	var (
		date  string
		place int
		start string
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "List or place Harvest Forecast assignments",
		Long: `Fetch the day's Harvest Forecast assignments.

Without flags the assignments are listed with their index. --place
schedules one of them on the grid at --start; placement is refused when
the slots are already taken.

Credentials come from the [harvest] config section or the
HARVEST_FORECAST_* environment variables (a .env file is read at
startup).`,
		Example: `  dayplan harvest
  dayplan harvest --date=2025-01-15
  dayplan harvest --place=1 --start="9:00 AM"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.config.HasHarvest() {
				return harvest.ErrNotConfigured
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			client, err := harvest.New(harvest.Config{
				BaseURL:     a.config.Harvest.BaseURL,
				AccountID:   a.config.Harvest.AccountID,
				AccessToken: a.config.Harvest.AccessToken,
				UserID:      a.config.Harvest.UserID,
			})
			if err != nil {
				return err
			}

			day, err := dateutil.ParseDay(date)
			if err != nil {
				return err
			}

			ctx := context.Background()
			items, err := client.TaskItems(ctx, day)
			if err != nil {
				return fmt.Errorf("fetching assignments: %w", err)
			}
			if len(items) == 0 {
				fmt.Println("No assignments for this day.")
				return nil
			}

			if !cmd.Flags().Changed("place") {
				printItems(items)
				return nil
			}

			if place < 1 || place > len(items) {
				return fmt.Errorf("--place must be between 1 and %d", len(items))
			}
			item := items[place-1]

			t, err := harvest.PlaceItem(a.store, item, dateutil.DayKey(day), slot.FromLabel(start))
			if err != nil {
				return err
			}
			if err := a.repo.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("persisting task: %w", err)
			}

			fmt.Printf("Scheduled %q %s-%s\n", t.Title, slot.Label(t.StartSlot), endLabel(t.EndSlot))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().IntVar(&place, "place", 0, "Index of the assignment to schedule")
	cmd.Flags().StringVar(&start, "start", "", `Start time ("h:mm AM/PM", required with --place)`)

	return cmd
}

func printItems(items []harvest.Item) {
	for i, item := range items {
		line := fmt.Sprintf("  %d. %s (%.2fh)", i+1, item.Title, item.DurationHours)
		if item.ClientName != "" {
			line += " / " + item.ClientName
		}
		fmt.Println(formatHarvest(line))
		if item.Description != "" {
			fmt.Println(formatMuted("     " + item.Description))
		}
	}
}
