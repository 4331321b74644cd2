package ui

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"dayplan/internal/dateutil"
	"dayplan/internal/slot"
	"dayplan/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		date string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List scheduled tasks.

By default lists today's tasks; --date selects another day and --all
prints the whole collection grouped by date.`,
		Example: `  dayplan list
  dayplan list --date=2025-01-15
  dayplan list --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			var tasks []*task.Task
			if all {
				tasks = a.store.All()
			} else {
				day, err := dateutil.ParseDay(date)
				if err != nil {
					return err
				}
				tasks = a.store.TasksOn(dateutil.DayKey(day))
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			printTasksByDate(tasks)

			total := 0
			for _, t := range tasks {
				total += t.DurationMinutes()
			}
			fmt.Println()
			fmt.Println(formatStats(fmt.Sprintf("%d task(s), %dh%02dm scheduled", len(tasks), total/60, total%60)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().BoolVar(&all, "all", false, "List every task across all dates")

	return cmd
}

// printTasksByDate prints tasks grouped by date, days in calendar order
// and tasks within a day ordered by start slot.
func printTasksByDate(tasks []*task.Task) {
	byDate := make(map[string][]*task.Task)
	for _, t := range tasks {
		byDate[t.Date] = append(byDate[t.Date], t)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for i, d := range dates {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s\n", formatHeader("=== "+d+" ==="))

		day := byDate[d]
		sort.Slice(day, func(i, j int) bool { return day[i].StartSlot < day[j].StartSlot })

		for _, t := range day {
			marker := " "
			if t.IsRepeated {
				marker = "↻"
			}
			title := t.Title
			if title == "" {
				title = "Untitled Task"
			}
			line := fmt.Sprintf("  %s #%d %s-%s %s",
				marker,
				t.ID,
				slot.Label(t.StartSlot),
				endLabel(t.EndSlot),
				title,
			)
			if t.Source == task.SourceHarvest {
				fmt.Println(formatHarvest(line))
			} else {
				fmt.Println(line)
			}
			if t.Description != "" {
				desc := t.Description
				if max := termWidth() - 8; len(desc) > max && max > 3 {
					desc = desc[:max-3] + "..."
				}
				fmt.Println(formatMuted("      " + desc))
			}
		}
	}
}
