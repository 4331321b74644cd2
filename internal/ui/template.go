package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dayplan/internal/dateutil"
	"dayplan/internal/grid"
	"dayplan/internal/slot"
	"dayplan/internal/task"
)

func (a *App) templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage task templates",
		Long: `Templates snapshot a task's title, description and color for quick
re-creation. They live independently of the tasks they came from.`,
	}

	cmd.AddCommand(a.templateSaveCmd())
	cmd.AddCommand(a.templateListCmd())
	cmd.AddCommand(a.templateApplyCmd())
	cmd.AddCommand(a.templateDeleteCmd())

	return cmd
}

func (a *App) templateSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [task-id]",
		Short: "Save a task as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			t := a.store.FindByID(id)
			if t == nil {
				return fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
			}

			tpl := task.TemplateFrom(t)
			if err := a.repo.CreateTemplate(context.Background(), &tpl); err != nil {
				return fmt.Errorf("saving template: %w", err)
			}

			fmt.Printf("Saved template #%d: %s\n", tpl.ID, tpl.Title)
			return nil
		},
	}
}

func (a *App) templateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			templates, err := a.repo.ListTemplates(context.Background())
			if err != nil {
				return fmt.Errorf("listing templates: %w", err)
			}
			if len(templates) == 0 {
				fmt.Println("No templates saved.")
				return nil
			}

			for _, tpl := range templates {
				fmt.Printf("  #%d %s\n", tpl.ID, tpl.Title)
				if tpl.Description != "" {
					fmt.Println(formatMuted("      " + tpl.Description))
				}
			}
			return nil
		},
	}
}

func (a *App) templateApplyCmd() *cobra.Command {
	var (
		date  string
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "apply [template-id]",
		Short: "Create a task from a template",
		Example: `  dayplan template apply 3 --start="9:00 AM"
  dayplan template apply 3 --date=2025-01-15 --start="2:00 PM" --end="4:00 PM"`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid template id %q", args[0])
			}

			tpl, err := a.findTemplate(id)
			if err != nil {
				return err
			}

			day, err := dateutil.ParseDay(date)
			if err != nil {
				return err
			}
			dayKey := dateutil.DayKey(day)

			startSlot := slot.FromLabel(start)
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

			t, err := task.New(dayKey, startSlot, endSlot, tpl.Title, tpl.Description, tpl.ColorIndex)
			if err != nil {
				return err
			}
			a.store.Create(t)

			if err := a.repo.CreateTask(context.Background(), t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Printf("Created task #%d from template %q\n", t.ID, tpl.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", `Start time ("h:mm AM/PM", required)`)
	cmd.Flags().StringVar(&end, "end", "", `End time ("h:mm AM/PM", default: one slot)`)

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) templateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [template-id]",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid template id %q", args[0])
			}
			if err := a.repo.DeleteTemplate(context.Background(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted template #%d\n", id)
			return nil
		},
	}
}

func (a *App) findTemplate(id int64) (*task.Template, error) {
	templates, err := a.repo.ListTemplates(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	for _, tpl := range templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return nil, fmt.Errorf("template %d not found", id)
}
