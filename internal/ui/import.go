package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dayplan/internal/exchange"
	"dayplan/internal/grid"
	"dayplan/internal/store"
	"dayplan/internal/task"
)

func (a *App) importCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import tasks from a JSON or CSV file",
		Long: `Import tasks exported by this tool or assembled elsewhere.

The format is inferred from the file extension unless --format is set.
Imported tasks that collide with an existing task on their day are
skipped; everything else is appended. Tasks keep their ids, so a backup
restores with its history intact; a fresh id is assigned only when the
incoming id is already taken.`,
		Example: `  dayplan import tasks.json
  dayplan import tasks.csv
  dayplan import backup.txt --format=json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(path), ".")
			}

			var incoming []*task.Task
			switch format {
			case "json":
				incoming, err = exchange.ImportJSON(f)
			case "csv":
				incoming, err = exchange.ImportCSV(f)
			default:
				return fmt.Errorf("format must be json or csv, got %q", format)
			}
			if err != nil {
				return err
			}

			accepted, skipped := mergeImported(a.store, incoming)

			a.store.CreateBatch(accepted)
			if err := a.repo.CreateTasks(context.Background(), accepted); err != nil {
				return fmt.Errorf("persisting imported tasks: %w", err)
			}

			fmt.Printf("Imported %d task(s) from %s", len(accepted), path)
			if skipped > 0 {
				fmt.Printf(", skipped %d due to conflicts", skipped)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: json or csv (default: from extension)")

	return cmd
}

// mergeImported filters an imported batch against the collection.
// Tasks overlapping an existing task, or an earlier accepted one, are
// skipped. Ids are preserved so a restored backup keeps its creation
// history; only an id already in use gets reassigned by the store.
func mergeImported(st *store.Store, incoming []*task.Task) (accepted []*task.Task, skipped int) {
	used := make(map[int64]bool)
	for _, t := range st.All() {
		used[t.ID] = true
	}

	for _, t := range incoming {
		if grid.HasOverlap(st.All(), t.Date, t.StartSlot, t.EndSlot, 0) ||
			overlapsAny(accepted, t) {
			skipped++
			continue
		}
		if used[t.ID] {
			t.ID = 0 // taken, the store assigns a fresh one
		}
		if t.ID != 0 {
			used[t.ID] = true
		}
		accepted = append(accepted, t)
	}
	return accepted, skipped
}

func overlapsAny(tasks []*task.Task, t *task.Task) bool {
	for _, other := range tasks {
		if t.Overlaps(other) {
			return true
		}
	}
	return false
}
