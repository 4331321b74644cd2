package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dayplan/internal/exchange"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task collection",
		Long: `Export every task as JSON, CSV or ICS.

Output goes to stdout unless --out names a file.`,
		Example: `  dayplan export --format=json > tasks.json
  dayplan export --format=csv --out=tasks.csv
  dayplan export --format=ics --out=dayplan.ics`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			tasks := a.store.All()
			switch format {
			case "json":
				if err := exchange.ExportJSON(w, tasks); err != nil {
					return err
				}
			case "csv":
				if err := exchange.ExportCSV(w, tasks); err != nil {
					return err
				}
			case "ics":
				if err := exchange.ExportICS(w, tasks); err != nil {
					return err
				}
			default:
				return fmt.Errorf("format must be json, csv or ics, got %q", format)
			}

			if out != "" {
				fmt.Printf("Exported %d task(s) to %s\n", len(tasks), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv or ics")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")

	return cmd
}
