// Package ui implements the command line interface.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dayplan/internal/config"
	"dayplan/internal/db"
	"dayplan/internal/store"
	"dayplan/internal/task"
	"dayplan/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   task.Repository
	store  *store.Store
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
// Pass a nil repository to open the configured SQLite database lazily.
func NewApp(repo task.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "dayplan",
		Short: "A slot-grid day planner",
		Long: `Dayplan is a day planner built around a grid of 15-minute slots
from 7:00 AM to midnight.

Running it without a subcommand opens the interactive grid, where tasks
are created, resized and moved with the mouse. The subcommands cover
scripted use: adding and listing tasks, repeating them, and moving the
collection in and out as JSON, CSV or ICS.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.store, a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.repeatCmd())
	a.root.AddCommand(a.templateCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.harvestCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("dayplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// ensureStore loads the persisted collection into an in-memory store.
// A load failure degrades to an empty collection so a damaged database
// never blocks startup.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	if err := a.ensureRepo(); err != nil {
		return err
	}

	tasks, err := a.repo.ListTasks(context.Background())
	if err != nil {
		fmt.Printf("warning: could not load tasks, starting empty: %v\n", err)
		tasks = nil
	}
	a.store = store.New(tasks)
	return nil
}

// Close releases the repository if this App opened it.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
