// Package tui provides the interactive slot-grid interface.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/config"
	"dayplan/internal/dateutil"
	"dayplan/internal/gesture"
	"dayplan/internal/store"
	"dayplan/internal/task"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEdit        // Editing the selected task's title
)

// gridTop is the number of chrome rows above slot 0.
const gridTop = 2

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store *store.Store
	repo  task.Repository
	cfg   *config.Config

	styles  *Styles
	machine *gesture.Machine

	// State
	date    string // day being shown, canonical form
	mode    Mode
	input   textinput.Model
	status  string
	lastErr error

	width  int
	height int

	nowFunc func() time.Time
}

// New creates the TUI model for today's grid.
func New(st *store.Store, repo task.Repository, cfg *config.Config) Model {
	today := dateutil.DayKey(time.Now())

	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 120

	geom := gesture.Geometry{GridTop: gridTop, SlotHeight: cfg.Grid.SlotHeight, GridLeft: gutterWidth}

	return Model{
		store:   st,
		repo:    repo,
		cfg:     cfg,
		styles:  NewStyles(cfg.UI.Theme),
		machine: gesture.New(st, geom, today),
		date:    today,
		input:   input,
		nowFunc: time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI.
func Run(st *store.Store, repo task.Repository, cfg *config.Config) error {
	return RunWithDebug(st, repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(st *store.Store, repo task.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	p := tea.NewProgram(New(st, repo, cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
