package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/dateutil"
	"dayplan/internal/gesture"
	"dayplan/internal/slot"
	"dayplan/internal/store"
	"dayplan/internal/task"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Keep the pointer mapping in step with the rendered grid so
		// presses in the sidebar never reach the machine.
		m.machine.SetGeometry(gesture.Geometry{
			GridTop:    gridTop,
			SlotHeight: m.cfg.Grid.SlotHeight,
			GridLeft:   gutterWidth,
			GridWidth:  m.gridCellWidth(),
		})
		return m, nil
	}

	return m, nil
}

// handleMouseMsg feeds pointer events to the gesture machine and persists
// whatever a completed gesture committed.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		LogPointer("press", msg.X, msg.Y, msg.Alt)
		m.machine.PointerDown(msg.X, msg.Y)

	case tea.MouseActionMotion:
		m.machine.PointerMove(msg.X, msg.Y, msg.Alt)

	case tea.MouseActionRelease:
		LogPointer("release", msg.X, msg.Y, msg.Alt)
		res := m.machine.PointerUp()
		LogCommit(res)
		return m.applyResult(res), nil
	}

	return m, nil
}

// applyResult pushes a committed gesture through to the repository and
// updates the status line.
func (m Model) applyResult(res gesture.Result) Model {
	ctx := context.Background()

	switch res.Kind {
	case gesture.ResultCreated:
		if err := m.repo.CreateTask(ctx, res.Task); err != nil {
			return m.fail("saving task", err)
		}
		m.status = fmt.Sprintf("Created %s - %s", slot.Label(res.Task.StartSlot), endLabel(res.Task.EndSlot))

	case gesture.ResultResized, gesture.ResultMoved:
		if err := m.repo.UpdateTask(ctx, res.Task); err != nil {
			return m.fail("saving task", err)
		}
		m.status = fmt.Sprintf("Now %s - %s", slot.Label(res.Task.StartSlot), endLabel(res.Task.EndSlot))

	case gesture.ResultSelected:
		m.status = ""

	case gesture.ResultRejected:
		m.status = "Slot occupied"
	}

	return m
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.mode == ModeEdit {
		return m.handleEditKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		return m.shiftDay(-1), nil
	case "l", "right":
		return m.shiftDay(1), nil
	case "t":
		return m.gotoDate(dateutil.DayKey(m.nowFunc())), nil

	// Actions on the selected task
	case "e", "enter":
		sel := m.store.Selected()
		if sel == nil {
			m.status = "Nothing selected"
			return m, nil
		}
		LogModeChange(m.mode, ModeEdit, "edit title")
		m.mode = ModeEdit
		m.input.SetValue(sel.Title)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "d", "x":
		sel := m.store.Selected()
		if sel == nil {
			m.status = "Nothing selected"
			return m, nil
		}
		id := sel.ID
		m.store.Delete(id)
		if err := m.repo.DeleteTask(context.Background(), id); err != nil {
			return m.fail("deleting task", err), nil
		}
		m.status = "Deleted"
		return m, nil

	case "c":
		sel := m.store.Selected()
		if sel == nil {
			m.status = "Nothing selected"
			return m, nil
		}
		next := (sel.ColorIndex + 1) % store.PaletteSize
		updated, ok := m.store.Update(sel.ID, store.Patch{ColorIndex: &next})
		if !ok {
			return m, nil
		}
		if err := m.repo.UpdateTask(context.Background(), updated); err != nil {
			return m.fail("saving task", err), nil
		}
		return m, nil

	case "y":
		sel := m.store.Selected()
		if sel == nil {
			m.status = "Nothing selected"
			return m, nil
		}
		if err := clipboard.WriteAll(taskSummary(sel)); err != nil {
			return m.fail("copying to clipboard", err), nil
		}
		m.status = "Copied to clipboard"
		return m, nil

	case "esc":
		m.store.ClearSelection()
		m.status = ""
		return m, nil
	}

	return m, nil
}

// handleEditKeys handles keys while editing the selected task's title.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		sel := m.store.Selected()
		if sel != nil {
			title := m.input.Value()
			updated, ok := m.store.Update(sel.ID, store.Patch{Title: &title})
			if ok {
				if err := m.repo.UpdateTask(context.Background(), updated); err != nil {
					m = m.fail("saving task", err)
				} else {
					m.status = "Saved"
				}
			}
		}
		LogModeChange(m.mode, ModeNormal, "title committed")
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "esc":
		LogModeChange(m.mode, ModeNormal, "edit cancelled")
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// shiftDay moves the visible day forward or backward.
func (m Model) shiftDay(n int) Model {
	next, err := dateutil.AddDays(m.date, n)
	if err != nil {
		return m.fail("changing day", err)
	}
	return m.gotoDate(next)
}

// gotoDate switches the grid to another day.
func (m Model) gotoDate(date string) Model {
	if date == m.date {
		return m
	}
	LogDateChange(m.date, date)
	m.date = date
	m.machine.SetDate(date)
	m.store.ClearSelection()
	m.status = ""
	return m
}

// fail records an error on the status line.
func (m Model) fail(context string, err error) Model {
	LogError(context, err)
	m.lastErr = err
	m.status = fmt.Sprintf("Error %s: %v", context, err)
	return m
}

// taskSummary formats a task for the clipboard.
func taskSummary(t *task.Task) string {
	title := t.Title
	if title == "" {
		title = "Untitled Task"
	}
	s := fmt.Sprintf("%s %s - %s %s", t.Date, slot.Label(t.StartSlot), endLabel(t.EndSlot), title)
	if t.Description != "" {
		s += "\n" + t.Description
	}
	return s
}

// endLabel labels an exclusive end slot, including the midnight boundary
// that Label treats as out of range.
func endLabel(s int) string {
	if s >= slot.Count {
		return "12:00 AM"
	}
	return slot.Label(s)
}
