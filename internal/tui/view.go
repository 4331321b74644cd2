package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dayplan/internal/dateutil"
	"dayplan/internal/gesture"
	"dayplan/internal/slot"
	"dayplan/internal/task"
)

// gutterWidth is the width of the time-label column. Grid rows start
// right after it, so pointer geometry only depends on the row.
const gutterWidth = 9

const sidebarWidth = 28

// View renders the day grid. Slot rows start at terminal row gridTop
// and span cfg.Grid.SlotHeight rows each, which is what the gesture
// geometry assumes when mapping pointer coordinates back to slots.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	b.WriteByte('\n')

	grid := m.renderGrid()
	side := m.renderSidebar()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, side))
	b.WriteByte('\n')

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.date
	if t, err := dateutil.ParseDay(m.date); err == nil {
		title = t.Format("Monday, Jan 2 2006")
	}
	count := len(m.store.TasksOn(m.date))
	return m.styles.Header.Render(title) +
		m.styles.Help.Render(fmt.Sprintf("  %d task(s)", count))
}

func (m Model) renderStatus() string {
	if m.mode == ModeEdit {
		return m.styles.Status.Render("Title: ") + m.input.View()
	}
	if m.status == "" {
		return ""
	}
	if m.lastErr != nil && strings.HasPrefix(m.status, "Error") {
		return m.styles.StatusErr.Render(m.status)
	}
	return m.styles.Status.Render(m.status)
}

// renderGrid draws the slot rows for the visible day.
func (m Model) renderGrid() string {
	tasks := m.store.TasksOn(m.date)
	selected := m.store.Selected()
	pv := m.machine.Preview()

	slotHeight := m.cfg.Grid.SlotHeight
	if slotHeight < 1 {
		slotHeight = 1
	}

	visible := slot.Count
	if m.height > 0 {
		chrome := gridTop + 2 // header, status, footer
		if avail := (m.height - chrome) / slotHeight; avail < visible {
			visible = avail
		}
	}
	if visible < 0 {
		visible = 0
	}

	cellWidth := m.gridCellWidth()

	var rows []string
	for s := 0; s < visible; s++ {
		cell := m.renderSlotRow(s, cellWidth, tasks, selected, pv)
		for line := 0; line < slotHeight; line++ {
			gutter := strings.Repeat(" ", gutterWidth)
			if line == 0 && s%slot.SlotsPerHour == 0 {
				gutter = m.styles.TimeLabel.Render(fmt.Sprintf("%8s ", slot.Label(s)))
			}
			rows = append(rows, gutter+cell)
		}
	}
	return strings.Join(rows, "\n")
}

// gridCellWidth is the width of the task column, shared between
// rendering and the pointer geometry handed to the gesture machine.
func (m Model) gridCellWidth() int {
	if m.width > 0 {
		if w := m.width - gutterWidth - sidebarWidth; w > 10 {
			return w
		}
	}
	return 40
}

// renderSlotRow draws the cell for one slot: the gesture preview wins,
// then an occupying task, then empty chrome.
func (m Model) renderSlotRow(s, cellWidth int, tasks []*task.Task, selected *task.Task, pv gesture.Preview) string {
	if pv.Active && s >= pv.StartSlot && s < pv.EndSlot {
		label := "▒"
		if s == pv.StartSlot {
			label = fmt.Sprintf("▒ %s - %s", slot.Label(pv.StartSlot), endLabel(pv.EndSlot))
		}
		return m.styles.Preview.Render(pad(label, cellWidth))
	}

	for _, t := range tasks {
		if !t.Contains(s) {
			continue
		}
		style := m.styles.TaskStyle(t.ColorIndex)
		if selected != nil && selected.ID == t.ID {
			style = style.Bold(true).Underline(true)
		}
		label := "▎"
		if s == t.StartSlot {
			title := t.Title
			if title == "" {
				title = "Untitled Task"
			}
			if t.IsRepeated {
				title += " ↻"
			}
			label = fmt.Sprintf("▎%s  %s - %s", title, slot.Label(t.StartSlot), endLabel(t.EndSlot))
		}
		return style.Render(pad(label, cellWidth))
	}

	if s%slot.SlotsPerHour == 0 {
		return m.styles.HourLine.Render(strings.Repeat("┄", cellWidth))
	}
	return m.styles.EmptySlot.Render(pad("·", cellWidth))
}

// renderSidebar shows the selected task's details, or the most recent
// tasks when nothing is selected.
func (m Model) renderSidebar() string {
	var lines []string

	if sel := m.store.Selected(); sel != nil {
		title := sel.Title
		if title == "" {
			title = "Untitled Task"
		}
		lines = append(lines,
			m.styles.Header.Render("Selected"),
			title,
			fmt.Sprintf("%s - %s", slot.Label(sel.StartSlot), endLabel(sel.EndSlot)),
		)
		if sel.Description != "" {
			lines = append(lines, m.styles.Help.Render(truncate(sel.Description, sidebarWidth-4)))
		}
		if sel.IsRepeated {
			lines = append(lines, m.styles.Help.Render("repeats ↻"))
		}
		if sel.Source == task.SourceHarvest {
			lines = append(lines, m.styles.Help.Render("from harvest"))
		}
	} else {
		recent := m.store.Recent(5)
		if len(recent) > 0 {
			lines = append(lines, m.styles.Header.Render("Recent"))
			for _, t := range recent {
				title := t.Title
				if title == "" {
					title = "Untitled Task"
				}
				lines = append(lines, truncate(fmt.Sprintf("%s %s", t.Date, title), sidebarWidth-4))
			}
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return m.styles.Sidebar.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	if m.mode == ModeEdit {
		return m.styles.Help.Render("enter: save  esc: cancel")
	}
	return m.styles.Help.Render(
		"click: create/select  drag: draw  alt+drag: move  e: edit  d: delete  c: color  y: copy  h/l: day  t: today  q: quit")
}

// pad right-pads or truncates a label to the cell width.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// truncate shortens a string for the sidebar.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
