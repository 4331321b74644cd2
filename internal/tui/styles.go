package tui

import "github.com/charmbracelet/lipgloss"

// Palette holds the theme colors used by the grid chrome. The task
// colors themselves are a fixed eight-entry palette shared with the
// task color cycle, independent of the theme.
type Palette struct {
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Warning lipgloss.Color
}

// themes are the Catppuccin flavor accents.
var themes = map[string]Palette{
	"mocha": {
		Accent:  lipgloss.Color("#89b4fa"),
		Text:    lipgloss.Color("#cdd6f4"),
		Muted:   lipgloss.Color("#6c7086"),
		Surface: lipgloss.Color("#313244"),
		Warning: lipgloss.Color("#f9e2af"),
	},
	"macchiato": {
		Accent:  lipgloss.Color("#8aadf4"),
		Text:    lipgloss.Color("#cad3f5"),
		Muted:   lipgloss.Color("#6e738d"),
		Surface: lipgloss.Color("#363a4f"),
		Warning: lipgloss.Color("#eed49f"),
	},
	"frappe": {
		Accent:  lipgloss.Color("#8caaee"),
		Text:    lipgloss.Color("#c6d0f5"),
		Muted:   lipgloss.Color("#737994"),
		Surface: lipgloss.Color("#414559"),
		Warning: lipgloss.Color("#e5c890"),
	},
	"latte": {
		Accent:  lipgloss.Color("#1e66f5"),
		Text:    lipgloss.Color("#4c4f69"),
		Muted:   lipgloss.Color("#9ca0b0"),
		Surface: lipgloss.Color("#ccd0da"),
		Warning: lipgloss.Color("#df8e1d"),
	},
}

// taskColors is the fixed palette tasks cycle through per day.
var taskColors = [...]lipgloss.Color{
	lipgloss.Color("#3b82f6"), // blue
	lipgloss.Color("#10b981"), // emerald
	lipgloss.Color("#f59e0b"), // amber
	lipgloss.Color("#ef4444"), // red
	lipgloss.Color("#8b5cf6"), // violet
	lipgloss.Color("#ec4899"), // pink
	lipgloss.Color("#14b8a6"), // teal
	lipgloss.Color("#f97316"), // orange
}

// Styles holds the pre-built lipgloss styles for one theme.
type Styles struct {
	Header    lipgloss.Style
	TimeLabel lipgloss.Style
	HourLine  lipgloss.Style
	EmptySlot lipgloss.Style
	Preview   lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Help      lipgloss.Style
	Sidebar   lipgloss.Style
	Selected  lipgloss.Style
}

// NewStyles builds styles for the named theme, falling back to frappe.
func NewStyles(theme string) *Styles {
	p, ok := themes[theme]
	if !ok {
		p = themes["frappe"]
	}

	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		TimeLabel: lipgloss.NewStyle().Foreground(p.Muted),
		HourLine:  lipgloss.NewStyle().Foreground(p.Surface),
		EmptySlot: lipgloss.NewStyle().Foreground(p.Surface),
		Preview:   lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(p.Text),
		StatusErr: lipgloss.NewStyle().Foreground(lipgloss.Color("#e78284")),
		Help:      lipgloss.NewStyle().Foreground(p.Muted),
		Sidebar:   lipgloss.NewStyle().Foreground(p.Text).PaddingLeft(2),
		Selected:  lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

// TaskStyle returns the block style for a palette color index.
func (s *Styles) TaskStyle(colorIndex int) lipgloss.Style {
	c := taskColors[((colorIndex%len(taskColors))+len(taskColors))%len(taskColors)]
	return lipgloss.NewStyle().Foreground(c)
}
