package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/gesture"
)

// DebugLogger logs TUI state, keystrokes, and pointer events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "dayplan-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogPointer logs a mouse event handed to the gesture machine.
func LogPointer(action string, x, y int, alt bool) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("POINTER", map[string]any{
		"action": action,
		"x":      x,
		"y":      y,
		"alt":    alt,
	})
}

// LogCommit logs the result of a completed gesture.
func LogCommit(res gesture.Result) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"kind": commitKindString(res.Kind),
	}
	if res.Task != nil {
		data["task_id"] = res.Task.ID
		data["date"] = res.Task.Date
		data["start_slot"] = res.Task.StartSlot
		data["end_slot"] = res.Task.EndSlot
	}
	debugLog.log("COMMIT", data)
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MODE_CHANGE", map[string]any{
		"from":   modeString(from),
		"to":     modeString(to),
		"reason": reason,
	})
}

// LogDateChange logs day navigation.
func LogDateChange(from, to string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("DATE_CHANGE", map[string]any{
		"from": from,
		"to":   to,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeEdit:
		return "Edit"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// commitKindString returns a string representation of a gesture result kind.
func commitKindString(k gesture.ResultKind) string {
	switch k {
	case gesture.ResultCreated:
		return "Created"
	case gesture.ResultSelected:
		return "Selected"
	case gesture.ResultResized:
		return "Resized"
	case gesture.ResultMoved:
		return "Moved"
	case gesture.ResultRejected:
		return "Rejected"
	default:
		return "None"
	}
}
