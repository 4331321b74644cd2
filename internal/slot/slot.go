// Package slot defines the fixed slot grid and the pure conversions
// between pixels, slot indices, and clock labels.
package slot

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Count is the number of slots in a day grid: 07:00 to midnight.
	Count = 68
	// DurationMinutes is the length of one slot.
	DurationMinutes = 15
	// DayStartMinutes is the clock offset of slot 0 (07:00).
	DayStartMinutes = 7 * 60
	// SlotsPerHour is used when converting durations in hours to slots.
	SlotsPerHour = 60 / DurationMinutes
)

// FromPixel maps a vertical pixel coordinate onto a slot index.
// gridTop is the on-screen y of slot 0 and slotHeight the fixed per-slot
// pixel height. The function is total: any input, including negative y
// or a zero slot height, yields a slot in [0, Count-1].
func FromPixel(y, gridTop, slotHeight int) int {
	if slotHeight <= 0 {
		return 0
	}
	s := (y - gridTop) / slotHeight
	if y-gridTop < 0 {
		// Integer division truncates toward zero; floor instead.
		if (y-gridTop)%slotHeight != 0 {
			s--
		}
	}
	return Clamp(s)
}

// Clamp restricts s to the valid slot range [0, Count-1].
func Clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > Count-1 {
		return Count - 1
	}
	return s
}

// Label converts a slot index to a 12-hour clock label like "7:00 AM".
// Out-of-range indices produce an empty string.
func Label(s int) string {
	if s < 0 || s >= Count {
		return ""
	}
	total := DayStartMinutes + s*DurationMinutes
	hours := (total / 60) % 24
	minutes := total % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

// FromLabel parses a "h:mm AM/PM" label back to a slot index. The result
// is clamped at zero but deliberately not capped at Count: manual time
// entry flows through the store's update path, which clamps the range
// downstream.
func FromLabel(label string) int {
	label = strings.TrimSpace(label)

	var rest, period string
	switch {
	case strings.HasSuffix(strings.ToUpper(label), "AM"):
		period = "AM"
		rest = strings.TrimSpace(label[:len(label)-2])
	case strings.HasSuffix(strings.ToUpper(label), "PM"):
		period = "PM"
		rest = strings.TrimSpace(label[:len(label)-2])
	default:
		return 0
	}

	hs, ms, ok := strings.Cut(rest, ":")
	if !ok {
		return 0
	}
	hours, err1 := strconv.Atoi(strings.TrimSpace(hs))
	minutes, err2 := strconv.Atoi(strings.TrimSpace(ms))
	if err1 != nil || err2 != nil {
		return 0
	}

	if period == "PM" && hours != 12 {
		hours += 12
	}
	// The grid runs 7:00 AM to midnight, so "12:xx AM" means the end of
	// the day, not the start.
	if period == "AM" && hours == 12 {
		hours = 24
	}

	s := (hours*60 + minutes - DayStartMinutes) / DurationMinutes
	if s < 0 {
		return 0
	}
	return s
}

// Labels returns the full set of slot labels in grid order.
func Labels() []string {
	out := make([]string, Count)
	for i := range out {
		out[i] = Label(i)
	}
	return out
}

// ForHours converts a duration in hours to a slot count, rounding up to
// whole slots. Used when scheduling imported assignments.
func ForHours(hours float64) int {
	n := int(hours * SlotsPerHour)
	if float64(n) < hours*SlotsPerHour {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
