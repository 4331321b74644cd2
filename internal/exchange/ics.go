package exchange

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"dayplan/internal/dateutil"
	"dayplan/internal/slot"
	"dayplan/internal/task"
)

const icsProductID = "-//dayplan//EN"

// ExportICS writes the collection as a VCALENDAR with one VEVENT per
// task. Event times are the task's wall-clock slot boundaries in the
// local timezone.
func ExportICS(w io.Writer, tasks []*task.Task) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)

	now := time.Now().UTC()
	for _, t := range tasks {
		ve, err := toVEvent(t, now)
		if err != nil {
			return fmt.Errorf("export ics: task %d: %w", t.ID, err)
		}
		cal.Children = append(cal.Children, ve)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("export ics: %w", err)
	}
	return nil
}

func toVEvent(t *task.Task, stamp time.Time) (*ical.Component, error) {
	day, err := dateutil.ParseDay(t.Date)
	if err != nil {
		return nil, err
	}
	start := day.Add(time.Duration(slot.DayStartMinutes+t.StartSlot*slot.DurationMinutes) * time.Minute)
	end := day.Add(time.Duration(slot.DayStartMinutes+t.EndSlot*slot.DurationMinutes) * time.Minute)

	title := t.Title
	if title == "" {
		title = "Untitled Task"
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("dayplan-%d", t.ID))
	ve.Props.SetText(ical.PropSummary, title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	ve.Props.SetDateTime(ical.PropDateTimeStart, start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end)
	if t.Description != "" {
		ve.Props.SetText(ical.PropDescription, t.Description)
	}
	return ve, nil
}
