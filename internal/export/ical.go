package export

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/sandeepkv93/choirsched/internal/model"
)

const ProductID = "-//gloria choir//choirsched//KO"

type Options struct {
	// Location anchors timed events. Nil means UTC.
	Location *time.Location
	// Now stamps DTSTAMP. Zero means time.Now.
	Now time.Time
}

// Calendar converts events into a VCALENDAR. Events without a start time
// become all-day entries; events with a malformed date are skipped.
func Calendar(events []model.Event, opts Options) *ical.Calendar {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	stamp := opts.Now
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, ev := range events {
		ve, ok := toVEvent(ev, loc, stamp.UTC())
		if !ok {
			continue
		}
		cal.Children = append(cal.Children, ve)
	}
	return cal
}

// Write encodes the calendar for events to w.
func Write(w io.Writer, events []model.Event, opts Options) error {
	if err := ical.NewEncoder(w).Encode(Calendar(events, opts)); err != nil {
		return fmt.Errorf("export: encode calendar: %w", err)
	}
	return nil
}

func toVEvent(ev model.Event, loc *time.Location, stamp time.Time) (*ical.Component, bool) {
	day, ok := ev.Day()
	if !ok {
		return nil, false
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, ev.ID+"@choirsched")
	ve.Props.SetText(ical.PropSummary, ev.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	ve.Props.SetText(ical.PropCategories, ev.Category.Label())

	if start, ok := ev.StartsAt(loc); ok {
		ve.Props.SetDateTime(ical.PropDateTimeStart, start)
		if ev.Time2 != "" {
			end := ev
			end.Time = ev.Time2
			if endAt, ok := end.StartsAt(loc); ok && endAt.After(start) {
				ve.Props.SetDateTime(ical.PropDateTimeEnd, endAt)
			}
		}
	} else {
		ve.Props.SetDate(ical.PropDateTimeStart, day)
		ve.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
	}

	if ev.Location != "" {
		ve.Props.SetText(ical.PropLocation, ev.Location)
	}
	if ev.Description != "" {
		ve.Props.SetText(ical.PropDescription, ev.Description)
	}
	return ve, true
}
