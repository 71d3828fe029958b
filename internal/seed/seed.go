package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sandeepkv93/choirsched/internal/calendar"
	"github.com/sandeepkv93/choirsched/internal/config"
	"github.com/sandeepkv93/choirsched/internal/model"
)

// Template is a weekly recurring event.
type Template struct {
	Title       string
	Category    model.Category
	Weekday     time.Weekday
	Time        string
	Time2       string
	Location    string
	Description string
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

func FromConfig(in []config.SeedTemplate) ([]Template, error) {
	out := make([]Template, 0, len(in))
	for i, raw := range in {
		wd, err := config.ParseWeekday(raw.Weekday)
		if err != nil {
			return nil, fmt.Errorf("seed template %d: %w", i, err)
		}
		cat := model.CategoryOther
		if strings.TrimSpace(raw.Category) != "" {
			if cat, err = model.ParseCategory(raw.Category); err != nil {
				return nil, fmt.Errorf("seed template %d: %w", i, err)
			}
		}
		out = append(out, Template{
			Title:       strings.TrimSpace(raw.Title),
			Category:    cat,
			Weekday:     wd,
			Time:        raw.Time,
			Time2:       raw.Time2,
			Location:    raw.Location,
			Description: raw.Description,
		})
	}
	return out, nil
}

// Generate expands every template over months consecutive months starting
// at from. Output is ordered by date, then template order.
func Generate(templates []Template, from calendar.Month, months int) ([]model.Event, error) {
	if months <= 0 {
		return nil, fmt.Errorf("seed: months must be > 0 (got %d)", months)
	}
	start := from.First()
	until := from.Add(months).First().Add(-time.Second)

	byDate := make(map[string][]model.Event)
	for _, tpl := range templates {
		r, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rruleWeekdays[tpl.Weekday]},
			Dtstart:   start,
			Until:     until,
		})
		if err != nil {
			return nil, fmt.Errorf("seed: rule for %q: %w", tpl.Title, err)
		}
		for _, occ := range r.All() {
			date := calendar.ISODate(occ)
			byDate[date] = append(byDate[date], model.Event{
				Title:       tpl.Title,
				Date:        date,
				Category:    tpl.Category,
				Time:        tpl.Time,
				Time2:       tpl.Time2,
				Location:    tpl.Location,
				Description: tpl.Description,
			})
		}
	}

	out := make([]model.Event, 0)
	for day := start; day.Before(until); day = day.AddDate(0, 0, 1) {
		out = append(out, byDate[calendar.ISODate(day)]...)
	}
	return out, nil
}

// Missing drops generated events that already exist with the same date and
// title, so re-running a seed does not duplicate entries.
func Missing(existing, generated []model.Event) []model.Event {
	have := make(map[string]bool, len(existing))
	for _, ev := range existing {
		have[ev.Date+"\x00"+ev.Title] = true
	}
	out := make([]model.Event, 0, len(generated))
	for _, ev := range generated {
		if have[ev.Date+"\x00"+ev.Title] {
			continue
		}
		out = append(out, ev)
	}
	return out
}
