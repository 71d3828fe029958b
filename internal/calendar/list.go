package calendar

import (
	"sort"
	"strings"

	"github.com/sandeepkv93/choirsched/internal/model"
)

// MonthEvents keeps the events dated inside month and sorts them by date.
// Same-day events keep their snapshot order.
func MonthEvents(month Month, events []model.Event) []model.Event {
	prefix := month.Prefix()
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if strings.HasPrefix(ev.Date, prefix) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// IndexOfDate returns the position of the first event dated date, or -1.
func IndexOfDate(events []model.Event, date string) int {
	for i, ev := range events {
		if ev.Date == date {
			return i
		}
	}
	return -1
}
