package scheduler

import (
	"sort"
	"time"

	"github.com/sandeepkv93/choirsched/internal/model"
)

// Plan builds the notices for events that start after now. A notice fires
// lead before the start, or immediately when that moment has already passed.
// Events without a start time get none. A non-positive lead disables notices.
func Plan(events []model.Event, now time.Time, lead time.Duration, loc *time.Location) []Notice {
	if lead <= 0 {
		return nil
	}
	out := make([]Notice, 0)
	for _, ev := range events {
		start, ok := ev.StartsAt(loc)
		if !ok || !start.After(now) {
			continue
		}
		fire := start.Add(-lead)
		if fire.Before(now) {
			fire = now
		}
		out = append(out, Notice{
			EventID:  ev.ID,
			Title:    ev.Title,
			Location: ev.Location,
			StartsAt: start,
			FireAt:   fire,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}
