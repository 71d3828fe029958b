package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Category string

const (
	CategoryPractice Category = "practice"
	CategoryWorship  Category = "worship"
	CategorySpecial  Category = "special"
	CategoryOther    Category = "other"
)

// Categories lists every category in form order.
var Categories = []Category{CategoryPractice, CategoryWorship, CategorySpecial, CategoryOther}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPractice, CategoryWorship, CategorySpecial, CategoryOther:
		return true
	default:
		return false
	}
}

// Label is the short display name used in the list and the legend.
func (c Category) Label() string {
	switch c {
	case CategoryPractice:
		return "Practice"
	case CategoryWorship:
		return "Worship"
	case CategorySpecial:
		return "Special"
	default:
		return "Other"
	}
}

// Next cycles through Categories, wrapping at the end.
func (c Category) Next(delta int) Category {
	idx := 0
	for i, cat := range Categories {
		if cat == c {
			idx = i
			break
		}
	}
	n := len(Categories)
	idx = ((idx+delta)%n + n) % n
	return Categories[idx]
}

// OrOther maps anything outside Categories to CategoryOther. Stored records
// written by other clients may carry categories this build does not know.
func (c Category) OrOther() Category {
	c = Category(strings.ToLower(strings.TrimSpace(string(c))))
	if !c.IsValid() {
		return CategoryOther
	}
	return c
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

// Event is one calendar entry. The JSON and Firestore field names match the
// persisted record shape {id, title, date, type, time, time2, location, description}.
type Event struct {
	ID          string   `json:"id" firestore:"-"`
	Title       string   `json:"title" firestore:"title"`
	Date        string   `json:"date" firestore:"date"`
	Category    Category `json:"type" firestore:"type"`
	Time        string   `json:"time,omitempty" firestore:"time"`
	Time2       string   `json:"time2,omitempty" firestore:"time2"`
	Location    string   `json:"location,omitempty" firestore:"location"`
	Description string   `json:"description,omitempty" firestore:"description"`
}

// Normalized returns a copy with every string field trimmed and the category
// defaulted to other when empty.
func (e Event) Normalized() Event {
	out := Event{
		ID:          strings.TrimSpace(e.ID),
		Title:       strings.TrimSpace(e.Title),
		Date:        strings.TrimSpace(e.Date),
		Category:    Category(strings.ToLower(strings.TrimSpace(string(e.Category)))),
		Time:        strings.TrimSpace(e.Time),
		Time2:       strings.TrimSpace(e.Time2),
		Location:    strings.TrimSpace(e.Location),
		Description: strings.TrimSpace(e.Description),
	}
	if out.Category == "" {
		out.Category = CategoryOther
	}
	return out
}

// SameFields reports whether every field except ID matches.
func (e Event) SameFields(other Event) bool {
	e.ID, other.ID = "", ""
	return e == other
}

// Day parses Date. ok is false for malformed dates.
func (e Event) Day() (time.Time, bool) {
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// TimeRange is the optional pair of notable times on an event. Either end
// may be empty.
type TimeRange struct {
	Start string
	End   string
}

func (r TimeRange) IsZero() bool { return r.Start == "" && r.End == "" }

// String joins the two times the way the list shows them: "08:00 / 10:20".
func (r TimeRange) String() string {
	switch {
	case r.Start != "" && r.End != "":
		return r.Start + " / " + r.End
	case r.Start != "":
		return r.Start
	default:
		return r.End
	}
}

func (e Event) TimeRange() TimeRange {
	return TimeRange{Start: e.Time, End: e.Time2}
}

// StartsAt combines Date and Time in loc. ok is false when either is missing
// or malformed.
func (e Event) StartsAt(loc *time.Location) (time.Time, bool) {
	if e.Time == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Validate checks a normalized record. It does not require an ID, since new
// records get theirs from the store. The two times are checked for syntax
// only; ordering is CheckTimeOrder's job.
func (e Event) Validate() error {
	verr := &ValidationError{}
	if e.Title == "" {
		verr.add("title", "title is required")
	}
	if e.Date == "" {
		verr.add("date", "date is required")
	} else if _, ok := e.Day(); !ok {
		verr.add("date", "date must be YYYY-MM-DD")
	}
	if !e.Category.IsValid() {
		verr.add("type", fmt.Sprintf("unknown category %q", e.Category))
	}
	if e.Time != "" && !ValidClock(e.Time) {
		verr.add("time", "time must be HH:MM")
	}
	if e.Time2 != "" && !ValidClock(e.Time2) {
		verr.add("time2", "time must be HH:MM")
	}
	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

// CheckTimeOrder requires Time2 to be after Time when both are set. Records
// already stored with any pair of times stay valid, so callers apply this
// only to times the user entered.
func (e Event) CheckTimeOrder() error {
	start, startOK := parseClock(e.Time)
	end, endOK := parseClock(e.Time2)
	if startOK && endOK && !end.After(start) {
		verr := &ValidationError{}
		verr.add("time2", "end time must be after start time")
		return verr
	}
	return nil
}

func parseClock(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(TimeLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidClock reports whether v is an HH:MM time.
func ValidClock(v string) bool {
	_, ok := parseClock(v)
	return ok
}
