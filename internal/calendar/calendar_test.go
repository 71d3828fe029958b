package calendar

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/choirsched/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month Month
		want  int
	}{
		{Month{2026, time.January}, 31},
		{Month{2026, time.February}, 28},
		{Month{2028, time.February}, 29},
		{Month{2026, time.April}, 30},
		{Month{2026, time.December}, 31},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DaysInMonth(tc.month), tc.month.String())
	}
}

func TestFirstWeekday(t *testing.T) {
	assert.Equal(t, time.Thursday, FirstWeekday(Month{2026, time.January}))
	assert.Equal(t, time.Sunday, FirstWeekday(Month{2026, time.February}))
}

func TestMonthAddWrapsYears(t *testing.T) {
	assert.Equal(t, Month{2027, time.January}, Month{2026, time.December}.Add(1))
	assert.Equal(t, Month{2025, time.December}, Month{2026, time.January}.Add(-1))
	assert.Equal(t, "2026-03", Month{2026, time.March}.Prefix())
	assert.Equal(t, "March 2026", Month{2026, time.March}.Title())
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2026-09")
	require.NoError(t, err)
	assert.Equal(t, Month{2026, time.September}, m)

	_, err = ParseMonth("2026/09")
	assert.Error(t, err)
}

func TestBuildGridLength(t *testing.T) {
	for y := 2024; y <= 2030; y++ {
		for mo := time.January; mo <= time.December; mo++ {
			month := Month{y, mo}
			cells := BuildGrid(month, nil, time.Time{}, time.Time{})
			require.Len(t, cells, int(FirstWeekday(month))+DaysInMonth(month), month.String())
		}
	}
}

func TestBuildGridPlaceholdersAndDays(t *testing.T) {
	month := Month{2026, time.January}
	cells := BuildGrid(month, nil, time.Time{}, time.Time{})

	for i := 0; i < 4; i++ {
		assert.True(t, cells[i].IsPlaceholder(), "cell %d", i)
		assert.Empty(t, cells[i].Date)
	}
	assert.Equal(t, 1, cells[4].Day)
	assert.Equal(t, "2026-01-01", cells[4].Date)
	assert.Equal(t, 31, cells[len(cells)-1].Day)
}

func TestBuildGridMarksEventsTodayAndSelection(t *testing.T) {
	month := Month{2026, time.January}
	events := []model.Event{
		{ID: "a", Title: "Practice", Date: "2026-01-05"},
		{ID: "b", Title: "Bad", Date: "2026-1-7"},
		{ID: "c", Title: "Elsewhere", Date: "2026-02-05"},
	}
	today := time.Date(2026, 1, 5, 21, 15, 0, 0, time.FixedZone("KST", 9*3600))
	cells := BuildGrid(month, events, today, day(2026, time.January, 9))

	var withEvent, todays, selected []int
	for _, c := range cells {
		if c.HasEvent {
			withEvent = append(withEvent, c.Day)
		}
		if c.IsToday {
			todays = append(todays, c.Day)
		}
		if c.IsSelected {
			selected = append(selected, c.Day)
		}
	}
	assert.Equal(t, []int{5}, withEvent, "malformed and out-of-month dates match no cell")
	assert.Equal(t, []int{5}, todays)
	assert.Equal(t, []int{9}, selected)
}

func TestRowsPadsLastWeek(t *testing.T) {
	cells := BuildGrid(Month{2026, time.March}, nil, time.Time{}, time.Time{})
	rows := Rows(cells)
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Len(t, r, Columns)
	}
	assert.Equal(t, 31, rows[4][2].Day)
	assert.True(t, rows[4][3].IsPlaceholder())
	assert.True(t, rows[4][6].IsPlaceholder())
}

func TestMonthEventsFiltersAndSorts(t *testing.T) {
	events := []model.Event{
		{ID: "1", Date: "2026-01-05", Title: "later"},
		{ID: "2", Date: "2025-12-31"},
		{ID: "3", Date: "2026-01-02", Title: "earlier"},
		{ID: "4", Date: "2026-01-05", Title: "same day second"},
		{ID: "5", Date: "2026-02-01"},
	}
	got := MonthEvents(Month{2026, time.January}, events)

	ids := make([]string, 0, len(got))
	for _, ev := range got {
		ids = append(ids, ev.ID)
	}
	assert.Equal(t, []string{"3", "1", "4"}, ids)
	assert.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Date < got[j].Date }))
	for _, ev := range got {
		assert.Equal(t, "2026-01", ev.Date[:7])
	}
}

func TestMonthEventsEmpty(t *testing.T) {
	assert.Empty(t, MonthEvents(Month{2026, time.January}, nil))
}

func TestIndexOfDate(t *testing.T) {
	events := []model.Event{{Date: "2026-01-02"}, {Date: "2026-01-05"}, {Date: "2026-01-05"}}
	assert.Equal(t, 1, IndexOfDate(events, "2026-01-05"))
	assert.Equal(t, -1, IndexOfDate(events, "2026-01-06"))
}

func TestSameDayIgnoresClock(t *testing.T) {
	assert.True(t, SameDay(day(2026, 1, 5), time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)))
	assert.False(t, SameDay(day(2026, 1, 5), time.Time{}))
}
