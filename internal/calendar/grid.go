package calendar

import (
	"time"

	"github.com/sandeepkv93/choirsched/internal/model"
)

const Columns = 7

// Cell is one slot of the month grid. Placeholder cells before day 1 have
// Day == 0 and an empty Date.
type Cell struct {
	Day        int
	Date       string
	HasEvent   bool
	IsToday    bool
	IsSelected bool
}

func (c Cell) IsPlaceholder() bool { return c.Day == 0 }

// BuildGrid lays out a Sunday-first month: FirstWeekday placeholders followed
// by one cell per day. selected may be zero for no selection. Events with a
// malformed date match no cell.
func BuildGrid(month Month, events []model.Event, today, selected time.Time) []Cell {
	lead := int(FirstWeekday(month))
	days := DaysInMonth(month)

	dated := make(map[string]bool, len(events))
	for _, ev := range events {
		dated[ev.Date] = true
	}

	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		d := month.Date(day)
		iso := ISODate(d)
		cells = append(cells, Cell{
			Day:        day,
			Date:       iso,
			HasEvent:   dated[iso],
			IsToday:    SameDay(d, today),
			IsSelected: SameDay(d, selected),
		})
	}
	return cells
}

// Rows splits cells into weeks of Columns, padding the last week with
// placeholders.
func Rows(cells []Cell) [][]Cell {
	var rows [][]Cell
	for start := 0; start < len(cells); start += Columns {
		end := start + Columns
		row := make([]Cell, Columns)
		if end > len(cells) {
			end = len(cells)
		}
		copy(row, cells[start:end])
		rows = append(rows, row)
	}
	return rows
}
