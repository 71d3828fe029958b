package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type CellData struct {
	Day        int
	HasEvent   bool
	IsToday    bool
	IsSelected bool
}

type GridPanelData struct {
	Title  string
	Weeks  [][]CellData
	Legend string
}

var (
	weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	eventStyle    = lipgloss.NewStyle().Underline(true)
	sundayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderGrid draws a Sunday-first month. Each cell is four columns wide: a
// two-digit day plus an event marker.
func RenderGrid(data GridPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	b.WriteString(mutedStyle.Render("[p]/[n] month") + "\n\n")

	for i, wd := range weekdayHeader {
		label := fmt.Sprintf("%-4s", wd)
		if i == 0 {
			label = sundayStyle.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	for _, week := range data.Weeks {
		for _, cell := range week {
			b.WriteString(renderCell(cell))
		}
		b.WriteString("\n")
	}
	if data.Legend != "" {
		b.WriteString("\n" + data.Legend)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCell(c CellData) string {
	if c.Day == 0 {
		return "    "
	}
	day := fmt.Sprintf("%2d", c.Day)
	switch {
	case c.IsSelected:
		day = selectedStyle.Render(day)
	case c.IsToday:
		day = todayStyle.Render(day)
	case c.HasEvent:
		day = eventStyle.Render(day)
	}
	marker := " "
	if c.HasEvent {
		marker = "•"
	}
	return day + marker + " "
}
