package views

import (
	"fmt"
	"strings"
)

type ListItemData struct {
	Date      string
	Weekday   string
	Category  string
	Label     string
	Title     string
	TimeRange string
	Location  string
	Selected  bool
	Cursor    bool
}

type ListPanelData struct {
	Title   string
	Loading string
	Empty   bool
}

type DetailData struct {
	Title       string
	Date        string
	Category    string
	Label       string
	TimeRange   string
	Location    string
	Description string
}

// ListLines renders one line per event. The caller scrolls them through a
// viewport.
func ListLines(items []ListItemData) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		cursor := " "
		if it.Cursor {
			cursor = ">"
		}
		when := it.Date
		if len(when) >= 10 {
			when = when[5:]
		}
		line := fmt.Sprintf("%s %s %s %s %s", cursor, when, it.Weekday, Dot(it.Category), it.Title)
		if it.TimeRange != "" {
			line += " " + mutedStyle.Render(it.TimeRange)
		}
		if it.Cursor {
			line = titleStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func RenderListPanel(data ListPanelData, viewportView string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	switch {
	case data.Loading != "":
		b.WriteString(data.Loading)
	case data.Empty:
		b.WriteString(mutedStyle.Render("(no events this month)"))
	default:
		b.WriteString(viewportView)
	}
	return b.String()
}

func RenderDetail(d DetailData) string {
	if d.Title == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + Chip(d.Category, d.Label) + " " + titleStyle.Render(d.Title) + "\n")
	b.WriteString(fmt.Sprintf("date: %s\n", d.Date))
	if d.TimeRange != "" {
		b.WriteString(fmt.Sprintf("time: %s\n", d.TimeRange))
	}
	if d.Location != "" {
		b.WriteString(fmt.Sprintf("place: %s\n", d.Location))
	}
	if desc := RenderMarkdown(d.Description); desc != "" {
		b.WriteString("\n" + desc)
	}
	return strings.TrimRight(b.String(), "\n")
}
