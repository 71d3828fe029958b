package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type FormFieldData struct {
	Label   string
	View    string
	Error   string
	Focused bool
}

type FormPanelData struct {
	Heading    string
	Fields     []FormFieldData
	Categories []LegendItem
	Category   string
	CategoryOn bool
	Saving     bool
	SaveError  string
}

var (
	fieldErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dialogStyle     = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
)

func RenderForm(data FormPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Heading) + "\n")
	b.WriteString(mutedStyle.Render("[tab] next field [ctrl+s] save [esc] cancel") + "\n\n")

	chips := make([]string, 0, len(data.Categories))
	for _, c := range data.Categories {
		if c.Key == data.Category {
			chips = append(chips, Chip(c.Key, c.Label))
		} else {
			chips = append(chips, mutedStyle.Render(" "+c.Label+" "))
		}
	}
	cursor := " "
	if data.CategoryOn {
		cursor = ">"
	}
	b.WriteString(fmt.Sprintf("%s type      %s\n", cursor, strings.Join(chips, " ")))

	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-9s %s\n", cursor, f.Label, f.View))
		if f.Error != "" {
			b.WriteString("  " + fieldErrorStyle.Render(f.Error) + "\n")
		}
	}

	switch {
	case data.Saving:
		b.WriteString("\n" + mutedStyle.Render("saving..."))
	case data.SaveError != "":
		b.WriteString("\n" + fieldErrorStyle.Render(data.SaveError))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderConfirm(message string) string {
	body := fmt.Sprintf("%s\n\n[y] delete  [n] cancel", message)
	return dialogStyle.Render(body)
}

type HelpPanelData struct {
	Focus    string
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Focus),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

func RenderNotice(title, when, location string) string {
	text := fmt.Sprintf("upcoming: %s at %s", title, when)
	if location != "" {
		text += " (" + location + ")"
	}
	return text
}
