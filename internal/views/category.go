package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Category chip colors, keyed by the persisted type value.
var categoryColors = map[string]lipgloss.Color{
	"practice": lipgloss.Color("#5c6bc0"),
	"worship":  lipgloss.Color("#ffa726"),
	"special":  lipgloss.Color("#ef5350"),
	"other":    lipgloss.Color("#78909c"),
}

func categoryColor(key string) lipgloss.Color {
	if c, ok := categoryColors[key]; ok {
		return c
	}
	return categoryColors["other"]
}

// Chip renders a colored category label.
func Chip(key, label string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(categoryColor(key)).
		Padding(0, 1).
		Render(label)
}

// Dot is the single-cell category marker used inside the list.
func Dot(key string) string {
	return lipgloss.NewStyle().Foreground(categoryColor(key)).Render("●")
}

type LegendItem struct {
	Key   string
	Label string
}

func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, Dot(it.Key)+" "+it.Label)
	}
	return strings.Join(parts, "  ")
}
