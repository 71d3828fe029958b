package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/choirsched/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.focusBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Focus:    string(m.Focus),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	out := []KeyBinding{
		{Key: "p/n", Action: "previous/next month"},
		{Key: "t", Action: "jump to today"},
		{Key: "tab", Action: "switch calendar/events"},
		{Key: "/", Action: "open command palette"},
		{Key: "?", Action: "toggle help panel"},
		{Key: "q", Action: "quit app"},
	}
	if m.Admin {
		out = append(out,
			KeyBinding{Key: "a", Action: "add event"},
			KeyBinding{Key: "e", Action: "edit event"},
			KeyBinding{Key: "x", Action: "delete event"},
		)
	}
	return out
}

func (m Model) focusBindings() []KeyBinding {
	switch m.Focus {
	case FocusGrid:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "k/j", Action: "previous/next week"},
			{Key: "enter", Action: "show the day's events"},
		}
	case FocusList:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "edit event (admin)"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.focusBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.focusBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
