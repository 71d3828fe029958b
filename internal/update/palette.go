package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/choirsched/internal/calendar"
	"github.com/sandeepkv93/choirsched/internal/commands"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			m = m.GotoMonth(g.Month)
			return commands.Result{Message: "showing " + g.Month.Title()}, nil
		},
		Today: func() (commands.Result, error) {
			m = m.Today()
			return commands.Result{Message: "today is " + calendar.ISODate(m.SelectedDate)}, nil
		},
		Select: func(s commands.SelectArgs) (commands.Result, error) {
			m = m.GotoMonth(calendar.MonthOf(s.Date))
			m = m.SelectDate(s.Date.Day())
			return commands.Result{Message: "selected " + calendar.ISODate(m.SelectedDate)}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if !m.Admin {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: readOnlyHint}
			}
			if !a.Date.IsZero() {
				m = m.GotoMonth(calendar.MonthOf(a.Date))
				m = m.SelectDate(a.Date.Day())
			}
			m = m.OpenAdd()
			if !m.Edit.Open() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "finish the open dialog first"}
			}
			form := m.Edit.Form
			form.inputs[fieldTitle].SetValue(a.Title)
			m.Edit.Form = form
			return commands.Result{Message: fmt.Sprintf("new event %q: review and press ctrl+s", a.Title)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}
