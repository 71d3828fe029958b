package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/choirsched/internal/calendar"
	"github.com/sandeepkv93/choirsched/internal/model"
	"github.com/sandeepkv93/choirsched/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		subscribeCmd(m.adapter, m.feed),
		waitForSnapshotCmd(m.feed),
		m.loadSpinner.Tick,
	}
	if m.notices != nil {
		cmds = append(cmds, waitForNoticeCmd(m.notices.C()))
	}
	return tea.Batch(cmds...)
}

// Update keeps the list viewport in step with whatever the message changed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncList()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		if h := typed.Height - 16; h > 3 {
			m.listViewport.Height = h
		}
		return m, nil
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case subscribedMsg:
		m.logger.Debug("subscribed to events", "op", "subscribe")
		return m, nil
	case subscribeFailedMsg:
		m.Loading = false
		m.LastError = typed.Err
		m.Status = StatusBar{Text: "failed to load events: " + reason(typed.Err), IsError: true}
		m.logger.Error("subscribe failed", "op", "subscribe", "err", typed.Err)
		return m, nil
	case SnapshotMsg:
		m = m.onSnapshot(typed.Snapshot)
		return m, waitForSnapshotCmd(m.feed)
	case SaveDoneMsg:
		return m.onSaveDone(typed), nil
	case DeleteDoneMsg:
		return m.onDeleteDone(typed), nil
	case NoticeMsg:
		m.onNotice(typed.Notice)
		if m.notices != nil {
			return m, waitForNoticeCmd(m.notices.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	if m.Delete.Open() {
		return m.handleConfirmKey(keyStr)
	}
	if m.Edit.Open() {
		return m.handleFormKey(msg)
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}

	switch keyStr {
	case "q":
		return m.quit()
	case "?":
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "/":
		return m.openPalette(), nil
	case "tab":
		if m.Focus == FocusGrid {
			m.Focus = FocusList
		} else {
			m.Focus = FocusGrid
		}
		return m, nil
	case "p", "[":
		return m.PrevMonth(), nil
	case "n", "]":
		return m.NextMonth(), nil
	case "t":
		return m.Today(), nil
	case "a":
		if !m.Admin {
			m.Status = StatusBar{Text: readOnlyHint}
			return m, nil
		}
		return m.OpenAdd(), nil
	case "e":
		return m.editCurrent(), nil
	case "x", "d":
		if !m.Admin {
			m.Status = StatusBar{Text: readOnlyHint}
			return m, nil
		}
		if ev, ok := m.CurrentEvent(); ok {
			return m.RequestDelete(ev), nil
		}
		return m, nil
	}

	if m.Focus == FocusList {
		return m.handleListKey(keyStr), nil
	}
	return m.handleGridKey(keyStr), nil
}

func (m Model) handleGridKey(keyStr string) Model {
	switch keyStr {
	case "h", "left":
		return m.moveDay(-1)
	case "l", "right":
		return m.moveDay(1)
	case "k", "up":
		return m.moveDay(-7)
	case "j", "down":
		return m.moveDay(7)
	case "enter":
		if m.SelectedDate.IsZero() {
			return m
		}
		m.Focus = FocusList
	}
	return m
}

// moveDay shifts the selection by delta days, following it into the
// neighbouring month when it leaves the cursor month.
func (m Model) moveDay(delta int) Model {
	from := m.SelectedDate
	if from.IsZero() {
		if today := m.today(); m.Cursor.Contains(today) {
			return m.SelectDate(today.Day())
		}
		return m.SelectDate(1)
	}
	target := from.AddDate(0, 0, delta)
	if !m.Cursor.Contains(target) {
		m = m.GotoMonth(calendar.MonthOf(target))
	}
	return m.SelectDate(target.Day())
}

func (m Model) handleListKey(keyStr string) Model {
	events := m.monthEvents()
	switch keyStr {
	case "j", "down":
		if m.ListCursor < len(events)-1 {
			m.ListCursor++
		}
	case "k", "up":
		if m.ListCursor > 0 {
			m.ListCursor--
		}
	case "enter":
		return m.editCurrent()
	default:
		return m
	}
	if ev, ok := m.CurrentEvent(); ok {
		if d, ok := ev.Day(); ok {
			m.SelectedDate = d
		}
	}
	return m
}

func (m Model) editCurrent() Model {
	if !m.Admin {
		m.Status = StatusBar{Text: readOnlyHint}
		return m
	}
	if ev, ok := m.CurrentEvent(); ok {
		return m.OpenEdit(ev)
	}
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.CancelEdit(), nil
	case "ctrl+s":
		return m.Save()
	case "enter":
		if m.Edit.Form.focus != focusDescription {
			return m.Save()
		}
	}
	var cmd tea.Cmd
	m.Edit.Form, cmd = m.Edit.Form.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(keyStr string) (Model, tea.Cmd) {
	switch keyStr {
	case "y", "enter":
		return m.ConfirmDelete()
	case "n", "esc":
		return m.CancelDelete(), nil
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	m.feed.close()
	return m, tea.Quit
}

func (m *Model) syncList() {
	events := m.monthEvents()
	items := make([]views.ListItemData, 0, len(events))
	for i, ev := range events {
		weekday := ""
		if d, ok := ev.Day(); ok {
			weekday = d.Weekday().String()[:3]
		}
		items = append(items, views.ListItemData{
			Date:      ev.Date,
			Weekday:   weekday,
			Category:  string(ev.Category),
			Label:     ev.Category.Label(),
			Title:     ev.Title,
			TimeRange: ev.TimeRange().String(),
			Location:  ev.Location,
			Selected:  ev.Date == calendar.ISODate(m.SelectedDate),
			Cursor:    i == m.ListCursor && m.Focus == FocusList,
		})
	}
	m.listViewport.SetContent(strings.Join(views.ListLines(items), "\n"))

	h := m.listViewport.Height
	switch {
	case h <= 0:
	case m.ListCursor < m.listViewport.YOffset:
		m.listViewport.SetYOffset(m.ListCursor)
	case m.ListCursor >= m.listViewport.YOffset+h:
		m.listViewport.SetYOffset(m.ListCursor - h + 1)
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	mode := "read-only"
	if m.Admin {
		mode = "admin"
	}

	rightPane := m.renderRightPane() + m.renderCommandPalette() + m.renderHelpIfVisible()

	notification := ""
	if n := m.LastNotice; n != nil {
		notification = views.RenderNotice(n.Title, n.StartsAt.In(m.loc).Format("01-02 15:04"), n.Location)
	}

	footer := "keys: p/n month | t today | tab focus | / cmd | ? help | q quit"
	if m.Admin {
		footer += " | a add | e edit | x delete"
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("choirsched | %s | %s", m.Cursor.Title(), mode),
		LeftPane:     m.renderGrid(),
		LeftFocused:  m.Focus == FocusGrid && !m.modalOpen(),
		RightPane:    rightPane,
		RightFocused: m.Focus == FocusList || m.modalOpen(),
		StatusLine:   m.Status.Text,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       footer,
	})
}

func (m Model) modalOpen() bool {
	return m.Edit.Open() || m.Delete.Open()
}

func (m Model) renderGrid() string {
	cells := calendar.BuildGrid(m.Cursor, m.Events, m.today(), m.SelectedDate)
	rows := calendar.Rows(cells)
	weeks := make([][]views.CellData, 0, len(rows))
	for _, row := range rows {
		week := make([]views.CellData, 0, len(row))
		for _, c := range row {
			week = append(week, views.CellData{
				Day:        c.Day,
				HasEvent:   c.HasEvent,
				IsToday:    c.IsToday,
				IsSelected: c.IsSelected,
			})
		}
		weeks = append(weeks, week)
	}
	legend := make([]views.LegendItem, 0, len(model.Categories))
	for _, c := range model.Categories {
		legend = append(legend, views.LegendItem{Key: string(c), Label: c.Label()})
	}
	return views.RenderGrid(views.GridPanelData{
		Title:  m.Cursor.Title(),
		Weeks:  weeks,
		Legend: views.RenderLegend(legend),
	})
}

func (m Model) renderRightPane() string {
	switch {
	case m.Delete.Open():
		msg := fmt.Sprintf("Delete %s?", m.Delete.Label())
		if m.Deleting {
			msg += "\ndeleting..."
		}
		return views.RenderConfirm(msg)
	case m.Edit.Open():
		return m.Edit.Form.View(m.Saving)
	}

	loading := ""
	if m.Loading {
		loading = m.loadSpinner.View() + " loading schedules"
	}
	events := m.monthEvents()
	out := views.RenderListPanel(views.ListPanelData{
		Title:   "Events in " + m.Cursor.Title(),
		Loading: loading,
		Empty:   len(events) == 0,
	}, m.listViewport.View())

	if ev, ok := m.CurrentEvent(); ok {
		out += "\n" + views.RenderDetail(views.DetailData{
			Title:       ev.Title,
			Date:        ev.Date,
			Category:    string(ev.Category),
			Label:       ev.Category.Label(),
			TimeRange:   ev.TimeRange().String(),
			Location:    ev.Location,
			Description: ev.Description,
		})
	}
	return out
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return "\n\n" + views.RenderCommandPalette(true, m.commandInput.View())
}
