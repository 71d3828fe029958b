package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/choirsched/internal/calendar"
	"github.com/sandeepkv93/choirsched/internal/model"
	"github.com/sandeepkv93/choirsched/internal/storage"
)

var errNoAdapter = errors.New("no storage backend configured")

const readOnlyHint = "read-only: start with --admin to change events"

// PrevMonth moves the cursor back one month and clears the selection.
func (m Model) PrevMonth() Model {
	return m.shiftMonth(-1)
}

// NextMonth moves the cursor forward one month and clears the selection.
func (m Model) NextMonth() Model {
	return m.shiftMonth(1)
}

func (m Model) shiftMonth(delta int) Model {
	return m.GotoMonth(m.Cursor.Add(delta))
}

func (m Model) GotoMonth(month calendar.Month) Model {
	m.Cursor = month
	m.SelectedDate = time.Time{}
	m.ListCursor = 0
	m.listViewport.GotoTop()
	return m
}

// Today jumps to the current month and selects today.
func (m Model) Today() Model {
	today := m.today()
	m = m.GotoMonth(calendar.MonthOf(today))
	return m.SelectDate(today.Day())
}

// SelectDate selects a day of the cursor month and moves the list cursor to
// the first event on that day, if any. Out-of-range days are ignored.
func (m Model) SelectDate(day int) Model {
	if day < 1 || day > calendar.DaysInMonth(m.Cursor) {
		return m
	}
	m.SelectedDate = m.Cursor.Date(day)
	if idx := calendar.IndexOfDate(m.monthEvents(), calendar.ISODate(m.SelectedDate)); idx >= 0 {
		m.ListCursor = idx
	}
	return m
}

func (m Model) monthEvents() []model.Event {
	return calendar.MonthEvents(m.Cursor, m.Events)
}

// CurrentEvent is the event under the list cursor. With a day selected it
// must fall on that day, so an empty day shows no detail.
func (m Model) CurrentEvent() (model.Event, bool) {
	events := m.monthEvents()
	if m.ListCursor < 0 || m.ListCursor >= len(events) {
		return model.Event{}, false
	}
	ev := events[m.ListCursor]
	if !m.SelectedDate.IsZero() && ev.Date != calendar.ISODate(m.SelectedDate) {
		return model.Event{}, false
	}
	return ev, true
}

// defaultDate is the selected day, else today when it is in the cursor
// month, else the first of the cursor month.
func (m Model) defaultDate() string {
	if !m.SelectedDate.IsZero() {
		return calendar.ISODate(m.SelectedDate)
	}
	if today := m.today(); m.Cursor.Contains(today) {
		return calendar.ISODate(today)
	}
	return calendar.ISODate(m.Cursor.First())
}

func (m Model) OpenAdd() Model {
	if !m.writable() {
		return m
	}
	initial := model.Event{Date: m.defaultDate(), Category: model.CategoryOther}
	if m.defaults.Enabled {
		initial.Category = m.defaults.Category
		initial.Time = m.defaults.Time
		initial.Time2 = m.defaults.Time2
		initial.Location = m.defaults.Location
	}
	m.Edit = EditIntent{Mode: EditCreating, Form: newEditForm(initial)}
	return m
}

func (m Model) OpenEdit(ev model.Event) Model {
	if !m.writable() {
		return m
	}
	m.Edit = EditIntent{Mode: EditEditing, Form: newEditForm(ev), Original: ev}
	return m
}

func (m Model) CancelEdit() Model {
	m.Edit = EditIntent{}
	m.Saving = false
	m.pendingSave = 0
	return m
}

// Save validates the form and dispatches create or update depending on
// whether the record has an ID. The form stays open until the adapter
// answers.
func (m Model) Save() (Model, tea.Cmd) {
	if !m.Admin || !m.Edit.Open() || m.Saving {
		return m, nil
	}
	rec := m.Edit.Form.Value()
	err := rec.Validate()
	if err == nil && m.timesEntered(rec) {
		err = rec.CheckTimeOrder()
	}
	if err != nil {
		m.Edit.Form.SetErrors(err)
		m.Status = StatusBar{Text: "fix the highlighted fields", IsError: true}
		return m, nil
	}
	m.Edit.Form.SetErrors(nil)
	m.Saving = true
	m.seq++
	m.pendingSave = m.seq
	return m, saveCmd(m.adapter, rec, m.writeTimeout, m.seq)
}

// timesEntered reports whether the form's times came from the user rather
// than from the stored record, which may hold any pair.
func (m Model) timesEntered(rec model.Event) bool {
	if m.Edit.Mode != EditEditing {
		return true
	}
	orig := m.Edit.Original.Normalized()
	return rec.Time != orig.Time || rec.Time2 != orig.Time2
}

func saveCmd(adapter storage.Adapter, rec model.Event, timeout time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		if adapter == nil {
			return SaveDoneMsg{Seq: seq, Err: errNoAdapter}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if rec.ID == "" {
			created, err := adapter.Create(ctx, rec)
			return SaveDoneMsg{Seq: seq, Event: created, Created: true, Err: err}
		}
		err := adapter.Update(ctx, rec)
		return SaveDoneMsg{Seq: seq, Event: rec, Err: err}
	}
}

func (m Model) onSaveDone(msg SaveDoneMsg) Model {
	if msg.Seq == 0 || msg.Seq != m.pendingSave {
		m.logger.Debug("ignoring stale save result", "op", "save", "seq", msg.Seq, "err", msg.Err)
		return m
	}
	m.Saving = false
	m.pendingSave = 0
	action := "update"
	if msg.Created {
		action = "create"
	}
	if msg.Err != nil {
		text := failureText(action, msg.Err)
		m.logger.Warn("save failed", "op", action, "id", msg.Event.ID, "err", msg.Err)
		m.Edit.Form.SetErrors(msg.Err)
		m.Edit.Form.setSaveError(text)
		m.Status = StatusBar{Text: text, IsError: true}
		m.LastError = msg.Err
		return m
	}
	m.Edit = EditIntent{}
	m.Status = StatusBar{Text: fmt.Sprintf("saved %q on %s", msg.Event.Title, msg.Event.Date)}
	return m
}

func (m Model) RequestDelete(ev model.Event) Model {
	if !m.writable() || ev.ID == "" {
		return m
	}
	m.Delete = DeleteIntent{ID: ev.ID, Title: ev.Title, Date: ev.Date}
	return m
}

func (m Model) CancelDelete() Model {
	m.Delete = DeleteIntent{}
	m.Deleting = false
	m.pendingDelete = 0
	return m
}

func (m Model) ConfirmDelete() (Model, tea.Cmd) {
	if !m.Admin || !m.Delete.Open() || m.Deleting {
		return m, nil
	}
	m.Deleting = true
	m.seq++
	m.pendingDelete = m.seq
	return m, deleteCmd(m.adapter, m.Delete.ID, m.writeTimeout, m.seq)
}

func deleteCmd(adapter storage.Adapter, id string, timeout time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		if adapter == nil {
			return DeleteDoneMsg{Seq: seq, ID: id, Err: errNoAdapter}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return DeleteDoneMsg{Seq: seq, ID: id, Err: adapter.Delete(ctx, id)}
	}
}

func (m Model) onDeleteDone(msg DeleteDoneMsg) Model {
	if msg.Seq == 0 || msg.Seq != m.pendingDelete {
		m.logger.Debug("ignoring stale delete result", "op", "delete", "seq", msg.Seq, "err", msg.Err)
		return m
	}
	m.Deleting = false
	m.pendingDelete = 0
	switch {
	case errors.Is(msg.Err, model.ErrNotFound):
		m.Delete = DeleteIntent{}
		m.Status = StatusBar{Text: "event was already removed"}
	case msg.Err != nil:
		text := failureText("delete", msg.Err)
		m.logger.Warn("delete failed", "op", "delete", "id", msg.ID, "err", msg.Err)
		m.Status = StatusBar{Text: text, IsError: true}
		m.LastError = msg.Err
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("deleted %q", m.Delete.Title)}
		m.Delete = DeleteIntent{}
	}
	return m
}

// onSnapshot replaces the cache with the pushed set. A failed push keeps the
// previous set.
func (m Model) onSnapshot(s storage.Snapshot) Model {
	m.Loading = false
	if s.Err != nil {
		m.logger.Warn("snapshot failed", "op", "subscribe", "err", s.Err)
		m.Status = StatusBar{Text: "live updates stopped: " + reason(s.Err), IsError: true}
		m.LastError = s.Err
		return m
	}
	m.Events = s.Events
	if m.Events == nil {
		m.Events = []model.Event{}
	}
	if n := len(m.monthEvents()); m.ListCursor >= n {
		m.ListCursor = max(n-1, 0)
	}
	m.planNotices()
	return m
}

func (m Model) writable() bool {
	return m.Admin && !m.Edit.Open() && !m.Delete.Open()
}

func failureText(action string, err error) string {
	return fmt.Sprintf("failed to %s event: %s", action, reason(err))
}

func reason(err error) string {
	switch {
	case errors.Is(err, model.ErrPermissionDenied):
		return "permission denied"
	case errors.Is(err, model.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return "storage unavailable"
	case errors.Is(err, model.ErrNotFound):
		return "event no longer exists"
	case errors.Is(err, model.ErrValidation):
		return "invalid event"
	default:
		return err.Error()
	}
}
