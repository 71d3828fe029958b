package update

import (
	"time"

	"github.com/sandeepkv93/choirsched/internal/scheduler"
	"github.com/sandeepkv93/choirsched/internal/views"
)

// planNotices rebuilds the pending notices from the current event set,
// skipping ones already shown.
func (m *Model) planNotices() {
	if m.notices == nil || m.noticeLead <= 0 {
		return
	}
	planned := scheduler.Plan(m.Events, m.now(), m.noticeLead, m.loc)
	pending := planned[:0]
	for _, n := range planned {
		if _, shown := m.announced[noticeKey(n)]; !shown {
			pending = append(pending, n)
		}
	}
	if err := m.notices.Reset(pending); err != nil {
		m.logger.Warn("notice reset failed", "op", "notices", "err", err)
	}
}

// onNotice shows a due notice once. Edits that move an event produce a new
// key, so the moved event is announced again.
func (m *Model) onNotice(n scheduler.Notice) {
	key := noticeKey(n)
	if _, shown := m.announced[key]; shown {
		return
	}
	if m.announced == nil {
		m.announced = make(map[string]time.Time)
	}
	m.announced[key] = n.StartsAt
	m.LastNotice = &n
	m.Status = StatusBar{Text: views.RenderNotice(n.Title, n.StartsAt.In(m.loc).Format("01-02 15:04"), n.Location)}
	if err := saveAnnouncedNotices(m.stateFile, m.announced, m.now()); err != nil {
		m.logger.Warn("persist notice state failed", "op", "notices", "path", m.stateFile, "err", err)
	}
}

func noticeKey(n scheduler.Notice) string {
	return n.EventID + "@" + n.StartsAt.UTC().Format(time.RFC3339)
}
