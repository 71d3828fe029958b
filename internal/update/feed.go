package update

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/choirsched/internal/scheduler"
	"github.com/sandeepkv93/choirsched/internal/storage"
)

// snapshotFeed hands adapter pushes to the update loop. It holds at most one
// snapshot; a newer push replaces an unread one, since every snapshot is the
// full event set.
type snapshotFeed struct {
	ch     chan storage.Snapshot
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	unsubscribe func()
}

func newSnapshotFeed() *snapshotFeed {
	ctx, cancel := context.WithCancel(context.Background())
	return &snapshotFeed{
		ch:     make(chan storage.Snapshot, 1),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (f *snapshotFeed) push(s storage.Snapshot) {
	for {
		select {
		case f.ch <- s:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

func (f *snapshotFeed) setUnsubscribe(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsubscribe = fn
}

func (f *snapshotFeed) close() {
	f.mu.Lock()
	unsubscribe := f.unsubscribe
	f.unsubscribe = nil
	f.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	f.cancel()
}

func subscribeCmd(adapter storage.Adapter, feed *snapshotFeed) tea.Cmd {
	return func() tea.Msg {
		if adapter == nil {
			return subscribeFailedMsg{Err: errNoAdapter}
		}
		unsubscribe, err := adapter.Subscribe(feed.ctx, feed.push)
		if err != nil {
			return subscribeFailedMsg{Err: err}
		}
		feed.setUnsubscribe(unsubscribe)
		return subscribedMsg{}
	}
}

func waitForSnapshotCmd(feed *snapshotFeed) tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-feed.ch:
			return SnapshotMsg{Snapshot: s}
		case <-feed.ctx.Done():
			return nil
		}
	}
}

func waitForNoticeCmd(ch <-chan scheduler.Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: n}
	}
}
