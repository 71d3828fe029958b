package storage

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sandeepkv93/choirsched/internal/model"
)

// Snapshot is one push from a subscription: either the full current event
// set or a listener failure.
type Snapshot struct {
	Events []model.Event
	Err    error
}

// Adapter is the single source of truth for events. Both implementations push
// a fresh full snapshot to subscribers after every successful mutation, so
// callers never patch their own copy.
//
// Subscribe callbacks run on adapter goroutines and must not block or call
// back into the adapter.
type Adapter interface {
	Subscribe(ctx context.Context, fn func(Snapshot)) (unsubscribe func(), err error)
	List(ctx context.Context) ([]model.Event, error)
	Create(ctx context.Context, in model.Event) (model.Event, error)
	Update(ctx context.Context, in model.Event) error
	Delete(ctx context.Context, id string) error
	Close() error
}

var (
	_ Adapter = (*LocalStore)(nil)
	_ Adapter = (*FirestoreStore)(nil)
)

// prepare normalizes and validates a record before it is written.
func prepare(in model.Event) (model.Event, error) {
	ev := in.Normalized()
	if err := ev.Validate(); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

func copyEvents(in []model.Event) []model.Event {
	out := make([]model.Event, len(in))
	copy(out, in)
	return out
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

// subscribers fans snapshots out to in-process listeners.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Snapshot)
}

func (s *subscribers) add(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func(Snapshot))
	}
	id := s.next
	s.next++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.mu.Unlock()
		})
	}
}

func (s *subscribers) publish(snap Snapshot) {
	s.mu.Lock()
	fns := make([]func(Snapshot), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(Snapshot{Events: copyEvents(snap.Events), Err: snap.Err})
	}
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}
