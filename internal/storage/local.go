package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/choirsched/internal/model"
)

const DefaultLocalKey = "gloria.schedules"

type LocalOptions struct {
	// Key names the kv row holding the JSON event array.
	Key    string
	Logger *slog.Logger
	// NewID overrides uuid.NewString, for tests.
	NewID func() string
	Now   func() time.Time
}

// LocalStore keeps the whole event set as one JSON array under a single key
// in a SQLite kv table. The set is read once and rewritten in full on every
// mutation.
type LocalStore struct {
	db     *sql.DB
	key    string
	logger *slog.Logger
	newID  func() string
	now    func() time.Time

	mu     sync.Mutex
	loaded bool
	events []model.Event
	subs   subscribers
}

func NewLocalStore(db *sql.DB, opts LocalOptions) (*LocalStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	s := &LocalStore{
		db:     db,
		key:    opts.Key,
		logger: loggerOrDiscard(opts.Logger),
		newID:  opts.NewID,
		now:    opts.Now,
	}
	if s.key == "" {
		s.key = DefaultLocalKey
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// OpenLocal opens the SQLite file at path and applies migrations.
func OpenLocal(ctx context.Context, path string, opts LocalOptions) (*LocalStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewLocalStore(db, opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// Subscribe delivers the current set immediately and again after every
// mutation made through this store. Cancelling ctx unsubscribes.
func (s *LocalStore) Subscribe(ctx context.Context, fn func(Snapshot)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	unsubscribe := s.subs.add(fn)
	stop := context.AfterFunc(ctx, unsubscribe)
	fn(Snapshot{Events: copyEvents(s.events)})
	return func() {
		stop()
		unsubscribe()
	}, nil
}

func (s *LocalStore) List(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return copyEvents(s.events), nil
}

func (s *LocalStore) Create(ctx context.Context, in model.Event) (model.Event, error) {
	ev, err := prepare(in)
	if err != nil {
		return model.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return model.Event{}, err
	}
	ev.ID = s.newID()
	next := append(copyEvents(s.events), ev)
	if err := s.commit(ctx, next); err != nil {
		return model.Event{}, err
	}
	s.logger.Debug("event created", "op", "create", "id", ev.ID, "date", ev.Date)
	return ev, nil
}

func (s *LocalStore) Update(ctx context.Context, in model.Event) error {
	ev, err := prepare(in)
	if err != nil {
		return err
	}
	if ev.ID == "" {
		return fmt.Errorf("storage: update: %w: missing id", model.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := s.indexOf(ev.ID)
	if idx < 0 {
		return fmt.Errorf("storage: update %s: %w", ev.ID, model.ErrNotFound)
	}
	next := copyEvents(s.events)
	next[idx] = ev
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Debug("event updated", "op", "update", "id", ev.ID)
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("storage: delete %s: %w", id, model.ErrNotFound)
	}
	next := make([]model.Event, 0, len(s.events)-1)
	next = append(next, s.events[:idx]...)
	next = append(next, s.events[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Debug("event deleted", "op", "delete", "id", id)
	return nil
}

func (s *LocalStore) indexOf(id string) int {
	for i, ev := range s.events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}

// commit persists next and, only once it is durable, swaps it in and
// notifies subscribers. Caller holds s.mu.
func (s *LocalStore) commit(ctx context.Context, next []model.Event) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.events = next
	s.subs.publish(Snapshot{Events: s.events})
	return nil
}

func (s *LocalStore) persist(ctx context.Context, events []model.Event) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("storage: encode events: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(payload), s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		s.logger.Error("persist events failed", "op", "persist", "key", s.key, "err", err)
		return fmt.Errorf("storage: persist %s: %w", s.key, errors.Join(model.ErrUnavailable, err))
	}
	return nil
}

// ensureLoaded reads the key once. Absent data is an empty set; unparsable
// data is logged and also treated as empty. Caller holds s.mu.
func (s *LocalStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.events = []model.Event{}
	case err != nil:
		return fmt.Errorf("storage: load %s: %w", s.key, errors.Join(model.ErrUnavailable, err))
	default:
		events, decodeErr := decodeStored([]byte(raw), s.newID)
		if decodeErr != nil {
			perr := &model.ParseError{Source: s.key, Err: decodeErr}
			s.logger.Warn("stored events unreadable, starting empty", "op", "load", "key", s.key, "err", perr)
			events = []model.Event{}
		}
		s.events = events
	}
	s.loaded = true
	return nil
}

// storedEvent accepts both string ids and the numeric timestamp ids written
// by older clients.
type storedEvent struct {
	ID          storedID       `json:"id"`
	Title       string         `json:"title"`
	Date        string         `json:"date"`
	Category    model.Category `json:"type"`
	Time        string         `json:"time"`
	Time2       string         `json:"time2"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
}

type storedID string

func (id *storedID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = storedID(s)
	default:
		n, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = storedID(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return nil
}

func decodeStored(raw []byte, newID func() string) ([]model.Event, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.Event{}, nil
	}
	var stored []storedEvent
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for _, se := range stored {
		ev := model.Event{
			ID:          string(se.ID),
			Title:       se.Title,
			Date:        se.Date,
			Category:    se.Category,
			Time:        se.Time,
			Time2:       se.Time2,
			Location:    se.Location,
			Description: se.Description,
		}
		ev.Category = ev.Category.OrOther()
		if ev.ID == "" || seen[ev.ID] {
			ev.ID = newID()
		}
		seen[ev.ID] = true
		out = append(out, ev)
	}
	return out, nil
}
