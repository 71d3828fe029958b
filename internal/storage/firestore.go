package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sandeepkv93/choirsched/internal/model"
)

const DefaultCollection = "schedules"

type FirestoreOptions struct {
	ProjectID       string
	Collection      string
	CredentialsFile string
	Logger          *slog.Logger
}

// FirestoreStore keeps one document per event in a single collection. The
// document id is the event id.
type FirestoreStore struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
	logger *slog.Logger
}

// OpenFirestore connects to the project. When FIRESTORE_EMULATOR_HOST is set
// the client talks to the emulator instead.
func OpenFirestore(ctx context.Context, opts FirestoreOptions) (*FirestoreStore, error) {
	if opts.ProjectID == "" {
		return nil, errors.New("storage: firestore project id is required")
	}
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, opts.ProjectID, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("open firestore: %w", err)
	}
	return NewFirestoreStore(client, opts.Collection, opts.Logger), nil
}

func NewFirestoreStore(client *firestore.Client, collection string, logger *slog.Logger) *FirestoreStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &FirestoreStore{
		client: client,
		coll:   client.Collection(collection),
		logger: loggerOrDiscard(logger),
	}
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// Subscribe registers a snapshot listener on the collection. fn fires with
// the current set and again after every change by any client. A listener
// failure is delivered once as Snapshot.Err and ends the subscription.
func (s *FirestoreStore) Subscribe(ctx context.Context, fn func(Snapshot)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	it := s.coll.Snapshots(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled {
					return
				}
				mapped := mapFirestoreError("listen", err)
				s.logger.Error("snapshot listener failed", "op", "listen", "err", mapped)
				fn(Snapshot{Err: mapped})
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				mapped := mapFirestoreError("listen", err)
				s.logger.Error("read snapshot documents failed", "op", "listen", "err", mapped)
				fn(Snapshot{Err: mapped})
				continue
			}
			fn(Snapshot{Events: s.decode(docs)})
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

func (s *FirestoreStore) List(ctx context.Context) ([]model.Event, error) {
	docs, err := s.coll.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapFirestoreError("list", err)
	}
	return s.decode(docs), nil
}

func (s *FirestoreStore) Create(ctx context.Context, in model.Event) (model.Event, error) {
	ev, err := prepare(in)
	if err != nil {
		return model.Event{}, err
	}
	ref, _, err := s.coll.Add(ctx, ev)
	if err != nil {
		mapped := mapFirestoreError("create", err)
		s.logger.Error("create event failed", "op", "create", "err", mapped)
		return model.Event{}, mapped
	}
	ev.ID = ref.ID
	s.logger.Debug("event created", "op", "create", "id", ev.ID, "date", ev.Date)
	return ev, nil
}

// Update replaces every mutable field. A missing document is reported as
// model.ErrNotFound rather than recreated.
func (s *FirestoreStore) Update(ctx context.Context, in model.Event) error {
	ev, err := prepare(in)
	if err != nil {
		return err
	}
	if ev.ID == "" {
		return fmt.Errorf("storage: update: %w: missing id", model.ErrNotFound)
	}
	_, err = s.coll.Doc(ev.ID).Update(ctx, []firestore.Update{
		{Path: "title", Value: ev.Title},
		{Path: "date", Value: ev.Date},
		{Path: "type", Value: string(ev.Category)},
		{Path: "time", Value: ev.Time},
		{Path: "time2", Value: ev.Time2},
		{Path: "location", Value: ev.Location},
		{Path: "description", Value: ev.Description},
	})
	if err != nil {
		mapped := mapFirestoreError("update", err)
		s.logger.Error("update event failed", "op", "update", "id", ev.ID, "err", mapped)
		return mapped
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("storage: delete: %w: missing id", model.ErrNotFound)
	}
	if _, err := s.coll.Doc(id).Delete(ctx, firestore.Exists); err != nil {
		mapped := mapFirestoreError("delete", err)
		if !errors.Is(mapped, model.ErrNotFound) {
			s.logger.Error("delete event failed", "op", "delete", "id", id, "err", mapped)
		}
		return mapped
	}
	return nil
}

func (s *FirestoreStore) decode(docs []*firestore.DocumentSnapshot) []model.Event {
	out := make([]model.Event, 0, len(docs))
	for _, doc := range docs {
		var ev model.Event
		if err := doc.DataTo(&ev); err != nil {
			s.logger.Warn("skip undecodable event document", "op", "decode", "id", doc.Ref.ID, "err", err)
			continue
		}
		ev.ID = doc.Ref.ID
		ev.Category = ev.Category.OrOther()
		out = append(out, ev)
	}
	return out
}
