package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sandeepkv93/choirsched/internal/model"
)

// setupFirestore needs a running emulator; the Firestore client picks up
// FIRESTORE_EMULATOR_HOST on its own.
func setupFirestore(t *testing.T) *FirestoreStore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	collection := fmt.Sprintf("schedules-test-%d", time.Now().UnixNano())
	store, err := OpenFirestore(ctx, FirestoreOptions{ProjectID: "choirsched-test", Collection: collection})
	if err != nil {
		t.Fatalf("open firestore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func waitForSnapshot(t *testing.T, ch <-chan Snapshot, match func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case snap := <-ch:
			if snap.Err != nil {
				t.Fatalf("snapshot error: %v", snap.Err)
			}
			if match(snap) {
				return snap
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot")
		}
	}
}

func TestFirestoreCRUDPushesSnapshots(t *testing.T) {
	store := setupFirestore(t)
	ctx := context.Background()

	ch := make(chan Snapshot, 16)
	unsubscribe, err := store.Subscribe(ctx, func(s Snapshot) {
		select {
		case ch <- s:
		default:
		}
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsubscribe()
	waitForSnapshot(t, ch, func(s Snapshot) bool { return len(s.Events) == 0 })

	in := model.Event{Title: "정기 연습", Date: "2026-01-05", Category: model.CategoryPractice, Time: "13:30"}
	created, err := store.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	snap := waitForSnapshot(t, ch, func(s Snapshot) bool { return len(s.Events) == 1 })
	if snap.Events[0].ID != created.ID || !snap.Events[0].SameFields(in) {
		t.Fatalf("unexpected pushed event: %+v", snap.Events[0])
	}

	edited := created
	edited.Title = "Dress rehearsal"
	if err := store.Update(ctx, edited); err != nil {
		t.Fatalf("update: %v", err)
	}
	waitForSnapshot(t, ch, func(s Snapshot) bool { return len(s.Events) == 1 && s.Events[0].Title == "Dress rehearsal" })

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	waitForSnapshot(t, ch, func(s Snapshot) bool { return len(s.Events) == 0 })

	if err := store.Delete(ctx, created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if err := store.Update(ctx, edited); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found on update of deleted doc, got %v", err)
	}
}
