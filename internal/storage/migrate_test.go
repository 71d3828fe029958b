package storage

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/choirsched/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	ctx := t.Context()

	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}
	if err := MigrateDown(ctx, db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewLocalStore(db, LocalOptions{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	created, err := store.Create(ctx, model.Event{Title: "Roundtrip", Date: "2026-02-09", Category: model.CategoryOther})
	if err != nil {
		t.Fatalf("create after roundtrip failed: %v", err)
	}

	var raw string
	if err := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, DefaultLocalKey).Scan(&raw); err != nil {
		t.Fatalf("read kv after roundtrip: %v", err)
	}
	if want := `"id":"` + created.ID + `"`; !strings.Contains(raw, want) {
		t.Fatalf("stored value %s missing %s", raw, want)
	}
}
