package kvstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func setupKVTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Create kv table (matches schema in migrations)
	_, err = db.Exec(`
		CREATE TABLE kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("failed to create kv table: %v", err)
	}

	return db
}

func TestSQLiteStore_BasicOperations(t *testing.T) {
	db := setupKVTestDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	if err := store.Set(ctx, "contentItems", []byte(`[1]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Replace existing value
	if err := store.Set(ctx, "contentItems", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Set (replace) failed: %v", err)
	}

	got, err := store.Get(ctx, "contentItems")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "[1,2]" {
		t.Errorf("Get = %s, want [1,2]", got)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}

	if err := store.Delete(ctx, "contentItems"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "contentItems"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_EmptyValue(t *testing.T) {
	store := NewSQLiteStore(setupKVTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, "empty", nil); err != nil {
		t.Fatalf("Set(nil) failed: %v", err)
	}
	got, err := store.Get(ctx, "empty")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestSQLiteStore_ClosedAndPing(t *testing.T) {
	store := NewSQLiteStore(setupKVTestDB(t))
	ctx := context.Background()

	if err := Probe(ctx, store); err != nil {
		t.Errorf("Probe failed: %v", err)
	}

	_ = store.Close()
	if _, err := store.Get(ctx, "k"); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
