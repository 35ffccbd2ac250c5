package props

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func tempDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "props.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	if err := db.Set("probe", "x"); err != nil {
		t.Fatalf("Set on fresh db: %v", err)
	}
}

func TestSetAndGet(t *testing.T) {
	db := tempDB(t)

	if err := db.Set("tokenizer_import_normalisation", ":: lower ();"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := db.Get("tokenizer_import_normalisation")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != ":: lower ();" {
		t.Fatalf("expected ':: lower ();', got %s", got)
	}
}

func TestSet_Replaces(t *testing.T) {
	db := tempDB(t)

	if err := db.Set("key", "first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Set("key", "second"); err != nil {
		t.Fatalf("Set again: %v", err)
	}

	got, err := db.Get("key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected 'second', got %s", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	db := tempDB(t)

	_, err := db.Get("never-set")
	if err == nil {
		t.Fatal("expected error for missing property")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReopen_Persists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "props.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Set("key", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	got, err := db.Get("key")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != "value" {
		t.Fatalf("expected 'value', got %s", got)
	}
}

func TestEmptyValue(t *testing.T) {
	db := tempDB(t)

	if err := db.Set("empty", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := db.Get("empty")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}
