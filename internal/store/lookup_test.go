package store

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestOpenLookupTable_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LookupTable-IDS.json")

	table, err := OpenLookupTable(path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenLookupTable() error = %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
}

func TestOpenLookupTable_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LookupTable-IDS.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenLookupTable(path, zap.NewNop()); err == nil {
		t.Fatal("expected an error for a corrupt table")
	}
}

func TestLookupTable_PutFlushesAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LookupTable-IDS.json")

	table, err := OpenLookupTable(path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenLookupTable() error = %v", err)
	}
	if err := table.Put("1000001000000", "msg-1"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := table.Put("1000002000000", "msg-2"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// Every Put flushes synchronously, so a fresh open sees both.
	reloaded, err := OpenLookupTable(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("reloaded Len() = %d, want 2", reloaded.Len())
	}
	if id, ok := reloaded.Get("1000001000000"); !ok || id != "msg-1" {
		t.Errorf("Get() = %q, %v, want msg-1", id, ok)
	}
	if !reloaded.Has("1000002000000") {
		t.Error("Has() = false for flushed key")
	}
}

func TestLookupTable_FirstWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LookupTable-IDS.json")

	table, err := OpenLookupTable(path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenLookupTable() error = %v", err)
	}
	if err := table.Put("key", "first"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := table.Put("key", "second"); err != nil {
		t.Fatalf("repeated Put() error = %v", err)
	}

	if id, _ := table.Get("key"); id != "first" {
		t.Errorf("Get() = %q, want first", id)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}
