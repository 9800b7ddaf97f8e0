package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestBoltStoreSetGetAndExpire(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		DefaultTTL:      time.Hour,
		CleanupInterval: time.Second,
	}

	storeRaw, err := openBolt(filepath.Join(dir, "nested", "credentials.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if _, err := store.Get("accessToken"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set("accessToken", "tok", time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get("accessToken")
	if err != nil || got != "tok" {
		t.Fatalf("expected stored token, got %q err=%v", got, err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	if _, err := store.Get("accessToken"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected entry to expire, got %v", err)
	}
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	first, err := NewStore("bbolt", path, Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := first.Set("accessToken", "persisted", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := NewStore("bbolt", path, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.Get("accessToken")
	if err != nil || got != "persisted" {
		t.Fatalf("expected persisted token, got %q err=%v", got, err)
	}

	if err := second.Delete("accessToken"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := second.Get("accessToken"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNewStoreSupportsMemory(t *testing.T) {
	store, err := NewStore("memory", "", Options{})
	if err != nil {
		t.Fatalf("NewStore memory: %v", err)
	}
	if err := store.Set("k", "v", 0); err != nil {
		t.Fatalf("memory store Set: %v", err)
	}
	if got, err := store.Get("k"); err != nil || got != "v" {
		t.Fatalf("memory store Get = %q, %v", got, err)
	}

	mem := store.(*memoryStore)
	mem.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
	if _, err := store.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired entry, got %v", err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}
