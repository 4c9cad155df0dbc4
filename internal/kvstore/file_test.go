package kvstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if err := s.Set(ctx, "blog:bookmark:a", `{"id":"a"}`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Increment(ctx, "blog:views:hello"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Increment(ctx, "blog:views:hello"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAdd(ctx, "blog:bookmarks:all", "a"); err != nil {
		t.Fatal(err)
	}

	// Reopen from disk: every mutation above must have been flushed.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}

	val, err := reopened.Get(ctx, "blog:bookmark:a")
	if err != nil {
		t.Fatalf("Get() after reopen error: %v", err)
	}
	if val != `{"id":"a"}` {
		t.Errorf("Get() = %q", val)
	}

	count, err := reopened.Get(ctx, "blog:views:hello")
	if err != nil {
		t.Fatalf("Get(counter) after reopen error: %v", err)
	}
	if count != "2" {
		t.Errorf("counter after reopen = %q, want %q", count, "2")
	}

	members, err := reopened.SetMembers(ctx, "blog:bookmarks:all")
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0] != "a" {
		t.Errorf("set after reopen = %v, want [a]", members)
	}
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nope", "data.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	if _, err := s.Get(ctx, "anything"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() on empty store error = %v, want ErrKeyNotFound", err)
	}

	// First write creates the parent directory.
	if err := s.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("NewFileStore() on corrupt file should fail")
	}
}

func TestFileStoreDeleteAndPrefix(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Increment(ctx, "blog:views:a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "blog:bookmark:b", "{}"); err != nil {
		t.Fatal(err)
	}

	keys, err := s.KeysByPrefix(ctx, "blog:views:")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "blog:views:a" {
		t.Errorf("KeysByPrefix() = %v", keys)
	}

	existed, err := s.Delete(ctx, "blog:views:a")
	if err != nil || !existed {
		t.Errorf("Delete() = (%v, %v), want (true, nil)", existed, err)
	}
	existed, err = s.Delete(ctx, "blog:views:a")
	if err != nil || existed {
		t.Errorf("second Delete() = (%v, %v), want (false, nil)", existed, err)
	}
}
