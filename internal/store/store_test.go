package store

import (
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/candidate"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "sessions.bolt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	rec := candidate.Record{FullName: "Jane Doe", Email: "jane@example.com"}
	history := []ai.Message{
		{Role: ai.RoleSystem, Content: "rules"},
		{Role: ai.RoleUser, Content: "hi"},
	}

	id, err := s.Save(rec, history)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if !regexp.MustCompile(`^[0-9a-f]{16}$`).MatchString(id) {
		t.Fatalf("unexpected session id shape: %q", id)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Candidate.FullName != "Jane Doe" {
		t.Fatalf("unexpected candidate: %+v", got.Candidate)
	}
	if len(got.History) != 2 || got.History[1].Content != "hi" {
		t.Fatalf("unexpected history: %+v", got.History)
	}
	if got.Status != "pending_review" {
		t.Fatalf("unexpected status: %q", got.Status)
	}
	if !got.RetentionUntil.After(got.Timestamp) {
		t.Fatal("expected retention date after creation")
	}
}

func TestSessionIDsUnique(t *testing.T) {
	s := openTestStore(t)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id, err := s.Save(candidate.Record{}, nil)
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session id: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get("0000000000000000"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Save(candidate.Record{FullName: "Jane"}, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	found, err := s.Delete(id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !found {
		t.Fatal("expected record to be deleted")
	}

	if _, err := s.Get(id); err != ErrNotFound {
		t.Fatalf("expected record gone, got %v", err)
	}

	found, err = s.Delete(id)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if found {
		t.Fatal("expected second delete to report missing")
	}
}

func TestCleanupExpired(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Save(candidate.Record{FullName: "Jane"}, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save(candidate.Record{FullName: "John"}, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A sweep dated inside the retention window keeps everything.
	removed, err := s.CleanupExpired(time.Now())
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected nothing removed, got %d", removed)
	}

	// A sweep dated past the window drops the records.
	removed, err = s.CleanupExpired(time.Now().Add(RetentionPeriod + time.Hour))
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected both records removed, got %d", removed)
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(records))
	}
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"One", "Two", "Three"} {
		if _, err := s.Save(candidate.Record{FullName: name}, nil); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}
