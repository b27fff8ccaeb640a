package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type testDoc struct {
	Name string `json:"name"`
}

func TestMemStoreWriteRead(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if err := s.Write(ctx, "exams/a/e1", testDoc{Name: "first"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := s.Read(ctx, "exams/a/e1")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	var got testDoc
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "first" {
		t.Fatalf("got %+v", got)
	}

	// Same path overwrites in full.
	if err := s.Write(ctx, "exams/a/e1", testDoc{Name: "second"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, _ = s.Read(ctx, "exams/a/e1")
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "second" {
		t.Fatalf("expected overwrite, got %+v", got)
	}
}

func TestMemStoreReadMissing(t *testing.T) {
	s := NewMemStore()
	if _, err := s.Read(context.Background(), "exams/a/none"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Read missing = %v, want ErrNotFound", err)
	}
}

func TestMemStoreReadAll(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	paths := []string{"exams/a/e2", "exams/a/e1", "exams/b/e3", "submissions/e1/r1"}
	for _, p := range paths {
		if err := s.Write(ctx, p, testDoc{Name: p}); err != nil {
			t.Fatalf("Write %s: %v", p, err)
		}
	}

	docs, err := s.ReadAll(ctx, "exams/a")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	// Ordered by path.
	if docs[0].Path != "exams/a/e1" || docs[1].Path != "exams/a/e2" {
		t.Fatalf("order = %q, %q", docs[0].Path, docs[1].Path)
	}

	// Prefix matching is segment-aware: "exams/a" must not match "exams/ab/...".
	if err := s.Write(ctx, "exams/ab/e9", testDoc{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	docs, _ = s.ReadAll(ctx, "exams/a")
	if len(docs) != 2 {
		t.Fatalf("prefix leaked across segments: got %d docs", len(docs))
	}

	// Empty namespace yields an empty slice, not nil.
	docs, err = s.ReadAll(ctx, "exams/nobody")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("empty namespace = %v", docs)
	}
}

func TestMemStoreReadAll_WildcardIDsAreLiteral(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	// IDs come from token claims and may contain _ or %; those must never
	// act as pattern characters in a prefix read.
	if err := s.Write(ctx, "exams/e2e_author/e1", testDoc{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(ctx, "exams/e2eXauthor/e2", testDoc{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(ctx, "exams/100%author/e3", testDoc{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	docs, err := s.ReadAll(ctx, "exams/e2e_author")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(docs) != 1 || docs[0].Path != "exams/e2e_author/e1" {
		t.Fatalf("docs = %+v, want only exams/e2e_author/e1", docs)
	}

	docs, err = s.ReadAll(ctx, "exams/100%author")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(docs) != 1 || docs[0].Path != "exams/100%author/e3" {
		t.Fatalf("docs = %+v, want only exams/100%%author/e3", docs)
	}
}

func TestMemStoreSubscribe(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	var events []Event
	unsub, err := s.Subscribe(ctx, "submissions/e1", func(ev Event) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	// Child write notifies.
	if err := s.Write(ctx, "submissions/e1/r1", testDoc{Name: "sub"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Unrelated write does not.
	if err := s.Write(ctx, "submissions/e2/r1", testDoc{Name: "other"}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Path != "submissions/e1/r1" {
		t.Fatalf("event path = %q", events[0].Path)
	}

	// After unsubscribe nothing more arrives. Calling twice is safe.
	unsub()
	unsub()
	if err := s.Write(ctx, "submissions/e1/r2", testDoc{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("received event after unsubscribe: %d", len(events))
	}
}

func TestMemStoreSubscribeExactPath(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	var count int
	unsub, err := s.Subscribe(ctx, "submissions/e1/r1", func(Event) { count++ })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsub()

	if err := s.Write(ctx, "submissions/e1/r1", testDoc{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(ctx, "submissions/e1/r2", testDoc{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 notification, got %d", count)
	}
}
