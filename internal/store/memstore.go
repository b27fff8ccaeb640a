package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Store with the same path and subscription
// semantics as DocumentStore. Used by unit tests and local development.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
	subs map[int]*memSub
	next int
}

type memSub struct {
	path string
	fn   OnChange
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		docs: make(map[string]json.RawMessage),
		subs: make(map[int]*memSub),
	}
}

func (s *MemStore) Write(ctx context.Context, path string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", path, err)
	}

	s.mu.Lock()
	s.docs[path] = raw
	var notify []OnChange
	for _, sub := range s.subs {
		if path == sub.path || strings.HasPrefix(path, sub.path+"/") {
			notify = append(notify, sub.fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(Event{Path: path, Doc: raw})
	}
	return nil
}

func (s *MemStore) Read(ctx context.Context, path string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (s *MemStore) ReadAll(ctx context.Context, prefix string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := []Document{}
	for path, raw := range s.docs {
		if strings.HasPrefix(path, prefix+"/") {
			docs = append(docs, Document{Path: path, Doc: raw})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func (s *MemStore) Subscribe(ctx context.Context, path string, fn OnChange) (Unsubscribe, error) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = &memSub{path: path, fn: fn}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}, nil
}
