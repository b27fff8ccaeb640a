// Package store defines the hierarchical document store boundary. Documents
// are JSON values addressed by slash-separated paths; the store offers point
// reads, point writes, prefix reads, and change notification on a sub-tree.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrUnavailable indicates the backing store could not serve the
	// operation. The caller decides whether to re-attempt.
	ErrUnavailable = errors.New("store unavailable")

	// ErrNotFound indicates no document exists at the requested path.
	ErrNotFound = errors.New("document not found")
)

// Document is a stored JSON value together with its path.
type Document struct {
	Path string
	Doc  json.RawMessage
}

// Event describes a change to a document within a watched sub-tree.
type Event struct {
	Path string
	Doc  json.RawMessage
}

// OnChange receives change events. Callbacks run on the subscription's own
// goroutine and must not block for long.
type OnChange func(Event)

// Unsubscribe tears down a subscription. Safe to call more than once.
type Unsubscribe func()

// Store is the persistence boundary consumed by the services. All operations
// suspend the caller until the store acknowledges; none retry internally.
type Store interface {
	// Write stores doc (marshalled as JSON) at path, replacing any
	// existing document in full.
	Write(ctx context.Context, path string, doc any) error

	// Read returns the document at path, or ErrNotFound.
	Read(ctx context.Context, path string) (json.RawMessage, error)

	// ReadAll returns every document under the prefix namespace, ordered
	// by path. An empty namespace yields an empty slice, not an error.
	ReadAll(ctx context.Context, prefix string) ([]Document, error)

	// Subscribe watches the sub-tree rooted at path and invokes fn for
	// every subsequent write within it.
	Subscribe(ctx context.Context, path string, fn OnChange) (Unsubscribe, error)
}
