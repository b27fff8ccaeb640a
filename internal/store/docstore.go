package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// channelPrefix namespaces the Redis Pub/Sub channels used for change
// notification so they cannot collide with other keyspace users.
const channelPrefix = "docstore:"

// likeEscaper quotes LIKE metacharacters so prefixes match literally. Path
// segments carry IDs from token claims, which may contain % or _; without
// escaping those act as wildcards and leak across namespaces.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// DocumentStore is the production Store: documents live in a PostgreSQL
// path → jsonb table (the source of truth), and every write publishes the new
// document on a per-path Redis channel so subscribers see changes without
// polling.
type DocumentStore struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewDocumentStore creates a DocumentStore on the given connections.
func NewDocumentStore(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *DocumentStore {
	return &DocumentStore{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "docstore").Logger(),
	}
}

// Write upserts the document and publishes the change. The upsert replaces
// the document in full; there is no partial merge.
func (s *DocumentStore) Write(ctx context.Context, path string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", path, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (path, doc)
		 VALUES ($1, $2)
		 ON CONFLICT (path) DO UPDATE
		 SET doc = EXCLUDED.doc, updated_at = NOW()`,
		path, raw,
	)
	if err != nil {
		return fmt.Errorf("%w: write %q: %v", ErrUnavailable, path, err)
	}

	// Change notification is best-effort: the durable write already
	// succeeded, so a Pub/Sub failure must not fail the operation.
	event, _ := json.Marshal(Event{Path: path, Doc: raw})
	if err := s.rdb.Publish(ctx, channelPrefix+path, event).Err(); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("Change notification failed")
	}

	return nil
}

// Read returns the document at path, or ErrNotFound.
func (s *DocumentStore) Read(ctx context.Context, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE path = $1`, path,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: read %q: %v", ErrUnavailable, path, err)
	}
	return raw, nil
}

// ReadAll returns every document directly or transitively under the prefix
// namespace, ordered by path. A point-in-time read, not a live feed.
func (s *DocumentStore) ReadAll(ctx context.Context, prefix string) ([]Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT path, doc FROM documents WHERE path LIKE $1 || '/%' ESCAPE '\' ORDER BY path`,
		likeEscaper.Replace(prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: read all %q: %v", ErrUnavailable, prefix, err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.Path, &d.Doc); err != nil {
			return nil, fmt.Errorf("%w: scan %q: %v", ErrUnavailable, prefix, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read all %q: %v", ErrUnavailable, prefix, err)
	}
	return docs, nil
}

// Subscribe watches the sub-tree rooted at path via Redis pattern
// subscription. One subscription covers the path itself and all descendants.
func (s *DocumentStore) Subscribe(ctx context.Context, path string, fn OnChange) (Unsubscribe, error) {
	pubsub := s.rdb.PSubscribe(ctx, channelPrefix+path, channelPrefix+path+"/*")

	// Force the subscription onto the wire before returning so callers do
	// not miss writes that race the setup.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: subscribe %q: %v", ErrUnavailable, path, err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				s.log.Warn().Err(err).Str("channel", msg.Channel).Msg("Malformed change event")
				continue
			}
			fn(ev)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				s.log.Warn().Err(err).Str("path", path).Msg("Unsubscribe failed")
			}
		})
	}, nil
}
