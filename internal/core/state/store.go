// Package state holds the committed ledger state in a key-value database.
package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LeJamon/tokendex/internal/core/ledger/keylet"
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/storage/database"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of entries kept in the read cache when the
// configured size is not positive
const DefaultCacheSize = 4096

// Store is the durable base view the transaction engine commits to.
// Entries are stored under their 32-byte keylet key; recently read entries
// are kept in an LRU cache.
type Store struct {
	db    database.DB
	cache *lru.Cache[[32]byte, []byte]

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// CacheStats reports read cache effectiveness
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// Entry is one committed ledger entry
type Entry struct {
	Key  [32]byte
	Data []byte
}

// NewStore creates a store over db
func NewStore(db database.DB, cacheSize int) (*Store, error) {
	if db == nil {
		return nil, errors.New("state store requires a database")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[[32]byte, []byte](cacheSize)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, cache: cache}, nil
}

// Read returns the committed entry at k, or nil if absent
func (s *Store) Read(k keylet.Keylet) ([]byte, error) {
	if data, ok := s.cache.Get(k.Key); ok {
		s.record(true)
		return data, nil
	}
	s.record(false)

	data, err := s.db.Read(context.Background(), k.Key[:])
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s entry: %w", k.Type, err)
	}

	s.cache.Add(k.Key, data)
	return data, nil
}

// Exists reports whether an entry is committed at k
func (s *Store) Exists(k keylet.Keylet) (bool, error) {
	data, err := s.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Commit writes the change set in a single database batch
func (s *Store) Commit(changes []tx.Change) error {
	if len(changes) == 0 {
		return nil
	}

	ops := make([]database.BatchOperation, 0, len(changes))
	for _, c := range changes {
		key := c.Keylet.Key
		if c.IsErase() {
			ops = append(ops, database.BatchOperation{Type: database.BatchDelete, Key: key[:]})
		} else {
			ops = append(ops, database.BatchOperation{Type: database.BatchPut, Key: key[:], Value: c.Data})
		}
	}

	if err := s.db.Batch(context.Background(), ops); err != nil {
		// cached entries may now disagree with the database
		s.cache.Purge()
		return fmt.Errorf("commit %d changes: %w", len(changes), err)
	}

	for _, c := range changes {
		if c.IsErase() {
			s.cache.Remove(c.Keylet.Key)
		} else {
			s.cache.Add(c.Keylet.Key, c.Data)
		}
	}
	return nil
}

// Entries returns up to limit committed entries with keys after marker, in key
// order. The returned marker resumes the walk and is nil on the last page.
// Entries bypasses the read cache.
func (s *Store) Entries(ctx context.Context, marker []byte, limit int) ([]Entry, []byte, error) {
	if limit <= 0 {
		return nil, nil, fmt.Errorf("entries limit must be positive, got %d", limit)
	}

	var start []byte
	if marker != nil {
		// smallest key strictly greater than marker
		start = append(bytes.Clone(marker), 0)
	}

	it, err := s.db.Iterator(ctx, start, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("iterate state: %w", err)
	}
	defer it.Close()

	entries := make([]Entry, 0, limit)
	for it.Next() {
		if len(entries) == limit {
			last := entries[limit-1].Key
			return entries, last[:], nil
		}
		key := it.Key()
		if len(key) != len(Entry{}.Key) {
			return nil, nil, fmt.Errorf("state key of %d bytes", len(key))
		}
		var e Entry
		copy(e.Key[:], key)
		e.Data = bytes.Clone(it.Value())
		entries = append(entries, e)
	}
	if err := it.Error(); err != nil {
		return nil, nil, fmt.Errorf("iterate state: %w", err)
	}
	return entries, nil, nil
}

// Stats returns read cache statistics
func (s *Store) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CacheStats{Hits: s.hits, Misses: s.misses, Size: s.cache.Len()}
}

func (s *Store) record(hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}
