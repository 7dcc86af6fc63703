package store

import (
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agora-courts/agora-courts/pkg/db"
	"github.com/agora-courts/agora-courts/pkg/log"
)

const DefaultCacheSize = 4096

// Store keeps court records in a key-value store. Reads of committed values
// go through an LRU cache, writes only happen through Txn.Commit.
type Store struct {
	db     db.KVStore
	cache  *lru.Cache[string, []byte]
	closed atomic.Bool
}

// New wraps a KVStore. A cacheSize of zero selects DefaultCacheSize.
func New(kv db.KVStore, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Store{db: kv, cache: cache}, nil
}

// NewTxn starts a transaction reading the committed state.
func (s *Store) NewTxn() *Txn {
	return &Txn{store: s, writes: make(map[string][]byte)}
}

// Close closes the store and the underlying KVStore
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.cache.Purge()
	return s.db.Close()
}

func (s *Store) get(key []byte) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	if v, ok := s.cache.Get(string(key)); ok {
		return v, nil
	}
	v, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", PrefixToString(key[0]), err)
	}
	s.cache.Add(string(key), v)
	return v, nil
}

// scan calls fn with every committed value whose key starts with prefix.
func (s *Store) scan(prefix []byte, fn func(value []byte) error) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	iter, err := s.db.NewIterator(prefix, prefixEnd(prefix))
	if err != nil {
		return fmt.Errorf("create iterator: %w", err)
	}
	defer func() {
		if err := iter.Close(); err != nil {
			log.Store.Warn().Err(err).Msg("error closing iterator")
		}
	}()

	for iter.Next() {
		v, err := iter.Value()
		if err != nil {
			return fmt.Errorf("read %s value from iterator: %w", PrefixToString(prefix[0]), err)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}
