package store

import (
	"fmt"
	"sort"

	"github.com/agora-courts/agora-courts/pkg/log"
)

// Txn stages writes in memory and applies them in one batch on Commit.
// Reads see the txn's own writes first. A Txn is not safe for concurrent use.
type Txn struct {
	store  *Store
	writes map[string][]byte
	done   bool
}

func (t *Txn) get(key []byte) ([]byte, error) {
	if t.done {
		return nil, ErrTxnDone
	}
	if v, ok := t.writes[string(key)]; ok {
		return v, nil
	}
	return t.store.get(key)
}

func (t *Txn) put(key, value []byte) error {
	if t.done {
		return ErrTxnDone
	}
	t.writes[string(key)] = value
	return nil
}

// Len returns the number of staged writes.
func (t *Txn) Len() int {
	return len(t.writes)
}

// Commit writes every staged record or none of them.
func (t *Txn) Commit() error {
	if t.done {
		return ErrTxnDone
	}
	if t.store.closed.Load() {
		return ErrStoreClosed
	}
	t.done = true
	if len(t.writes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(t.writes))
	for k := range t.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	batch := t.store.db.NewBatch()
	defer func() {
		if err := batch.Close(); err != nil {
			log.Store.Warn().Err(err).Msg("error closing batch")
		}
	}()

	for _, k := range keys {
		if err := batch.Put([]byte(k), t.writes[k]); err != nil {
			return fmt.Errorf("stage %s: %w", PrefixToString(k[0]), err)
		}
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf(ErrFailedBatchCommit, err)
	}

	for _, k := range keys {
		t.store.cache.Add(k, t.writes[k])
	}
	log.Store.Debug().Int("records", len(keys)).Msg("committed transaction")
	return nil
}

// Discard drops every staged write. It is safe to call after Commit.
func (t *Txn) Discard() {
	t.done = true
	t.writes = nil
}
