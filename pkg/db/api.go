package db

import "errors"

var (
	ErrClosed   = errors.New("db: store is closed")
	ErrNotFound = errors.New("db: key not found")
)

// KVStore is the durable keyed storage the court records live in. A single
// Put or Delete is applied atomically, multi-record updates go through a Batch.
type KVStore interface {
	Reader
	Writer
	Delete(key []byte) error
	NewBatch() Batch
	NewIterator(start, end []byte) (Iterator, error)
	Close() error
}

type Reader interface {
	// Get returns ErrNotFound when the key is absent.
	Get(key []byte) ([]byte, error)
}

type Writer interface {
	Put(key []byte, value []byte) error
}

// Batch collects writes that become visible together on Commit or not at all.
type Batch interface {
	Writer
	Delete(key []byte) error
	Commit() error
	Close() error
}

// Iterator walks the keys in [start, end) in ascending order.
// Iterators must be closed after use.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Close() error
}
