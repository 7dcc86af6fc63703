package pebble

import "errors"

var (
	ErrBatchDone       = errors.New("pebble: batch already committed or closed")
	ErrIteratorInvalid = errors.New("pebble: iterator is not positioned")
)

const (
	ErrInIteratorCreation = "create iterator: %w"
	ErrIteratorValue      = "read iterator value: %w"
)
