package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrStoreClosed = errors.New("court store is closed")
	ErrTxnDone     = errors.New("transaction already committed or discarded")

	ErrCourtNotFound       = fmt.Errorf("court %w", ErrNotFound)
	ErrDisputeNotFound     = fmt.Errorf("dispute %w", ErrNotFound)
	ErrCaseNotFound        = fmt.Errorf("case %w", ErrNotFound)
	ErrVoterRecordNotFound = fmt.Errorf("voter record %w", ErrNotFound)
	ErrReceiptNotFound     = fmt.Errorf("receipt %w", ErrNotFound)
)
