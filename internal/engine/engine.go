package engine

import (
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/court"
	"github.com/agora-courts/agora-courts/internal/courttime"
	"github.com/agora-courts/agora-courts/internal/dispute"
	"github.com/agora-courts/agora-courts/internal/escrow"
	"github.com/agora-courts/agora-courts/internal/ledger"
	"github.com/agora-courts/agora-courts/internal/metrics"
	"github.com/agora-courts/agora-courts/internal/settlement"
	"github.com/agora-courts/agora-courts/internal/store"
	"github.com/agora-courts/agora-courts/pkg/log"
)

// Engine applies court operations. Every operation runs in one store
// transaction under a single lock: it is applied completely or not at all.
type Engine struct {
	mu      sync.Mutex
	store   *store.Store
	vault   escrow.Vault
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(s *store.Store, vault escrow.Vault, c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		vault:  vault,
		clock:  c,
		logger: log.Engine,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		// unregistered counters
		e.metrics, _ = metrics.New(nil)
	}
	return e
}

// Now reads the engine's clock.
func (e *Engine) Now() courttime.Timestamp {
	return courttime.Now(e.clock)
}

type transition struct {
	court    common.CourtID
	id       common.DisputeID
	from, to dispute.Status
}

// op is the state of one operation in flight.
type op struct {
	name        string
	txn         *store.Txn
	now         courttime.Timestamp
	transitions []transition
	onCommit    []func()
}

func (o *op) putDispute(d *dispute.Dispute, from dispute.Status) error {
	if d.Status != from {
		o.transitions = append(o.transitions, transition{court: d.Court, id: d.ID, from: from, to: d.Status})
	}
	return o.txn.PutDispute(d)
}

func (e *Engine) update(name string, fn func(o *op) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := &op{name: name, txn: e.store.NewTxn(), now: e.Now()}
	if err := fn(o); err != nil {
		o.txn.Discard()
		kind := Classify(err)
		e.metrics.Rejection(name, kind.String())
		e.logger.Debug().Str("op", name).Str("kind", kind.String()).Err(err).Msg("operation rejected")
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := o.txn.Commit(); err != nil {
		e.metrics.Rejection(name, KindInternal.String())
		return fmt.Errorf("%s: %w", name, err)
	}

	e.metrics.Operation(name)
	for _, t := range o.transitions {
		e.metrics.Transition(t.from.String(), t.to.String())
		e.logger.Info().
			Str("court", string(t.court)).
			Uint64("dispute", uint64(t.id)).
			Stringer("from", t.from).
			Stringer("to", t.to).
			Msg("dispute status changed")
	}
	for _, f := range o.onCommit {
		f()
	}
	e.logger.Debug().Str("op", name).Int64("now", int64(o.now)).Msg("operation applied")
	return nil
}

func (e *Engine) view(fn func(txn *store.Txn) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.NewTxn()
	defer txn.Discard()
	return fn(txn)
}

// engage admits a new claim-queue record for the participant. Participants
// with a matured unclaimed dispute must claim it first.
func (o *op) engage(c *court.Court, participant common.ParticipantID, record ledger.DisputeRecord) (*ledger.VoterRecord, error) {
	r, err := o.txn.GetVoterRecord(c.ID, participant)
	if err != nil {
		return nil, err
	}
	if r.HasUnclaimedMaturedDispute(o.now) {
		return nil, ledger.ErrHasUnclaimedDisputes
	}
	if err := r.Push(record, int(c.MaxDisputeVotes)); err != nil {
		return nil, err
	}
	return r, nil
}

func (e *Engine) Court(id common.CourtID) (c *court.Court, err error) {
	err = e.view(func(txn *store.Txn) error {
		c, err = txn.GetCourt(id)
		return err
	})
	return c, err
}

func (e *Engine) Dispute(courtID common.CourtID, id common.DisputeID) (d *dispute.Dispute, err error) {
	err = e.view(func(txn *store.Txn) error {
		d, err = txn.GetDispute(courtID, id)
		return err
	})
	return d, err
}

func (e *Engine) Case(courtID common.CourtID, id common.DisputeID, party common.ParticipantID) (c *dispute.Case, err error) {
	err = e.view(func(txn *store.Txn) error {
		c, err = txn.GetCase(courtID, id, party)
		return err
	})
	return c, err
}

func (e *Engine) VoterRecord(courtID common.CourtID, participant common.ParticipantID) (r *ledger.VoterRecord, err error) {
	err = e.view(func(txn *store.Txn) error {
		r, err = txn.GetVoterRecord(courtID, participant)
		return err
	})
	return r, err
}

func (e *Engine) Balance(account escrow.Account) (balance uint64, err error) {
	err = e.view(func(txn *store.Txn) error {
		balance, err = e.vault.Balance(txn, account)
		return err
	})
	return balance, err
}

func (e *Engine) Receipt(courtID common.CourtID, id common.DisputeID, participant common.ParticipantID) (r *settlement.Receipt, err error) {
	err = e.view(func(txn *store.Txn) error {
		r, err = txn.GetReceipt(courtID, id, participant)
		return err
	})
	return r, err
}

func (e *Engine) Disputes(courtID common.CourtID) ([]*dispute.Dispute, error) {
	return e.store.ListDisputes(courtID)
}

func (e *Engine) Receipts(courtID common.CourtID, id common.DisputeID) ([]*settlement.Receipt, error) {
	return e.store.ListReceipts(courtID, id)
}
