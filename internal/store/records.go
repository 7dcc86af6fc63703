package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/court"
	"github.com/agora-courts/agora-courts/internal/dispute"
	"github.com/agora-courts/agora-courts/internal/ledger"
	"github.com/agora-courts/agora-courts/internal/settlement"
)

func getRecord[T any](t *Txn, key []byte, notFound error) (*T, error) {
	b, err := t.get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(b, v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", PrefixToString(key[0]), err)
	}
	return v, nil
}

func putRecord(t *Txn, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", PrefixToString(key[0]), err)
	}
	return t.put(key, b)
}

// has reports whether a record exists without decoding it.
func (t *Txn) has(key []byte) (bool, error) {
	_, err := t.get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (t *Txn) GetCourt(id common.CourtID) (*court.Court, error) {
	return getRecord[court.Court](t, courtKey(id), ErrCourtNotFound)
}

func (t *Txn) HasCourt(id common.CourtID) (bool, error) {
	return t.has(courtKey(id))
}

func (t *Txn) PutCourt(c *court.Court) error {
	return putRecord(t, courtKey(c.ID), c)
}

func (t *Txn) GetDispute(courtID common.CourtID, id common.DisputeID) (*dispute.Dispute, error) {
	return getRecord[dispute.Dispute](t, disputeKey(courtID, id), ErrDisputeNotFound)
}

func (t *Txn) PutDispute(d *dispute.Dispute) error {
	return putRecord(t, disputeKey(d.Court, d.ID), d)
}

func (t *Txn) GetCase(courtID common.CourtID, id common.DisputeID, party common.ParticipantID) (*dispute.Case, error) {
	return getRecord[dispute.Case](t, caseKey(courtID, id, party), ErrCaseNotFound)
}

func (t *Txn) PutCase(c *dispute.Case) error {
	return putRecord(t, caseKey(c.Court, c.Dispute, c.Party), c)
}

// GetCases loads the cases submitted by the dispute's slot holders.
func (t *Txn) GetCases(d *dispute.Dispute) (dispute.Cases, error) {
	cases := make(dispute.Cases)
	for _, party := range d.Parties() {
		c, err := t.GetCase(d.Court, d.ID, party)
		if errors.Is(err, ErrCaseNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cases[party] = c
	}
	return cases, nil
}

func (t *Txn) GetVoterRecord(courtID common.CourtID, participant common.ParticipantID) (*ledger.VoterRecord, error) {
	return getRecord[ledger.VoterRecord](t, voterRecordKey(courtID, participant), ErrVoterRecordNotFound)
}

func (t *Txn) HasVoterRecord(courtID common.CourtID, participant common.ParticipantID) (bool, error) {
	return t.has(voterRecordKey(courtID, participant))
}

func (t *Txn) PutVoterRecord(r *ledger.VoterRecord) error {
	return putRecord(t, voterRecordKey(r.Court, r.Participant), r)
}

func (t *Txn) GetReceipt(courtID common.CourtID, id common.DisputeID, participant common.ParticipantID) (*settlement.Receipt, error) {
	return getRecord[settlement.Receipt](t, receiptKey(courtID, id, participant), ErrReceiptNotFound)
}

func (t *Txn) PutReceipt(r *settlement.Receipt) error {
	return putRecord(t, receiptKey(r.Court, r.Dispute, r.Participant), r)
}

// GetBalance returns the balance of owner in mint. Unknown accounts hold zero.
func (t *Txn) GetBalance(owner string, mint common.Mint) (uint64, error) {
	b, err := t.get(balanceKey(owner, mint))
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(b) != 8 {
		return 0, fmt.Errorf("decode balance: expected 8 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

func (t *Txn) PutBalance(owner string, mint common.Mint, amount uint64) error {
	return t.put(balanceKey(owner, mint), binary.BigEndian.AppendUint64(nil, amount))
}

// ListDisputes returns the committed disputes of a court in id order.
func (s *Store) ListDisputes(courtID common.CourtID) ([]*dispute.Dispute, error) {
	var disputes []*dispute.Dispute
	err := s.scan(newKey(prefixDispute).str(string(courtID)), func(value []byte) error {
		d := new(dispute.Dispute)
		if err := json.Unmarshal(value, d); err != nil {
			return fmt.Errorf("decode dispute: %w", err)
		}
		disputes = append(disputes, d)
		return nil
	})
	return disputes, err
}

// ListReceipts returns the committed receipts of one dispute.
func (s *Store) ListReceipts(courtID common.CourtID, id common.DisputeID) ([]*settlement.Receipt, error) {
	var receipts []*settlement.Receipt
	err := s.scan(newKey(prefixReceipt).str(string(courtID)).id(id), func(value []byte) error {
		r := new(settlement.Receipt)
		if err := json.Unmarshal(value, r); err != nil {
			return fmt.Errorf("decode receipt: %w", err)
		}
		receipts = append(receipts, r)
		return nil
	})
	return receipts, err
}
