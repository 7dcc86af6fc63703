package escrow

import (
	"errors"
	"fmt"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/safemath"
	"github.com/agora-courts/agora-courts/internal/store"
)

var (
	ErrMintMismatch      = errors.New("source and destination mints differ")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPayMintMissing    = errors.New("pay mint required for a non-zero pay cost")
)

// Account is a holding location for one mint.
type Account struct {
	Owner string
	Mint  common.Mint
}

func (a Account) String() string {
	return a.Owner + "/" + string(a.Mint)
}

// ParticipantAccount is the liquid balance of a participant.
func ParticipantAccount(p common.ParticipantID, mint common.Mint) Account {
	return Account{Owner: "participant:" + string(p), Mint: mint}
}

// DisputeAccount is the vault holding every stake escrowed for a dispute.
func DisputeAccount(court common.CourtID, id common.DisputeID, mint common.Mint) Account {
	return Account{Owner: fmt.Sprintf("dispute:%s/%d", court, id), Mint: mint}
}

// Vault moves value between accounts. Transfers are staged into the caller's
// transaction and become visible together with the records it writes.
type Vault interface {
	Transfer(txn *store.Txn, from, to Account, amount uint64) error
	Balance(txn *store.Txn, account Account) (uint64, error)
}

// Bank is a Vault keeping balances in the court store.
type Bank struct{}

func NewBank() *Bank {
	return &Bank{}
}

func (b *Bank) Balance(txn *store.Txn, account Account) (uint64, error) {
	return txn.GetBalance(account.Owner, account.Mint)
}

// Transfer fails on mismatched mints before looking at balances.
// A zero amount is a no-op.
func (b *Bank) Transfer(txn *store.Txn, from, to Account, amount uint64) error {
	if from.Mint != to.Mint {
		return fmt.Errorf("%w: %s to %s", ErrMintMismatch, from, to)
	}
	if amount == 0 || from == to {
		return nil
	}

	fromBalance, err := txn.GetBalance(from.Owner, from.Mint)
	if err != nil {
		return fmt.Errorf("read balance of %s: %w", from, err)
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", ErrInsufficientFunds, from, fromBalance, amount)
	}
	toBalance, err := txn.GetBalance(to.Owner, to.Mint)
	if err != nil {
		return fmt.Errorf("read balance of %s: %w", to, err)
	}
	newTo, err := safemath.Add(toBalance, amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}

	if err := txn.PutBalance(from.Owner, from.Mint, fromBalance-amount); err != nil {
		return err
	}
	return txn.PutBalance(to.Owner, to.Mint, newTo)
}

// Deposit credits an account from outside the court, e.g. when funding participants.
func (b *Bank) Deposit(txn *store.Txn, account Account, amount uint64) error {
	balance, err := txn.GetBalance(account.Owner, account.Mint)
	if err != nil {
		return fmt.Errorf("read balance of %s: %w", account, err)
	}
	balance, err = safemath.Add(balance, amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", account, err)
	}
	return txn.PutBalance(account.Owner, account.Mint, balance)
}
