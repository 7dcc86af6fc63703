package engine

import (
	"errors"

	"github.com/agora-courts/agora-courts/internal/court"
	"github.com/agora-courts/agora-courts/internal/dispute"
	"github.com/agora-courts/agora-courts/internal/escrow"
	"github.com/agora-courts/agora-courts/internal/ledger"
	"github.com/agora-courts/agora-courts/internal/settlement"
	"github.com/agora-courts/agora-courts/internal/store"
)

var (
	ErrCourtExists  = errors.New("court already exists")
	ErrRecordExists = errors.New("voter record already exists")
)

// Kind groups rejections by how a caller can recover from them.
type Kind uint8

const (
	// KindInternal covers storage failures and arithmetic overflow.
	KindInternal Kind = iota
	// KindGuard rejections clear up once the clock or the dispute moves on.
	KindGuard
	// KindAuthorization rejections are final for the call.
	KindAuthorization
	// KindCapacity rejections clear up once the caller settles earlier claims or funds its account.
	KindCapacity
	// KindResource rejections name a missing record or account.
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindGuard:
		return "guard"
	case KindAuthorization:
		return "authorization"
	case KindCapacity:
		return "capacity"
	case KindResource:
		return "resource"
	default:
		return "internal"
	}
}

var kinds = []struct {
	kind Kind
	errs []error
}{
	{KindGuard, []error{
		dispute.ErrDisputeNotVotable,
		dispute.ErrCasesNoLongerAccepted,
		dispute.ErrDisputeNotFinalizable,
		dispute.ErrNotRevealPeriod,
		dispute.ErrInteractionPeriodEnded,
		dispute.ErrInteractionsFulfilled,
	}},
	{KindAuthorization, []error{
		dispute.ErrUserNotAuthorized,
		dispute.ErrUserDoesNotHaveCase,
		dispute.ErrCaseAlreadySubmitted,
		dispute.ErrUsersEmpty,
		dispute.ErrDuplicateUser,
		dispute.ErrInvalidConfiguration,
		dispute.ErrEvidenceTooLong,
		ledger.ErrInvalidReveal,
		court.ErrInvalidEditAuthority,
		court.ErrInvalidProtocol,
		court.ErrInvalidMaxDisputeVotes,
		ErrCourtExists,
		ErrRecordExists,
	}},
	{KindCapacity, []error{
		ledger.ErrMaxDisputesReached,
		ledger.ErrHasUnclaimedDisputes,
		ledger.ErrAlreadyEngaged,
		ledger.ErrNotEnoughReputation,
		escrow.ErrInsufficientFunds,
		settlement.ErrCannotClaimDispute,
	}},
	{KindResource, []error{
		escrow.ErrPayMintMissing,
		escrow.ErrMintMismatch,
		store.ErrNotFound,
	}},
}

// Classify returns the kind of a rejection returned by the Engine.
func Classify(err error) Kind {
	for _, k := range kinds {
		for _, target := range k.errs {
			if errors.Is(err, target) {
				return k.kind
			}
		}
	}
	return KindInternal
}
