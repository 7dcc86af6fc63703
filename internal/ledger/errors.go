package ledger

import "errors"

var (
	ErrAlreadyEngaged       = errors.New("participant already engaged in dispute")
	ErrMaxDisputesReached   = errors.New("maximum number of open disputes reached")
	ErrHasUnclaimedDisputes = errors.New("participant has unclaimed matured disputes")
	ErrInvalidReveal        = errors.New("reveal does not match a stored commitment")
	ErrRecordNotFound       = errors.New("dispute record not found")
	ErrNotEnoughReputation  = errors.New("not enough reputation to vote")
)
