package dispute

import "errors"

var (
	ErrCasesNoLongerAccepted  = errors.New("cases are no longer accepted")
	ErrDisputeNotVotable      = errors.New("dispute is not votable")
	ErrNotRevealPeriod        = errors.New("dispute is not in the reveal period")
	ErrDisputeNotFinalizable  = errors.New("dispute cannot be finalized")
	ErrInteractionPeriodEnded = errors.New("interaction period has ended")
	ErrInteractionsFulfilled  = errors.New("all dispute slots are taken")
	ErrUserNotAuthorized      = errors.New("user is not authorized for this dispute")
	ErrUserDoesNotHaveCase    = errors.New("user does not have a case in this dispute")
	ErrCaseAlreadySubmitted   = errors.New("case already submitted")
	ErrUsersEmpty             = errors.New("dispute needs at least one user slot")
	ErrDuplicateUser          = errors.New("participant reserved in more than one slot")
	ErrInvalidConfiguration   = errors.New("invalid dispute configuration")
	ErrEvidenceTooLong        = errors.New("evidence reference too long")
)
