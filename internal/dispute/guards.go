package dispute

import (
	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/courttime"
)

// The guards below advance Status when the clock and counters allow it and
// then accept or reject the requested action under the resulting status.
// Each promotes at most one step. Callers that reject the action must also
// discard the promoted copy.

// CanInteract accepts party interactions while free slots remain in the grace period.
func (d *Dispute) CanInteract(now courttime.Timestamp) error {
	if d.Status != StatusGrace || !now.Before(d.Config.GraceEndsAt) {
		return ErrInteractionPeriodEnded
	}
	if d.Interactions >= uint64(len(d.Users)) {
		return ErrInteractionsFulfilled
	}
	return nil
}

// CanAddCase accepts case submissions while the dispute is waiting for cases.
func (d *Dispute) CanAddCase(now courttime.Timestamp) error {
	if d.Status == StatusGrace && (now.After(d.Config.GraceEndsAt) || d.Interactions == uint64(len(d.Users))) {
		d.Status = StatusWaiting
	}
	if d.Status == StatusWaiting && now.Before(d.Config.InitCasesEndsAt) {
		return nil
	}
	return ErrCasesNoLongerAccepted
}

// CanVote accepts commitments during the voting period.
func (d *Dispute) CanVote(now courttime.Timestamp) error {
	if d.Status == StatusWaiting && (now.After(d.Config.InitCasesEndsAt) || d.SubmittedCases == uint64(len(d.Users))) {
		d.Status = StatusVoting
	}
	if d.Status == StatusVoting && now.Before(d.Config.VotingEndsAt) {
		return nil
	}
	return ErrDisputeNotVotable
}

// CanReveal accepts reveals once voting has ended.
func (d *Dispute) CanReveal(now courttime.Timestamp) error {
	if d.Status == StatusVoting && now.After(d.Config.VotingEndsAt) {
		d.Status = StatusReveal
	}
	if d.Status == StatusReveal && now.Before(d.Config.DisputeEndsAt) {
		return nil
	}
	return ErrNotRevealPeriod
}

// CanClose moves the dispute to StatusConcluded and fixes its winner.
// cases holds the submitted cases, keyed by party.
func (d *Dispute) CanClose(now courttime.Timestamp, cases Cases) error {
	switch {
	case d.Status == StatusGrace && now.After(d.Config.GraceEndsAt) && d.SubmittedCases == 0:
		d.conclude(nil, 0)
	case d.Status == StatusReveal && now.After(d.Config.DisputeEndsAt):
		if d.Votes == 0 || d.Votes < d.Config.MinVotes {
			d.conclude(nil, 0)
			return nil
		}
		winner, votes := cases.uniqueLeader()
		d.conclude(winner, votes)
	case d.Status == StatusVoting && now.After(d.Config.DisputeEndsAt):
		// nobody revealed
		d.conclude(nil, 0)
	case d.Status == StatusWaiting && now.After(d.Config.VotingEndsAt):
		// voting never opened
		d.conclude(nil, 0)
	default:
		return ErrDisputeNotFinalizable
	}
	return nil
}

func (d *Dispute) conclude(winner *common.ParticipantID, votes uint64) {
	d.Status = StatusConcluded
	d.Winner = winner
	d.WinnerVotes = votes
	if winner == nil {
		d.WinnerVotes = 0
	}
}
