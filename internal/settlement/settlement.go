package settlement

import (
	"errors"
	"fmt"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/dispute"
	"github.com/agora-courts/agora-courts/internal/ledger"
	"github.com/agora-courts/agora-courts/internal/safemath"
)

var ErrCannotClaimDispute = errors.New("dispute cannot be claimed")

type Outcome uint8

const (
	// OutcomeRefund is returned to everyone when the dispute has no winner.
	OutcomeRefund Outcome = iota
	OutcomeWinningParty
	OutcomeLosingParty
	OutcomeWinningVoter
	OutcomeLosingVoter
	// OutcomeUnrevealed is a voter that committed but never revealed.
	OutcomeUnrevealed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRefund:
		return "refund"
	case OutcomeWinningParty:
		return "winning_party"
	case OutcomeLosingParty:
		return "losing_party"
	case OutcomeWinningVoter:
		return "winning_voter"
	case OutcomeLosingVoter:
		return "losing_voter"
	case OutcomeUnrevealed:
		return "unrevealed"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Payout is the result of settling one claim-queue record.
// Rep and Pay leave the dispute vault for the participant. ReleasedRep and
// ReleasedPay leave the participant's staked totals whatever the outcome.
type Payout struct {
	Outcome     Outcome
	Rep         uint64
	Pay         uint64
	ReleasedRep uint64
	ReleasedPay uint64
}

// Stake returns what a record of the given kind escrowed under the configuration.
func Stake(vote ledger.Vote, cfg dispute.Configuration) (rep, pay uint64) {
	if vote.Kind == ledger.VoteParty {
		return cfg.RepCost, cfg.PayCost
	}
	return cfg.VoterRepCost, 0
}

// Compute settles the record the participant holds for a concluded dispute.
//
// A winning party gets its stake back and a losing party forfeits it, with no
// further reputation penalty. Voters who revealed for the winner get their
// stake back plus an equal share of the forfeited stakes and the protocol seed.
// Every other voter forfeits. Without a winner every stake is refunded and the
// seed stays in the vault. Division remainders also stay in the vault.
func Compute(d *dispute.Dispute, record ledger.DisputeRecord, participant common.ParticipantID) (Payout, error) {
	if !d.IsConcluded() || record.DisputeID != d.ID {
		return Payout{}, ErrCannotClaimDispute
	}

	cfg := d.Config
	stakeRep, stakePay := Stake(record.Vote, cfg)
	payout := Payout{ReleasedRep: stakeRep, ReleasedPay: stakePay}

	if !d.HasWinner() {
		payout.Outcome = OutcomeRefund
		payout.Rep, payout.Pay = stakeRep, stakePay
		return payout, nil
	}

	switch {
	case record.Vote.Kind == ledger.VoteParty && d.IsWinner(participant):
		payout.Outcome = OutcomeWinningParty
		payout.Rep, payout.Pay = stakeRep, stakePay
	case record.Vote.Kind == ledger.VoteParty:
		payout.Outcome = OutcomeLosingParty
	case record.Vote.RevealedFor(*d.Winner):
		repShare, payShare, err := winnerShares(d)
		if err != nil {
			return Payout{}, err
		}
		payout.Outcome = OutcomeWinningVoter
		if payout.Rep, err = safemath.Add(stakeRep, repShare); err != nil {
			return Payout{}, fmt.Errorf("voter rep payout: %w", err)
		}
		payout.Pay = payShare
	case record.Vote.Kind == ledger.VoteReveal:
		payout.Outcome = OutcomeLosingVoter
	default:
		payout.Outcome = OutcomeUnrevealed
	}
	return payout, nil
}

// Pools returns the forfeited stakes plus protocol seed shared among winning voters.
//
//	rep = (interactions-1)*RepCost + (commits-winnerVotes)*VoterRepCost + ProtocolRep
//	pay = (interactions-1)*PayCost + ProtocolPay
func Pools(d *dispute.Dispute) (rep, pay uint64, err error) {
	cfg := d.Config
	losingParties, err := safemath.Sub(d.Interactions, 1)
	if err != nil {
		return 0, 0, fmt.Errorf("losing parties: %w", err)
	}
	losingVoters, err := safemath.Sub(d.Commits, d.WinnerVotes)
	if err != nil {
		return 0, 0, fmt.Errorf("losing voters: %w", err)
	}

	partyRep, err := safemath.Mul(losingParties, cfg.RepCost)
	if err != nil {
		return 0, 0, err
	}
	voterRep, err := safemath.Mul(losingVoters, cfg.VoterRepCost)
	if err != nil {
		return 0, 0, err
	}
	if rep, err = safemath.Sum(partyRep, voterRep, cfg.ProtocolRep); err != nil {
		return 0, 0, err
	}

	partyPay, err := safemath.Mul(losingParties, cfg.PayCost)
	if err != nil {
		return 0, 0, err
	}
	if pay, err = safemath.Add(partyPay, cfg.ProtocolPay); err != nil {
		return 0, 0, err
	}
	return rep, pay, nil
}

func winnerShares(d *dispute.Dispute) (rep, pay uint64, err error) {
	repPool, payPool, err := Pools(d)
	if err != nil {
		return 0, 0, fmt.Errorf("pools: %w", err)
	}
	if rep, err = safemath.Div(repPool, d.WinnerVotes); err != nil {
		return 0, 0, fmt.Errorf("rep share: %w", err)
	}
	if pay, err = safemath.Div(payPool, d.WinnerVotes); err != nil {
		return 0, 0, fmt.Errorf("pay share: %w", err)
	}
	return rep, pay, nil
}
