package engine

import (
	"fmt"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/crypto"
	"github.com/agora-courts/agora-courts/internal/escrow"
	"github.com/agora-courts/agora-courts/internal/ledger"
	"github.com/agora-courts/agora-courts/internal/safemath"
)

// CommitVote records a hidden vote and escrows the voter's reputation cost.
// The voter needs VoterRepRequired between its staked and liquid reputation.
func (e *Engine) CommitVote(courtID common.CourtID, id common.DisputeID, voter common.ParticipantID, commitment crypto.Hash) error {
	return e.update("commit_vote", func(o *op) error {
		c, err := o.txn.GetCourt(courtID)
		if err != nil {
			return err
		}
		d, err := o.txn.GetDispute(courtID, id)
		if err != nil {
			return err
		}
		from := d.Status
		if err := d.CanVote(o.now); err != nil {
			return err
		}

		r, err := o.engage(c, voter, ledger.DisputeRecord{
			DisputeID:      id,
			DisputeEndTime: d.Config.DisputeEndsAt,
			Vote:           ledger.SecretVote(commitment),
		})
		if err != nil {
			return err
		}

		liquid, err := e.vault.Balance(o.txn, escrow.ParticipantAccount(voter, c.RepMint))
		if err != nil {
			return err
		}
		available, err := safemath.Add(r.StakedRep, liquid)
		if err != nil {
			return err
		}
		if available < d.Config.VoterRepRequired {
			return fmt.Errorf("%w: holds %d, needs %d", ledger.ErrNotEnoughReputation, available, d.Config.VoterRepRequired)
		}

		if err := r.Stake(d.Config.VoterRepCost, 0); err != nil {
			return err
		}
		if err := e.vault.Transfer(o.txn,
			escrow.ParticipantAccount(voter, c.RepMint),
			escrow.DisputeAccount(courtID, id, c.RepMint),
			d.Config.VoterRepCost); err != nil {
			return fmt.Errorf("stake voter rep: %w", err)
		}
		d.Commits++

		if err := o.txn.PutVoterRecord(r); err != nil {
			return err
		}
		return o.putDispute(d, from)
	})
}

// RevealVote opens the voter's commitment and counts the vote for candidate.
func (e *Engine) RevealVote(courtID common.CourtID, id common.DisputeID, voter, candidate common.ParticipantID, salt []byte) error {
	return e.update("reveal_vote", func(o *op) error {
		d, err := o.txn.GetDispute(courtID, id)
		if err != nil {
			return err
		}
		from := d.Status
		if err := d.CanReveal(o.now); err != nil {
			return err
		}
		if len(salt) > common.MaxSaltLength {
			return fmt.Errorf("%w: salt longer than %d bytes", ledger.ErrInvalidReveal, common.MaxSaltLength)
		}

		r, err := o.txn.GetVoterRecord(courtID, voter)
		if err != nil {
			return err
		}
		if err := r.Reveal(id, candidate, salt); err != nil {
			return err
		}

		cases, err := o.txn.GetCases(d)
		if err != nil {
			return err
		}
		cs, err := d.RecordVote(cases, candidate)
		if err != nil {
			return err
		}

		if err := o.txn.PutCase(cs); err != nil {
			return err
		}
		if err := o.txn.PutVoterRecord(r); err != nil {
			return err
		}
		return o.putDispute(d, from)
	})
}
