package engine

import (
	"fmt"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/court"
	"github.com/agora-courts/agora-courts/internal/dispute"
	"github.com/agora-courts/agora-courts/internal/escrow"
	"github.com/agora-courts/agora-courts/internal/ledger"
)

// payMint returns the court's pay mint, failing when an amount needs one.
func payMint(c *court.Court, amount uint64) (common.Mint, error) {
	if c.PayMint != nil {
		return *c.PayMint, nil
	}
	if amount > 0 {
		return "", escrow.ErrPayMintMissing
	}
	return "", nil
}

// CreateDispute opens a dispute in the court. Only the court's protocol may
// call it, and its protocol seeds are moved into the dispute vault.
func (e *Engine) CreateDispute(courtID common.CourtID, caller common.ParticipantID, users []*common.ParticipantID, cfg dispute.Configuration) (*dispute.Dispute, error) {
	var d *dispute.Dispute
	err := e.update("create_dispute", func(o *op) error {
		c, err := o.txn.GetCourt(courtID)
		if err != nil {
			return err
		}
		id, err := c.NextDisputeID(caller)
		if err != nil {
			return err
		}
		if d, err = dispute.New(c.ID, id, users, cfg); err != nil {
			return err
		}
		if c.PayMint == nil && (cfg.PayCost > 0 || cfg.ProtocolPay > 0) {
			return escrow.ErrPayMintMissing
		}

		if err := e.vault.Transfer(o.txn,
			escrow.ParticipantAccount(caller, c.RepMint),
			escrow.DisputeAccount(c.ID, id, c.RepMint),
			cfg.ProtocolRep); err != nil {
			return fmt.Errorf("seed protocol rep: %w", err)
		}
		if c.PayMint != nil {
			if err := e.vault.Transfer(o.txn,
				escrow.ParticipantAccount(caller, *c.PayMint),
				escrow.DisputeAccount(c.ID, id, *c.PayMint),
				cfg.ProtocolPay); err != nil {
				return fmt.Errorf("seed protocol pay: %w", err)
			}
		}

		if err := o.txn.PutCourt(c); err != nil {
			return err
		}
		return o.putDispute(d, d.Status)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info().Str("court", string(courtID)).Uint64("dispute", uint64(d.ID)).Int("slots", len(d.Users)).Msg("dispute created")
	return d, nil
}

// Interact takes a party slot during the grace period and escrows the party stake.
func (e *Engine) Interact(courtID common.CourtID, id common.DisputeID, participant common.ParticipantID) error {
	return e.update("interact", func(o *op) error {
		c, err := o.txn.GetCourt(courtID)
		if err != nil {
			return err
		}
		d, err := o.txn.GetDispute(courtID, id)
		if err != nil {
			return err
		}
		from := d.Status
		if err := d.Interact(o.now, participant); err != nil {
			return err
		}
		pay, err := payMint(c, d.Config.PayCost)
		if err != nil {
			return err
		}

		r, err := o.engage(c, participant, ledger.DisputeRecord{
			DisputeID:      id,
			DisputeEndTime: d.Config.DisputeEndsAt,
			Vote:           ledger.PartyVote(),
		})
		if err != nil {
			return err
		}
		if err := r.Stake(d.Config.RepCost, d.Config.PayCost); err != nil {
			return err
		}

		if err := e.vault.Transfer(o.txn,
			escrow.ParticipantAccount(participant, c.RepMint),
			escrow.DisputeAccount(courtID, id, c.RepMint),
			d.Config.RepCost); err != nil {
			return fmt.Errorf("stake rep: %w", err)
		}
		if d.Config.PayCost > 0 {
			if err := e.vault.Transfer(o.txn,
				escrow.ParticipantAccount(participant, pay),
				escrow.DisputeAccount(courtID, id, pay),
				d.Config.PayCost); err != nil {
				return fmt.Errorf("stake pay: %w", err)
			}
		}

		if err := o.txn.PutVoterRecord(r); err != nil {
			return err
		}
		return o.putDispute(d, from)
	})
}

// SubmitCase registers the evidence of a party that has interacted with the dispute.
func (e *Engine) SubmitCase(courtID common.CourtID, id common.DisputeID, participant common.ParticipantID, evidence string) error {
	return e.update("submit_case", func(o *op) error {
		d, err := o.txn.GetDispute(courtID, id)
		if err != nil {
			return err
		}
		from := d.Status
		cases, err := o.txn.GetCases(d)
		if err != nil {
			return err
		}
		c, err := d.SubmitCase(o.now, cases, participant, evidence)
		if err != nil {
			return err
		}

		r, err := o.txn.GetVoterRecord(courtID, participant)
		if err != nil {
			return err
		}
		if rec, ok := r.Find(id); !ok || rec.Vote.Kind != ledger.VoteParty {
			return dispute.ErrUserDoesNotHaveCase
		}

		if err := o.txn.PutCase(c); err != nil {
			return err
		}
		return o.putDispute(d, from)
	})
}

// CloseDispute concludes the dispute once its deadlines allow it.
func (e *Engine) CloseDispute(courtID common.CourtID, id common.DisputeID) (*dispute.Dispute, error) {
	var d *dispute.Dispute
	err := e.update("close_dispute", func(o *op) error {
		var err error
		if d, err = o.txn.GetDispute(courtID, id); err != nil {
			return err
		}
		from := d.Status
		cases, err := o.txn.GetCases(d)
		if err != nil {
			return err
		}
		if err := d.CanClose(o.now, cases); err != nil {
			return err
		}
		return o.putDispute(d, from)
	})
	if err != nil {
		return nil, err
	}

	ev := e.logger.Info().Str("court", string(courtID)).Uint64("dispute", uint64(id)).Uint64("votes", d.Votes)
	if d.Winner != nil {
		ev = ev.Str("winner", string(*d.Winner)).Uint64("winnerVotes", d.WinnerVotes)
	}
	ev.Msg("dispute concluded")
	return d, nil
}
