package engine

import (
	"fmt"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/escrow"
	"github.com/agora-courts/agora-courts/internal/settlement"
)

// Claim settles the participant's oldest exposure, which must be this
// concluded dispute, and pays out of the dispute vault.
func (e *Engine) Claim(courtID common.CourtID, id common.DisputeID, participant common.ParticipantID) (*settlement.Receipt, error) {
	var receipt settlement.Receipt
	err := e.update("claim", func(o *op) error {
		c, err := o.txn.GetCourt(courtID)
		if err != nil {
			return err
		}
		d, err := o.txn.GetDispute(courtID, id)
		if err != nil {
			return err
		}
		r, err := o.txn.GetVoterRecord(courtID, participant)
		if err != nil {
			return err
		}

		head, ok := r.Peek()
		if !ok || head.DisputeID != id {
			return settlement.ErrCannotClaimDispute
		}
		payout, err := settlement.Compute(d, head, participant)
		if err != nil {
			return err
		}
		r.Pop()
		if err := r.Release(payout.ReleasedRep, payout.ReleasedPay); err != nil {
			return err
		}

		if err := e.vault.Transfer(o.txn,
			escrow.DisputeAccount(courtID, id, c.RepMint),
			escrow.ParticipantAccount(participant, c.RepMint),
			payout.Rep); err != nil {
			return fmt.Errorf("pay out rep: %w", err)
		}
		if payout.Pay > 0 {
			pay, err := payMint(c, payout.Pay)
			if err != nil {
				return err
			}
			if err := e.vault.Transfer(o.txn,
				escrow.DisputeAccount(courtID, id, pay),
				escrow.ParticipantAccount(participant, pay),
				payout.Pay); err != nil {
				return fmt.Errorf("pay out payment: %w", err)
			}
		}

		receipt = settlement.NewReceipt(courtID, id, participant, payout, o.now)
		if err := o.txn.PutReceipt(&receipt); err != nil {
			return err
		}
		o.onCommit = append(o.onCommit, func() { e.metrics.Claim(receipt.Outcome) })
		return o.txn.PutVoterRecord(r)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Str("court", string(courtID)).
		Uint64("dispute", uint64(id)).
		Str("participant", string(participant)).
		Str("outcome", receipt.Outcome).
		Uint64("rep", receipt.Rep).
		Uint64("pay", receipt.Pay).
		Msg("claim settled")
	return &receipt, nil
}
