package engine

import (
	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/court"
	"github.com/agora-courts/agora-courts/internal/ledger"
)

// CourtParams describes a new court.
type CourtParams struct {
	ID              common.CourtID
	EditAuthority   common.ParticipantID
	Protocol        common.ParticipantID
	RepMint         common.Mint
	PayMint         *common.Mint
	MaxDisputeVotes uint16
}

func (e *Engine) CreateCourt(p CourtParams) (*court.Court, error) {
	var c *court.Court
	err := e.update("create_court", func(o *op) error {
		exists, err := o.txn.HasCourt(p.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrCourtExists
		}
		c = court.New(p.ID, p.EditAuthority, p.Protocol, p.RepMint, p.PayMint, p.MaxDisputeVotes)
		return o.txn.PutCourt(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// EditCourt changes the claim-queue bound of a court. Records already above
// the new bound keep their entries but cannot take new ones.
func (e *Engine) EditCourt(courtID common.CourtID, caller common.ParticipantID, maxDisputeVotes uint16) error {
	return e.update("edit_court", func(o *op) error {
		c, err := o.txn.GetCourt(courtID)
		if err != nil {
			return err
		}
		if err := c.Edit(caller, maxDisputeVotes); err != nil {
			return err
		}
		return o.txn.PutCourt(c)
	})
}

// InitializeRecord creates the participant's empty stake ledger in a court.
func (e *Engine) InitializeRecord(courtID common.CourtID, participant common.ParticipantID) error {
	return e.update("initialize_record", func(o *op) error {
		if _, err := o.txn.GetCourt(courtID); err != nil {
			return err
		}
		exists, err := o.txn.HasVoterRecord(courtID, participant)
		if err != nil {
			return err
		}
		if exists {
			return ErrRecordExists
		}
		return o.txn.PutVoterRecord(ledger.NewVoterRecord(courtID, participant))
	})
}
