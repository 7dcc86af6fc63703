package court

import (
	"errors"

	"github.com/agora-courts/agora-courts/internal/common"
)

var (
	ErrInvalidEditAuthority   = errors.New("caller is not the court edit authority")
	ErrInvalidProtocol        = errors.New("caller is not the court protocol")
	ErrInvalidMaxDisputeVotes = errors.New("max dispute votes must be positive")
)

// Court scopes disputes and voter records. NumDisputes is the next dispute id.
type Court struct {
	ID              common.CourtID       `json:"id"`
	EditAuthority   common.ParticipantID `json:"editAuthority"`
	Protocol        common.ParticipantID `json:"protocol"`
	RepMint         common.Mint          `json:"repMint"`
	PayMint         *common.Mint         `json:"payMint,omitempty"`
	MaxDisputeVotes uint16               `json:"maxDisputeVotes"`
	NumDisputes     uint64               `json:"numDisputes"`
}

// New returns a court with no disputes. A zero maxDisputeVotes selects the default.
func New(id common.CourtID, authority, protocol common.ParticipantID, repMint common.Mint, payMint *common.Mint, maxDisputeVotes uint16) *Court {
	if maxDisputeVotes == 0 {
		maxDisputeVotes = common.DefaultMaxDisputeVotes
	}
	c := &Court{
		ID:              id,
		EditAuthority:   authority,
		Protocol:        protocol,
		RepMint:         repMint,
		MaxDisputeVotes: maxDisputeVotes,
	}
	if payMint != nil {
		m := *payMint
		c.PayMint = &m
	}
	return c
}

// Edit changes the claim-queue bound. Only the edit authority may call it.
func (c *Court) Edit(caller common.ParticipantID, maxDisputeVotes uint16) error {
	if caller != c.EditAuthority {
		return ErrInvalidEditAuthority
	}
	if maxDisputeVotes == 0 {
		return ErrInvalidMaxDisputeVotes
	}
	c.MaxDisputeVotes = maxDisputeVotes
	return nil
}

// NextDisputeID authorizes the caller as protocol and allocates a dispute id.
func (c *Court) NextDisputeID(caller common.ParticipantID) (common.DisputeID, error) {
	if caller != c.Protocol {
		return 0, ErrInvalidProtocol
	}
	id := common.DisputeID(c.NumDisputes)
	c.NumDisputes++
	return id, nil
}
