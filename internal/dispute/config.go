package dispute

import (
	"fmt"

	"github.com/agora-courts/agora-courts/internal/courttime"
)

// Configuration is fixed when the dispute is created.
type Configuration struct {
	GraceEndsAt     courttime.Timestamp `json:"graceEndsAt"`
	InitCasesEndsAt courttime.Timestamp `json:"initCasesEndsAt"`
	VotingEndsAt    courttime.Timestamp `json:"votingEndsAt"`
	DisputeEndsAt   courttime.Timestamp `json:"disputeEndsAt"`

	// VoterRepRequired is the reputation a voter must hold, VoterRepCost the part of it escrowed.
	VoterRepRequired uint64 `json:"voterRepRequired"`
	VoterRepCost     uint64 `json:"voterRepCost"`
	// RepCost and PayCost are escrowed by each interacting party.
	RepCost  uint64 `json:"repCost"`
	PayCost  uint64 `json:"payCost"`
	MinVotes uint64 `json:"minVotes"`
	// ProtocolRep and ProtocolPay seed the winners' pools.
	ProtocolRep uint64 `json:"protocolRep"`
	ProtocolPay uint64 `json:"protocolPay"`
}

// Validate checks that the four deadlines are strictly increasing.
func (c Configuration) Validate() error {
	deadlines := []courttime.Timestamp{c.GraceEndsAt, c.InitCasesEndsAt, c.VotingEndsAt, c.DisputeEndsAt}
	for i := 1; i < len(deadlines); i++ {
		if !deadlines[i-1].Before(deadlines[i]) {
			return fmt.Errorf("%w: deadlines must increase (grace %d, cases %d, voting %d, reveal %d)",
				ErrInvalidConfiguration, c.GraceEndsAt, c.InitCasesEndsAt, c.VotingEndsAt, c.DisputeEndsAt)
		}
	}
	return nil
}
