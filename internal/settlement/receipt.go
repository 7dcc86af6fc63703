package settlement

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/courttime"
	"github.com/agora-courts/agora-courts/internal/crypto"
)

// Receipt records a settled claim.
type Receipt struct {
	ID          uuid.UUID            `json:"id"`
	Court       common.CourtID       `json:"court"`
	Dispute     common.DisputeID     `json:"dispute"`
	Participant common.ParticipantID `json:"participant"`
	Outcome     string               `json:"outcome"`
	Rep         uint64               `json:"rep"`
	Pay         uint64               `json:"pay"`
	ReleasedRep uint64               `json:"releasedRep"`
	ReleasedPay uint64               `json:"releasedPay"`
	ClaimedAt   courttime.Timestamp  `json:"claimedAt"`
}

func NewReceipt(court common.CourtID, id common.DisputeID, participant common.ParticipantID, p Payout, now courttime.Timestamp) Receipt {
	return Receipt{
		ID:          uuid.New(),
		Court:       court,
		Dispute:     id,
		Participant: participant,
		Outcome:     p.Outcome.String(),
		Rep:         p.Rep,
		Pay:         p.Pay,
		ReleasedRep: p.ReleasedRep,
		ReleasedPay: p.ReleasedPay,
		ClaimedAt:   now,
	}
}

// Digest hashes the RFC 8785 canonical JSON form of the receipt.
func (r Receipt) Digest() (crypto.Hash, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return crypto.Hash{}, fmt.Errorf("marshal receipt: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return crypto.Hash{}, fmt.Errorf("canonicalize receipt: %w", err)
	}
	return crypto.HashData(canonical), nil
}
