package common

import "strconv"

// CourtID names a court. Every other record is scoped by it.
type CourtID string

// DisputeID is the per-court dispute sequence number.
type DisputeID uint64

func (id DisputeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParticipantID identifies a party, voter, protocol or authority.
type ParticipantID string

// Mint identifies a token denomination (reputation or payment).
type Mint string

// ParticipantPtr returns a pointer to a copy of p, for optional slots.
func ParticipantPtr(p ParticipantID) *ParticipantID {
	return &p
}
