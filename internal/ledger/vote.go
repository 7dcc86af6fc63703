package ledger

import (
	"fmt"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/crypto"
)

type VoteKind uint8

const (
	// VoteParty marks an engagement as a party to the dispute.
	VoteParty VoteKind = iota
	// VoteSecret is a committed, not yet revealed, vote.
	VoteSecret
	// VoteReveal is a vote whose commitment has been opened.
	VoteReveal
)

func (k VoteKind) String() string {
	switch k {
	case VoteParty:
		return "party"
	case VoteSecret:
		return "secret"
	case VoteReveal:
		return "reveal"
	default:
		return fmt.Sprintf("VoteKind(%d)", uint8(k))
	}
}

// Vote is what a participant is exposed to in one dispute.
// Hash is set only for VoteSecret, Candidate only for VoteReveal.
type Vote struct {
	Kind      VoteKind              `json:"kind"`
	Hash      crypto.Hash           `json:"hash"`
	Candidate *common.ParticipantID `json:"candidate,omitempty"`
}

func PartyVote() Vote {
	return Vote{Kind: VoteParty}
}

func SecretVote(commitment crypto.Hash) Vote {
	return Vote{Kind: VoteSecret, Hash: commitment}
}

func RevealVote(candidate common.ParticipantID) Vote {
	return Vote{Kind: VoteReveal, Candidate: common.ParticipantPtr(candidate)}
}

// IsVoter reports whether the vote was cast by a voter rather than a party.
func (v Vote) IsVoter() bool {
	return v.Kind == VoteSecret || v.Kind == VoteReveal
}

// RevealedFor reports whether the vote was revealed for candidate.
func (v Vote) RevealedFor(candidate common.ParticipantID) bool {
	return v.Kind == VoteReveal && v.Candidate != nil && *v.Candidate == candidate
}
