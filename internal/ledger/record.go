package ledger

import (
	"fmt"
	"slices"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/courttime"
	"github.com/agora-courts/agora-courts/internal/crypto"
	"github.com/agora-courts/agora-courts/internal/safemath"
)

// DisputeRecord is one pending exposure of a participant awaiting settlement.
type DisputeRecord struct {
	DisputeID      common.DisputeID    `json:"disputeId"`
	DisputeEndTime courttime.Timestamp `json:"disputeEndTime"`
	Vote           Vote                `json:"vote"`
}

// VoterRecord is the stake ledger of a participant within one court.
// ClaimQueue is kept sorted ascending by DisputeEndTime, equal end times in insertion order.
type VoterRecord struct {
	Court       common.CourtID       `json:"court"`
	Participant common.ParticipantID `json:"participant"`
	ClaimQueue  []DisputeRecord      `json:"claimQueue"`
	StakedRep   uint64               `json:"stakedRep"`
	StakedPay   uint64               `json:"stakedPay"`
}

func NewVoterRecord(court common.CourtID, participant common.ParticipantID) *VoterRecord {
	return &VoterRecord{
		Court:       court,
		Participant: participant,
		ClaimQueue:  []DisputeRecord{},
	}
}

// Push inserts the record after every entry ending at or before it.
// A queue holds at most one record per dispute and at most maxDisputes records.
func (r *VoterRecord) Push(record DisputeRecord, maxDisputes int) error {
	if r.indexOf(record.DisputeID) >= 0 {
		return ErrAlreadyEngaged
	}
	if len(r.ClaimQueue) >= maxDisputes {
		return ErrMaxDisputesReached
	}

	i, _ := slices.BinarySearchFunc(r.ClaimQueue, record.DisputeEndTime, func(e DisputeRecord, t courttime.Timestamp) int {
		if e.DisputeEndTime <= t {
			return -1
		}
		return 1
	})
	r.ClaimQueue = slices.Insert(r.ClaimQueue, i, record)
	return nil
}

// Peek returns the record with the earliest end time.
func (r *VoterRecord) Peek() (DisputeRecord, bool) {
	if len(r.ClaimQueue) == 0 {
		return DisputeRecord{}, false
	}
	return r.ClaimQueue[0], true
}

// Pop removes and returns the record with the earliest end time.
func (r *VoterRecord) Pop() (DisputeRecord, bool) {
	head, ok := r.Peek()
	if !ok {
		return DisputeRecord{}, false
	}
	r.ClaimQueue = slices.Delete(r.ClaimQueue, 0, 1)
	return head, true
}

func (r *VoterRecord) Len() int {
	return len(r.ClaimQueue)
}

// HasUnclaimedMaturedDispute reports whether the oldest exposure ended before now.
func (r *VoterRecord) HasUnclaimedMaturedDispute(now courttime.Timestamp) bool {
	head, ok := r.Peek()
	return ok && head.DisputeEndTime.Before(now)
}

// Find returns the record held for the dispute.
func (r *VoterRecord) Find(id common.DisputeID) (DisputeRecord, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return DisputeRecord{}, false
	}
	return r.ClaimQueue[i], true
}

// Reveal opens the commitment stored for the dispute. A record turns from
// VoteSecret into VoteReveal once and never changes again.
func (r *VoterRecord) Reveal(id common.DisputeID, candidate common.ParticipantID, salt []byte) error {
	i := r.indexOf(id)
	if i < 0 {
		return ErrInvalidReveal
	}
	vote := r.ClaimQueue[i].Vote
	if vote.Kind != VoteSecret {
		return ErrInvalidReveal
	}
	if !crypto.VerifyCommitment(vote.Hash, string(candidate), salt) {
		return ErrInvalidReveal
	}
	r.ClaimQueue[i].Vote = RevealVote(candidate)
	return nil
}

// Stake adds escrowed amounts to the record.
func (r *VoterRecord) Stake(rep, pay uint64) error {
	stakedRep, err := safemath.Add(r.StakedRep, rep)
	if err != nil {
		return fmt.Errorf("stake rep: %w", err)
	}
	stakedPay, err := safemath.Add(r.StakedPay, pay)
	if err != nil {
		return fmt.Errorf("stake pay: %w", err)
	}
	r.StakedRep, r.StakedPay = stakedRep, stakedPay
	return nil
}

// Release removes escrowed amounts from the record. Releasing more than is
// staked fails rather than going negative.
func (r *VoterRecord) Release(rep, pay uint64) error {
	stakedRep, err := safemath.Sub(r.StakedRep, rep)
	if err != nil {
		return fmt.Errorf("release rep: %w", err)
	}
	stakedPay, err := safemath.Sub(r.StakedPay, pay)
	if err != nil {
		return fmt.Errorf("release pay: %w", err)
	}
	r.StakedRep, r.StakedPay = stakedRep, stakedPay
	return nil
}

// Clone returns a deep copy so a rejected operation never touches the original.
func (r *VoterRecord) Clone() *VoterRecord {
	c := *r
	c.ClaimQueue = slices.Clone(r.ClaimQueue)
	if c.ClaimQueue == nil {
		c.ClaimQueue = []DisputeRecord{}
	}
	return &c
}

func (r *VoterRecord) indexOf(id common.DisputeID) int {
	return slices.IndexFunc(r.ClaimQueue, func(e DisputeRecord) bool {
		return e.DisputeID == id
	})
}
