package dispute

import (
	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/courttime"
)

// Case is one party's candidate outcome. Evidence never changes after
// submission and Votes only grows.
type Case struct {
	Court    common.CourtID       `json:"court"`
	Dispute  common.DisputeID     `json:"dispute"`
	Party    common.ParticipantID `json:"party"`
	Evidence string               `json:"evidence"`
	Votes    uint64               `json:"votes"`
}

// Cases are the submitted cases of one dispute keyed by party.
type Cases map[common.ParticipantID]*Case

// SubmitCase registers the party's case. The party must already hold a slot.
func (d *Dispute) SubmitCase(now courttime.Timestamp, cases Cases, party common.ParticipantID, evidence string) (*Case, error) {
	if err := d.CanAddCase(now); err != nil {
		return nil, err
	}
	if !d.IsUser(party) {
		return nil, ErrUserDoesNotHaveCase
	}
	if _, ok := cases[party]; ok {
		return nil, ErrCaseAlreadySubmitted
	}
	if len(evidence) > common.MaxEvidenceLength {
		return nil, ErrEvidenceTooLong
	}

	c := &Case{
		Court:    d.Court,
		Dispute:  d.ID,
		Party:    party,
		Evidence: evidence,
	}
	cases[party] = c
	d.SubmittedCases++
	return c, nil
}

// RecordVote adds one revealed vote to the candidate's case and the dispute
// total. The leader moves only when the case strictly overtakes it.
func (d *Dispute) RecordVote(cases Cases, candidate common.ParticipantID) (*Case, error) {
	c, ok := cases[candidate]
	if !ok {
		return nil, ErrUserDoesNotHaveCase
	}
	c.Votes++
	d.Votes++
	if c.Votes > d.Leader.Votes {
		d.Leader = Leader{Participant: common.ParticipantPtr(candidate), Votes: c.Votes}
	}
	return c, nil
}

// uniqueLeader returns the case with the strictly highest tally, or nil on a tie.
func (cs Cases) uniqueLeader() (*common.ParticipantID, uint64) {
	var (
		leader *common.ParticipantID
		top    uint64
		tied   bool
	)
	for party, c := range cs {
		switch {
		case leader == nil || c.Votes > top:
			leader, top, tied = common.ParticipantPtr(party), c.Votes, false
		case c.Votes == top:
			tied = true
		}
	}
	if tied || top == 0 {
		return nil, 0
	}
	return leader, top
}

// Clone returns a deep copy.
func (cs Cases) Clone() Cases {
	c := make(Cases, len(cs))
	for party, cse := range cs {
		cp := *cse
		c[party] = &cp
	}
	return c
}
