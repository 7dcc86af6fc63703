package dispute

import (
	"fmt"
	"slices"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/courttime"
)

// Leader is the case with the highest tally so far.
type Leader struct {
	Participant *common.ParticipantID `json:"participant,omitempty"`
	Votes       uint64                `json:"votes"`
}

// Dispute is one instance of the resolution process. Status only moves
// forward: Grace, Waiting, Voting, Reveal, Concluded.
type Dispute struct {
	ID    common.DisputeID `json:"id"`
	Court common.CourtID   `json:"court"`
	// Users holds one slot per party. A nil slot is free until someone interacts.
	Users  []*common.ParticipantID `json:"users"`
	Status Status                  `json:"status"`
	// Winner and WinnerVotes are meaningful once Status is StatusConcluded.
	Winner         *common.ParticipantID `json:"winner,omitempty"`
	WinnerVotes    uint64                `json:"winnerVotes"`
	Interactions   uint64                `json:"interactions"`
	SubmittedCases uint64                `json:"submittedCases"`
	// Votes counts revealed votes, Commits counts committed ones.
	Votes   uint64        `json:"votes"`
	Commits uint64        `json:"commits"`
	Leader  Leader        `json:"leader"`
	Config  Configuration `json:"config"`
}

// New validates the configuration and returns a dispute in StatusGrace.
func New(court common.CourtID, id common.DisputeID, users []*common.ParticipantID, config Configuration) (*Dispute, error) {
	if len(users) == 0 {
		return nil, ErrUsersEmpty
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	slots := make([]*common.ParticipantID, len(users))
	seen := make(map[common.ParticipantID]struct{}, len(users))
	for i, u := range users {
		if u == nil {
			continue
		}
		if _, ok := seen[*u]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, *u)
		}
		seen[*u] = struct{}{}
		slots[i] = common.ParticipantPtr(*u)
	}
	return &Dispute{
		ID:     id,
		Court:  court,
		Users:  slots,
		Status: StatusGrace,
		Config: config,
	}, nil
}

// IsConcluded reports whether the dispute reached its terminal status.
func (d *Dispute) IsConcluded() bool {
	return d.Status == StatusConcluded
}

// HasWinner reports whether the dispute concluded with a winner.
func (d *Dispute) HasWinner() bool {
	return d.IsConcluded() && d.Winner != nil
}

// IsWinner reports whether p is the declared winner.
func (d *Dispute) IsWinner(p common.ParticipantID) bool {
	return d.HasWinner() && *d.Winner == p
}

// IsUser reports whether p holds a slot.
func (d *Dispute) IsUser(p common.ParticipantID) bool {
	return d.slotOf(p) >= 0
}

// Parties returns the participants holding a slot, in slot order.
func (d *Dispute) Parties() []common.ParticipantID {
	parties := make([]common.ParticipantID, 0, len(d.Users))
	for _, u := range d.Users {
		if u != nil {
			parties = append(parties, *u)
		}
	}
	return parties
}

// ReserveSlot returns the slot held by p, claiming the first free slot if p has none.
func (d *Dispute) ReserveSlot(p common.ParticipantID) (int, error) {
	if i := d.slotOf(p); i >= 0 {
		return i, nil
	}
	i := slices.IndexFunc(d.Users, func(u *common.ParticipantID) bool { return u == nil })
	if i < 0 {
		return 0, ErrUserNotAuthorized
	}
	d.Users[i] = common.ParticipantPtr(p)
	return i, nil
}

// Interact admits p as a party during the grace period.
func (d *Dispute) Interact(now courttime.Timestamp, p common.ParticipantID) error {
	if err := d.CanInteract(now); err != nil {
		return err
	}
	if _, err := d.ReserveSlot(p); err != nil {
		return err
	}
	d.Interactions++
	return nil
}

// Clone returns a deep copy.
func (d *Dispute) Clone() *Dispute {
	c := *d
	c.Users = make([]*common.ParticipantID, len(d.Users))
	for i, u := range d.Users {
		if u != nil {
			c.Users[i] = common.ParticipantPtr(*u)
		}
	}
	if d.Winner != nil {
		c.Winner = common.ParticipantPtr(*d.Winner)
	}
	if d.Leader.Participant != nil {
		c.Leader.Participant = common.ParticipantPtr(*d.Leader.Participant)
	}
	return &c
}

func (d *Dispute) String() string {
	return fmt.Sprintf("dispute %s/%d (%s)", d.Court, d.ID, d.Status)
}

func (d *Dispute) slotOf(p common.ParticipantID) int {
	return slices.IndexFunc(d.Users, func(u *common.ParticipantID) bool { return u != nil && *u == p })
}
