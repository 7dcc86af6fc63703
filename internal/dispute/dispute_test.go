package dispute

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/courttime"
)

func testConfig() Configuration {
	return Configuration{
		GraceEndsAt:      100,
		InitCasesEndsAt:  200,
		VotingEndsAt:     300,
		DisputeEndsAt:    400,
		VoterRepRequired: 10,
		VoterRepCost:     5,
		RepCost:          20,
		MinVotes:         1,
	}
}

func newTestDispute(t *testing.T, users ...*common.ParticipantID) *Dispute {
	t.Helper()
	d, err := New("court", 0, users, testConfig())
	require.NoError(t, err)
	return d
}

func slot(p common.ParticipantID) *common.ParticipantID {
	return common.ParticipantPtr(p)
}

func TestConfiguration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Configuration) {}},
		{name: "grace equals cases", mutate: func(c *Configuration) { c.GraceEndsAt = c.InitCasesEndsAt }, wantErr: true},
		{name: "cases after voting", mutate: func(c *Configuration) { c.InitCasesEndsAt = 350 }, wantErr: true},
		{name: "reveal before voting", mutate: func(c *Configuration) { c.DisputeEndsAt = 250 }, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := testConfig()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	_, err := New("court", 0, nil, testConfig())
	assert.ErrorIs(t, err, ErrUsersEmpty)

	bad := testConfig()
	bad.VotingEndsAt = bad.DisputeEndsAt
	_, err = New("court", 0, []*common.ParticipantID{nil}, bad)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = New("court", 0, []*common.ParticipantID{slot("alice"), nil, slot("alice")}, testConfig())
	assert.ErrorIs(t, err, ErrDuplicateUser)

	alice := slot("alice")
	d, err := New("court", 3, []*common.ParticipantID{alice, nil}, testConfig())
	require.NoError(t, err)
	assert.Equal(t, StatusGrace, d.Status)
	assert.Equal(t, common.DisputeID(3), d.ID)

	// slots are copied
	*alice = "mallory"
	assert.Equal(t, []common.ParticipantID{"alice"}, d.Parties())
}

func TestDispute_ReserveSlot(t *testing.T) {
	d := newTestDispute(t, slot("alice"), nil)

	i, err := d.ReserveSlot("alice")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = d.ReserveSlot("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = d.ReserveSlot("bob")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = d.ReserveSlot("carol")
	assert.ErrorIs(t, err, ErrUserNotAuthorized)
}

func TestDispute_Interact(t *testing.T) {
	d := newTestDispute(t, nil, nil)

	require.NoError(t, d.Interact(10, "alice"))
	require.NoError(t, d.Interact(20, "bob"))
	assert.Equal(t, uint64(2), d.Interactions)

	assert.ErrorIs(t, d.Interact(30, "carol"), ErrInteractionsFulfilled)

	late := newTestDispute(t, nil)
	assert.ErrorIs(t, late.Interact(100, "alice"), ErrInteractionPeriodEnded)
}

func TestDispute_CanAddCase(t *testing.T) {
	tests := []struct {
		name         string
		interactions uint64
		now          courttime.Timestamp
		wantStatus   Status
		wantErr      error
	}{
		{name: "grace with free slots", interactions: 1, now: 50, wantStatus: StatusGrace, wantErr: ErrCasesNoLongerAccepted},
		{name: "all slots claimed", interactions: 2, now: 50, wantStatus: StatusWaiting},
		{name: "grace ended", interactions: 0, now: 101, wantStatus: StatusWaiting},
		{name: "grace end is exclusive", interactions: 0, now: 100, wantStatus: StatusGrace, wantErr: ErrCasesNoLongerAccepted},
		{name: "submission ended", interactions: 2, now: 200, wantStatus: StatusWaiting, wantErr: ErrCasesNoLongerAccepted},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDispute(t, slot("alice"), slot("bob"))
			d.Interactions = tc.interactions

			err := d.CanAddCase(tc.now)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantStatus, d.Status)
		})
	}
}

func TestDispute_CanVote(t *testing.T) {
	d := newTestDispute(t, slot("alice"), slot("bob"))
	assert.ErrorIs(t, d.CanVote(250), ErrDisputeNotVotable, "grace is never promoted to voting directly")

	d.Status = StatusWaiting
	assert.ErrorIs(t, d.CanVote(150), ErrDisputeNotVotable)
	assert.Equal(t, StatusWaiting, d.Status)

	d.SubmittedCases = 2
	require.NoError(t, d.CanVote(150))
	assert.Equal(t, StatusVoting, d.Status)

	assert.ErrorIs(t, d.CanVote(300), ErrDisputeNotVotable)

	late := newTestDispute(t, slot("alice"))
	late.Status = StatusWaiting
	require.NoError(t, late.CanVote(201))
	assert.Equal(t, StatusVoting, late.Status)
}

func TestDispute_CanReveal(t *testing.T) {
	d := newTestDispute(t, slot("alice"))
	d.Status = StatusVoting

	assert.ErrorIs(t, d.CanReveal(300), ErrNotRevealPeriod)
	assert.Equal(t, StatusVoting, d.Status)

	require.NoError(t, d.CanReveal(301))
	assert.Equal(t, StatusReveal, d.Status)

	assert.ErrorIs(t, d.CanReveal(400), ErrNotRevealPeriod)
	assert.Equal(t, StatusReveal, d.Status)
}

func TestDispute_SubmitCase(t *testing.T) {
	d := newTestDispute(t, slot("alice"), slot("bob"))
	d.Interactions = 2
	cases := Cases{}

	c, err := d.SubmitCase(150, cases, "alice", "ipfs://alice")
	require.NoError(t, err)
	assert.Equal(t, "ipfs://alice", c.Evidence)
	assert.Equal(t, common.ParticipantID("alice"), c.Party)
	assert.Equal(t, uint64(1), d.SubmittedCases)

	_, err = d.SubmitCase(150, cases, "alice", "again")
	assert.ErrorIs(t, err, ErrCaseAlreadySubmitted)

	_, err = d.SubmitCase(150, cases, "carol", "")
	assert.ErrorIs(t, err, ErrUserDoesNotHaveCase)

	_, err = d.SubmitCase(200, cases, "bob", "")
	assert.ErrorIs(t, err, ErrCasesNoLongerAccepted)

	assert.Len(t, cases, 1)
	assert.Equal(t, uint64(1), d.SubmittedCases)
}

func TestDispute_RecordVoteLeader(t *testing.T) {
	d := newTestDispute(t, slot("alice"), slot("bob"))
	cases := Cases{
		"alice": {Party: "alice"},
		"bob":   {Party: "bob"},
	}

	_, err := d.RecordVote(cases, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", string(*d.Leader.Participant))

	_, err = d.RecordVote(cases, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", string(*d.Leader.Participant), "leader moves only on a strictly higher tally")

	_, err = d.RecordVote(cases, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", string(*d.Leader.Participant))
	assert.Equal(t, uint64(2), d.Leader.Votes)
	assert.Equal(t, uint64(3), d.Votes)

	_, err = d.RecordVote(cases, "carol")
	assert.ErrorIs(t, err, ErrUserDoesNotHaveCase)
}

func TestDispute_CanClose(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(d *Dispute) Cases
		now        courttime.Timestamp
		wantErr    error
		wantWinner *common.ParticipantID
		wantVotes  uint64
	}{
		{
			name:  "grace without cases",
			setup: func(d *Dispute) Cases { return Cases{} },
			now:   101,
		},
		{
			name:    "grace still open",
			setup:   func(d *Dispute) Cases { return Cases{} },
			now:     100,
			wantErr: ErrDisputeNotFinalizable,
		},
		{
			name: "one case and no votes",
			setup: func(d *Dispute) Cases {
				d.Status = StatusWaiting
				d.SubmittedCases = 1
				return Cases{"alice": {Party: "alice"}}
			},
			now: 301,
		},
		{
			name: "waiting before voting end",
			setup: func(d *Dispute) Cases {
				d.Status = StatusWaiting
				return Cases{}
			},
			now:     300,
			wantErr: ErrDisputeNotFinalizable,
		},
		{
			name: "voting and nobody revealed",
			setup: func(d *Dispute) Cases {
				d.Status = StatusVoting
				d.Commits = 3
				return Cases{"alice": {Party: "alice"}}
			},
			now: 401,
		},
		{
			name: "voting before reveal end",
			setup: func(d *Dispute) Cases {
				d.Status = StatusVoting
				return Cases{}
			},
			now:     400,
			wantErr: ErrDisputeNotFinalizable,
		},
		{
			name: "single reveal meets quorum",
			setup: func(d *Dispute) Cases {
				d.Status = StatusReveal
				d.Votes = 1
				return Cases{"alice": {Party: "alice", Votes: 1}, "bob": {Party: "bob"}}
			},
			now:        401,
			wantWinner: slot("alice"),
			wantVotes:  1,
		},
		{
			name: "tie at the top",
			setup: func(d *Dispute) Cases {
				d.Status = StatusReveal
				d.Votes = 4
				return Cases{"alice": {Party: "alice", Votes: 2}, "bob": {Party: "bob", Votes: 2}}
			},
			now: 401,
		},
		{
			name: "below quorum",
			setup: func(d *Dispute) Cases {
				d.Status = StatusReveal
				d.Config.MinVotes = 3
				d.Votes = 2
				return Cases{"alice": {Party: "alice", Votes: 2}}
			},
			now: 401,
		},
		{
			name: "reveal still open",
			setup: func(d *Dispute) Cases {
				d.Status = StatusReveal
				return Cases{}
			},
			now:     400,
			wantErr: ErrDisputeNotFinalizable,
		},
		{
			name: "already concluded",
			setup: func(d *Dispute) Cases {
				d.Status = StatusConcluded
				return Cases{}
			},
			now:     1000,
			wantErr: ErrDisputeNotFinalizable,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDispute(t, slot("alice"), slot("bob"))
			cases := tc.setup(d)
			before := d.Status

			err := d.CanClose(tc.now, cases)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, before, d.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusConcluded, d.Status)
			assert.Equal(t, tc.wantWinner, d.Winner)
			assert.Equal(t, tc.wantVotes, d.WinnerVotes)
		})
	}
}

func TestDispute_Clone(t *testing.T) {
	d := newTestDispute(t, slot("alice"), nil)
	c := d.Clone()

	_, err := c.ReserveSlot("bob")
	require.NoError(t, err)
	c.Status = StatusWaiting

	assert.Nil(t, d.Users[1])
	assert.Equal(t, StatusGrace, d.Status)
}

// Applies a random sequence of operations at non-decreasing times and checks
// that the status never moves backwards.
func TestDispute_StatusMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	participants := []common.ParticipantID{"alice", "bob", "carol"}

	properties.Property("status only moves forward", prop.ForAll(
		func(ops []int, steps []int64) bool {
			d, err := New("court", 0, []*common.ParticipantID{nil, nil}, testConfig())
			if err != nil {
				return false
			}
			cases := Cases{}
			now := courttime.Timestamp(0)
			for i := 0; i < len(ops) && i < len(steps); i++ {
				now += courttime.Timestamp(steps[i])
				before := d.Status
				p := participants[i%len(participants)]

				switch ops[i] {
				case 0:
					_ = d.Interact(now, p)
				case 1:
					_, _ = d.SubmitCase(now, cases, p, "evidence")
				case 2:
					if d.CanVote(now) == nil {
						d.Commits++
					}
				case 3:
					if d.CanReveal(now) == nil {
						_, _ = d.RecordVote(cases, p)
					}
				case 4:
					_ = d.CanClose(now, cases)
				}

				if d.Status < before {
					return false
				}
				if d.Status == StatusConcluded && d.Winner != nil && d.WinnerVotes == 0 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 4)),
		gen.SliceOf(gen.Int64Range(0, 60)),
	))

	properties.TestingRun(t)
}
