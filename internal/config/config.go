package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/courttime"
	"github.com/agora-courts/agora-courts/internal/dispute"
	"github.com/agora-courts/agora-courts/internal/engine"
)

// SupportedVersions is the constraint scenario files must satisfy.
const SupportedVersions = "^1"

var (
	ErrUnsupportedVersion = errors.New("unsupported scenario version")
	ErrInvalidScenario    = errors.New("invalid scenario")
)

type Action string

const (
	ActionCreateDispute Action = "create_dispute"
	ActionInteract      Action = "interact"
	ActionCase          Action = "case"
	ActionCommit        Action = "commit"
	ActionReveal        Action = "reveal"
	ActionClose         Action = "close"
	ActionClaim         Action = "claim"
	ActionEditCourt     Action = "edit_court"
)

// CourtConfig describes the court a scenario runs in.
type CourtConfig struct {
	ID              string `yaml:"id"`
	EditAuthority   string `yaml:"edit_authority"`
	Protocol        string `yaml:"protocol"`
	RepMint         string `yaml:"rep_mint"`
	PayMint         string `yaml:"pay_mint,omitempty"`
	MaxDisputeVotes uint16 `yaml:"max_dispute_votes,omitempty"`
}

func (c CourtConfig) Params() engine.CourtParams {
	p := engine.CourtParams{
		ID:              common.CourtID(c.ID),
		EditAuthority:   common.ParticipantID(c.EditAuthority),
		Protocol:        common.ParticipantID(c.Protocol),
		RepMint:         common.Mint(c.RepMint),
		MaxDisputeVotes: c.MaxDisputeVotes,
	}
	if c.PayMint != "" {
		m := common.Mint(c.PayMint)
		p.PayMint = &m
	}
	return p
}

// DisputeOptions describe a dispute with phase lengths instead of deadlines.
// Each phase starts when the previous one ends.
type DisputeOptions struct {
	// Slots lists the parties. An empty entry is a slot taken by the first interacting participant.
	Slots     []string      `yaml:"slots"`
	Grace     time.Duration `yaml:"grace"`
	InitCases time.Duration `yaml:"init_cases"`
	Voting    time.Duration `yaml:"voting"`
	Reveal    time.Duration `yaml:"reveal"`

	VoterRepRequired uint64 `yaml:"voter_rep_required"`
	VoterRepCost     uint64 `yaml:"voter_rep_cost"`
	RepCost          uint64 `yaml:"rep_cost"`
	PayCost          uint64 `yaml:"pay_cost"`
	MinVotes         uint64 `yaml:"min_votes"`
	ProtocolRep      uint64 `yaml:"protocol_rep"`
	ProtocolPay      uint64 `yaml:"protocol_pay"`
}

// Configuration anchors the phases at start.
func (o DisputeOptions) Configuration(start courttime.Timestamp) dispute.Configuration {
	grace := start.Add(o.Grace)
	cases := grace.Add(o.InitCases)
	voting := cases.Add(o.Voting)
	return dispute.Configuration{
		GraceEndsAt:      grace,
		InitCasesEndsAt:  cases,
		VotingEndsAt:     voting,
		DisputeEndsAt:    voting.Add(o.Reveal),
		VoterRepRequired: o.VoterRepRequired,
		VoterRepCost:     o.VoterRepCost,
		RepCost:          o.RepCost,
		PayCost:          o.PayCost,
		MinVotes:         o.MinVotes,
		ProtocolRep:      o.ProtocolRep,
		ProtocolPay:      o.ProtocolPay,
	}
}

func (o DisputeOptions) Users() []*common.ParticipantID {
	users := make([]*common.ParticipantID, len(o.Slots))
	for i, s := range o.Slots {
		if s != "" {
			users[i] = common.ParticipantPtr(common.ParticipantID(s))
		}
	}
	return users
}

type Balance struct {
	Participant string `yaml:"participant"`
	Mint        string `yaml:"mint"`
	Amount      uint64 `yaml:"amount"`
}

// Step is one operation, run once the clock reaches Start+At.
type Step struct {
	At          time.Duration   `yaml:"at"`
	Action      Action          `yaml:"action"`
	Dispute     uint64          `yaml:"dispute"`
	Participant string          `yaml:"participant,omitempty"`
	Candidate   string          `yaml:"candidate,omitempty"`
	Salt        string          `yaml:"salt,omitempty"`
	Evidence    string          `yaml:"evidence,omitempty"`
	MaxVotes    uint16          `yaml:"max_votes,omitempty"`
	Options     *DisputeOptions `yaml:"options,omitempty"`
	// ExpectError makes a rejected step pass, checking the message contains it.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Scenario is a scripted court session.
type Scenario struct {
	Version  string      `yaml:"version"`
	Start    time.Time   `yaml:"start"`
	Court    CourtConfig `yaml:"court"`
	Records  []string    `yaml:"records"`
	Balances []Balance   `yaml:"balances"`
	Steps    []Step      `yaml:"steps"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario %q: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", path, err)
	}
	return s, nil
}

func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	v, err := semver.NewVersion(s.Version)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrUnsupportedVersion, s.Version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w %s: want %s", ErrUnsupportedVersion, v, SupportedVersions)
	}

	if s.Court.ID == "" || s.Court.Protocol == "" || s.Court.RepMint == "" {
		return fmt.Errorf("%w: court needs id, protocol and rep_mint", ErrInvalidScenario)
	}

	var last time.Duration
	for i, step := range s.Steps {
		if step.At < last {
			return fmt.Errorf("%w: step %d at %s runs before the previous step", ErrInvalidScenario, i, step.At)
		}
		last = step.At

		switch step.Action {
		case ActionCreateDispute:
			if step.Options == nil {
				return fmt.Errorf("%w: step %d: create_dispute needs options", ErrInvalidScenario, i)
			}
		case ActionInteract, ActionCase, ActionClaim, ActionEditCourt:
			if step.Participant == "" {
				return fmt.Errorf("%w: step %d: %s needs a participant", ErrInvalidScenario, i, step.Action)
			}
		case ActionCommit, ActionReveal:
			if step.Participant == "" || step.Candidate == "" {
				return fmt.Errorf("%w: step %d: %s needs a participant and a candidate", ErrInvalidScenario, i, step.Action)
			}
		case ActionClose:
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i, step.Action)
		}
	}
	return nil
}

// StartTimestamp is the scenario start truncated to seconds.
func (s *Scenario) StartTimestamp() courttime.Timestamp {
	return courttime.FromTime(s.Start)
}
