// Package runner replays a scripted court session against an engine.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/config"
	"github.com/agora-courts/agora-courts/internal/crypto"
	"github.com/agora-courts/agora-courts/internal/engine"
	"github.com/agora-courts/agora-courts/internal/escrow"
	"github.com/agora-courts/agora-courts/internal/metrics"
	"github.com/agora-courts/agora-courts/internal/store"
)

var (
	ErrUnexpectedSuccess = errors.New("step succeeded but an error was expected")
	ErrUnknownDispute    = errors.New("step refers to a dispute that was not created")
)

// Runner drives an engine on a mock clock.
type Runner struct {
	engine *engine.Engine
	store  *store.Store
	bank   *escrow.Bank
	clock  *clock.Mock
	logger zerolog.Logger

	disputes []common.DisputeID
}

func New(s *store.Store, m *metrics.Metrics, logger zerolog.Logger) *Runner {
	bank := escrow.NewBank()
	mockClock := clock.NewMock()
	return &Runner{
		engine: engine.New(s, bank, mockClock, engine.WithMetrics(m), engine.WithLogger(logger)),
		store:  s,
		bank:   bank,
		clock:  mockClock,
		logger: logger,
	}
}

func (r *Runner) Engine() *engine.Engine {
	return r.engine
}

// Run executes the scenario. Consecutive claim steps scheduled at the same
// instant are submitted concurrently.
func (r *Runner) Run(ctx context.Context, sc *config.Scenario) (*Report, error) {
	start := sc.Start
	r.clock.Set(start)

	if err := r.setup(sc); err != nil {
		return nil, err
	}

	steps := sc.Steps
	for i := 0; i < len(steps); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step := steps[i]
		r.clock.Set(start.Add(step.At))

		if step.Action == config.ActionClaim {
			j := i
			for j < len(steps) && steps[j].Action == config.ActionClaim && steps[j].At == step.At {
				j++
			}
			if err := r.claimAll(ctx, sc, steps[i:j], i); err != nil {
				return nil, err
			}
			i = j
			continue
		}

		if err := r.check(step, i, r.apply(sc, step)); err != nil {
			return nil, err
		}
		i++
	}

	return r.report(sc)
}

func (r *Runner) setup(sc *config.Scenario) error {
	if _, err := r.engine.CreateCourt(sc.Court.Params()); err != nil {
		return err
	}
	courtID := common.CourtID(sc.Court.ID)
	for _, p := range sc.Records {
		if err := r.engine.InitializeRecord(courtID, common.ParticipantID(p)); err != nil {
			return err
		}
	}

	txn := r.store.NewTxn()
	for _, b := range sc.Balances {
		account := escrow.ParticipantAccount(common.ParticipantID(b.Participant), common.Mint(b.Mint))
		if err := r.bank.Deposit(txn, account, b.Amount); err != nil {
			txn.Discard()
			return err
		}
	}
	return txn.Commit()
}

func (r *Runner) claimAll(ctx context.Context, sc *config.Scenario, steps []config.Step, offset int) error {
	g, _ := errgroup.WithContext(ctx)
	for k, step := range steps {
		k, step := k, step
		g.Go(func() error {
			return r.check(step, offset+k, r.apply(sc, step))
		})
	}
	return g.Wait()
}

func (r *Runner) check(step config.Step, index int, err error) error {
	log := r.logger.With().Int("step", index).Str("action", string(step.Action)).Logger()
	if step.ExpectError == "" {
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", index, step.Action, err)
		}
		log.Debug().Msg("step applied")
		return nil
	}
	if err == nil {
		return fmt.Errorf("step %d (%s): %w: %q", index, step.Action, ErrUnexpectedSuccess, step.ExpectError)
	}
	if !strings.Contains(err.Error(), step.ExpectError) {
		return fmt.Errorf("step %d (%s): want error containing %q: %w", index, step.Action, step.ExpectError, err)
	}
	log.Debug().Err(err).Stringer("kind", engine.Classify(err)).Msg("step rejected as expected")
	return nil
}

func (r *Runner) disputeID(index uint64) (common.DisputeID, error) {
	if index >= uint64(len(r.disputes)) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownDispute, index)
	}
	return r.disputes[index], nil
}

func (r *Runner) apply(sc *config.Scenario, step config.Step) error {
	courtID := common.CourtID(sc.Court.ID)
	participant := common.ParticipantID(step.Participant)

	if step.Action == config.ActionCreateDispute {
		caller := participant
		if caller == "" {
			caller = common.ParticipantID(sc.Court.Protocol)
		}
		d, err := r.engine.CreateDispute(courtID, caller, step.Options.Users(), step.Options.Configuration(r.engine.Now()))
		if err != nil {
			return err
		}
		r.disputes = append(r.disputes, d.ID)
		return nil
	}
	if step.Action == config.ActionEditCourt {
		return r.engine.EditCourt(courtID, participant, step.MaxVotes)
	}

	id, err := r.disputeID(step.Dispute)
	if err != nil {
		return err
	}

	switch step.Action {
	case config.ActionInteract:
		return r.engine.Interact(courtID, id, participant)
	case config.ActionCase:
		return r.engine.SubmitCase(courtID, id, participant, step.Evidence)
	case config.ActionCommit:
		commitment := crypto.NewCommitment(step.Candidate, []byte(step.Salt))
		return r.engine.CommitVote(courtID, id, participant, commitment)
	case config.ActionReveal:
		return r.engine.RevealVote(courtID, id, participant, common.ParticipantID(step.Candidate), []byte(step.Salt))
	case config.ActionClose:
		_, err := r.engine.CloseDispute(courtID, id)
		return err
	case config.ActionClaim:
		_, err := r.engine.Claim(courtID, id, participant)
		return err
	}
	return fmt.Errorf("unknown action %q", step.Action)
}
