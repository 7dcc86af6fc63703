package runner

import (
	"slices"
	"strings"

	"github.com/agora-courts/agora-courts/internal/common"
	"github.com/agora-courts/agora-courts/internal/config"
	"github.com/agora-courts/agora-courts/internal/escrow"
)

// Report summarizes the state left behind by a scenario.
type Report struct {
	Court    string           `yaml:"court"`
	Disputes []DisputeReport  `yaml:"disputes"`
	Balances []config.Balance `yaml:"balances"`
}

type DisputeReport struct {
	ID       uint64          `yaml:"id"`
	Status   string          `yaml:"status"`
	Winner   string          `yaml:"winner,omitempty"`
	Votes    uint64          `yaml:"votes"`
	Commits  uint64          `yaml:"commits"`
	VaultRep uint64          `yaml:"vault_rep"`
	VaultPay uint64          `yaml:"vault_pay,omitempty"`
	Receipts []ReceiptReport `yaml:"receipts,omitempty"`
}

type ReceiptReport struct {
	Participant string `yaml:"participant"`
	Outcome     string `yaml:"outcome"`
	Rep         uint64 `yaml:"rep"`
	Pay         uint64 `yaml:"pay"`
	Digest      string `yaml:"digest"`
}

func (r *Runner) report(sc *config.Scenario) (*Report, error) {
	courtID := common.CourtID(sc.Court.ID)
	c, err := r.engine.Court(courtID)
	if err != nil {
		return nil, err
	}

	rep := &Report{Court: sc.Court.ID}
	for _, id := range r.disputes {
		d, err := r.engine.Dispute(courtID, id)
		if err != nil {
			return nil, err
		}
		dr := DisputeReport{
			ID:      uint64(d.ID),
			Status:  d.Status.String(),
			Votes:   d.Votes,
			Commits: d.Commits,
		}
		if d.Winner != nil {
			dr.Winner = string(*d.Winner)
		}
		if dr.VaultRep, err = r.engine.Balance(escrow.DisputeAccount(courtID, id, c.RepMint)); err != nil {
			return nil, err
		}
		if c.PayMint != nil {
			if dr.VaultPay, err = r.engine.Balance(escrow.DisputeAccount(courtID, id, *c.PayMint)); err != nil {
				return nil, err
			}
		}

		receipts, err := r.engine.Receipts(courtID, id)
		if err != nil {
			return nil, err
		}
		for _, rc := range receipts {
			digest, err := rc.Digest()
			if err != nil {
				return nil, err
			}
			dr.Receipts = append(dr.Receipts, ReceiptReport{
				Participant: string(rc.Participant),
				Outcome:     rc.Outcome,
				Rep:         rc.Rep,
				Pay:         rc.Pay,
				Digest:      digest.String(),
			})
		}
		slices.SortFunc(dr.Receipts, func(a, b ReceiptReport) int {
			return strings.Compare(a.Participant, b.Participant)
		})
		rep.Disputes = append(rep.Disputes, dr)
	}

	mints := []common.Mint{c.RepMint}
	if c.PayMint != nil {
		mints = append(mints, *c.PayMint)
	}
	for _, p := range participants(sc) {
		for _, mint := range mints {
			b, err := r.engine.Balance(escrow.ParticipantAccount(p, mint))
			if err != nil {
				return nil, err
			}
			rep.Balances = append(rep.Balances, config.Balance{Participant: string(p), Mint: string(mint), Amount: b})
		}
	}
	return rep, nil
}

// participants lists everyone the scenario names, sorted.
func participants(sc *config.Scenario) []common.ParticipantID {
	var out []common.ParticipantID
	add := func(p string) {
		if p != "" {
			out = append(out, common.ParticipantID(p))
		}
	}
	add(sc.Court.Protocol)
	for _, p := range sc.Records {
		add(p)
	}
	for _, b := range sc.Balances {
		add(b.Participant)
	}
	for _, s := range sc.Steps {
		add(s.Participant)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
