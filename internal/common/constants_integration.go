//go:build integration

package common

// Smaller limits so integration runs hit the bounds quickly.
const (
	DefaultMaxDisputeVotes = 2
	MaxEvidenceLength      = 64
	MaxSaltLength          = 32
)
