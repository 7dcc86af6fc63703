//go:build !integration

package common

const (
	// DefaultMaxDisputeVotes bounds a voter record's claim queue when a court
	// does not configure its own limit.
	DefaultMaxDisputeVotes = 5

	// MaxEvidenceLength is the largest evidence reference accepted for a case.
	MaxEvidenceLength = 1024

	// MaxSaltLength bounds the salt revealed together with a vote.
	MaxSaltLength = 256
)
