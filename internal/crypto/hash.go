package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

type Hash [HashSize]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText encodes the hash as lowercase hex so records stay readable.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HashData hashes the input data using blake2b-256
func HashData(data []byte) Hash {
	return blake2b.Sum256(data)
}

// KeccakData hashes the concatenation of the input slices using Keccak-256
func KeccakData(data ...[]byte) Hash {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}

	var result Hash
	copy(result[:], hash.Sum(nil))
	return result
}

// NewCommitment binds a vote to a candidate and a secret salt.
// The candidate is length-prefixed so no other candidate and salt split
// of the same bytes opens the commitment.
func NewCommitment(candidate string, salt []byte) Hash {
	return KeccakData(binary.AppendUvarint(nil, uint64(len(candidate))), []byte(candidate), salt)
}

// VerifyCommitment reports whether candidate and salt open the commitment.
func VerifyCommitment(commitment Hash, candidate string, salt []byte) bool {
	return NewCommitment(candidate, salt) == commitment
}

// ParseHash decodes a hex string, with or without a 0x prefix.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("decode hash %q: %w", s, err)
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("decode hash %q: expected %d bytes, got %d", s, HashSize, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}
