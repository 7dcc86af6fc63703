package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agora-courts/agora-courts/internal/crypto"
	"github.com/agora-courts/agora-courts/internal/store"
	"github.com/agora-courts/agora-courts/pkg/db/pebble"
)

func RandomHash(t *testing.T) crypto.Hash {
	var hash crypto.Hash
	_, err := rand.Read(hash[:])
	require.NoError(t, err)
	return hash
}

func RandomSalt(t *testing.T, size int) []byte {
	salt := make([]byte, size)
	_, err := rand.Read(salt)
	require.NoError(t, err)
	return salt
}

// NewStore returns a store over an in-memory pebble instance, closed when the test ends.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := pebble.NewKVStore()
	require.NoError(t, err)
	s, err := store.New(kv, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
