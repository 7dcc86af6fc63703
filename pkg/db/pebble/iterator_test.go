package pebble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	store, err := NewKVStore()
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	data := map[string]string{
		"a": "value-a",
		"b": "value-b",
		"c": "value-c",
		"d": "value-d",
	}
	for k, v := range data {
		require.NoError(t, store.Put([]byte(k), []byte(v)))
	}

	t.Run("full_range_iteration", func(t *testing.T) {
		iter, err := store.NewIterator(nil, nil)
		require.NoError(t, err)
		defer iter.Close() //nolint:errcheck

		var keys []string
		for iter.Next() {
			value, err := iter.Value()
			require.NoError(t, err)
			assert.Equal(t, data[string(iter.Key())], string(value))
			keys = append(keys, string(iter.Key()))
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, keys)

		// an exhausted iterator stays exhausted
		assert.False(t, iter.Next())
	})

	t.Run("bounded_range_iteration", func(t *testing.T) {
		iter, err := store.NewIterator([]byte("b"), []byte("d"))
		require.NoError(t, err)
		defer iter.Close() //nolint:errcheck

		var keys []string
		for iter.Next() {
			keys = append(keys, string(iter.Key()))
		}
		assert.Equal(t, []string{"b", "c"}, keys)
	})

	t.Run("value_before_next", func(t *testing.T) {
		iter, err := store.NewIterator(nil, nil)
		require.NoError(t, err)
		defer iter.Close() //nolint:errcheck

		_, err = iter.Value()
		assert.ErrorIs(t, err, ErrIteratorInvalid)
	})
}
