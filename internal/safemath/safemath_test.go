package safemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{"zero plus zero", 0, 0, 0, false},
		{"small values", 1, 2, 3, false},
		{"at boundary", math.MaxUint64 - 1, 1, math.MaxUint64, false},
		{"overflow max plus one", math.MaxUint64, 1, 0, true},
		{"overflow max plus max", math.MaxUint64, math.MaxUint64, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Add(tc.a, tc.b)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{"equal", 5, 5, 0, false},
		{"positive result", 10, 3, 7, false},
		{"max minus max", math.MaxUint64, math.MaxUint64, 0, false},
		{"underflow", 3, 10, 0, true},
		{"zero minus one", 0, 1, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Sub(tc.a, tc.b)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMul(t *testing.T) {
	got, err := Mul(1<<32, 1<<31)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), got)

	_, err = Mul(1<<32, 1<<32)
	assert.ErrorIs(t, err, ErrOverflow)

	got, err = Mul(0, math.MaxUint64)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestDiv(t *testing.T) {
	got, err := Div(7, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)

	_, err = Div(7, 0)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSum(t *testing.T) {
	got, err := Sum(1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got)

	got, err = Sum()
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = Sum(math.MaxUint64, 0, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, uint64(2), SaturatingSub(5, 3))
	assert.Zero(t, SaturatingSub(3, 5))
}
