package primes

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("count", func(t *testing.T) {
		assert.Equal(t, 100, Count())
	})

	t.Run("strictly increasing", func(t *testing.T) {
		ps := Known()
		for i := 1; i < len(ps); i++ {
			assert.Greater(t, ps[i], ps[i-1])
		}
	})

	t.Run("boundaries", func(t *testing.T) {
		assert.Equal(t, int64(2), At(0))
		assert.Equal(t, int64(541), At(Count()-1))
	})

	t.Run("index roundtrip", func(t *testing.T) {
		for i, p := range Known() {
			got, err := Index(p)
			require.NoError(t, err)
			assert.Equal(t, i, got)
		}
	})

	t.Run("non-primes rejected", func(t *testing.T) {
		for _, n := range []int64{1, 4, 6, 9, 100, 543, 1000003} {
			_, err := Index(n)
			assert.ErrorIs(t, err, ErrNotPrime, "n=%d", n)
		}
	})
}

func TestFactorize(t *testing.T) {
	cases := []struct {
		name  string
		ratio *big.Rat
		want  map[int64]int64
	}{
		{"one", big.NewRat(1, 1), map[int64]int64{}},
		{"two", big.NewRat(2, 1), map[int64]int64{2: 1}},
		{"half", big.NewRat(1, 2), map[int64]int64{2: -1}},
		{"fifth", big.NewRat(3, 2), map[int64]int64{2: -1, 3: 1}},
		{"septimal", big.NewRat(14, 9), map[int64]int64{2: 1, 3: -2, 7: 1}},
		{"81/1210", big.NewRat(81, 1210), map[int64]int64{2: -1, 3: 4, 5: -1, 11: -2}},
		{"101^4", mustRat(t, "104060401"), map[int64]int64{101: 4}},
		{"syntonic comma", big.NewRat(81, 80), map[int64]int64{2: -4, 3: 4, 5: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Factorize(tc.ratio)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("cached results are independent copies", func(t *testing.T) {
		a, err := Factorize(big.NewRat(15, 8))
		require.NoError(t, err)
		a[2] = 99
		b, err := Factorize(big.NewRat(15, 8))
		require.NoError(t, err)
		assert.Equal(t, map[int64]int64{2: -3, 3: 1, 5: 1}, b)
	})

	t.Run("prime outside the registry", func(t *testing.T) {
		_, err := Factorize(big.NewRat(547, 1))
		assert.ErrorIs(t, err, ErrUnsupportedPrime)

		// 2 * 547: partial reduction still fails.
		_, err = Factorize(big.NewRat(1094, 3))
		assert.ErrorIs(t, err, ErrUnsupportedPrime)
	})

	t.Run("nonpositive ratios", func(t *testing.T) {
		for _, r := range []*big.Rat{big.NewRat(0, 1), big.NewRat(-3, 2)} {
			_, err := Factorize(r)
			assert.ErrorIs(t, err, ErrNonPositiveRatio)
		}
	})
}

func mustRat(t *testing.T, s string) *big.Rat {
	t.Helper()
	r, ok := new(big.Rat).SetString(s)
	require.True(t, ok, "bad rational literal %q", s)
	return r
}
