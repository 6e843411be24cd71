package interval

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xentonic/internal/exact"
	"xentonic/internal/primes"
)

func mustParse(t *testing.T, s string) *Interval {
	t.Helper()
	iv, err := Parse(s)
	require.NoError(t, err, "literal %q", s)
	return iv
}

func TestConstructorValidation(t *testing.T) {
	t.Run("ratio must be positive and finite", func(t *testing.T) {
		for _, f := range []float64{-3, 0, math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := FromRatioFloat(f)
			assert.ErrorIs(t, err, ErrNonPositiveRatio, "ratio=%v", f)
		}
		_, err := FromRat(big.NewRat(-3, 2))
		assert.ErrorIs(t, err, ErrNonPositiveRatio)
	})

	t.Run("cents must be finite", func(t *testing.T) {
		for _, f := range []float64{math.NaN(), math.Inf(1)} {
			_, err := FromCentsFloat(f)
			assert.ErrorIs(t, err, ErrNonFiniteCents, "cents=%v", f)
		}
	})

	t.Run("exactly one representation", func(t *testing.T) {
		_, err := New(Options{})
		assert.ErrorIs(t, err, ErrAmbiguousConstructor)

		c := exact.FromInt(700)
		r := exact.FromFrac(3, 2)
		_, err = New(Options{Cents: &c, Ratio: &r})
		assert.ErrorIs(t, err, ErrAmbiguousConstructor)

		iv, err := New(Options{Ratio: &r})
		require.NoError(t, err)
		assert.Equal(t, "3/2", iv.String())
	})

	t.Run("factor keys must be registry primes", func(t *testing.T) {
		_, err := FromFactors(map[int64]*big.Rat{6: big.NewRat(1, 1)})
		assert.ErrorIs(t, err, primes.ErrNotPrime)
	})

	t.Run("ratio with unknown prime factor", func(t *testing.T) {
		_, err := FromRat(big.NewRat(547, 1))
		assert.ErrorIs(t, err, primes.ErrUnsupportedPrime)
	})
}

func TestExactnessAtConstruction(t *testing.T) {
	t.Run("rational ratios are exact", func(t *testing.T) {
		iv, err := FromRat(big.NewRat(14, 9))
		require.NoError(t, err)
		require.True(t, iv.IsExact())
		factors, _ := iv.Factorization()
		require.Len(t, factors, 3)
		assert.Equal(t, "1", factors[2].RatString())
		assert.Equal(t, "-2", factors[3].RatString())
		assert.Equal(t, "1", factors[7].RatString())
	})

	t.Run("grid floats snap to exact", func(t *testing.T) {
		iv, err := FromRatioFloat(1.2)
		require.NoError(t, err)
		require.True(t, iv.IsExact())
		factors, _ := iv.Factorization()
		assert.Equal(t, "1", factors[2].RatString())
		assert.Equal(t, "1", factors[3].RatString())
		assert.Equal(t, "-1", factors[5].RatString())
	})

	t.Run("exact cents become a power of two", func(t *testing.T) {
		iv, err := FromCents(exact.FromInt(400))
		require.NoError(t, err)
		require.True(t, iv.IsExact())
		factors, _ := iv.Factorization()
		require.Len(t, factors, 1)
		assert.Equal(t, "1/3", factors[2].RatString())
	})

	t.Run("off-grid floats stay inexact", func(t *testing.T) {
		iv, err := FromRatioFloat(math.Pi)
		require.NoError(t, err)
		assert.False(t, iv.IsExact())
		_, ok := iv.Factorization()
		assert.False(t, ok)
	})

	t.Run("whole-cents floats become exact", func(t *testing.T) {
		// A float ratio that is exactly a power of two: 2^-10.
		iv, err := FromRatioFloat(1.0 / 1024)
		require.NoError(t, err)
		assert.True(t, iv.IsExact())
	})
}

func TestRatioAndCents(t *testing.T) {
	t.Run("exact fifth", func(t *testing.T) {
		iv := mustParse(t, "3/2")
		r, ok := iv.Ratio().Rat()
		require.True(t, ok)
		assert.Equal(t, "3/2", r.RatString())
		assert.False(t, iv.Cents().IsExact())
		assert.InDelta(t, 701.9550008653874, iv.Cents().Float64(), 1e-9)
	})

	t.Run("tempered fifth has exact cents", func(t *testing.T) {
		iv, err := FromEdoSteps(exact.FromInt(7), exact.FromInt(12))
		require.NoError(t, err)
		c, ok := iv.Cents().Rat()
		require.True(t, ok)
		assert.Equal(t, "700", c.RatString())
		assert.False(t, iv.Ratio().IsExact())
		assert.InDelta(t, 1.4983070768766815, iv.Ratio().Float64(), 1e-12)
	})

	t.Run("EdxSteps exact when the division divides", func(t *testing.T) {
		iv, err := FromEdoSteps(exact.FromInt(7), exact.FromInt(12))
		require.NoError(t, err)
		steps, err := iv.EdxSteps(exact.FromInt(12), exact.FromInt(2))
		require.NoError(t, err)
		s, ok := steps.Rat()
		require.True(t, ok)
		assert.Equal(t, "7", s.RatString())
	})

	t.Run("EdxSteps floats otherwise", func(t *testing.T) {
		steps, err := mustParse(t, "3/2").EdxSteps(exact.FromInt(12), exact.FromInt(2))
		require.NoError(t, err)
		assert.False(t, steps.IsExact())
		assert.InDelta(t, 7.01955, steps.Float64(), 1e-4)
	})

	t.Run("unison period is rejected", func(t *testing.T) {
		_, err := mustParse(t, "3/2").EdxSteps(exact.FromInt(12), exact.One())
		assert.ErrorIs(t, err, ErrUnisonPeriod)

		// An inexact unison must not slip into the log fallback.
		_, err = mustParse(t, "3/2").EdxSteps(exact.FromInt(12), exact.FromFloat(1))
		assert.ErrorIs(t, err, ErrUnisonPeriod)
	})

	t.Run("nontrivial period", func(t *testing.T) {
		// 9/4 is two steps of 3-ED-(27/8).
		iv := mustParse(t, "9/4")
		steps, err := iv.EdxSteps(exact.FromInt(3), exact.FromFrac(27, 8))
		require.NoError(t, err)
		s, ok := steps.Rat()
		require.True(t, ok)
		assert.Equal(t, "2", s.RatString())
	})
}

func TestComparison(t *testing.T) {
	t.Run("coarse equality absorbs float noise", func(t *testing.T) {
		a := mustParse(t, "3/2")
		b, err := FromCentsFloat(701.9550008653874)
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("near-unison descent hashes like unison", func(t *testing.T) {
		// Coarse rounding of a tiny descending interval lands on
		// negative zero; the hash must still match the unison's.
		down, err := FromCentsFloat(-1e-11)
		require.NoError(t, err)
		assert.True(t, down.Equal(Zero()))
		assert.Equal(t, Zero().Hash(), down.Hash())
		assert.Equal(t, 0.0, down.CoarseCents())
		assert.False(t, math.Signbit(down.CoarseCents()))
	})

	t.Run("ordering", func(t *testing.T) {
		assert.Equal(t, -1, mustParse(t, "5/4").Compare(mustParse(t, "3/2")))
		assert.Equal(t, 1, mustParse(t, "2").Compare(mustParse(t, "700c")))
		assert.Equal(t, 0, Zero().Compare(mustParse(t, "1")))
	})
}

func TestParseAndParsableString(t *testing.T) {
	cases := []struct {
		in       string
		parsable string
	}{
		{"3/2", "3/2"},
		{"7", "7"},
		{"1.5", "3/2"},
		{"1", "1"},
		{"700c", "7\\12"},
		{"0 c", "1"},
		{"-3.5¢", "-7\\2400"},
		{"7\\12", "7\\12"},
		{"-4\\17", "-4\\17"},
		{"3.5\\6", "7\\12"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			iv := mustParse(t, tc.in)
			got := iv.ParsableString()
			assert.Equal(t, tc.parsable, got)

			back := mustParse(t, got)
			assert.True(t, iv.Equal(back), "%q did not round-trip", got)
		})
	}

	t.Run("rejected literals", func(t *testing.T) {
		for _, s := range []string{"", "x", "3/2/5", "c", `\12`, "7/0"} {
			_, err := Parse(s)
			assert.Error(t, err, "literal %q", s)
		}
	})

	t.Run("inexact fallback is float cents", func(t *testing.T) {
		iv, err := FromRatioFloat(math.Pi)
		require.NoError(t, err)
		s := iv.ParsableString()
		back := mustParse(t, s)
		assert.True(t, iv.Equal(back), "%q did not round-trip", s)
	})
}

func TestStringForms(t *testing.T) {
	t.Run("exact ratio", func(t *testing.T) {
		assert.Equal(t, "3/2", mustParse(t, "3/2").String())
	})

	t.Run("exact cents", func(t *testing.T) {
		assert.Equal(t, "700¢", mustParse(t, "700c").String())
	})

	t.Run("combined hint", func(t *testing.T) {
		iv, err := FromRatioFloat(math.Pi)
		require.NoError(t, err)
		assert.Equal(t, "(1981.80¢ ~ 3.14159)", iv.String())
	})

	t.Run("fixed precision", func(t *testing.T) {
		iv := mustParse(t, "3/2")
		assert.Equal(t, "701.96¢", iv.CentsString(2))
		assert.Equal(t, "1.50000", iv.RatioString(5))
	})
}
