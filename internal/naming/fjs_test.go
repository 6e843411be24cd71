package naming

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xentonic/internal/monzo"
	"xentonic/internal/primes"
)

func mustMonzo(t *testing.T, ratio string) *monzo.Monzo {
	t.Helper()
	r, ok := new(big.Rat).SetString(ratio)
	require.True(t, ok, "bad rational literal %q", ratio)
	m, err := monzo.FromRatio(r)
	require.NoError(t, err, "ratio %q", ratio)
	return m
}

func TestFormalCommas(t *testing.T) {
	fjs := NewFJS()
	commas := fjs.Commas()
	require.Len(t, commas, primes.Count()-2)

	// The standard tolerance yields the canonical comma per prime.
	want := []string{
		"80/81",     // 5
		"63/64",     // 7
		"33/32",     // 11
		"1053/1024", // 13
		"4131/4096", // 17
		"513/512",   // 19
		"736/729",   // 23
		"261/256",   // 29
		"248/243",   // 31
	}
	for i, w := range want {
		r, ok := commas[i].Ratio().Rat()
		require.True(t, ok)
		assert.Equal(t, w, r.RatString(), "comma of %d", primes.At(i+2))
	}
}

func TestNewFJSWithTolerance(t *testing.T) {
	t.Run("tolerance must exceed 1", func(t *testing.T) {
		_, err := NewFJSWithTolerance(big.NewRat(1, 1))
		assert.Error(t, err)
		_, err = NewFJSWithTolerance(big.NewRat(63, 65))
		assert.Error(t, err)
	})

	t.Run("custom tolerance changes commas", func(t *testing.T) {
		fjs, err := NewFJSWithTolerance(big.NewRat(65, 63))
		require.NoError(t, err)
		assert.Equal(t, NewFJS().Commas()[0].String(), fjs.Commas()[0].String())
	})
}

func TestFJSNames(t *testing.T) {
	fjs := NewFJS()

	cases := []struct {
		ratio string
		want  string
	}{
		{"66/65", "P1^11_5,13"},
		{"99/98", "m-2^11_7,7"},
		{"98/99", "m2^7,7_11"},
		{"648/625", "d2_5,5,5,5"},
		{"11/10", "m2^11_5"},
		{"6272/5625", "ddd4^7,7_5,5,5,5"},
		{"9/8", "M2"},
		{"64/55", "m3_5,11"},
		{"161/128", "M3^7,23"},
		{"25/18", "A4^5,5"},
		{"16384/10935", "d6_5"},
		{"19/11", "m7^19_11"},
		{"959/540", "dd8^7,137_5"},
		{"19/10", "d8^19_5"},
		{"49/25", "d9^7,7_5,5"},
		{"16/5", "m13_5"},
		{"4/1", "P15"},
		{"5/1", "M17^5"},
		{"6/1", "P19"},
		{"7/1", "m21^7"},
		{"182/9", "d32^7,13"},
		{"1333341/34816", "AAA36^31,59_17"},
		{"1/1", "P1"},
		{"2048/2187", "d1"},
		{"2187/2048", "A1"},
		{"2/1", "P8"},
		{"1/2", "P-8"},
		{"4096/2187", "d8"},
		{"2187/1024", "A8"},
		{"1024/2187", "A-8"},
		{"2187/4096", "d-8"},
		{"4194304/4782969", "dd1"},
		{"4782969/4194304", "AA1"},
		{"1073741824/1162261467", "dd2"},
		{"43046721/33554432", "AA2"},
		{"1162261467/1073741824", "dd-2"},
		{"33554432/43046721", "AA-2"},
		{"128/2187", "A-29"},
		{"2187/128", "A29"},
		{"81/16", "M17"},
		{"16/81", "M-17"},
		{"243/32", "M21"},
		{"32/243", "M-21"},
		{"2/3", "P-5"},
		{"128/27", "m17"},
		{"27/128", "m-17"},
		{"64/9", "m21"},
		{"9/64", "m-21"},
		{"531441/262144", "A7"},
		{"531441/524288", "d-2"},
	}
	for _, tc := range cases {
		t.Run(tc.ratio, func(t *testing.T) {
			name, err := fjs.Name(mustMonzo(t, tc.ratio))
			require.NoError(t, err)
			assert.Equal(t, tc.want, name.String())
		})
	}

	t.Run("fractional monzo is rejected", func(t *testing.T) {
		m, err := monzo.New(big.NewRat(1, 2))
		require.NoError(t, err)
		_, err = fjs.Name(m)
		assert.ErrorIs(t, err, ErrNonIntegralMonzo)
	})
}

func TestNameFormat(t *testing.T) {
	fjs := NewFJS()
	name, err := fjs.Name(mustMonzo(t, "66/65"))
	require.NoError(t, err)

	t.Run("ascii", func(t *testing.T) {
		got, err := name.Format(StyleASCII)
		require.NoError(t, err)
		assert.Equal(t, "P1^11_5,13", got)
	})

	t.Run("html", func(t *testing.T) {
		got, err := name.Format(StyleHTML)
		require.NoError(t, err)
		assert.Equal(t, "P1<sup>11</sup><sub>5,13</sub>", got)
	})

	t.Run("tex", func(t *testing.T) {
		got, err := name.Format(StyleTeX)
		require.NoError(t, err)
		assert.Equal(t, "P1^{11}{}_{5{,}13}", got)
	})

	t.Run("unknown style", func(t *testing.T) {
		_, err := name.Format(Style(99))
		assert.ErrorIs(t, err, ErrUnknownStyle)
	})

	t.Run("plain pythagorean name has no commas", func(t *testing.T) {
		n, err := fjs.Name(mustMonzo(t, "9/8"))
		require.NoError(t, err)
		got, err := n.Format(StyleHTML)
		require.NoError(t, err)
		assert.Equal(t, "M2", got)
	})
}
