package exact

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a convergent sequence, failing the test if it runs
// past a sanity cap (float64 continued fractions are always finite).
func collect(t *testing.T, c *Convergents) []*big.Rat {
	t.Helper()
	var out []*big.Rat
	for i := 0; ; i++ {
		require.Less(t, i, 200, "sequence did not terminate")
		r, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

func TestConvergents(t *testing.T) {
	t.Run("pi", func(t *testing.T) {
		got := collect(t, NewConvergents(FromFloat(math.Pi)))
		require.GreaterOrEqual(t, len(got), 4)

		want := []string{"3", "22/7", "333/106", "355/113"}
		for i, w := range want {
			assert.Equal(t, w, got[i].RatString(), "term %d", i)
		}

		// The final term is the exact value of the float64 input.
		exact := new(big.Rat).SetFloat64(math.Pi)
		assert.Equal(t, 0, got[len(got)-1].Cmp(exact))

		// Approximations approach the target monotonically in error.
		target, _ := exact.Float64()
		prevErr := math.Inf(1)
		for _, r := range got {
			f, _ := r.Float64()
			err := math.Abs(f - target)
			assert.LessOrEqual(t, err, prevErr)
			prevErr = err
		}
	})

	t.Run("zero", func(t *testing.T) {
		got := collect(t, NewConvergents(Zero()))
		require.Len(t, got, 1)
		assert.Equal(t, "0", got[0].RatString())
	})

	t.Run("exact rational terminates with itself", func(t *testing.T) {
		got := collect(t, NewConvergents(FromFrac(3, 2)))
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].RatString())
		assert.Equal(t, "3/2", got[1].RatString())
	})

	t.Run("negative value", func(t *testing.T) {
		got := collect(t, NewConvergents(FromFrac(-7, 3)))
		assert.Equal(t, "-7/3", got[len(got)-1].RatString())
	})

	t.Run("non-finite input has no terms", func(t *testing.T) {
		got := collect(t, NewConvergents(FromFloat(math.Inf(1))))
		assert.Empty(t, got)
	})

	t.Run("sequences are independent", func(t *testing.T) {
		n := FromFrac(7, 12)
		a := NewConvergents(n)
		b := NewConvergents(n)
		ra, _ := a.Next()
		_, _ = a.Next()
		rb, _ := b.Next()
		assert.Equal(t, 0, ra.Cmp(rb))
	})
}
