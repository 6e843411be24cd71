package exact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("integers are always exact", func(t *testing.T) {
		for _, s := range []string{"3", "-12", " 0 "} {
			n, ok := Parse(s, false)
			require.True(t, ok, "s=%q", s)
			assert.True(t, n.IsInt(), "s=%q", s)
		}
	})

	t.Run("fractions are always exact", func(t *testing.T) {
		n, ok := Parse("3/2", false)
		require.True(t, ok)
		assert.Equal(t, "3/2", n.String())
		assert.True(t, n.IsExact())
	})

	t.Run("decimals parse as floats by default", func(t *testing.T) {
		n, ok := Parse("1.5", false)
		require.True(t, ok)
		assert.False(t, n.IsExact())
		assert.Equal(t, 1.5, n.Float64())
	})

	t.Run("preferExact keeps decimals exact", func(t *testing.T) {
		n, ok := Parse("3.5", true)
		require.True(t, ok)
		require.True(t, n.IsExact())
		assert.Equal(t, "7/2", n.String())
	})

	t.Run("scientific notation", func(t *testing.T) {
		n, ok := Parse("1e3", false)
		require.True(t, ok)
		assert.Equal(t, 1000.0, n.Float64())
	})

	t.Run("rejected forms", func(t *testing.T) {
		for _, s := range []string{"", "  ", "abc", "inf", "-Inf", "NaN", "3/2/5", "1..2"} {
			_, ok := Parse(s, false)
			assert.False(t, ok, "s=%q", s)
		}
	})
}
