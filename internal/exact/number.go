// Package exact implements the tagged numeric union the interval engine
// is built on: a Number is either an exact big.Rat or an inexact
// float64, and every operation states which it returns. Exactness is
// never upgraded silently; it is only granted at construction or by
// grid snapping.
package exact

import (
	"math"
	"math/big"
	"strconv"
)

// Number is an immutable numeric value, exact or inexact.
// The zero value is an inexact 0; use Zero for the exact one.
type Number struct {
	rat *big.Rat // non-nil iff the value is exact
	f   float64  // used only when rat is nil
}

// FromRat makes an exact Number. The argument is copied.
func FromRat(r *big.Rat) Number {
	return Number{rat: new(big.Rat).Set(r)}
}

// FromInt makes an exact integer Number.
func FromInt(n int64) Number {
	return Number{rat: new(big.Rat).SetInt64(n)}
}

// FromFrac makes an exact Number num/den. den must be nonzero.
func FromFrac(num, den int64) Number {
	return Number{rat: big.NewRat(num, den)}
}

// FromFloat makes an inexact Number.
func FromFloat(f float64) Number {
	return Number{f: f}
}

// Zero returns the exact 0.
func Zero() Number { return FromInt(0) }

// One returns the exact 1.
func One() Number { return FromInt(1) }

// IsExact reports whether the value is an exact rational.
func (n Number) IsExact() bool { return n.rat != nil }

// Rat returns a copy of the exact value, or false for inexact Numbers.
func (n Number) Rat() (*big.Rat, bool) {
	if n.rat == nil {
		return nil, false
	}
	return new(big.Rat).Set(n.rat), true
}

// Float64 returns the value as a float64, rounding exact values.
func (n Number) Float64() float64 {
	if n.rat != nil {
		f, _ := n.rat.Float64()
		return f
	}
	return n.f
}

// IsInt reports whether the value is an exact integer.
func (n Number) IsInt() bool {
	return n.rat != nil && n.rat.IsInt()
}

// Int64 returns the value as an int64 when it is an exact integer that fits.
func (n Number) Int64() (int64, bool) {
	if !n.IsInt() || !n.rat.Num().IsInt64() {
		return 0, false
	}
	return n.rat.Num().Int64(), true
}

// IsFinite reports whether the value is finite (exact values always are).
func (n Number) IsFinite() bool {
	if n.rat != nil {
		return true
	}
	return !math.IsInf(n.f, 0) && !math.IsNaN(n.f)
}

// Sign returns -1, 0 or +1.
func (n Number) Sign() int {
	if n.rat != nil {
		return n.rat.Sign()
	}
	if n.f > 0 {
		return 1
	}
	if n.f < 0 {
		return -1
	}
	return 0
}

// Cmp compares two Numbers. Exact pairs compare exactly; any inexact
// operand forces a float comparison.
func (n Number) Cmp(other Number) int {
	if n.rat != nil && other.rat != nil {
		return n.rat.Cmp(other.rat)
	}
	a, b := n.Float64(), other.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Add returns n + other, exact iff both operands are.
func (n Number) Add(other Number) Number {
	if n.rat != nil && other.rat != nil {
		return Number{rat: new(big.Rat).Add(n.rat, other.rat)}
	}
	return Number{f: n.Float64() + other.Float64()}
}

// Sub returns n - other, exact iff both operands are.
func (n Number) Sub(other Number) Number {
	if n.rat != nil && other.rat != nil {
		return Number{rat: new(big.Rat).Sub(n.rat, other.rat)}
	}
	return Number{f: n.Float64() - other.Float64()}
}

// Mul returns n * other, exact iff both operands are.
func (n Number) Mul(other Number) Number {
	if n.rat != nil && other.rat != nil {
		return Number{rat: new(big.Rat).Mul(n.rat, other.rat)}
	}
	return Number{f: n.Float64() * other.Float64()}
}

// Div returns n / other, exact iff both operands are. other must be nonzero.
func (n Number) Div(other Number) Number {
	if n.rat != nil && other.rat != nil {
		return Number{rat: new(big.Rat).Quo(n.rat, other.rat)}
	}
	return Number{f: n.Float64() / other.Float64()}
}

// Neg returns -n with the same exactness.
func (n Number) Neg() Number {
	if n.rat != nil {
		return Number{rat: new(big.Rat).Neg(n.rat)}
	}
	return Number{f: -n.f}
}

// RoundToEven rounds to the nearest integer, ties to even. Exact
// rationals round exactly; floats use the IEEE rule.
func (n Number) RoundToEven() int64 {
	if n.rat == nil {
		return int64(math.RoundToEven(n.f))
	}
	num, den := n.rat.Num(), n.rat.Denom()
	quot, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	// quot truncates toward zero; rem carries the sign of num.
	q := quot.Int64()
	twice := new(big.Int).Lsh(new(big.Int).Abs(rem), 1)
	switch twice.Cmp(den) {
	case 1:
		if num.Sign() < 0 {
			return q - 1
		}
		return q + 1
	case 0:
		if q%2 == 0 {
			return q
		}
		if num.Sign() < 0 {
			return q - 1
		}
		return q + 1
	default:
		return q
	}
}

// String renders exact values in canonical rational form ("3/2", "7")
// and inexact values in shortest round-trip decimal form.
func (n Number) String() string {
	if n.rat != nil {
		return n.rat.RatString()
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// snapGrid is the construction grid used to absorb floating round-trip
// noise: a float landing exactly on a 1/3600 lattice point becomes the
// exact rational it denotes. 3600 covers both integer cents halves and
// the common decimal literals.
const snapGrid = 3600

// Snap converts a float lying exactly on the 1/3600 grid to the exact
// rational grid point; anything else stays inexact.
func Snap(f float64) Number {
	scaled := f * snapGrid
	if scaled != math.Trunc(scaled) || math.Abs(scaled) >= 1<<53 {
		return FromFloat(f)
	}
	return Number{rat: big.NewRat(int64(scaled), snapGrid)}
}

// SnapNumber applies Snap to inexact Numbers and passes exact ones through.
func SnapNumber(n Number) Number {
	if n.rat != nil {
		return n
	}
	return Snap(n.f)
}
