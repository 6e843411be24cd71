package interval

import (
	"fmt"
	"math"
	"math/big"

	"xentonic/internal/exact"
)

// Stack composes two intervals (the group operation: ratios multiply,
// cents add). Two exact operands stay exact via entrywise factorization
// sum; otherwise the float ratios are multiplied and re-snapped.
func (iv *Interval) Stack(other *Interval) (*Interval, error) {
	if iv.factors != nil && other.factors != nil {
		sum := make(map[int64]*big.Rat, len(iv.factors)+len(other.factors))
		for p, e := range iv.factors {
			sum[p] = new(big.Rat).Set(e)
		}
		for p, e := range other.factors {
			if cur, ok := sum[p]; ok {
				cur.Add(cur, e)
				if cur.Sign() == 0 {
					delete(sum, p)
				}
			} else {
				sum[p] = new(big.Rat).Set(e)
			}
		}
		return &Interval{factors: sum}, nil
	}
	return FromRatio(iv.Ratio().Mul(other.Ratio()))
}

// Subtract stacks the inverse of other.
func (iv *Interval) Subtract(other *Interval) (*Interval, error) {
	inv, err := other.Inverse()
	if err != nil {
		return nil, err
	}
	return iv.Stack(inv)
}

// StackFrequency applies the interval to a frequency in Hz.
func (iv *Interval) StackFrequency(freq float64) float64 {
	return iv.Ratio().Float64() * freq
}

// Multiply scales the interval: stacking it on itself k times, or
// stretching it by a fractional or negative amount. An exact interval
// scaled by an exact amount stays exact.
func (iv *Interval) Multiply(k exact.Number) (*Interval, error) {
	if iv.factors != nil && k.IsExact() {
		kr, _ := k.Rat()
		scaled := make(map[int64]*big.Rat, len(iv.factors))
		for p, e := range iv.factors {
			prod := new(big.Rat).Mul(e, kr)
			if prod.Sign() != 0 {
				scaled[p] = prod
			}
		}
		return &Interval{factors: scaled}, nil
	}
	return FromRatioFloat(math.Pow(iv.Ratio().Float64(), k.Float64()))
}

// Inverse flips the interval's direction.
func (iv *Interval) Inverse() (*Interval, error) {
	return iv.Multiply(exact.FromInt(-1))
}

// Abs returns the interval pointed upwards.
func (iv *Interval) Abs() (*Interval, error) {
	if iv.Ratio().Cmp(exact.One()) > 0 {
		return iv, nil
	}
	return iv.Inverse()
}

// StretchFactor returns how much this interval must stretch to become
// other, i.e. the logarithm of other in base iv. The result is exact
// whenever other is an exact rational power of an exact iv.
func (iv *Interval) StretchFactor(other *Interval) (exact.Number, error) {
	if iv.factors != nil {
		if k, ok := other.multipleOf(iv.factors); ok {
			return exact.FromRat(k), nil
		}
	}
	den := math.Log(iv.Ratio().Float64())
	if den == 0 {
		return exact.Number{}, fmt.Errorf("%w: unison stretches to nothing", ErrUnisonPeriod)
	}
	return exact.FromFloat(math.Log(other.Ratio().Float64()) / den), nil
}

// Modulo reduces the interval into [unison, period).
func (iv *Interval) Modulo(period *Interval) (*Interval, error) {
	_, rem, err := iv.DivMod(period)
	return rem, err
}

// DivMod reduces the interval by a period, returning how many periods
// to stack back and the remainder in [unison, period). A descending
// period reduces the inverted pair and flips the remainder back, so the
// identity quot·period + rem == iv always holds.
func (iv *Interval) DivMod(period *Interval) (int64, *Interval, error) {
	pr := period.Ratio()
	if pr.Cmp(exact.One()) == 0 {
		return 0, nil, fmt.Errorf("%w: cannot reduce by it", ErrUnisonPeriod)
	}

	x, per := iv, period
	upwards := true
	if pr.Cmp(exact.One()) < 0 {
		upwards = false
		var err error
		if x, err = x.Inverse(); err != nil {
			return 0, nil, err
		}
		if per, err = per.Inverse(); err != nil {
			return 0, nil, err
		}
	}

	quot := floorNumber(x.Cents().Div(per.Cents()))
	step, err := per.Multiply(exact.FromInt(quot))
	if err != nil {
		return 0, nil, err
	}
	rem, err := x.Subtract(step)
	if err != nil {
		return 0, nil, err
	}

	// Floating error in the quotient can push the remainder just
	// outside [unison, period); renormalize by a single period step.
	one := exact.One()
	if rem.Ratio().Cmp(one) < 0 {
		if rem, err = rem.Stack(per); err != nil {
			return 0, nil, err
		}
		quot--
	} else if rem.Compare(per) >= 0 {
		if rem, err = rem.Subtract(per); err != nil {
			return 0, nil, err
		}
		quot++
	}

	if !upwards {
		if rem, err = rem.Inverse(); err != nil {
			return 0, nil, err
		}
	}
	return quot, rem, nil
}

// ApproximateInEdx finds the nearest step count of the interval in an
// equal division of a period, plus the signed approximation error.
func (iv *Interval) ApproximateInEdx(divisions, period exact.Number) (int64, *Interval, error) {
	steps, err := iv.EdxSteps(divisions, period)
	if err != nil {
		return 0, nil, err
	}
	rounded := steps.RoundToEven()
	approx, err := FromEdxSteps(exact.FromInt(rounded), divisions, period)
	if err != nil {
		return 0, nil, err
	}
	diff, err := approx.Subtract(iv)
	if err != nil {
		return 0, nil, err
	}
	return rounded, diff, nil
}

// floorNumber floors an exact or inexact number to an int64.
func floorNumber(n exact.Number) int64 {
	if r, ok := n.Rat(); ok {
		return new(big.Int).Div(r.Num(), r.Denom()).Int64()
	}
	return int64(math.Floor(n.Float64()))
}
