package interval

import (
	"xentonic/internal/exact"
)

// Approximation is one term of a convergent sequence: the approximant
// and its signed error relative to the approximated interval. Diff is
// nil for a zero approximant (no interval has ratio 0).
type Approximation struct {
	Value exact.Number
	Diff  *Interval
}

// RatioConvergents enumerates successive best rational approximations
// of the interval's ratio. Each call starts a fresh sequence; the
// sequence terminates when the ratio is exactly rational, with the
// exact ratio as its final term.
type RatioConvergents struct {
	target *Interval
	seq    *exact.Convergents
}

// RatioConvergents starts the ratio convergent sequence.
func (iv *Interval) RatioConvergents() *RatioConvergents {
	return &RatioConvergents{
		target: iv,
		seq:    exact.NewConvergents(iv.Ratio()),
	}
}

// Next yields the next rational approximation, or false when done.
func (c *RatioConvergents) Next() (Approximation, bool) {
	r, ok := c.seq.Next()
	if !ok {
		return Approximation{}, false
	}
	approx := Approximation{Value: exact.FromRat(r)}
	if r.Sign() > 0 {
		// Build the candidate from the float value: a convergent's
		// numerator or denominator may contain primes beyond the
		// registry, which only the inexact representation can carry.
		f, _ := r.Float64()
		if cand, err := FromRatioFloat(f); err == nil {
			if diff, err := cand.Subtract(c.target); err == nil {
				approx.Diff = diff
			}
		}
	}
	return approx, true
}

// EdxConvergents enumerates successive equal-division approximations of
// the interval against a period: each convergent m/n reads "m steps of
// n-ED-period".
type EdxConvergents struct {
	target *Interval
	period exact.Number
	seq    *exact.Convergents
}

// EdxConvergents starts the EDX convergent sequence for a period.
func (iv *Interval) EdxConvergents(period exact.Number) (*EdxConvergents, error) {
	steps, err := iv.EdxSteps(exact.One(), period)
	if err != nil {
		return nil, err
	}
	return &EdxConvergents{
		target: iv,
		period: period,
		seq:    exact.NewConvergents(steps),
	}, nil
}

// Next yields the next equal-division approximation, or false when done.
func (c *EdxConvergents) Next() (Approximation, bool) {
	r, ok := c.seq.Next()
	if !ok {
		return Approximation{}, false
	}
	approx := Approximation{Value: exact.FromRat(r)}
	if cand, err := FromEdxSteps(exact.FromRat(r), exact.One(), c.period); err == nil {
		if diff, err := cand.Subtract(c.target); err == nil {
			approx.Diff = diff
		}
	}
	return approx, true
}
