// Package interval implements the exactness-tracked interval value.
//
// An Interval is either exact, a factorization over the prime
// registry possibly with fractional exponents (a symbolic EDO step is
// 2^(k/n)), or inexact, an opaque positive float ratio. Every
// operation states which side of that union it preserves; exactness is
// load-bearing for the naming layer, which needs exact fifths and step
// counts wherever they exist.
package interval

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	"xentonic/internal/exact"
	"xentonic/internal/primes"
)

var (
	// ErrAmbiguousConstructor reports zero or several of factorization,
	// cents and ratio given at construction.
	ErrAmbiguousConstructor = errors.New("exactly one of factorization, cents and ratio must be given")

	// ErrNonPositiveRatio reports a ratio outside (0, +inf).
	ErrNonPositiveRatio = errors.New("ratio must be positive and finite")

	// ErrNonFiniteCents reports a cents value that is not a finite number.
	ErrNonFiniteCents = errors.New("cents must be finite")

	// ErrUnisonPeriod reports a reduction or logarithm against a unison period.
	ErrUnisonPeriod = errors.New("period must not be a unison")
)

// Interval is an immutable musical interval. Its underlying ratio is
// always in (0, +inf). Derived measures are computed lazily and cached.
type Interval struct {
	factors map[int64]*big.Rat // non-nil iff exact; no zero entries
	approx  float64            // inexact ratio, used when factors is nil

	ratioOnce sync.Once
	ratioVal  exact.Number
	centsOnce sync.Once
	centsVal  exact.Number
}

// Options selects exactly one way to construct an Interval.
type Options struct {
	Factors map[int64]*big.Rat
	Cents   *exact.Number
	Ratio   *exact.Number
}

// New constructs an Interval from exactly one of the three
// representations; anything else fails with ErrAmbiguousConstructor.
func New(opts Options) (*Interval, error) {
	given := 0
	if opts.Factors != nil {
		given++
	}
	if opts.Cents != nil {
		given++
	}
	if opts.Ratio != nil {
		given++
	}
	if given != 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrAmbiguousConstructor, given)
	}
	switch {
	case opts.Factors != nil:
		return FromFactors(opts.Factors)
	case opts.Cents != nil:
		return FromCents(*opts.Cents)
	default:
		return FromRatio(*opts.Ratio)
	}
}

// Zero returns the unison interval.
func Zero() *Interval {
	return &Interval{factors: map[int64]*big.Rat{}}
}

// FromFactors constructs an exact interval from a prime factorization.
// Zero exponents are dropped; keys must be registry primes.
func FromFactors(factors map[int64]*big.Rat) (*Interval, error) {
	kept := make(map[int64]*big.Rat, len(factors))
	for p, e := range factors {
		if _, err := primes.Index(p); err != nil {
			return nil, err
		}
		if e.Sign() != 0 {
			kept[p] = new(big.Rat).Set(e)
		}
	}
	return &Interval{factors: kept}, nil
}

// FromRatio constructs an interval from a frequency ratio. The ratio
// must be positive and finite. Floats landing exactly on the 1/3600
// grid are snapped to the exact rational first, to absorb round-trip
// noise; a remaining float whose cents value is a whole number becomes
// the exact power of 2 it denotes, and anything else stays inexact.
func FromRatio(ratio exact.Number) (*Interval, error) {
	if !ratio.IsFinite() || ratio.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveRatio, ratio)
	}
	ratio = exact.SnapNumber(ratio)
	if r, ok := ratio.Rat(); ok {
		factors, err := primes.Factorize(r)
		if err != nil {
			return nil, err
		}
		return &Interval{factors: ratFactors(factors)}, nil
	}
	f := ratio.Float64()
	cents := math.Log2(f) * 1200
	if cents == math.Trunc(cents) && math.Abs(cents) < 1<<53 {
		return fromExactCents(big.NewRat(int64(cents), 1)), nil
	}
	return &Interval{approx: f}, nil
}

// FromRat constructs an exact interval from a rational ratio.
func FromRat(ratio *big.Rat) (*Interval, error) {
	return FromRatio(exact.FromRat(ratio))
}

// FromRatioFloat constructs an interval from a float ratio (snapping applies).
func FromRatioFloat(ratio float64) (*Interval, error) {
	return FromRatio(exact.FromFloat(ratio))
}

// FromCents constructs an interval from a cents measure. Grid snapping
// applies; an exact cents value c becomes the factorization 2^(c/1200).
func FromCents(cents exact.Number) (*Interval, error) {
	if !cents.IsFinite() {
		return nil, fmt.Errorf("%w: %s", ErrNonFiniteCents, cents)
	}
	cents = exact.SnapNumber(cents)
	if c, ok := cents.Rat(); ok {
		return fromExactCents(c), nil
	}
	return &Interval{approx: math.Exp2(cents.Float64() / 1200)}, nil
}

// FromCentsFloat constructs an interval from a float cents value.
func FromCentsFloat(cents float64) (*Interval, error) {
	return FromCents(exact.FromFloat(cents))
}

func fromExactCents(c *big.Rat) *Interval {
	if c.Sign() == 0 {
		return Zero()
	}
	exp := new(big.Rat).Quo(c, big.NewRat(1200, 1))
	return &Interval{factors: map[int64]*big.Rat{2: exp}}
}

// FromEdxSteps constructs the interval of `steps` steps in an equal
// division of `period` into `divisions` parts. Exact steps over exact
// divisions of an exact period stay exact.
func FromEdxSteps(steps, divisions, period exact.Number) (*Interval, error) {
	if divisions.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero divisions", ErrNonPositiveRatio)
	}
	base, err := FromRatio(period)
	if err != nil {
		return nil, err
	}
	return base.Multiply(steps.Div(divisions))
}

// FromEdoSteps is FromEdxSteps against the octave.
func FromEdoSteps(steps, divisions exact.Number) (*Interval, error) {
	return FromEdxSteps(steps, divisions, exact.FromInt(2))
}

// IsExact reports whether the interval carries an exact factorization.
func (iv *Interval) IsExact() bool { return iv.factors != nil }

// Factorization returns a copy of the prime factorization, or false
// when the interval is irrational relative to the prime basis.
func (iv *Interval) Factorization() (map[int64]*big.Rat, bool) {
	if iv.factors == nil {
		return nil, false
	}
	out := make(map[int64]*big.Rat, len(iv.factors))
	for p, e := range iv.factors {
		out[p] = new(big.Rat).Set(e)
	}
	return out, true
}

// Ratio returns the interval as a number: exact when the factorization
// has all-integer exponents, a float otherwise. Cached per instance.
func (iv *Interval) Ratio() exact.Number {
	iv.ratioOnce.Do(func() {
		iv.ratioVal = iv.computeRatio()
	})
	return iv.ratioVal
}

func (iv *Interval) computeRatio() exact.Number {
	if iv.factors == nil {
		return exact.FromFloat(iv.approx)
	}
	if r, ok := iv.exactRatio(); ok {
		return exact.FromRat(r)
	}
	prod := 1.0
	for p, e := range iv.factors {
		ef, _ := e.Float64()
		prod *= math.Pow(float64(p), ef)
	}
	return exact.FromFloat(prod)
}

// exactRatio computes the rational value when all exponents are integers.
func (iv *Interval) exactRatio() (*big.Rat, bool) {
	num := big.NewInt(1)
	den := big.NewInt(1)
	for p, e := range iv.factors {
		if !e.IsInt() {
			return nil, false
		}
		n := e.Num().Int64()
		bp := big.NewInt(p)
		if n > 0 {
			num.Mul(num, new(big.Int).Exp(bp, big.NewInt(n), nil))
		} else {
			den.Mul(den, new(big.Int).Exp(bp, big.NewInt(-n), nil))
		}
	}
	return new(big.Rat).SetFrac(num, den), true
}

// multipleOf returns the exponent k such that iv == base^k, when iv is
// exact and such an exact k exists.
func (iv *Interval) multipleOf(base map[int64]*big.Rat) (*big.Rat, bool) {
	if iv.factors == nil {
		return nil, false
	}
	for p := range iv.factors {
		if _, ok := base[p]; !ok {
			return nil, false
		}
	}
	var mult *big.Rat
	for p, d := range base {
		e, ok := iv.factors[p]
		if !ok {
			e = new(big.Rat)
		}
		k := new(big.Rat).Quo(e, d)
		if mult == nil {
			mult = k
		} else if mult.Cmp(k) != 0 {
			return nil, false
		}
	}
	if mult == nil {
		mult = new(big.Rat)
	}
	return mult, true
}

// EdxSteps measures the interval in steps of an equal division of a
// period (period 2 and 1200 divisions give cents). The result is exact
// when the interval is an exact rational power of an exact period,
// otherwise a floating logarithm.
func (iv *Interval) EdxSteps(divisions, period exact.Number) (exact.Number, error) {
	if !period.IsFinite() || period.Sign() <= 0 {
		return exact.Number{}, fmt.Errorf("%w: %s", ErrNonPositiveRatio, period)
	}
	if p, ok := period.Rat(); ok && p.Cmp(oneRat) == 0 {
		return exact.Number{}, fmt.Errorf("%w: cannot measure steps of it", ErrUnisonPeriod)
	}
	if divisions.IsExact() && period.IsExact() {
		p, _ := period.Rat()
		baseFactors, err := primes.Factorize(p)
		if err == nil {
			if steps, ok := iv.multipleOf(ratFactors(baseFactors)); ok {
				return exact.FromRat(steps).Mul(divisions), nil
			}
		}
		// An unfactorizable period only forfeits exactness.
	}
	den := math.Log(period.Float64())
	if den == 0 {
		return exact.Number{}, fmt.Errorf("%w: cannot measure steps of it", ErrUnisonPeriod)
	}
	steps := math.Log(iv.Ratio().Float64()) / den
	return exact.FromFloat(steps * divisions.Float64()), nil
}

var oneRat = big.NewRat(1, 1)

// Cents measures the interval in cents, cached per instance.
func (iv *Interval) Cents() exact.Number {
	iv.centsOnce.Do(func() {
		c, err := iv.EdxSteps(exact.FromInt(1200), exact.FromInt(2))
		if err != nil {
			// Period 2 is always valid.
			panic(err)
		}
		iv.centsVal = c
	})
	return iv.centsVal
}

// CoarseCents returns cents rounded to 10 decimal digits. Equality,
// ordering and hashing all use this deliberately coarse value so that
// floating noise compares equal.
func (iv *Interval) CoarseCents() float64 {
	c := math.Round(iv.Cents().Float64()*1e10) / 1e10
	if c == 0 {
		// Rounding tiny descending intervals yields -0.0, which
		// compares equal to 0.0 but has different float bits; Hash
		// needs the one canonical zero.
		return 0
	}
	return c
}

// Hash returns a hash consistent with Equal.
func (iv *Interval) Hash() uint64 {
	return math.Float64bits(iv.CoarseCents())
}

// Compare orders intervals by coarse cents: -1, 0 or +1.
func (iv *Interval) Compare(other *Interval) int {
	a, b := iv.CoarseCents(), other.CoarseCents()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports coarse equality (cents agreeing to 10 decimal digits).
func (iv *Interval) Equal(other *Interval) bool {
	return iv.Compare(other) == 0
}

func ratFactors(src map[int64]int64) map[int64]*big.Rat {
	out := make(map[int64]*big.Rat, len(src))
	for p, e := range src {
		out[p] = new(big.Rat).SetInt64(e)
	}
	return out
}
