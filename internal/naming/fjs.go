// Package naming derives canonical interval spellings from monzos:
// FJS (Functional Just System) names and color notation names.
package naming

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"xentonic/internal/monzo"
	"xentonic/internal/primes"
)

// ErrNonIntegralMonzo reports a naming request for a monzo with
// fractional exponents; names exist only for rational intervals.
var ErrNonIntegralMonzo = errors.New("cannot name a monzo with fractional exponents")

// ErrUnknownStyle reports an unsupported FJS rendering style.
var ErrUnknownStyle = errors.New("unknown FJS rendering style")

// DefaultToleranceRatio is the formal-comma search tolerance, as an
// interval ratio. See <https://misotanni.github.io/fjs/en/index.html>.
var DefaultToleranceRatio = big.NewRat(65, 63)

// FJS names intervals in the Functional Just System: each prime beyond
// the 3-limit gets a formal comma, and the residue after removing the
// commas is spelled as a Pythagorean interval.
type FJS struct {
	radiusCents float64
	commas      []*monzo.Monzo // indexed from the third registry prime on
}

// NewFJS builds a namer with the standard tolerance.
func NewFJS() *FJS {
	fjs, err := NewFJSWithTolerance(DefaultToleranceRatio)
	if err != nil {
		panic(err) // the default tolerance is valid
	}
	return fjs
}

// NewFJSWithTolerance builds a namer with a custom tolerance radius,
// given as an interval ratio > 1. Formal commas for every registry
// prime are computed once, here.
func NewFJSWithTolerance(tolerance *big.Rat) (*FJS, error) {
	if tolerance.Cmp(oneRat) <= 0 {
		return nil, fmt.Errorf("tolerance ratio must exceed 1, got %s", tolerance.RatString())
	}
	f, _ := tolerance.Float64()
	fjs := &FJS{radiusCents: 1200 * math.Log2(f)}

	fjs.commas = make([]*monzo.Monzo, primes.Count()-2)
	for i := 2; i < primes.Count(); i++ {
		comma, err := fjs.formalComma(primes.At(i))
		if err != nil {
			return nil, err
		}
		fjs.commas[i-2] = comma
	}
	return fjs, nil
}

var (
	oneRat = big.NewRat(1, 1)
	twoRat = big.NewRat(2, 1)
)

// formalComma finds the formal comma of a prime p: the smallest-shift
// power k of 3 (searched in order 0, +1, -1, +2, -2, …) such that
// p·3^-k, octave-reduced and balanced into [1/√2, √2), lands within the
// tolerance radius of unison.
func (f *FJS) formalComma(p int64) (*monzo.Monzo, error) {
	for k := 0; ; k = nextShift(k) {
		pow := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(3), big.NewInt(absInt64(int64(k))), nil))
		r := big.NewRat(p, 1)
		if k >= 0 {
			r.Quo(r, pow)
		} else {
			r.Mul(r, pow)
		}
		r = reduceBalanced(r)
		rf, _ := r.Float64()
		if math.Abs(1200*math.Log2(rf)) < f.radiusCents {
			return monzo.FromRatio(r)
		}
	}
}

// nextShift walks 0, 1, -1, 2, -2, …
func nextShift(k int) int {
	if k > 0 {
		return -k
	}
	return -k + 1
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// reduceBalanced octave-reduces r into [1, 2), then halves it once more
// if it is at or above √2, landing in [1/√2, √2). All comparisons are
// exact (r² against 2 avoids the irrational boundary).
func reduceBalanced(r *big.Rat) *big.Rat {
	r = new(big.Rat).Set(r)
	for r.Cmp(oneRat) < 0 {
		r.Mul(r, twoRat)
	}
	for r.Cmp(twoRat) >= 0 {
		r.Quo(r, twoRat)
	}
	sq := new(big.Rat).Mul(r, r)
	if sq.Cmp(twoRat) >= 0 {
		r.Quo(r, twoRat)
	}
	return r
}

// Commas returns the formal comma monzos, one per registry prime from
// the third on.
func (f *FJS) Commas() []*monzo.Monzo {
	out := make([]*monzo.Monzo, len(f.commas))
	copy(out, f.commas)
	return out
}

// Name derives the FJS name of an integer monzo: subtract each higher
// prime's formal comma per its exponent, leaving a pure 2.3 residue,
// then fold the residue's fifths through the circle-of-fifths tables.
// Of the direct and negated readings, the one with a nonnegative octave
// count wins, so a name never needs a negative octave shift.
func (f *FJS) Name(m *monzo.Monzo) (Name, error) {
	if !m.Integral() {
		return Name{}, ErrNonIntegralMonzo
	}

	terms := []monzo.Term{monzo.IntTerm(m, 1)}
	for i := 2; i < m.Len(); i++ {
		x := m.EntryAt(i)
		if x.Sign() != 0 {
			terms = append(terms, monzo.Term{
				Monzo: f.commas[i-2],
				Coeff: new(big.Rat).Neg(x),
			})
		}
	}
	pythagorean := monzo.LinComb(terms...)

	var otonal, utonal []int64
	for _, pp := range m.PrimesExponents(2, -1) {
		x := pp.Exponent.Num().Int64()
		for i := int64(0); i < absInt64(x); i++ {
			if x > 0 {
				otonal = append(otonal, pp.Prime)
			} else {
				utonal = append(utonal, pp.Prime)
			}
		}
	}

	twos := pythagorean.EntryAt(0).Num().Int64()
	threes := pythagorean.EntryAt(1).Num().Int64()
	for _, cand := range [...][3]int64{{twos, threes, 1}, {-twos, -threes, -1}} {
		variant, degree, octaves := foldFifths(cand[0], cand[1])
		if octaves >= 0 {
			return Name{
				Variant: variant,
				Degree:  int((degree + octaves*7) * cand[2]),
				Otonal:  otonal,
				Utonal:  utonal,
			}, nil
		}
	}
	panic("naming: unreachable, one of the two readings always has octaves >= 0")
}

// foldFifths maps a 2.3 residue (twos, fifths) to the quality variant,
// the in-octave degree and the octave count, via fixed tables in
// circle-of-fifths order.
func foldFifths(twos, fifths int64) (variant int, degree, octaves int64) {
	fifthsD7, fifthsM7 := floorDivMod(fifths, 7)
	octaveShift := [7]int64{0, 0, 1, 1, 2, 2, 3}[fifthsM7] + 4*fifthsD7
	octaves = twos + fifths + octaveShift

	absFifths := absInt64(fifths)
	switch {
	case absFifths <= 1: // perfect
		variant = 0
	case absFifths <= 5: // minor / major
		variant = 1
	default: // diminished / augmented, one deeper per 7 fifths
		variant = int((absFifths + 8) / 7)
	}
	if fifths < 0 {
		variant = -variant
	}

	degree = [7]int64{0, 4, 1, 5, 2, 6, 3}[fifthsM7]
	return variant, degree, octaves
}

func floorDivMod(a, b int64) (int64, int64) {
	q := a / b
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return q, r
}

// Style selects an FJS rendering flavor.
type Style int

const (
	StyleASCII Style = iota
	StyleHTML
	StyleTeX
)

// Name is an FJS interval name: a quality variant (0 perfect, ±1
// minor/major, ±2 and beyond diminished/augmented), a signed 0-based
// octave-extended degree, and the otonal/utonal comma primes.
type Name struct {
	Variant int
	Degree  int
	Otonal  []int64
	Utonal  []int64
}

type styleData struct {
	otonalOpen, otonalClose string
	utonalOpen, utonalClose string
	join                    string
}

var styles = map[Style]styleData{
	StyleASCII: {"^", "", "_", "", ","},
	StyleHTML:  {"<sup>", "</sup>", "<sub>", "</sub>", ","},
	StyleTeX:   {"^{", "}{}", "_{", "}", "{,}"},
}

// String renders the ASCII form, e.g. "M3^5" or "m-2^11_7,7".
func (n Name) String() string {
	s, err := n.Format(StyleASCII)
	if err != nil {
		panic(err)
	}
	return s
}

// Format renders the name in the requested style.
func (n Name) Format(style Style) (string, error) {
	data, ok := styles[style]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownStyle, style)
	}

	var b strings.Builder
	switch v := n.Variant; {
	case v >= -1 && v <= 1:
		b.WriteString([3]string{"m", "P", "M"}[v+1])
	case v < 0:
		b.WriteString(strings.Repeat("d", -v-1))
	default:
		b.WriteString(strings.Repeat("A", v-1))
	}
	if n.Degree < 0 {
		b.WriteByte('-')
	}
	deg := n.Degree
	if deg < 0 {
		deg = -deg
	}
	b.WriteString(strconv.Itoa(deg + 1))

	writeCommas := func(open, close string, ps []int64) {
		if len(ps) == 0 {
			return
		}
		b.WriteString(open)
		for i, p := range ps {
			if i > 0 {
				b.WriteString(data.join)
			}
			b.WriteString(strconv.FormatInt(p, 10))
		}
		b.WriteString(close)
	}
	writeCommas(data.otonalOpen, data.otonalClose, n.Otonal)
	writeCommas(data.utonalOpen, data.utonalClose, n.Utonal)
	return b.String(), nil
}
