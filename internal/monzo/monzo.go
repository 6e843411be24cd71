// Package monzo implements prime-exponent vectors over the prime
// registry. A monzo is a formal vector: equality compares zero-extended
// entries, not the ratio the vector happens to denote.
package monzo

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"

	"xentonic/internal/exact"
	"xentonic/internal/primes"
)

// ErrTooManyEntries reports a vector longer than the prime registry.
var ErrTooManyEntries = errors.New("more entries than known primes")

// Monzo is an immutable exponent vector indexed by registry position.
// Trailing zeros are stripped at construction, so the stored length is
// canonical; EntryAt pads with zeros beyond it.
type Monzo struct {
	entries []*big.Rat

	ratioOnce sync.Once
	ratioVal  exact.Number
}

// New builds a monzo from exponents, stripping trailing zeros. It fails
// with ErrTooManyEntries when there are more entries than known primes.
// Entries are copied.
func New(entries ...*big.Rat) (*Monzo, error) {
	last := -1
	for i, e := range entries {
		if e.Sign() != 0 {
			last = i
		}
	}
	if last+1 > primes.Count() {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, last+1, primes.Count())
	}
	kept := make([]*big.Rat, last+1)
	for i := range kept {
		kept[i] = new(big.Rat).Set(entries[i])
	}
	return &Monzo{entries: kept}, nil
}

// FromInts builds an all-integer monzo.
func FromInts(entries ...int64) (*Monzo, error) {
	rats := make([]*big.Rat, len(entries))
	for i, e := range entries {
		rats[i] = new(big.Rat).SetInt64(e)
	}
	return New(rats...)
}

// Len returns the canonical (trailing-zero-stripped) length.
func (m *Monzo) Len() int { return len(m.entries) }

// EntryAt returns the exponent at a registry index, zero beyond the
// stored length. The index must be nonnegative.
func (m *Monzo) EntryAt(index int) *big.Rat {
	if index < 0 {
		panic("monzo: negative entry index")
	}
	if index >= len(m.entries) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(m.entries[index])
}

// EntryAtPrime returns the exponent of a given prime.
func (m *Monzo) EntryAtPrime(p int64) (*big.Rat, error) {
	i, err := primes.Index(p)
	if err != nil {
		return nil, err
	}
	return m.EntryAt(i), nil
}

// Integral reports whether every exponent is an integer.
func (m *Monzo) Integral() bool {
	for _, e := range m.entries {
		if !e.IsInt() {
			return false
		}
	}
	return true
}

// Limit returns the highest prime this monzo uses, or false for the
// empty (unison) monzo.
func (m *Monzo) Limit() (int64, bool) {
	if len(m.entries) == 0 {
		return 0, false
	}
	return primes.At(len(m.entries) - 1), true
}

// Equal compares zero-extended entry sequences.
func (m *Monzo) Equal(other *Monzo) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for i, e := range m.entries {
		if e.Cmp(other.entries[i]) != 0 {
			return false
		}
	}
	return true
}

// PrimePower is one nonzero term of a factorization.
type PrimePower struct {
	Prime    int64
	Exponent *big.Rat
}

// PrimesExponents returns the nonzero (prime, exponent) pairs with
// registry index in [start, stop). stop < 0 means the full length.
func (m *Monzo) PrimesExponents(start, stop int) []PrimePower {
	if stop < 0 || stop > len(m.entries) {
		stop = len(m.entries)
	}
	var out []PrimePower
	for i := start; i < stop; i++ {
		if m.entries[i].Sign() != 0 {
			out = append(out, PrimePower{Prime: primes.At(i), Exponent: new(big.Rat).Set(m.entries[i])})
		}
	}
	return out
}

// Term is one weighted operand of a linear combination.
type Term struct {
	Monzo *Monzo
	Coeff *big.Rat
}

// IntTerm is a Term convenience for integer coefficients.
func IntTerm(m *Monzo, coeff int64) Term {
	return Term{Monzo: m, Coeff: new(big.Rat).SetInt64(coeff)}
}

// LinComb computes the entrywise weighted sum of several monzos,
// zero-extending every operand to the longest. This is the one vector
// primitive subgroup reduction and FJS naming both lean on.
func LinComb(terms ...Term) *Monzo {
	length := 0
	for _, t := range terms {
		if t.Monzo.Len() > length {
			length = t.Monzo.Len()
		}
	}
	entries := make([]*big.Rat, length)
	scaled := new(big.Rat)
	for i := range entries {
		sum := new(big.Rat)
		for _, t := range terms {
			if i < len(t.Monzo.entries) {
				scaled.Mul(t.Monzo.entries[i], t.Coeff)
				sum.Add(sum, scaled)
			}
		}
		entries[i] = sum
	}
	// Cannot exceed the registry: every operand already fit.
	m, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

// Ratio returns the value of this monzo as a number: an exact rational
// when every exponent is an integer, a float otherwise. The result is
// computed once and cached.
func (m *Monzo) Ratio() exact.Number {
	m.ratioOnce.Do(func() {
		m.ratioVal = m.computeRatio()
	})
	return m.ratioVal
}

func (m *Monzo) computeRatio() exact.Number {
	if m.Integral() {
		num := big.NewInt(1)
		den := big.NewInt(1)
		for _, pp := range m.PrimesExponents(0, -1) {
			p := big.NewInt(pp.Prime)
			e := pp.Exponent.Num().Int64()
			if e > 0 {
				num.Mul(num, new(big.Int).Exp(p, big.NewInt(e), nil))
			} else {
				den.Mul(den, new(big.Int).Exp(p, big.NewInt(-e), nil))
			}
		}
		return exact.FromRat(new(big.Rat).SetFrac(num, den))
	}
	prod := 1.0
	for _, pp := range m.PrimesExponents(0, -1) {
		e, _ := pp.Exponent.Float64()
		prod *= math.Pow(float64(pp.Prime), e)
	}
	return exact.FromFloat(prod)
}

// fromRatioCache memoizes FromRatio by canonical rational string.
var fromRatioCache sync.Map // string -> *Monzo

// FromRatio factorizes a positive rational into its monzo. Results are
// memoized; failures follow the factorization engine's taxonomy.
func FromRatio(ratio *big.Rat) (*Monzo, error) {
	key := ratio.RatString()
	if cached, ok := fromRatioCache.Load(key); ok {
		return cached.(*Monzo), nil
	}
	factors, err := primes.Factorize(ratio)
	if err != nil {
		return nil, err
	}
	length := 0
	for p := range factors {
		i, _ := primes.Index(p)
		if i+1 > length {
			length = i + 1
		}
	}
	entries := make([]*big.Rat, length)
	for i := range entries {
		entries[i] = new(big.Rat)
	}
	for p, e := range factors {
		i, _ := primes.Index(p)
		entries[i] = new(big.Rat).SetInt64(e)
	}
	m, err := New(entries...)
	if err != nil {
		return nil, err
	}
	fromRatioCache.Store(key, m)
	return m, nil
}

// String renders the ket form, e.g. "[-4 4 -1>".
func (m *Monzo) String() string {
	return "[" + m.Separated() + ">"
}

// Separated renders just the space-delimited entries.
func (m *Monzo) Separated() string {
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = e.RatString()
	}
	return strings.Join(parts, " ")
}

// Factored renders the multiplicative decomposition,
// e.g. "2 * 3^2 * 5 * 11^(1/2) * 23^-1".
func (m *Monzo) Factored() string {
	var parts []string
	for _, pp := range m.PrimesExponents(0, -1) {
		switch {
		case pp.Exponent.Cmp(big.NewRat(1, 1)) == 0:
			parts = append(parts, fmt.Sprintf("%d", pp.Prime))
		case pp.Exponent.IsInt():
			parts = append(parts, fmt.Sprintf("%d^%s", pp.Prime, pp.Exponent.RatString()))
		default:
			parts = append(parts, fmt.Sprintf("%d^(%s)", pp.Prime, pp.Exponent.RatString()))
		}
	}
	return strings.Join(parts, " * ")
}
