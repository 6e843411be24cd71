// Package ji implements finitely generated subgroups of just
// intonation: multiplicative groups of positive rationals given by a
// normal generator list.
package ji

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"xentonic/internal/monzo"
	"xentonic/internal/primes"
)

var (
	// ErrNonNormalGenerators reports a generator list that is not in
	// normal form: every generator must exceed 1 and successive
	// generators must use a strictly higher prime.
	ErrNonNormalGenerators = errors.New("generators are not a normal list")

	// ErrNotAPrime reports a p-limit request for a non-prime.
	ErrNotAPrime = errors.New("not a prime")

	// ErrFractionalMonzo reports a membership test on a monzo with
	// non-integer exponents; such an element is never in a JI subgroup.
	ErrFractionalMonzo = errors.New("fractional monzo is never in a JI subgroup")
)

// Subgroup is an immutable JI subgroup. Its generator monzos form a
// triangular basis: each one's highest prime strictly exceeds the
// previous one's, which is what makes membership reduction canonical.
type Subgroup struct {
	generators []*big.Rat
	genMonzos  []*monzo.Monzo
	limit      int64 // highest prime used; 0 for the trivial group
}

// New builds a subgroup from a normal list of generators. Generators
// are factorized at construction; normality is checked.
func New(generators ...*big.Rat) (*Subgroup, error) {
	monzos := make([]*monzo.Monzo, len(generators))
	for i, g := range generators {
		if g.Cmp(oneRat) <= 0 {
			return nil, fmt.Errorf("%w: %s <= 1", ErrNonNormalGenerators, g.RatString())
		}
		m, err := monzo.FromRatio(g)
		if err != nil {
			return nil, err
		}
		if i > 0 && monzos[i-1].Len() >= m.Len() {
			return nil, fmt.Errorf("%w: %s does not raise the prime limit of %s",
				ErrNonNormalGenerators, m, monzos[i-1])
		}
		monzos[i] = m
	}

	gens := make([]*big.Rat, len(generators))
	for i, g := range generators {
		gens[i] = new(big.Rat).Set(g)
	}
	sg := &Subgroup{generators: gens, genMonzos: monzos}
	if len(monzos) > 0 {
		sg.limit, _ = monzos[len(monzos)-1].Limit()
	}
	return sg, nil
}

var oneRat = big.NewRat(1, 1)

// PLimit builds the subgroup of all primes up to and including p.
func PLimit(p int64) (*Subgroup, error) {
	i, err := primes.Index(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrNotAPrime, p)
	}
	gens := make([]*big.Rat, i+1)
	for j := 0; j <= i; j++ {
		gens[j] = new(big.Rat).SetInt64(primes.At(j))
	}
	return New(gens...)
}

// Generators returns a copy of the generator ratios.
func (s *Subgroup) Generators() []*big.Rat {
	out := make([]*big.Rat, len(s.generators))
	for i, g := range s.generators {
		out[i] = new(big.Rat).Set(g)
	}
	return out
}

// GenMonzos returns the generators' monzos (cached at construction).
func (s *Subgroup) GenMonzos() []*monzo.Monzo {
	out := make([]*monzo.Monzo, len(s.genMonzos))
	copy(out, s.genMonzos)
	return out
}

// Limit returns the subgroup's prime limit, or 0 for the trivial group.
func (s *Subgroup) Limit() int64 { return s.limit }

// String renders the dot-joined generator list, e.g. "2.5/3.7/5.11/3".
func (s *Subgroup) String() string {
	parts := make([]string, len(s.generators))
	for i, g := range s.generators {
		parts[i] = g.RatString()
	}
	return strings.Join(parts, ".")
}

// Contains tests membership of an integer monzo. Reduction runs from
// the highest-limit generator downward: a nonzero leading exponent must
// be an exact integer multiple of the current generator's leading
// exponent, which is then cancelled by a linear combination; the
// element is contained iff it reduces to zero.
func (s *Subgroup) Contains(elem *monzo.Monzo) (bool, error) {
	if !elem.Integral() {
		return false, ErrFractionalMonzo
	}
	for i := len(s.genMonzos) - 1; i >= 0; i-- {
		if elem.Len() == 0 {
			return true, nil
		}
		gen := s.genMonzos[i]
		if elem.Len() > gen.Len() {
			return false, nil
		}
		if elem.Len() < gen.Len() {
			continue
		}
		eLead := elem.EntryAt(elem.Len() - 1).Num()
		gLead := gen.EntryAt(gen.Len() - 1).Num()
		quot, rem := new(big.Int).QuoRem(eLead, gLead, new(big.Int))
		if rem.Sign() != 0 {
			return false, nil
		}
		elem = monzo.LinComb(
			monzo.IntTerm(elem, 1),
			monzo.Term{Monzo: gen, Coeff: new(big.Rat).SetInt(new(big.Int).Neg(quot))},
		)
	}
	return elem.Len() == 0, nil
}

// ContainsRatio tests membership of a ratio.
func (s *Subgroup) ContainsRatio(r *big.Rat) (bool, error) {
	m, err := monzo.FromRatio(r)
	if err != nil {
		return false, err
	}
	return s.Contains(m)
}

// IsSubgroupOf reports whether every generator of s lies in other.
func (s *Subgroup) IsSubgroupOf(other *Subgroup) bool {
	for i := len(s.genMonzos) - 1; i >= 0; i-- {
		ok, err := other.Contains(s.genMonzos[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// Isomorphic reports whether the two subgroups contain each other and
// share a prime limit.
func (s *Subgroup) Isomorphic(other *Subgroup) bool {
	if s.limit != other.limit {
		return false
	}
	return s.IsSubgroupOf(other) && other.IsSubgroupOf(s)
}
