// Package primes provides the fixed prime registry every other package
// indexes against, and the factorization engine that maps positive
// rationals onto it.
package primes

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
)

var (
	// ErrNotPrime reports a value that is not in the registry, either
	// because it is composite or because it exceeds the largest known prime.
	ErrNotPrime = errors.New("not a prime or too large")

	// ErrUnsupportedPrime reports a ratio with a prime factor outside the registry.
	ErrUnsupportedPrime = errors.New("ratio contains a prime factor outside the registry")

	// ErrNonPositiveRatio reports a ratio that is zero or negative.
	ErrNonPositiveRatio = errors.New("ratio must be positive")
)

// known holds the first 100 primes, strictly increasing. This is the
// stable index basis for monzos and subgroup reduction.
var known = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29,
	31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
	233, 239, 241, 251, 257, 263, 269, 271, 277, 281,
	283, 293, 307, 311, 313, 317, 331, 337, 347, 349,
	353, 359, 367, 373, 379, 383, 389, 397, 401, 409,
	419, 421, 431, 433, 439, 443, 449, 457, 461, 463,
	467, 479, 487, 491, 499, 503, 509, 521, 523, 541,
}

// Count returns the size of the registry.
func Count() int { return len(known) }

// At returns the prime at a registry index. The index must be in range.
func At(index int) int64 { return known[index] }

// Known returns a copy of the full registry in increasing order.
func Known() []int64 {
	out := make([]int64, len(known))
	copy(out, known)
	return out
}

// Index returns the registry position of a prime, or ErrNotPrime.
func Index(p int64) (int, error) {
	i := sort.Search(len(known), func(i int) bool { return known[i] >= p })
	if i < len(known) && known[i] == p {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrNotPrime, p)
}

// factorCache memoizes Factorize results keyed by the canonical
// rational string. Entries are immutable once inserted, so concurrent
// readers are safe.
var factorCache sync.Map // string -> map[int64]int64

// Factorize decomposes a positive rational into prime powers over the
// registry. For example 81/1210 yields {2:-1, 3:4, 5:-1, 11:-2}.
//
// Numerator and denominator are trial-divided independently by each
// registry prime in increasing order, tracking the p-adic valuation,
// stopping once both reduce to 1. A leftover factor means the ratio
// needs a prime the registry does not carry.
func Factorize(ratio *big.Rat) (map[int64]int64, error) {
	if ratio.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveRatio, ratio.RatString())
	}
	key := ratio.RatString()
	if cached, ok := factorCache.Load(key); ok {
		return copyFactors(cached.(map[int64]int64)), nil
	}

	num := new(big.Int).Set(ratio.Num())
	den := new(big.Int).Set(ratio.Denom())
	one := big.NewInt(1)

	factors := make(map[int64]int64)
	if num.Cmp(one) != 0 || den.Cmp(one) != 0 {
		done := false
		for _, p := range known {
			bp := big.NewInt(p)
			pos := padicValuation(num, bp)
			neg := padicValuation(den, bp)
			if exp := pos - neg; exp != 0 {
				factors[p] = exp
			}
			if num.Cmp(one) == 0 && den.Cmp(one) == 0 {
				done = true
				break
			}
		}
		if !done {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedPrime, key)
		}
	}

	factorCache.Store(key, factors)
	return copyFactors(factors), nil
}

// padicValuation divides out every power of p from n in place and
// returns how many were removed.
func padicValuation(n, p *big.Int) int64 {
	var count int64
	quot := new(big.Int)
	rem := new(big.Int)
	for {
		quot.QuoRem(n, p, rem)
		if rem.Sign() != 0 {
			return count
		}
		n.Set(quot)
		count++
	}
}

func copyFactors(src map[int64]int64) map[int64]int64 {
	out := make(map[int64]int64, len(src))
	for p, e := range src {
		out[p] = e
	}
	return out
}
