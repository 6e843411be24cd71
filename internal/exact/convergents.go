package exact

import "math/big"

// Convergents enumerates the continued-fraction convergents of a value.
// Each call to Convergents returns a fresh, independent sequence, so
// enumeration is referentially transparent: there is no shared cursor.
//
// Inexact inputs are first converted to the exact binary rational the
// float64 denotes, so the sequence always terminates, with the exact
// input value as its final term.
type Convergents struct {
	x        *big.Rat
	mPrev, m *big.Int
	nPrev, n *big.Int
	done     bool
}

// NewConvergents starts the convergent sequence of n.
func NewConvergents(n Number) *Convergents {
	var x *big.Rat
	if r, ok := n.Rat(); ok {
		x = r
	} else {
		x = new(big.Rat).SetFloat64(n.Float64())
		if x == nil {
			// Non-finite input has no convergents.
			return &Convergents{done: true}
		}
	}
	return &Convergents{
		x:     x,
		mPrev: big.NewInt(0),
		m:     big.NewInt(1),
		nPrev: big.NewInt(1),
		n:     big.NewInt(0),
	}
}

// Next yields the next convergent, or false when the sequence is over.
// The classical recurrence: take a = floor(x), update
// m, n := a·m + m_prev, a·n + n_prev, yield m/n, recurse on 1/frac(x).
func (c *Convergents) Next() (*big.Rat, bool) {
	if c.done {
		return nil, false
	}

	a := new(big.Int).Div(c.x.Num(), c.x.Denom()) // floored
	frac := new(big.Rat).Sub(c.x, new(big.Rat).SetInt(a))

	m := new(big.Int).Mul(a, c.m)
	m.Add(m, c.mPrev)
	c.mPrev, c.m = c.m, m

	n := new(big.Int).Mul(a, c.n)
	n.Add(n, c.nPrev)
	c.nPrev, c.n = c.n, n

	if frac.Sign() == 0 {
		c.done = true
	} else {
		c.x = frac.Inv(frac)
	}
	return new(big.Rat).SetFrac(c.m, c.n), true
}
