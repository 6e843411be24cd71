package naming

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"xentonic/internal/monzo"
	"xentonic/internal/primes"
)

// degrees24 buckets an octave-reduced cents value (24 fifty-cent
// buckets) into 0..7 stepspan units.
var degrees24 = [24]int64{
	0, 1, 1, 1, 1, 2, // 0 … 300
	2, 2, 2, 3, 3, 3, // 300 … 600
	4, 4, 4, 5, 5, 5, // 600 … 900
	5, 6, 6, 6, 6, 7, // 900 … 1200
}

var (
	colorValOnce sync.Once
	colorVal     []int64
)

// ColorVal returns the per-prime stepspan weights: each registry
// prime's cents value reduced mod 1200, bucketed by degrees24, plus 7
// per whole octave. Computed once.
func ColorVal() []int64 {
	colorValOnce.Do(func() {
		colorVal = make([]int64, primes.Count())
		for i := 0; i < primes.Count(); i++ {
			cents := 1200 * math.Log2(float64(primes.At(i)))
			octaves := math.Floor(cents / 1200)
			reduced := cents - 1200*octaves
			colorVal[i] = degrees24[int(reduced/50)] + int64(octaves)*7
		}
	})
	out := make([]int64, len(colorVal))
	copy(out, colorVal)
	return out
}

// colorTokens maps the small primes onto their fixed over/under color
// letters; other primes spell out as "<p>o"/"<p>u".
var colorTokens = map[int64][2]string{
	5:  {"y", "g"},
	7:  {"z", "r"},
	11: {"1o", "1u"},
	13: {"3o", "3u"},
}

// ColorName spells an integer monzo in color notation, e.g. 9/8 -> "w2",
// 81/80 -> "g1", 531441/524288 -> "LLw-2".
func ColorName(m *monzo.Monzo) (string, error) {
	if !m.Integral() {
		return "", ErrNonIntegralMonzo
	}

	val := ColorVal()
	var stepspan int64
	var colorSum int64
	for i := 0; i < m.Len(); i++ {
		e := m.EntryAt(i).Num().Int64()
		stepspan += e * val[i]
		if i >= 1 {
			colorSum += e
		}
	}

	negative := stepspan < 0
	stepspan = absInt64(stepspan)
	octaves, reduced := stepspan/7, stepspan%7
	// Notational convention: totals in [7,9] and exactly 15 read as an
	// octave plus a small degree, not the naive residue.
	if (stepspan >= 7 && stepspan <= 9) || stepspan == 15 {
		octaves--
		reduced += 7
	}
	degree := reduced + 1
	// colorSum/7 never has fractional part exactly 1/2, so plain
	// rounding agrees with the source's banker's rounding.
	magnitude := int64(math.Round(float64(colorSum) / 7))

	chunks := m.PrimesExponents(2, -1)

	var b strings.Builder
	if magnitude > 0 {
		b.WriteString(multiplied("L", magnitude))
	} else {
		b.WriteString(multiplied("s", magnitude))
	}
	b.WriteString(multiplied("c", octaves))
	if len(chunks) == 0 {
		b.WriteString("w")
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		pp := chunks[i]
		exp := pp.Exponent.Num().Int64()
		b.WriteString(multiplied(colorToken(pp.Prime, exp), exp))
	}
	if negative {
		b.WriteString("-")
	}
	fmt.Fprintf(&b, "%d", degree)
	return b.String(), nil
}

func colorToken(p, exp int64) string {
	mode := 0
	if exp < 0 {
		mode = 1
	}
	if tok, ok := colorTokens[p]; ok {
		return tok[mode]
	}
	return fmt.Sprintf("%d%s", p, [2]string{"o", "u"}[mode])
}

// multiplied renders a token repeated |n| times in abbreviated form:
// the token itself for 1, doubled last character for 2, and a
// superscript count for 3 and above.
func multiplied(s string, n int64) string {
	n = absInt64(n)
	switch {
	case n == 0:
		return ""
	case n == 1:
		return s
	case n == 2:
		runes := []rune(s)
		return s + string(runes[len(runes)-1])
	default:
		return s + superscript(n)
	}
}

var superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

func superscript(n int64) string {
	var b strings.Builder
	for _, d := range fmt.Sprintf("%d", n) {
		b.WriteRune(superscriptDigits[d-'0'])
	}
	return b.String()
}
