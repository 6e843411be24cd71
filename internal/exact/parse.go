package exact

import (
	"math/big"
	"strconv"
	"strings"
)

// Parse reads a numeric literal: an integer, a decimal, or a fraction
// "n/d". Decimals parse as inexact floats (construction snapping is the
// caller's business). When preferExact is set, fraction parsing is
// attempted before float parsing, so "3/2" and "1.5" both stay exact in
// contexts like equal-division literals.
func Parse(s string, preferExact bool) (Number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt(i), true
	}
	if preferExact {
		if r, ok := parseRat(s); ok {
			return FromRat(r), true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "nNiI") {
		// Reject "inf" and "NaN" spellings; literal notation only.
		return FromFloat(f), true
	}
	if !preferExact {
		if r, ok := parseRat(s); ok {
			return FromRat(r), true
		}
	}
	return Number{}, false
}

// parseRat accepts fraction ("3/2") and exact decimal ("3.5") forms.
func parseRat(s string) (*big.Rat, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return r, true
}
