package interval

import (
	"fmt"
	"strconv"

	"xentonic/internal/exact"
)

// String renders the most informative short form: the exact ratio when
// there is one, else exact cents, else a combined cents-and-ratio hint.
func (iv *Interval) String() string {
	ratio := iv.Ratio()
	if r, ok := ratio.Rat(); ok {
		return r.RatString()
	}
	if c, ok := iv.Cents().Rat(); ok {
		return c.RatString() + "¢"
	}
	return fmt.Sprintf("(%s ~ %s)", iv.CentsString(2), iv.RatioString(5))
}

// CentsString renders the cents value with a fixed precision, e.g. "701.96¢".
func (iv *Interval) CentsString(prec int) string {
	return strconv.FormatFloat(iv.Cents().Float64(), 'f', prec, 64) + "¢"
}

// RatioString renders the float ratio with a fixed precision, e.g. "1.49831".
func (iv *Interval) RatioString(prec int) string {
	return strconv.FormatFloat(iv.Ratio().Float64(), 'f', prec, 64)
}

// ParsableString renders a canonical form Parse reads back: the exact
// ratio when there is one; "steps\divisions" when the interval is an
// exact octave fraction; float cents otherwise.
func (iv *Interval) ParsableString() string {
	ratio := iv.Ratio()
	if r, ok := ratio.Rat(); ok {
		return r.RatString()
	}
	cents := iv.Cents()
	if cents.IsExact() {
		octaves, err := iv.EdxSteps(exact.One(), exact.FromInt(2))
		if err == nil {
			if x, ok := octaves.Rat(); ok {
				return fmt.Sprintf("%s\\%s", x.Num(), x.Denom())
			}
		}
	}
	return strconv.FormatFloat(cents.Float64(), 'g', -1, 64) + "¢"
}
