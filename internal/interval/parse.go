package interval

import (
	"errors"
	"fmt"
	"strings"

	"xentonic/internal/exact"
)

// ErrUnknownFormat reports interval text in none of the accepted forms.
var ErrUnknownFormat = errors.New("unknown interval format")

// Parse reads an interval literal:
//
//	7/5  3  1.25        ratio (fractions stay exact, decimals snap)
//	700c  0¢  -3.5c     cents
//	7\12  -4\17  3.5\6  equal-division steps (steps\divisions)
//
// This is the thin text front end; it only produces constructor
// arguments, all validation lives in the constructors.
func Parse(s string) (*Interval, error) {
	s = strings.TrimSpace(s)

	if n, ok := exact.Parse(s, false); ok {
		return FromRatio(n)
	}

	if rest, ok := cutCentsSuffix(s); ok {
		if n, ok := exact.Parse(rest, false); ok {
			return FromCents(n)
		}
	}

	if stepsStr, divsStr, ok := strings.Cut(s, `\`); ok {
		steps, okSteps := exact.Parse(stepsStr, true)
		divs, okDivs := exact.Parse(divsStr, true)
		if okSteps && okDivs {
			return FromEdoSteps(steps, divs)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func cutCentsSuffix(s string) (string, bool) {
	for _, suffix := range []string{"c", "¢"} {
		if rest, ok := strings.CutSuffix(s, suffix); ok {
			return rest, true
		}
	}
	return "", false
}
