// Package tuning builds playable tunings out of intervals. A tuning
// consumes intervals as opaque values; all interval math stays in the
// interval package.
package tuning

import (
	"errors"
	"fmt"
	"strings"

	"xentonic/internal/exact"
	"xentonic/internal/interval"
)

var (
	// ErrEmptyTuning reports a tuning with no steps.
	ErrEmptyTuning = errors.New("tuning must have at least one step")

	// ErrDecreasingSteps reports steps out of ascending order.
	ErrDecreasingSteps = errors.New("tuning steps must be non-decreasing")
)

// IntervalTuning maps step indices to intervals above the base note.
type IntervalTuning interface {
	Step(index int) (*interval.Interval, error)
}

// Grouped is a tuning given by one group of intervals, repeating
// beyond the group by stacking its last interval (the period).
// Indexing is open-ended in both directions: step 0 is the unison and
// negative indices descend below the base note.
type Grouped struct {
	intervals []*interval.Interval
}

// NewGrouped builds a grouped tuning from non-decreasing intervals.
func NewGrouped(intervals ...*interval.Interval) (*Grouped, error) {
	if len(intervals) == 0 {
		return nil, ErrEmptyTuning
	}
	for i := 1; i < len(intervals); i++ {
		if intervals[i-1].Compare(intervals[i]) > 0 {
			return nil, fmt.Errorf("%w: %s before %s",
				ErrDecreasingSteps, intervals[i-1], intervals[i])
		}
	}
	kept := make([]*interval.Interval, len(intervals))
	copy(kept, intervals)
	return &Grouped{intervals: kept}, nil
}

// Regular builds an equal-division-of-period tuning with the given
// number of steps per period.
func Regular(stepCount int, period *interval.Interval) (*Grouped, error) {
	if stepCount <= 0 {
		return nil, ErrEmptyTuning
	}
	intervals := make([]*interval.Interval, stepCount)
	for i := 1; i <= stepCount; i++ {
		step, err := period.Multiply(exact.FromFrac(int64(i), int64(stepCount)))
		if err != nil {
			return nil, err
		}
		intervals[i-1] = step
	}
	return NewGrouped(intervals...)
}

// Step returns the interval at a step index.
func (t *Grouped) Step(index int) (*interval.Interval, error) {
	groupCount, i := floorDivMod(index-1, len(t.intervals))
	period, err := t.Period().Multiply(exact.FromInt(int64(groupCount)))
	if err != nil {
		return nil, err
	}
	return t.intervals[i].Stack(period)
}

// Period returns the repeating interval of the tuning.
func (t *Grouped) Period() *interval.Interval {
	return t.intervals[len(t.intervals)-1]
}

// Intervals returns the tuning's one group of steps.
func (t *Grouped) Intervals() []*interval.Interval {
	out := make([]*interval.Interval, len(t.intervals))
	copy(out, t.intervals)
	return out
}

func (t *Grouped) String() string {
	parts := make([]string, len(t.intervals))
	for i, iv := range t.intervals {
		parts[i] = iv.String()
	}
	return "GroupedTuning:\n  " + strings.Join(parts, "\n  ")
}

func floorDivMod(a, b int) (int, int) {
	q := a / b
	r := a % b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

// Tuning anchors an interval tuning to a base frequency in Hz.
type Tuning struct {
	BaseFreq float64
	Steps    IntervalTuning
}

// Frequency returns the frequency of a step index in Hz.
func (t Tuning) Frequency(index int) (float64, error) {
	step, err := t.Steps.Step(index)
	if err != nil {
		return 0, err
	}
	return step.StackFrequency(t.BaseFreq), nil
}
