package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xentonic/internal/interval"
	"xentonic/internal/tuning"
)

var (
	tuningSteps  []string
	tuningPeriod string
	tuningBase   float64
	tuningFrom   int
	tuningCount  int
)

// tuningCmd prints the frequency table of a tuning
var tuningCmd = &cobra.Command{
	Use:   "tuning",
	Short: "Print the frequency table of a tuning",
	Long: `Builds a tuning and prints a frequency table. By default the tuning
is a regular equal division of the period (step count and base
frequency from config); --step gives the group of intervals of an
irregular tuning instead, its last step being the period.

Examples:
  xentonic tuning
  xentonic tuning --period 3 --divisions 13 --base 260
  xentonic tuning --step 9/8 --step 5/4 --step 3/2 --step 2 --from -4 --count 12`,
	Args: cobra.NoArgs,
	RunE: runTuning,
}

var tuningDivisions int

func init() {
	tuningCmd.Flags().StringArrayVar(&tuningSteps, "step", nil, "interval of one tuning group, ascending (repeatable)")
	tuningCmd.Flags().IntVarP(&tuningDivisions, "divisions", "d", 0, "steps per period for a regular tuning (default from config)")
	tuningCmd.Flags().StringVarP(&tuningPeriod, "period", "p", "2", "period interval literal")
	tuningCmd.Flags().Float64VarP(&tuningBase, "base", "b", 0, "base frequency in Hz (default from config)")
	tuningCmd.Flags().IntVar(&tuningFrom, "from", 0, "first step index to print")
	tuningCmd.Flags().IntVarP(&tuningCount, "count", "n", 13, "number of steps to print")
}

func runTuning(cmd *cobra.Command, args []string) error {
	steps, err := buildTuningSteps()
	if err != nil {
		return err
	}
	base := tuningBase
	if base == 0 {
		base = cfg.Tuning.BaseFreq
	}
	t := tuning.Tuning{BaseFreq: base, Steps: steps}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "base: %g Hz\n", base)
	for i := tuningFrom; i < tuningFrom+tuningCount; i++ {
		step, err := steps.Step(i)
		if err != nil {
			return err
		}
		freq, err := t.Frequency(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%4d  %-16s %10.3f Hz\n", i, step, freq)
	}
	return nil
}

func buildTuningSteps() (tuning.IntervalTuning, error) {
	if len(tuningSteps) > 0 {
		intervals := make([]*interval.Interval, len(tuningSteps))
		for i, s := range tuningSteps {
			iv, err := interval.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("bad step %q: %w", s, err)
			}
			intervals[i] = iv
		}
		return tuning.NewGrouped(intervals...)
	}
	period, err := interval.Parse(tuningPeriod)
	if err != nil {
		return nil, fmt.Errorf("bad period: %w", err)
	}
	divisions := tuningDivisions
	if divisions == 0 {
		divisions = cfg.Tuning.Divisions
	}
	return tuning.Regular(divisions, period)
}
