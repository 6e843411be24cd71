package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xentonic/internal/interval"
)

var (
	convergentsEdx    bool
	convergentsPeriod string
	convergentsCount  int
)

// convergentsCmd lists best rational or equal-division approximations
var convergentsCmd = &cobra.Command{
	Use:   "convergents [interval]",
	Short: "List successive best approximations of an interval",
	Long: `Lists the convergent sequence of an interval: successive best
rational approximations of its ratio, or with --edx best m\n
equal-division approximations against a period.

The sequence terminates on its own when the target is reached exactly;
--count caps it otherwise.

Examples:
  xentonic convergents 7\12
  xentonic convergents 3/2 --edx
  xentonic convergents 3/2 --edx --period 3 --count 8`,
	Args: cobra.ExactArgs(1),
	RunE: runConvergents,
}

func init() {
	convergentsCmd.Flags().BoolVar(&convergentsEdx, "edx", false, "approximate as steps of an equal division instead of ratios")
	convergentsCmd.Flags().StringVarP(&convergentsPeriod, "period", "p", "2", "period interval literal (with --edx)")
	convergentsCmd.Flags().IntVarP(&convergentsCount, "count", "n", 20, "maximum number of convergents to list")
}

func runConvergents(cmd *cobra.Command, args []string) error {
	iv, err := interval.Parse(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if convergentsEdx {
		period, err := interval.Parse(convergentsPeriod)
		if err != nil {
			return fmt.Errorf("bad period: %w", err)
		}
		seq, err := iv.EdxConvergents(period.Ratio())
		if err != nil {
			return err
		}
		for i := 0; i < convergentsCount; i++ {
			approx, ok := seq.Next()
			if !ok {
				break
			}
			r, ok := approx.Value.Rat()
			if !ok {
				break
			}
			fmt.Fprintf(out, "%s\\%s", r.Num(), r.Denom())
			if approx.Diff != nil {
				fmt.Fprintf(out, "  (error %s)", approx.Diff.CentsString(cfg.Render.CentsPrecision))
			}
			fmt.Fprintln(out)
		}
		return nil
	}

	seq := iv.RatioConvergents()
	for i := 0; i < convergentsCount; i++ {
		approx, ok := seq.Next()
		if !ok {
			break
		}
		fmt.Fprintf(out, "%s", approx.Value)
		if approx.Diff != nil {
			fmt.Fprintf(out, "  (error %s)", approx.Diff.CentsString(cfg.Render.CentsPrecision))
		}
		fmt.Fprintln(out)
	}
	return nil
}
