package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xentonic/internal/exact"
	"xentonic/internal/interval"
)

var (
	approxDivisions int
	approxPeriod    string
)

// approxCmd approximates an interval in an equal division
var approxCmd = &cobra.Command{
	Use:   "approx [interval]",
	Short: "Approximate an interval in an equal division of a period",
	Long: `Finds the nearest step count of an interval in an equal division
of a period (an octave by default) and the approximation error.

Examples:
  xentonic approx 3/2 --divisions 12
  xentonic approx 5/4 --divisions 13 --period 3`,
	Args: cobra.ExactArgs(1),
	RunE: runApprox,
}

func init() {
	approxCmd.Flags().IntVarP(&approxDivisions, "divisions", "d", 0, "number of equal divisions (default from config)")
	approxCmd.Flags().StringVarP(&approxPeriod, "period", "p", "2", "period interval literal")
}

func runApprox(cmd *cobra.Command, args []string) error {
	iv, err := interval.Parse(args[0])
	if err != nil {
		return err
	}
	period, err := interval.Parse(approxPeriod)
	if err != nil {
		return fmt.Errorf("bad period: %w", err)
	}
	divisions := approxDivisions
	if divisions == 0 {
		divisions = cfg.Tuning.Divisions
	}
	logger.Debug("approximating",
		zap.String("interval", iv.String()),
		zap.Int("divisions", divisions),
		zap.String("period", period.String()))

	steps, diff, err := iv.ApproximateInEdx(exact.FromInt(int64(divisions)), period.Ratio())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s ~ %d\\%d (error %s)\n",
		iv, steps, divisions, diff.CentsString(cfg.Render.CentsPrecision))
	return nil
}
