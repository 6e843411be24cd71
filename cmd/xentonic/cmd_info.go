package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xentonic/internal/interval"
	"xentonic/internal/monzo"
	"xentonic/internal/naming"
)

// infoCmd shows everything xentonic knows about one interval
var infoCmd = &cobra.Command{
	Use:   "info [interval]",
	Short: "Show an interval's ratio, cents, monzo and names",
	Long: `Parses an interval literal and prints every representation that
applies: exact ratio, cents, factorization monzo, FJS name and color name.

Examples:
  xentonic info 3/2
  xentonic info 7\12
  xentonic info 386.31c`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	logger.Debug("parsing interval", zap.String("literal", args[0]))
	iv, err := interval.Parse(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "interval: %s\n", iv)
	fmt.Fprintf(out, "cents:    %s\n", iv.CentsString(cfg.Render.CentsPrecision))
	fmt.Fprintf(out, "ratio:    %s\n", iv.RatioString(cfg.Render.RatioPrecision))
	fmt.Fprintf(out, "parsable: %s\n", iv.ParsableString())

	ratio := iv.Ratio()
	r, ok := ratio.Rat()
	if !ok {
		logger.Debug("no exact ratio, skipping monzo and names")
		return nil
	}
	m, err := monzo.FromRatio(r)
	if err != nil {
		// Exact but outside the prime registry; nothing more to show.
		logger.Debug("factorization unavailable", zap.Error(err))
		return nil
	}
	fmt.Fprintf(out, "monzo:    %s\n", m)
	if f := m.Factored(); f != "" {
		fmt.Fprintf(out, "factored: %s\n", f)
	}

	fjsName, err := fjsNamer().Name(m)
	if err != nil {
		return err
	}
	rendered, err := fjsName.Format(fjsStyle())
	if err != nil {
		return err
	}
	colorName, err := naming.ColorName(m)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "FJS:      %s\n", rendered)
	fmt.Fprintf(out, "color:    %s\n", colorName)
	return nil
}

// fjsNamer builds the configured FJS namer.
func fjsNamer() *naming.FJS {
	tol, ok := new(big.Rat).SetString(cfg.FJS.ToleranceRatio)
	if !ok {
		logger.Warn("bad fjs tolerance in config, using default",
			zap.String("tolerance", cfg.FJS.ToleranceRatio))
		return naming.NewFJS()
	}
	fjs, err := naming.NewFJSWithTolerance(tol)
	if err != nil {
		logger.Warn("bad fjs tolerance in config, using default", zap.Error(err))
		return naming.NewFJS()
	}
	return fjs
}

// fjsStyle maps the config style name onto the rendering style.
func fjsStyle() naming.Style {
	switch cfg.FJS.Style {
	case "html":
		return naming.StyleHTML
	case "tex":
		return naming.StyleTeX
	default:
		return naming.StyleASCII
	}
}
