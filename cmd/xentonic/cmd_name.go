package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"xentonic/internal/monzo"
	"xentonic/internal/naming"
)

var nameStyle string

// nameCmd names a rational interval in FJS and color notation
var nameCmd = &cobra.Command{
	Use:   "name [ratio]",
	Short: "Name a rational interval (FJS and color notation)",
	Long: `Derives the canonical FJS and color-notation spellings of a ratio.

Examples:
  xentonic name 9/8
  xentonic name 81/80
  xentonic name 11/10 --style html`,
	Args: cobra.ExactArgs(1),
	RunE: runName,
}

func init() {
	nameCmd.Flags().StringVar(&nameStyle, "style", "", "FJS bracket style: ascii, html or tex (default from config)")
}

func runName(cmd *cobra.Command, args []string) error {
	r, ok := new(big.Rat).SetString(args[0])
	if !ok {
		return fmt.Errorf("not a ratio: %q", args[0])
	}
	m, err := monzo.FromRatio(r)
	if err != nil {
		return err
	}

	if nameStyle != "" {
		cfg.FJS.Style = nameStyle
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

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "FJS:   %s\n", rendered)
	fmt.Fprintf(out, "color: %s\n", colorName)
	return nil
}
