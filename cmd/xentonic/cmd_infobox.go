package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"xentonic/internal/interval"
	"xentonic/internal/monzo"
	"xentonic/internal/naming"
)

// infoboxCmd renders the xen wiki infobox template for a ratio
var infoboxCmd = &cobra.Command{
	Use:   "infobox [ratio]",
	Short: "Render a xen wiki Infobox Interval template for a ratio",
	Long: `Renders the {{Infobox Interval}} wikitext template for a rational
interval, with the monzo, cents, color name and FJS name filled in.
Only the short color name is emitted.

Example:
  xentonic infobox 19/10`,
	Args: cobra.ExactArgs(1),
	RunE: runInfobox,
}

func runInfobox(cmd *cobra.Command, args []string) error {
	r, ok := new(big.Rat).SetString(args[0])
	if !ok {
		return fmt.Errorf("not a ratio: %q", args[0])
	}
	m, err := monzo.FromRatio(r)
	if err != nil {
		return err
	}
	iv, err := interval.FromRat(r)
	if err != nil {
		return err
	}
	colorName, err := naming.ColorName(m)
	if err != nil {
		return err
	}
	fjsName, err := fjsNamer().Name(m)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{{Infobox Interval
| JI glyph =
| Ratio = %s/%s
| Monzo = %s
| Cents = %.5f
| Name =
| Color name = %s
| FJS name = %s
| Sound =
}}
`, r.Num(), r.Denom(), m.Separated(), iv.Cents().Float64(), colorName, fjsName)
	return nil
}
