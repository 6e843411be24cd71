package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"xentonic/internal/ji"
)

var (
	subgroupPLimit   int64
	subgroupContains []string
)

// subgroupCmd inspects JI subgroups and tests membership
var subgroupCmd = &cobra.Command{
	Use:   "subgroup [generators]",
	Short: "Inspect a JI subgroup and test ratio membership",
	Long: `Builds a just-intonation subgroup from a dot-joined generator list
(or a full prime limit with --p-limit) and optionally tests whether
ratios belong to it.

Generators must be a normal list: each exceeds 1 and raises the prime
limit of the one before it.

Examples:
  xentonic subgroup 2.3.7
  xentonic subgroup 2.5/3.7/5.11/3 --contains 11/10
  xentonic subgroup --p-limit 5 --contains 81/80 --contains 7/4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubgroup,
}

func init() {
	subgroupCmd.Flags().Int64Var(&subgroupPLimit, "p-limit", 0, "build the full p-limit subgroup instead of a generator list")
	subgroupCmd.Flags().StringArrayVarP(&subgroupContains, "contains", "c", nil, "ratio to test for membership (repeatable)")
}

func runSubgroup(cmd *cobra.Command, args []string) error {
	sg, err := buildSubgroup(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "subgroup: %s\n", sg)
	fmt.Fprintf(out, "limit:    %d\n", sg.Limit())
	for _, m := range sg.GenMonzos() {
		fmt.Fprintf(out, "  %s\n", m)
	}

	for _, s := range subgroupContains {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return fmt.Errorf("not a ratio: %q", s)
		}
		member, err := sg.ContainsRatio(r)
		if err != nil {
			return err
		}
		verdict := "is not in"
		if member {
			verdict = "is in"
		}
		fmt.Fprintf(out, "%s %s %s\n", r.RatString(), verdict, sg)
	}
	return nil
}

func buildSubgroup(args []string) (*ji.Subgroup, error) {
	if subgroupPLimit != 0 {
		return ji.PLimit(subgroupPLimit)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("need a generator list or --p-limit")
	}
	parts := strings.Split(args[0], ".")
	gens := make([]*big.Rat, len(parts))
	for i, p := range parts {
		r, ok := new(big.Rat).SetString(strings.TrimSpace(p))
		if !ok {
			return nil, fmt.Errorf("not a ratio: %q", p)
		}
		gens[i] = r
	}
	return ji.New(gens...)
}
