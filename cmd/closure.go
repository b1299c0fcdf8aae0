package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/db-normalize/internal/output"
	"github.com/hurou927/db-normalize/internal/relational"
)

var (
	closureAttrs    string
	closureAll      bool
	closureStrategy string
)

var closureCmd = &cobra.Command{
	Use:   "closure FILE",
	Short: "Compute an attribute closure or the full dependency closure",
	Long:  `With --attrs, prints the closure of the given attributes under the schema's dependencies. With --all, prints every dependency implied by the schema, computed from attribute subsets or by applying Armstrong's rules.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (closureAttrs == "") == !closureAll {
			return fmt.Errorf("exactly one of --attrs or --all is required")
		}
		rel, err := loadRelation(args[0])
		if err != nil {
			return err
		}
		codec := cfg.Codec()

		if !closureAll {
			attrs, err := codec.ParseAttributes(rel.Registry(), closureAttrs)
			if err != nil {
				return err
			}
			if undeclared := attrs.Minus(rel.Attributes()); !undeclared.IsEmpty() {
				return fmt.Errorf("attributes %s are not declared in %s", codec.FormatAttributes(undeclared), rel.Name())
			}
			return output.WriteClosure(os.Stdout, codec, rel, attrs)
		}

		lim := cfg.RelationalLimits()
		var plus *relational.FDSet
		switch closureStrategy {
		case "subsets":
			plus, err = rel.FDs().ClosureBySubsets(rel.Attributes(), lim)
		case "rules":
			plus, err = rel.FDs().ClosureByRules(rel.Attributes(), lim)
		default:
			return fmt.Errorf("unknown strategy: %s (supported: subsets, rules)", closureStrategy)
		}
		if err != nil {
			return fmt.Errorf("computing closure of %s: %w", rel.Name(), err)
		}
		_, err = fmt.Fprint(os.Stdout, codec.FormatFDSet(plus))
		return err
	},
}

func init() {
	closureCmd.Flags().StringVar(&closureAttrs, "attrs", "", "attributes to close, in the configured notation")
	closureCmd.Flags().BoolVar(&closureAll, "all", false, "print the full dependency closure")
	closureCmd.Flags().StringVar(&closureStrategy, "strategy", "subsets", "closure strategy for --all: subsets or rules")
	rootCmd.AddCommand(closureCmd)
}
