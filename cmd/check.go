package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hurou927/db-normalize/internal/notation"
	"github.com/hurou927/db-normalize/internal/output"
	"github.com/hurou927/db-normalize/internal/relational"
)

var (
	checkSplit      string
	checkProjection string
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Check a proposed decomposition of a relation schema",
	Long:  `Projects the schema in FILE onto the fragments given by --split (attribute lists separated by ';') and reports whether the split is a lossless join and whether it preserves the dependencies.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(checkSplit) == "" {
			return fmt.Errorf("--split is required")
		}
		opts := cfg.DecomposeOptions()
		if checkProjection != "" {
			p, err := relational.ParseProjection(checkProjection)
			if err != nil {
				return err
			}
			opts.Projection = p
		}

		rel, err := loadRelation(args[0])
		if err != nil {
			return err
		}
		codec := cfg.Codec()
		parts, err := parseSplit(codec, rel.Registry(), checkSplit)
		if err != nil {
			return err
		}
		fragments, err := rel.Split(opts, parts...)
		if err != nil {
			return err
		}
		return output.WriteSplit(cmd.OutOrStdout(), codec, rel, fragments)
	},
}

// parseSplit reads ';'-separated attribute lists such as "a, b; a, d".
func parseSplit(codec notation.Notation, reg *relational.Registry, text string) ([]*relational.AttributeSet, error) {
	var parts []*relational.AttributeSet
	for _, field := range strings.Split(text, ";") {
		attrs, err := codec.ParseAttributes(reg, strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("parsing fragment %q: %w", field, err)
		}
		parts = append(parts, attrs)
	}
	return parts, nil
}

func init() {
	checkCmd.Flags().StringVar(&checkSplit, "split", "", "fragments as attribute lists separated by ';'")
	checkCmd.Flags().StringVar(&checkProjection, "projection", "", "dependencies carried by fragments: closure or restrict")
	rootCmd.AddCommand(checkCmd)
}
