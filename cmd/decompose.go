package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hurou927/db-normalize/internal/analyze"
	"github.com/hurou927/db-normalize/internal/graph"
	"github.com/hurou927/db-normalize/internal/output"
	"github.com/hurou927/db-normalize/internal/relational"
)

var (
	decomposeForm       string
	decomposeProjection string
	decomposeFormat     string
	outputPath          string
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose FILE",
	Short: "Decompose a relation schema into BCNF or 3NF",
	Long:  `Decomposes the schema in FILE by repeated BCNF splitting or by 3NF synthesis and writes the fragments as a report, SQL DDL, schema files or a Mermaid split tree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.AnalyzeOptions()
		if decomposeForm != "" {
			opts.Form = decomposeForm
		}
		if decomposeProjection != "" {
			p, err := relational.ParseProjection(decomposeProjection)
			if err != nil {
				return err
			}
			opts.Decompose.Projection = p
		}
		if decomposeFormat == "mermaid" && opts.Form != analyze.FormBCNF {
			return fmt.Errorf("mermaid output shows BCNF split steps; use --form %s", analyze.FormBCNF)
		}

		a, err := analyze.New(opts)
		if err != nil {
			return err
		}
		rel, err := loadRelation(args[0])
		if err != nil {
			return err
		}
		rep, err := a.Analyze(cmd.Context(), rel)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		if err := writeDecomposition(w, rep); err != nil {
			closeFn()
			return err
		}
		return closeFn()
	},
}

func writeDecomposition(w io.Writer, rep *analyze.Report) error {
	switch decomposeFormat {
	case "text":
		return output.WriteReport(w, cfg.Codec(), rep)
	case "sql":
		return output.WriteDDL(w, rep)
	case "mermaid":
		return graph.WriteDecomposition(w, rep.Trace)
	case "fd":
		codec := cfg.Codec()
		for _, f := range rep.Fragments {
			if _, err := fmt.Fprintln(w, codec.FormatRelation(f.Relation)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s (supported: text, sql, mermaid, fd)", decomposeFormat)
	}
}

func init() {
	decomposeCmd.Flags().StringVar(&decomposeForm, "form", "", "normal form: bcnf or 3nf (default from config)")
	decomposeCmd.Flags().StringVar(&decomposeProjection, "projection", "", "dependencies carried by BCNF fragments: closure or restrict")
	decomposeCmd.Flags().StringVar(&decomposeFormat, "format", "text", "output format: text, sql, mermaid or fd")
	decomposeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	rootCmd.AddCommand(decomposeCmd)
}
