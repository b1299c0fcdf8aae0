package cmd

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hurou927/db-normalize/internal/analyze"
	"github.com/hurou927/db-normalize/internal/db"
	"github.com/hurou927/db-normalize/internal/output"
	"github.com/hurou927/db-normalize/internal/relational"
	"github.com/hurou927/db-normalize/internal/schema"
)

var introspectFormat string

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Analyze the tables of a PostgreSQL database",
	Long:  `Connects to the database, turns every table into a relation whose dependencies come from its primary key and NOT NULL unique constraints, and reports or decomposes it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.ValidateForIntrospect(); err != nil {
			return err
		}

		pool, err := db.NewPool(ctx, &cfg.Connection)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		tables, err := schema.Introspect(ctx, pool, cfg.Schemas, cfg.TableSet())
		if err != nil {
			return fmt.Errorf("introspecting schema: %w", err)
		}

		a, err := analyze.New(cfg.AnalyzeOptions())
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		for _, tbl := range schema.SortedTables(tables) {
			if err := introspectTable(cmd, w, a, tbl); err != nil {
				closeFn()
				return err
			}
		}
		return closeFn()
	},
}

func introspectTable(cmd *cobra.Command, w io.Writer, a *analyze.Analyzer, tbl *schema.Table) error {
	if tbl.PrimaryKey() == nil {
		log.WithField("table", tbl.FullName()).Warn("table has no primary key")
	}
	rel, err := tbl.ToRelation(relational.NewRegistry())
	if err != nil {
		return err
	}
	rep, err := a.Analyze(cmd.Context(), rel)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", tbl.FullName(), err)
	}
	switch introspectFormat {
	case "text":
		return output.WriteReport(w, cfg.Codec(), rep)
	case "sql":
		return output.WriteDDL(w, rep)
	case "fd":
		_, err := fmt.Fprintln(w, cfg.Codec().FormatRelation(rel))
		return err
	default:
		return fmt.Errorf("unknown format: %s (supported: text, sql, fd)", introspectFormat)
	}
}

func init() {
	introspectCmd.Flags().StringVar(&introspectFormat, "format", "text", "output format: text, sql or fd")
	introspectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	rootCmd.AddCommand(introspectCmd)
}
