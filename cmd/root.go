package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hurou927/db-normalize/internal/config"
	"github.com/hurou927/db-normalize/internal/relational"
)

var (
	cfgPath string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "db-normalize",
	Short: "Analyze functional dependencies and normalize relation schemas",
	Long: `db-normalize reads relation schemas with their functional dependencies,
finds candidate keys and canonical covers, checks BCNF and 3NF, and
decomposes schemas into BCNF fragments or a 3NF synthesis. Schemas can also
be introspected from a PostgreSQL database and emitted as DDL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath == "" {
			cfg = config.Default()
		} else if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}

		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if verbose {
			level = log.DebugLevel
		}
		log.SetLevel(level)
		log.SetOutput(os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every analysis phase and decomposition step")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadRelation reads a schema file with the configured notation into a
// fresh registry. "-" reads standard input.
func loadRelation(path string) (*relational.Relation, error) {
	codec := cfg.Codec()
	reg := relational.NewRegistry()
	if path == "-" {
		rel, err := codec.ReadRelation(reg, os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return rel, nil
	}
	return codec.LoadRelation(reg, path)
}

// openOutput returns the destination named by the flag, falling back to the
// config output and then to stdout.
func openOutput(flagPath string) (io.Writer, func() error, error) {
	outPath := flagPath
	if outPath == "" {
		outPath = cfg.Output
	}
	if outPath == "" || outPath == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
