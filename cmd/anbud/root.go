package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solidastad/anbud/internal/config"
	"github.com/solidastad/anbud/internal/db"
	"github.com/solidastad/anbud/internal/migrations"
)

type rootOptions struct {
	dbPath string
	table  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "anbud",
		Short:        "Quotes and rate tables for Solida Städ & Fönsterputs AB",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path or postgres:// URL (default DB_PATH)")
	cmd.PersistentFlags().StringVar(&opts.table, "name", "", "rate table name (default PRICING_TABLE)")

	cmd.AddCommand(
		newQuoteCmd(),
		newDescribeCmd(),
		newRatesCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}

// resolve fills unset options from the environment.
func (o *rootOptions) resolve() {
	if o.dbPath != "" && o.table != "" {
		return
	}
	cfg := config.Load()
	if o.dbPath == "" {
		o.dbPath = cfg.DBPath
	}
	if o.table == "" {
		o.table = cfg.PricingTable
	}
}

// open connects to the configured database and applies pending migrations.
func (o *rootOptions) open() (*sql.DB, db.Dialect, error) {
	o.resolve()
	database, dialect, err := db.Open(o.dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	if err := migrations.Up(database, dialect); err != nil {
		database.Close()
		return nil, "", fmt.Errorf("run database migrations: %w", err)
	}
	return database, dialect, nil
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, dialect, err := opts.open()
			if err != nil {
				return err
			}
			defer database.Close()

			version, err := migrations.Version(database, dialect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}
}
