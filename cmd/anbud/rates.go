package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/solidastad/anbud/internal/pricing"
	"github.com/solidastad/anbud/internal/ratebook"
)

func newRatesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Inspect and replace stored rate tables",
		Long:  "Inspect and replace stored rate tables. The server reads its table at startup, so changes take effect at the next restart.",
	}
	cmd.AddCommand(newRatesDumpCmd(opts), newRatesLoadCmd(opts), newRatesListCmd(opts))
	return cmd
}

func newRatesDumpCmd(opts *rootOptions) *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print a rate table as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var table *pricing.Table
			if builtin {
				table = pricing.DefaultTable()
			} else {
				database, dialect, err := opts.open()
				if err != nil {
					return err
				}
				defer database.Close()

				table, err = ratebook.Load(cmd.Context(), database, dialect, opts.table)
				if err != nil {
					return err
				}
			}

			data, err := table.Encode()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().BoolVar(&builtin, "builtin", false, "print the built-in rates instead of a stored table")
	return cmd
}

func newRatesLoadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE",
		Short: "Store a rate table from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read rate table: %w", err)
			}
			table, err := pricing.ParseTable(data)
			if err != nil {
				return err
			}

			database, dialect, err := opts.open()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := ratebook.Save(cmd.Context(), database, dialect, opts.table, table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved rate table %q\n", opts.table)
			return nil
		},
	}
}

func newRatesListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored rate tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, _, err := opts.open()
			if err != nil {
				return err
			}
			defer database.Close()

			entries, err := ratebook.List(cmd.Context(), database)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tACTIVE\tUPDATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%t\t%s\n", e.Name, e.Active, e.UpdatedAt)
			}
			return tw.Flush()
		},
	}
}
