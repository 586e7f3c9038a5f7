package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/solidastad/anbud/internal/document"
	"github.com/solidastad/anbud/internal/form"
	"github.com/solidastad/anbud/internal/pricing"
	"github.com/solidastad/anbud/internal/submission"
	"github.com/solidastad/anbud/internal/workorder"
)

type quoteOptions struct {
	input  string
	rates  string
	asJSON bool
	pdf    string
	xlsx   string
}

func newQuoteCmd() *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a saved form state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, opts, time.Now())
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "JSON form state (- for stdin)")
	cmd.Flags().StringVar(&opts.rates, "rates", "", "rate table JSON (default built-in rates)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full breakdown as JSON")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write the quote as PDF to this path")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write the quote as Excel to this path")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runQuote(cmd *cobra.Command, opts *quoteOptions, now time.Time) error {
	state, err := readState(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}
	table, err := readTable(opts.rates)
	if err != nil {
		return err
	}

	problems := form.ValidateQuote(state)
	for _, field := range problems.Fields() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", field, problems[field])
	}

	in := form.QuoteInput(state)
	b := pricing.ComputeQuote(in, table)
	description := workorder.Describe(in)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("encode breakdown: %w", err)
		}
	}

	date := form.Text(state, form.FieldQuoteDate)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	doc := document.FromQuote(submission.QuoteNumber(now), date, in, b, table, description)
	if !opts.asJSON {
		printDocument(out, doc)
	}

	if opts.pdf != "" {
		data, err := document.QuotePDF(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdf, data, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}
	if opts.xlsx != "" {
		data, err := document.QuoteExcel(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.xlsx, data, 0o644); err != nil {
			return fmt.Errorf("write excel: %w", err)
		}
	}
	return nil
}

func printDocument(w io.Writer, d document.Document) {
	fmt.Fprintf(w, "%s %s (%s)\n", d.Title, d.Number, d.Date)
	for _, lines := range [][]document.Line{d.Lines, d.Totals} {
		for _, l := range lines {
			fmt.Fprintf(w, "%-32s %14s\n", l.Label, l.Text())
		}
	}
	if d.Note != "" {
		fmt.Fprintln(w, d.Note)
	}
	if d.EstimatedTime != "" {
		fmt.Fprintf(w, "Beräknad tid: %s\n", d.EstimatedTime)
	}
}

type describeOptions struct {
	input  string
	window bool
}

func newDescribeCmd() *cobra.Command {
	opts := &describeOptions{}

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Generate the work description for a saved form state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := readState(cmd.InOrStdin(), opts.input)
			if err != nil {
				return err
			}
			in := form.QuoteInput(state)
			text := workorder.Describe(in)
			if opts.window {
				text = workorder.GenerateWindowProject(in)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "JSON form state (- for stdin)")
	cmd.Flags().BoolVar(&opts.window, "window", false, "always use the window-cleaning project template")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func readState(stdin io.Reader, path string) (form.State, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read form state: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode form state: %w", err)
	}
	return form.FromMap(raw), nil
}

func readTable(path string) (*pricing.Table, error) {
	if path == "" {
		return pricing.DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}
	return pricing.ParseTable(data)
}
