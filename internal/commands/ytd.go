package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentalai/rentalai/internal/statement"
)

func newYTDCommand(g *globalOptions) *cobra.Command {
	var o parseOptions

	cmd := &cobra.Command{
		Use:   "ytd <statement.pdf>",
		Short: "Summarize a year-to-date statement by calendar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runYTD(cmd.Context(), a, cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], o)
		},
	}

	cmd.Flags().StringVar(&o.bank, "bank", statement.HDFCYTDLayout().Bank, "statement layout")
	cmd.Flags().StringVar(&o.password, "password", "", "PDF password (defaults to pdf.default_password)")
	cmd.Flags().BoolVar(&o.fallback, "fallback", false, "retry with the generic layout when nothing is found")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&o.save, "save", false, "write one snapshot per calendar year")

	return cmd
}

func runYTD(ctx context.Context, a *app, out, errOut io.Writer, path string, o parseOptions) error {
	bank, err := a.resolveBank(o.bank, path)
	if err != nil {
		return err
	}
	rep, err := a.parse(ctx, bank, path, o.password, o.fallback)
	if err != nil {
		return err
	}
	warns := warnings(rep)
	buckets := statement.ComputeYTDTotals(rep.Transactions)

	if o.asJSON {
		if err := writeJSON(out, parseOutput{
			Bank:     bank,
			Source:   filepath.Base(path),
			Strategy: rep.Strategy,
			Rows:     rep.Transactions,
			Totals:   statement.ComputeTotals(rep.Transactions),
			YTD:      buckets,
			Warnings: warns,
		}); err != nil {
			return err
		}
	} else {
		printWarnings(errOut, path, warns)
		fmt.Fprintf(out, "%s: %d transactions (bank %s, strategy %s)\n",
			filepath.Base(path), len(rep.Transactions), bank, orNone(rep.Strategy))
		if len(buckets) > 0 {
			printYTD(out, buckets)
		}
	}

	if !o.save || len(rep.Transactions) == 0 {
		return nil
	}
	snaps, err := a.saveYearly(bank, path, rep.Transactions, time.Now())
	if err != nil {
		return err
	}
	for _, s := range snaps {
		fmt.Fprintf(errOut, "saved snapshot %s/%s (%s)\n", s.Period(), s.Bank, s.ID)
	}
	return nil
}
