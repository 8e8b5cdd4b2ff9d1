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

type parseOptions struct {
	bank     string
	password string
	period   string
	fallback bool
	asJSON   bool
	save     bool
}

func newParseCommand(g *globalOptions) *cobra.Command {
	var o parseOptions

	cmd := &cobra.Command{
		Use:   "parse <statement.pdf>",
		Short: "Parse a bank statement and print its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runParse(cmd.Context(), a, cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], o)
		},
	}

	cmd.Flags().StringVar(&o.bank, "bank", "", "statement layout (guessed from the file name when empty)")
	cmd.Flags().StringVar(&o.password, "password", "", "PDF password (defaults to pdf.default_password)")
	cmd.Flags().StringVar(&o.period, "period", "", "file the snapshot under this period (YYYY-MM or YYYY)")
	cmd.Flags().BoolVar(&o.fallback, "fallback", false, "retry with the generic layout when nothing is found")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&o.save, "save", false, "write a snapshot to the data directory")

	return cmd
}

func runParse(ctx context.Context, a *app, out, errOut io.Writer, path string, o parseOptions) error {
	bank, err := a.resolveBank(o.bank, path)
	if err != nil {
		return err
	}
	override, err := parsePeriodFlag(o.period)
	if err != nil {
		return err
	}

	rep, err := a.parse(ctx, bank, path, o.password, o.fallback)
	if err != nil {
		return err
	}
	warns := warnings(rep)
	totals := statement.ComputeTotals(rep.Transactions)

	if o.asJSON {
		res := parseOutput{
			Bank:     bank,
			Source:   filepath.Base(path),
			Strategy: rep.Strategy,
			Rows:     rep.Transactions,
			Totals:   totals,
			Warnings: warns,
		}
		if yearly(bank) {
			res.YTD = statement.ComputeYTDTotals(rep.Transactions)
		}
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		printWarnings(errOut, path, warns)
		fmt.Fprintf(out, "%s: %d transactions (bank %s, strategy %s)\n",
			filepath.Base(path), len(rep.Transactions), bank, orNone(rep.Strategy))
		if len(rep.Transactions) > 0 {
			printTransactions(out, rep.Transactions)
			printTotals(out, totals)
		}
	}

	if !o.save || len(rep.Transactions) == 0 {
		return nil
	}
	snaps, err := a.saveSnapshots(bank, path, rep.Transactions, override, time.Now())
	if err != nil {
		return err
	}
	for _, s := range snaps {
		fmt.Fprintf(errOut, "saved snapshot %s/%s (%s)\n", s.Period(), s.Bank, s.ID)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
