package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentalai/rentalai/internal/period"
	"github.com/rentalai/rentalai/internal/snapshot"
)

func newSnapshotsCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect saved statement snapshots",
	}
	cmd.AddCommand(newSnapshotsListCommand(g), newSnapshotsShowCommand(g))
	return cmd
}

func newSnapshotsListCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [year]",
		Short: "List snapshots, newest year first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var years []int
			if len(args) > 0 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				years = []int{y}
			}
			return runSnapshotsList(snapshot.NewStore(a.dir), cmd.OutOrStdout(), years)
		},
	}
}

func runSnapshotsList(st *snapshot.Store, out io.Writer, years []int) error {
	if years == nil {
		var err error
		if years, err = st.Years(); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tBANK\tROWS\tINCOME\tEXPENSE\tNET\tSOURCE")
	n := 0
	for _, y := range years {
		snaps, err := st.List(y)
		if err != nil {
			return err
		}
		for _, s := range snaps {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
				s.Period(), s.Bank, len(s.Rows), inr(s.Totals.IncomeTotal), inr(s.Totals.ExpenseTotal), inr(s.Totals.Net), s.Source)
			n++
		}
	}
	if n == 0 {
		fmt.Fprintln(out, "No snapshots.")
		return nil
	}
	return tw.Flush()
}

func newSnapshotsShowCommand(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <period> <bank>",
		Short: "Show one snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := period.Parse(args[0])
			if err != nil {
				return err
			}
			s, err := snapshot.NewStore(a.dir).Load(p, args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, s)
			}
			fmt.Fprintf(out, "%s %s: %d transactions from %s (saved %s)\n",
				s.Period(), s.Bank, len(s.Rows), s.Source, s.CreatedAt.Format("2006-01-02 15:04"))
			printTransactions(out, s.Rows)
			printTotals(out, s.Totals)
			if len(s.YTD) > 0 {
				printYTD(out, s.YTD)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
