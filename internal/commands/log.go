package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentalai/rentalai/internal/importlog"
)

type logOptions struct {
	limit  int
	status string
	asJSON bool
}

func newLogCommand(g *globalOptions) *cobra.Command {
	var o logOptions

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the import log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runLog(a.dir, cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().IntVarP(&o.limit, "limit", "n", 20, "show the last N entries (0 for all)")
	cmd.Flags().StringVar(&o.status, "status", "", "only show entries with this status (ok, empty, unreadable, error)")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print JSON")
	return cmd
}

func runLog(dir string, out io.Writer, o logOptions) error {
	entries, err := importlog.Read(dir)
	if err != nil {
		return err
	}
	if o.status != "" {
		var kept []importlog.Entry
		for _, e := range entries {
			if e.Status == o.status {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	entries = importlog.Tail(entries, o.limit)

	if o.asJSON {
		if entries == nil {
			entries = []importlog.Entry{}
		}
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No imports logged.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tFILE\tBANK\tSTRATEGY\tROWS\tSTATUS\tDETAILS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04"), e.File, orNone(e.Bank), orNone(e.Strategy), e.Rows, e.Status, e.Details)
	}
	return tw.Flush()
}
