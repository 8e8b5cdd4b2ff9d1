package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rentalai/rentalai/internal/export"
	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/period"
	"github.com/rentalai/rentalai/internal/snapshot"
	"github.com/rentalai/rentalai/internal/statement"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

type exportOptions struct {
	period string
	bank   string
	format string
	out    string
}

func newExportCommand(g *globalOptions) *cobra.Command {
	var o exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export snapshot transactions to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runExport(a, cmd.OutOrStdout(), o)
		},
	}

	cmd.Flags().StringVar(&o.period, "period", "", "period to export, YYYY-MM or YYYY (required)")
	_ = cmd.MarkFlagRequired("period")
	cmd.Flags().StringVar(&o.bank, "bank", "", "only this bank's snapshot")
	cmd.Flags().StringVar(&o.format, "format", formatCSV, "csv or xlsx")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", `output file; "-" writes CSV to stdout (default exports/<period>.<format>)`)

	return cmd
}

func runExport(a *app, stdout io.Writer, o exportOptions) error {
	if o.format != formatCSV && o.format != formatXLSX {
		return fmt.Errorf("unknown format %q (csv or xlsx)", o.format)
	}
	p, err := period.Parse(o.period)
	if err != nil {
		return err
	}

	rows, err := collectRows(snapshot.NewStore(a.dir), p, o.bank)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no snapshots for %s", p)
	}
	statement.SortByDate(rows)

	if o.out == "-" {
		if o.format != formatCSV {
			return fmt.Errorf("only csv can be written to stdout")
		}
		return export.WriteCSV(stdout, rows)
	}

	path := o.out
	if path == "" {
		name := p.String()
		if o.bank != "" {
			name += "-" + o.bank
		}
		path = filepath.Join(a.dir, "exports", name+"."+o.format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch o.format {
	case formatXLSX:
		err = export.WriteXLSX(f, rows, statement.ComputeTotals(rows))
	default:
		err = export.WriteCSV(f, rows)
	}
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	fmt.Fprintf(stdout, "Exported %d transactions to %s\n", len(rows), path)
	return nil
}

// collectRows gathers the rows of every snapshot filed under p. A year
// period also picks up the monthly snapshots of that year, keeping only rows
// dated inside it.
func collectRows(st *snapshot.Store, p period.Period, bank string) ([]model.Transaction, error) {
	snaps, err := st.List(p.Year)
	if err != nil {
		return nil, err
	}

	var rows []model.Transaction
	for _, s := range snaps {
		if bank != "" && s.Bank != bank {
			continue
		}
		if !p.IsYear() && s.Period() != p {
			continue
		}
		for _, t := range s.Rows {
			if p.IsYear() && !t.Date.IsZero() && !p.Contains(t.Date.Time) {
				continue
			}
			rows = append(rows, t)
		}
	}
	return rows, nil
}
