package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rentalai/rentalai/internal/export"
	"github.com/rentalai/rentalai/internal/gitops"
	"github.com/rentalai/rentalai/internal/importer"
	"github.com/rentalai/rentalai/internal/importlog"
	"github.com/rentalai/rentalai/internal/model"
)

type importOptions struct {
	bank     string
	password string
	workers  int
	fallback bool
}

func newImportCommand(g *globalOptions) *cobra.Command {
	var o importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import every statement waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), a, cmd.OutOrStdout(), o)
		},
	}

	cmd.Flags().StringVar(&o.bank, "bank", "", "layout for every file (guessed per file name when empty)")
	cmd.Flags().StringVar(&o.password, "password", "", "PDF password (defaults to pdf.default_password)")
	cmd.Flags().IntVar(&o.workers, "workers", runtime.NumCPU(), "statements parsed in parallel")
	cmd.Flags().BoolVar(&o.fallback, "fallback", false, "retry with the generic layout when nothing is found")

	return cmd
}

func runImport(ctx context.Context, a *app, out io.Writer, o importOptions) error {
	files, err := importer.Scan(a.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No statements to import.")
		return nil
	}

	workers := o.workers
	if workers < 1 {
		workers = 1
	}

	// Each worker writes only its own slot.
	entries := make([]importlog.Entry, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			e, err := a.importFile(gctx, f, o)
			entries[i] = e
			return err
		})
	}
	waitErr := g.Wait()

	var done []importlog.Entry
	for _, e := range entries {
		if !e.Timestamp.IsZero() {
			done = append(done, e)
		}
	}
	if err := importlog.Append(a.dir, done); err != nil {
		a.log.Warn().Err(err).Msg("failed to write import log")
	}
	printImportSummary(out, done)

	if waitErr != nil {
		return waitErr
	}

	imported, failed := 0, 0
	for _, e := range done {
		switch e.Status {
		case importlog.StatusOK:
			imported++
		case importlog.StatusError, importlog.StatusUnreadable:
			failed++
		}
	}
	if imported > 0 {
		a.commit(ctx, fmt.Sprintf("import: %d statement(s)", imported))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed to import", failed, len(done))
	}
	return nil
}

// importFile parses one file and files its snapshot. Problems with the file
// itself are recorded in the returned entry; only data directory failures
// are returned as errors.
func (a *app) importFile(ctx context.Context, f importer.FileInfo, o importOptions) (importlog.Entry, error) {
	now := time.Now()
	e := importlog.Entry{Timestamp: now, File: f.Name}

	bank, err := a.resolveBank(o.bank, f.Name)
	if err != nil {
		e.Status, e.Details = importlog.StatusError, err.Error()
		return e, nil
	}
	e.Bank = bank
	log := a.log.With().Str("file", f.Name).Str("bank", bank).Logger()

	var rows []model.Transaction
	switch f.Kind {
	case importer.KindCSV:
		rows, err = readCSVFile(f.Path)
		if err != nil {
			e.Status, e.Details = importlog.StatusError, err.Error()
			return e, nil
		}
		e.Strategy = importer.KindCSV
	default:
		rep, err := a.parse(ctx, bank, f.Path, o.password, o.fallback)
		if err != nil {
			e.Status, e.Details = importlog.StatusError, err.Error()
			return e, nil
		}
		rows, e.Strategy = rep.Transactions, rep.Strategy
		if len(rows) == 0 {
			e.Status = importlog.StatusEmpty
			if rep.Unreadable() {
				e.Status = importlog.StatusUnreadable
			}
			e.Details = strings.Join(warnings(rep), "; ")
			log.Warn().Str("status", e.Status).Msg(e.Details)
			return e, nil
		}
	}
	e.Rows = len(rows)

	snaps, err := a.saveSnapshots(bank, f.Path, rows, nil, now)
	if errors.Is(err, errNoDatedRows) {
		e.Status, e.Details = importlog.StatusError, err.Error()
		return e, nil
	}
	if err != nil {
		e.Status, e.Details = importlog.StatusError, err.Error()
		return e, fmt.Errorf("%s: %w", f.Name, err)
	}
	ids := make([]string, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID.String()
	}
	e.SnapshotID = strings.Join(ids, ";")

	if err := importer.MarkProcessed(a.dir, f.Name); err != nil {
		e.Status, e.Details = importlog.StatusError, err.Error()
		return e, err
	}
	e.Status = importlog.StatusOK
	log.Info().Int("rows", e.Rows).Str("strategy", e.Strategy).Msg("statement imported")
	return e, nil
}

func readCSVFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return export.ReadCSV(f)
}

// commit records snapshots and logs in git when the data directory is a
// repository and auto-commit is on. Failures are logged, not returned.
func (a *app) commit(ctx context.Context, message string) {
	if !a.cfg.Git.AutoCommit || !gitops.IsRepo(a.dir) {
		return
	}
	repo := gitops.Repo{Dir: a.dir, AuthorName: a.cfg.Git.AuthorName, AuthorEmail: a.cfg.Git.AuthorEmail}
	hash, err := repo.Commit(ctx, message, "snapshots", "logs")
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
		return
	case err != nil:
		a.log.Warn().Err(err).Msg("git commit failed")
	default:
		a.log.Info().Str("commit", hash).Msg("data directory committed")
	}
}

func printImportSummary(w io.Writer, entries []importlog.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tBANK\tSTATUS\tROWS\tDETAILS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.File, e.Bank, e.Status, e.Rows, e.Details)
	}
	tw.Flush()
}
