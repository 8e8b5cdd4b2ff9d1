package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rentalai/rentalai/internal/config"
	"github.com/rentalai/rentalai/internal/importer"
	"github.com/rentalai/rentalai/internal/logger"
	"github.com/rentalai/rentalai/internal/pdfdoc"
	"github.com/rentalai/rentalai/internal/statement"
)

// genericBank is the driver tried when --fallback is set and the named
// driver finds nothing.
const genericBank = "generic"

// unreadableHint is shown when nothing could be read from a statement.
const unreadableHint = "no text could be read; check password or file type"

// app is the per-invocation state built from the data directory.
type app struct {
	dir string
	cfg *config.Config
	log zerolog.Logger
	reg *importer.Registry
}

// loadApp reads <dir>/rentalai.yaml when present, falling back to defaults
// plus environment overrides.
func loadApp(opts *globalOptions, stderr io.Writer) (*app, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default("")
		err = config.ApplyEnv(cfg)
	}
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	a := &app{
		dir: dir,
		cfg: cfg,
		// import logs from several workers at once
		log: logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, zerolog.SyncWriter(stderr)),
	}
	a.reg = importer.DefaultRegistry(a.engineOptions()...)
	return a, nil
}

func (a *app) engineOptions() []statement.Option {
	opts := []statement.Option{
		statement.WithLogger(a.log),
		statement.WithClassifier(a.cfg.Income.Classifier()),
	}
	if !a.cfg.OCR.Enabled {
		return opts
	}

	raster := pdfdoc.PopplerRasterizer{Binary: a.cfg.OCR.Rasterizer, DPI: a.cfg.OCR.DPI}
	recog := pdfdoc.TesseractRecognizer{Binary: a.cfg.OCR.Recognizer, Lang: a.cfg.OCR.Lang}
	if !pdfdoc.Available(raster, recog) {
		a.log.Warn().
			Str("rasterizer", a.cfg.OCR.Rasterizer).
			Str("recognizer", a.cfg.OCR.Recognizer).
			Msg("OCR enabled but binaries not found; scanned pages will be skipped")
		return opts
	}

	opener := pdfdoc.NewLayoutOpener()
	return append(opts,
		statement.WithOpener(opener),
		statement.WithTextSources(
			pdfdoc.DirectText{Opener: opener},
			pdfdoc.OCRText{Opener: opener, Rasterizer: raster, Recognizer: recog},
		),
	)
}

// resolveBank returns bank, or the bank guessed from the file name.
func (a *app) resolveBank(bank, path string) (string, error) {
	if bank == "" {
		bank = a.reg.BankFromName(path)
	}
	if bank == "" {
		return "", fmt.Errorf("cannot tell the bank from %q; pass --bank (one of %v)", filepath.Base(path), a.reg.Banks())
	}
	if a.reg.Get(bank) == nil {
		return "", fmt.Errorf("unknown bank %q (one of %v)", bank, a.reg.Banks())
	}
	return bank, nil
}

// parse runs the driver for bank on path. With fallback set, an empty
// result is retried with the generic driver.
func (a *app) parse(ctx context.Context, bank, path, password string, fallback bool) (statement.Report, error) {
	if err := importer.CheckSize(path, a.cfg.PDF.MaxSizeBytes()); err != nil {
		return statement.Report{}, err
	}
	pw := a.cfg.PDF.Password(password)

	rep := a.reg.Get(bank).Parse(ctx, path, pw)
	if len(rep.Transactions) > 0 || !fallback || bank == genericBank {
		return rep, nil
	}

	a.log.Info().Str("bank", bank).Str("path", path).Msg("no rows, trying generic layout")
	alt := a.reg.Get(genericBank).Parse(ctx, path, pw)
	if len(alt.Transactions) == 0 {
		rep.Failures = append(rep.Failures, alt.Failures...)
		rep.TextFound = rep.TextFound || alt.TextFound
		return rep, nil
	}
	return alt, nil
}

// inr formats d as Indian rupees.
func inr(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), money.INR).Display()
}
