package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rentalai/rentalai/internal/statement"
)

// ErrTooLarge is returned by CheckSize for files over the upload limit.
var ErrTooLarge = errors.New("file too large")

// Driver parses statements of one bank.
type Driver interface {
	Parse(ctx context.Context, path, password string) statement.Report
	Bank() string
}

// Registry holds named drivers.
type Registry struct {
	drivers map[string]Driver
}

// Kinds of file accepted in the import directory.
const (
	KindPDF = "pdf"
	KindCSV = "csv"
)

// FileInfo describes a statement file in the import directory. CSV files are
// corrected exports fed back in.
type FileInfo struct {
	Name string
	Path string
	Kind string
	Size int64
}

// NewRegistry creates an empty driver registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make(map[string]Driver)}
}

// Register adds a driver. Panics on duplicate bank.
func (r *Registry) Register(d Driver) {
	key := strings.ToLower(d.Bank())
	if _, ok := r.drivers[key]; ok {
		panic("duplicate driver bank: " + key)
	}
	r.drivers[key] = d
}

// Get returns the driver for bank, or nil.
func (r *Registry) Get(bank string) Driver {
	return r.drivers[strings.ToLower(bank)]
}

// Banks returns the registered bank names, sorted.
func (r *Registry) Banks() []string {
	out := make([]string, 0, len(r.drivers))
	for k := range r.drivers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with every built-in layout, each engine
// configured with opts.
func DefaultRegistry(opts ...statement.Option) *Registry {
	r := NewRegistry()
	for _, l := range []statement.Layout{
		statement.AxisLayout(),
		statement.HDFCLayout(),
		statement.HDFCYTDLayout(),
		statement.GenericLayout(),
	} {
		r.Register(statement.NewEngine(l, opts...))
	}
	return r
}

// BankFromName guesses the bank from a file name prefix such as
// "hdfc-ytd_2024.pdf". The longest matching bank name wins. It returns ""
// when no registered bank matches.
func (r *Registry) BankFromName(name string) string {
	low := strings.ToLower(filepath.Base(name))
	best := ""
	for key := range r.drivers {
		if !strings.HasPrefix(low, key) || len(key) <= len(best) {
			continue
		}
		rest := low[len(key):]
		if rest == "" || strings.ContainsRune("-_. ", rune(rest[0])) {
			best = key
		}
	}
	return best
}

// importDir is the subdirectory for statements waiting to be imported.
const importDir = "import"

// processedDir is the subdirectory for imported statements.
const processedDir = "import/processed"

// Scan returns PDF and CSV files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Name())), ".")
		if kind != KindPDF && kind != KindCSV {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Kind: kind,
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// CheckSize rejects files larger than limit bytes. A limit of zero or less
// disables the check.
func CheckSize(path string, limit int64) error {
	if limit <= 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > limit {
		return fmt.Errorf("%s is %d bytes: %w (limit %d)", filepath.Base(path), info.Size(), ErrTooLarge, limit)
	}
	return nil
}
