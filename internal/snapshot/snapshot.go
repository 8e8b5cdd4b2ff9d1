// Package snapshot stores parsed statements as JSON documents keyed by
// period and bank:
//
//	<root>/snapshots/2024/05/axis.json    monthly statement
//	<root>/snapshots/2024/hdfc-ytd.json   year-to-date statement
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentalai/rentalai/internal/model"
	"github.com/rentalai/rentalai/internal/period"
	"github.com/rentalai/rentalai/internal/statement"
)

// ErrNotFound is returned by Load when no snapshot exists for the key.
var ErrNotFound = errors.New("snapshot not found")

const (
	dirName = "snapshots"
	ext     = ".json"
)

// Snapshot is one parsed statement with its totals.
type Snapshot struct {
	ID        uuid.UUID           `json:"id"`
	Bank      string              `json:"bank"`
	Source    string              `json:"source"`
	CreatedAt time.Time           `json:"created_at"`
	Year      int                 `json:"year"`
	Month     int                 `json:"month,omitempty"`
	Rows      []model.Transaction `json:"rows"`
	Totals    model.Totals        `json:"totals"`
	YTD       []model.YearBucket  `json:"ytd,omitempty"`
}

// New builds a snapshot of rows for period p. Year-to-date snapshots also
// carry per-year buckets.
func New(bank, source string, p period.Period, rows []model.Transaction, now time.Time) Snapshot {
	if rows == nil {
		rows = []model.Transaction{}
	}
	s := Snapshot{
		ID:        uuid.New(),
		Bank:      bank,
		Source:    filepath.Base(source),
		CreatedAt: now.UTC(),
		Year:      p.Year,
		Month:     p.Month,
		Rows:      rows,
		Totals:    statement.ComputeTotals(rows),
	}
	if p.IsYear() {
		s.YTD = statement.ComputeYTDTotals(rows)
	}
	return s
}

// Period returns the period the snapshot is filed under.
func (s Snapshot) Period() period.Period {
	return period.Period{Year: s.Year, Month: s.Month}
}

// Store reads and writes snapshots under a data directory.
type Store struct {
	root string
}

// NewStore returns a store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Path returns the file a snapshot for (p, bank) lives in.
func (st *Store) Path(p period.Period, bank string) string {
	return filepath.Join(st.root, dirName, p.Dir(), bank+ext)
}

// Save writes s, replacing any snapshot for the same period and bank.
// The file is written to a temp file first and renamed into place.
func (st *Store) Save(s Snapshot) (string, error) {
	if s.Bank == "" {
		return "", errors.New("snapshot has no bank")
	}
	if strings.ContainsAny(s.Bank, `/\`) {
		return "", fmt.Errorf("invalid bank name %q", s.Bank)
	}

	path := st.Path(s.Period(), s.Bank)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, "."+s.Bank+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving snapshot into place: %w", err)
	}
	return path, nil
}

// Load reads the snapshot for (p, bank).
func (st *Store) Load(p period.Period, bank string) (Snapshot, error) {
	return readFile(st.Path(p, bank))
}

// List returns every snapshot filed under year, year-level ones first, then
// by month and bank.
func (st *Store) List(year int) ([]Snapshot, error) {
	yearDir := filepath.Join(st.root, dirName, fmt.Sprintf("%04d", year))
	entries, err := os.ReadDir(yearDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", yearDir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			if _, err := strconv.Atoi(e.Name()); err != nil {
				continue
			}
			monthFiles, err := filepath.Glob(filepath.Join(yearDir, e.Name(), "*"+ext))
			if err != nil {
				return nil, fmt.Errorf("listing %s: %w", e.Name(), err)
			}
			paths = append(paths, monthFiles...)
			continue
		}
		if filepath.Ext(e.Name()) == ext {
			paths = append(paths, filepath.Join(yearDir, e.Name()))
		}
	}

	out := make([]Snapshot, 0, len(paths))
	for _, p := range paths {
		s, err := readFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Bank < out[j].Bank
	})
	return out, nil
}

// Years returns the years that have a snapshot directory, newest first.
func (st *Store) Years() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(st.root, dirName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshots dir: %w", err)
	}

	var years []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		y, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func readFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return Snapshot{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return s, nil
}
