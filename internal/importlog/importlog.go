// Package importlog keeps an append-only CSV record of statement imports so
// an operator can see what was parsed, by which strategy, and what failed.
package importlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// Status values recorded for an import.
const (
	StatusOK         = "ok"
	StatusEmpty      = "empty"
	StatusUnreadable = "unreadable"
	StatusError      = "error"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp  time.Time `csv:"timestamp" json:"timestamp"`
	File       string    `csv:"file" json:"file"`
	Bank       string    `csv:"bank" json:"bank,omitempty"`
	Strategy   string    `csv:"strategy" json:"strategy,omitempty"`
	Rows       int       `csv:"rows" json:"rows"`
	Status     string    `csv:"status" json:"status"`
	SnapshotID string    `csv:"snapshot_id" json:"snapshot_id,omitempty"`
	Details    string    `csv:"details" json:"details,omitempty"`
}

const (
	logDir  = "logs"
	logFile = "logs/import-log.csv"
)

// Path returns the import log location under root.
func Path(root string) string {
	return filepath.Join(root, logFile)
}

// Append writes entries to <root>/logs/import-log.csv. The header is written
// only when the file is new.
func Append(root string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(root, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(root)
	fresh := false
	if fi, err := os.Stat(path); errors.Is(err, os.ErrNotExist) || (err == nil && fi.Size() == 0) {
		fresh = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	rows := make([]Entry, len(entries))
	for i, e := range entries {
		e.Timestamp = e.Timestamp.UTC().Truncate(time.Second)
		rows[i] = e
	}

	if fresh {
		err = gocsv.Marshal(&rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, f)
	}
	if err != nil {
		return fmt.Errorf("writing import log: %w", err)
	}
	return f.Close()
}

// Read returns all entries from <root>/logs/import-log.csv, oldest first.
// It returns nil if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import log: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries, nil
}

// Tail returns the last n entries, or all of them when n <= 0.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
