package importlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 5, 3, 9, 15, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		File:       "axis-may.pdf",
		Bank:       "axis",
		Strategy:   "table",
		Rows:       42,
		Status:     StatusOK,
		SnapshotID: "8f14e45f-ceea-4e7a-9c1b-1d2f3e4a5b6c",
		Details:    "",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "axis", entries[0].Bank)
	assert.Equal(t, 42, entries[0].Rows)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.File = "hdfc-ytd.pdf"
	e2.Bank = "hdfc-ytd"
	e2.Rows = 0
	e2.Status = StatusUnreadable
	e2.Details = "wrong password, check password or file type"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "axis", entries[0].Bank)
	assert.Equal(t, StatusUnreadable, entries[1].Status)
	assert.Equal(t, e2.Details, entries[1].Details)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

const header = "timestamp,file,bank,strategy,rows,status,snapshot_id,details"

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), nil, 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadRows(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	body := header + "\n2024-05-03T09:15:00Z,a.pdf,axis,table,many,ok,,\n"
	require.NoError(t, os.WriteFile(Path(dir), []byte(body), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestAppend_FileLayout(t *testing.T) {
	dir := t.TempDir()
	e := testEntry()
	e.Timestamp = testTime.Add(500 * time.Millisecond)
	require.NoError(t, Append(dir, []Entry{e}))
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	raw, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, header, lines[0])
	assert.Equal(t, "2024-05-03T09:15:00Z,axis-may.pdf,axis,table,42,ok,8f14e45f-ceea-4e7a-9c1b-1d2f3e4a5b6c,", lines[1])
	assert.Equal(t, lines[1], lines[2])
}

func TestAppend_QuotesDetails(t *testing.T) {
	dir := t.TempDir()
	e := testEntry()
	e.Status = StatusError
	e.Details = `table: no rows, text: "locked"`
	require.NoError(t, Append(dir, []Entry{e}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.Details, entries[0].Details)
	assert.True(t, testTime.Equal(entries[0].Timestamp))
}

func TestAppend_NothingToWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, nil))

	_, err := os.Stat(Path(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestTail(t *testing.T) {
	entries := []Entry{{File: "a"}, {File: "b"}, {File: "c"}}
	assert.Equal(t, []Entry{{File: "b"}, {File: "c"}}, Tail(entries, 2))
	assert.Equal(t, entries, Tail(entries, 0))
	assert.Equal(t, entries, Tail(entries, 10))
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
