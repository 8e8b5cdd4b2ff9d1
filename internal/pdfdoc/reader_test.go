package pdfdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLayoutOpener_RejectsNonPDF(t *testing.T) {
	path := writeFile(t, "statement.pdf", "Date,Narration,Debit,Credit\n")
	_, err := NewLayoutOpener().Open(path, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestLayoutOpener_RejectsEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.pdf", "")
	_, err := NewLayoutOpener().Open(path, "")
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestLayoutOpener_MissingFile(t *testing.T) {
	_, err := NewLayoutOpener().Open(filepath.Join(t.TempDir(), "nope.pdf"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLayoutOpener_CorruptBody(t *testing.T) {
	path := writeFile(t, "broken.pdf", "%PDF-1.7\n"+strings.Repeat("garbage ", 64))
	_, err := NewLayoutOpener().Open(path, "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestCheckHeader_JunkBeforeMagic(t *testing.T) {
	r := strings.NewReader("\xef\xbb\xbf\r\n%PDF-1.4\n")
	assert.NoError(t, checkHeader(r))
}
