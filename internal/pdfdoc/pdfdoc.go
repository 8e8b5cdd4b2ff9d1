// Package pdfdoc is the PDF capability the statement engine consumes:
// opening (possibly encrypted) documents, walking pages, and pulling
// table grids and plain text out of each page.
package pdfdoc

//go:generate mockgen -source=pdfdoc.go -destination=mocks/mock_pdfdoc.go -package=mocks

import (
	"context"
	"errors"
)

var (
	// ErrNotPDF is returned for empty files and files without a PDF header.
	ErrNotPDF = errors.New("not a PDF document")
	// ErrWrongPassword is returned when an encrypted document cannot be
	// decrypted with the supplied password.
	ErrWrongPassword = errors.New("wrong or missing PDF password")
	// ErrUnreadable wraps failures inside the PDF library.
	ErrUnreadable = errors.New("unreadable PDF content")
	// ErrNoText is returned by text sources that found nothing to extract.
	ErrNoText = errors.New("no extractable text")
)

// Table is an ordered grid of cells. A cell may hold several physical lines
// separated by "\n".
type Table [][]string

// Opener opens a document by path.
type Opener interface {
	Open(path, password string) (Document, error)
}

// Document is an opened PDF.
type Document interface {
	Pages() ([]Page, error)
	Close() error
}

// Page is a single page of a Document.
type Page interface {
	Number() int
	Tables() ([]Table, error)
	Text() (string, error)
}

// Image is a rendered page.
type Image struct {
	Page int
	PNG  []byte
}

// Rasterizer renders one page (1-based) of a PDF file to an image.
type Rasterizer interface {
	Rasterize(ctx context.Context, path, password string, page int) (Image, error)
}

// Recognizer turns an image into text.
type Recognizer interface {
	Recognize(ctx context.Context, img Image) (string, error)
}

// TextSource extracts whole-document text. Sources are tried in order by the
// engine and the first non-empty result wins.
type TextSource interface {
	Name() string
	Text(ctx context.Context, path, password string) (string, error)
}
