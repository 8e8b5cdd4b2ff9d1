package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// pdfMagic must appear within the first headerScan bytes; some generators
// prepend junk before it.
var pdfMagic = []byte("%PDF-")

const headerScan = 1024

// LayoutOpener opens documents with github.com/ledongthuc/pdf and rebuilds
// tables from glyph positions.
type LayoutOpener struct {
	Config LayoutConfig
}

// NewLayoutOpener returns an opener using DefaultLayoutConfig.
func NewLayoutOpener() *LayoutOpener {
	return &LayoutOpener{Config: DefaultLayoutConfig()}
}

// Open opens path, decrypting with password when the file is encrypted.
func (o *LayoutOpener) Open(path, password string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := checkHeader(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r, err := newReader(f, info.Size(), password)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &layoutDocument{file: f, reader: r, cfg: o.Config}, nil
}

func checkHeader(r io.ReaderAt) error {
	head := make([]byte, headerScan)
	n, err := r.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading header: %w", err)
	}
	if n == 0 || !bytes.Contains(head[:n], pdfMagic) {
		return ErrNotPDF
	}
	return nil
}

// newReader offers password once; the library tries the empty user password
// on its own first.
func newReader(f io.ReaderAt, size int64, password string) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("%w: %v", ErrUnreadable, p)
		}
	}()

	offered := false
	pw := func() string {
		if offered {
			return ""
		}
		offered = true
		return password
	}

	r, err = pdf.NewReaderEncrypted(f, size, pw)
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return nil, ErrWrongPassword
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return r, nil
}

type layoutDocument struct {
	file   *os.File
	reader *pdf.Reader
	cfg    LayoutConfig
}

func (d *layoutDocument) Pages() (pages []Page, err error) {
	defer func() {
		if p := recover(); p != nil {
			pages, err = nil, fmt.Errorf("%w: walking pages: %v", ErrUnreadable, p)
		}
	}()

	n := d.reader.NumPage()
	for i := 1; i <= n; i++ {
		p := d.reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages = append(pages, &layoutPage{num: i, page: p, cfg: d.cfg})
	}
	return pages, nil
}

func (d *layoutDocument) Close() error {
	return d.file.Close()
}

type layoutPage struct {
	num    int
	page   pdf.Page
	cfg    LayoutConfig
	lines  []textLine
	loaded bool
}

func (p *layoutPage) Number() int { return p.num }

func (p *layoutPage) Tables() ([]Table, error) {
	lines, err := p.load()
	if err != nil {
		return nil, err
	}
	return buildTables(lines, p.cfg), nil
}

func (p *layoutPage) Text() (string, error) {
	lines, err := p.load()
	if err != nil {
		return "", err
	}
	return linesText(lines), nil
}

func (p *layoutPage) load() (lines []textLine, err error) {
	if p.loaded {
		return p.lines, nil
	}
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("%w: page %d: %v", ErrUnreadable, p.num, r)
		}
	}()

	content := p.page.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
	}
	p.lines = buildLines(glyphs, p.cfg)
	p.loaded = true
	return p.lines, nil
}
