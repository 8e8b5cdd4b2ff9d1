package pdfdoc

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DirectText reads the text layer of every page.
type DirectText struct {
	Opener Opener
}

// Name implements TextSource.
func (DirectText) Name() string { return "direct" }

// Text implements TextSource. Pages whose text cannot be read are skipped;
// ErrNoText is returned when nothing at all was found.
func (s DirectText) Text(ctx context.Context, path, password string) (string, error) {
	doc, err := s.Opener.Open(path, password)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	pages, err := doc.Pages()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var firstErr error
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := p.Text()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	if strings.TrimSpace(b.String()) == "" {
		if firstErr != nil {
			return "", errors.Join(ErrNoText, firstErr)
		}
		return "", ErrNoText
	}
	return b.String(), nil
}

// OCRText keeps the text layer where there is one and OCRs only the pages
// that have none.
type OCRText struct {
	Opener     Opener
	Rasterizer Rasterizer
	Recognizer Recognizer
}

// Name implements TextSource.
func (OCRText) Name() string { return "ocr" }

// Text implements TextSource. OCR failures on a page leave that page empty.
func (s OCRText) Text(ctx context.Context, path, password string) (string, error) {
	doc, err := s.Opener.Open(path, password)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	pages, err := doc.Pages()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var firstErr error
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, _ := p.Text()
		if strings.TrimSpace(text) == "" {
			text, err = s.recognize(ctx, path, password, p.Number())
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	if strings.TrimSpace(b.String()) == "" {
		if firstErr != nil {
			return "", errors.Join(ErrNoText, firstErr)
		}
		return "", ErrNoText
	}
	return b.String(), nil
}

func (s OCRText) recognize(ctx context.Context, path, password string, page int) (string, error) {
	img, err := s.Rasterizer.Rasterize(ctx, path, password, page)
	if err != nil {
		return "", fmt.Errorf("rasterizing page %d: %w", page, err)
	}
	text, err := s.Recognizer.Recognize(ctx, img)
	if err != nil {
		return "", fmt.Errorf("recognizing page %d: %w", page, err)
	}
	return text, nil
}
