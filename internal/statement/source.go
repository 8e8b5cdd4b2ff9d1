package statement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rentalai/rentalai/internal/pdfdoc"
)

// source is what one Parse call reads from: the file, its password and the
// collaborators that open it. Whole-document text is fetched at most once.
type source struct {
	path     string
	password string
	opener   pdfdoc.Opener
	texts    []pdfdoc.TextSource
	log      zerolog.Logger

	textDone  bool
	text      string
	textErr   error
	textFound bool
}

// Text tries each text source in order and returns the first non-empty
// result.
func (s *source) Text(ctx context.Context) (string, error) {
	if s.textDone {
		return s.text, s.textErr
	}
	s.textDone = true

	var errs []error
	for _, ts := range s.texts {
		if err := ctx.Err(); err != nil {
			s.textErr = err
			return "", err
		}
		text, err := ts.Text(ctx, s.path, s.password)
		if err != nil {
			s.log.Debug().Err(err).Str("source", ts.Name()).Msg("text source failed")
			errs = append(errs, fmt.Errorf("%s: %w", ts.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		s.text, s.textFound = text, true
		return text, nil
	}
	s.textErr = pdfdoc.ErrNoText
	if len(errs) > 0 {
		s.textErr = errors.Join(append([]error{pdfdoc.ErrNoText}, errs...)...)
	}
	return "", s.textErr
}
