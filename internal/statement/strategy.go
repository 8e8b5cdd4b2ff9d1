package statement

import (
	"context"
	"errors"
	"fmt"

	"github.com/rentalai/rentalai/internal/model"
)

// ErrNoRows is recorded when a strategy ran cleanly but produced nothing.
var ErrNoRows = errors.New("no transactions found")

// ErrUnknownStrategy is recorded for a strategy name no extractor implements.
var ErrUnknownStrategy = errors.New("unknown strategy")

// result is the outcome of one strategy: rows on success, a reason on
// failure.
type result struct {
	rows []model.Transaction
	err  error
}

func success(rows []model.Transaction) result { return result{rows: rows} }
func failure(err error) result                { return result{err: err} }

// strategy is one way of getting transactions out of a document.
type strategy interface {
	name() string
	run(ctx context.Context, src *source, l *Layout) result
}

type tableStrategy struct{}

func (tableStrategy) name() string { return StrategyTable }

func (tableStrategy) run(ctx context.Context, src *source, l *Layout) result {
	st := newDocState(l, src.log)
	if err := walkTables(ctx, src, st); err != nil {
		return failure(err)
	}
	if st.cells {
		src.textFound = true
	}
	return success(st.rows.transactions())
}

type textStrategy struct{}

func (textStrategy) name() string { return StrategyText }

func (textStrategy) run(ctx context.Context, src *source, l *Layout) result {
	text, err := src.Text(ctx)
	if err != nil {
		return failure(err)
	}
	return success(parseText(text, l))
}

type ytdTextStrategy struct{}

func (ytdTextStrategy) name() string { return StrategyYTDText }

func (ytdTextStrategy) run(ctx context.Context, src *source, l *Layout) result {
	text, err := src.Text(ctx)
	if err != nil {
		return failure(err)
	}
	return success(parseYTDText(text, l))
}

func strategyFor(name string) (strategy, error) {
	switch name {
	case StrategyTable:
		return tableStrategy{}, nil
	case StrategyText:
		return textStrategy{}, nil
	case StrategyYTDText:
		return ytdTextStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
