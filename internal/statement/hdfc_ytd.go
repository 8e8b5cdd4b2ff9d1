package statement

import (
	"context"

	"github.com/rentalai/rentalai/internal/model"
)

// ParseHDFCYTDStatement extracts transactions from an HDFC year-to-date
// statement. Rows are read from page text first; table extraction is the
// fallback. Pass the result to ComputeYTDTotals for per-year totals.
func ParseHDFCYTDStatement(ctx context.Context, path, password string, opts ...Option) []model.Transaction {
	return NewEngine(HDFCYTDLayout(), opts...).Parse(ctx, path, password).Transactions
}
