package statement

import (
	"context"

	"github.com/rentalai/rentalai/internal/model"
)

// ParseHDFCStatement extracts transactions from an HDFC monthly statement.
func ParseHDFCStatement(ctx context.Context, path, password string, opts ...Option) []model.Transaction {
	return NewEngine(HDFCLayout(), opts...).Parse(ctx, path, password).Transactions
}
