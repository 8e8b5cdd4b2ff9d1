package statement

import (
	"context"

	"github.com/rentalai/rentalai/internal/model"
)

// ParseAxisStatement extracts transactions from an Axis Bank statement. It
// returns an empty list, never an error, when the file cannot be read.
func ParseAxisStatement(ctx context.Context, path, password string, opts ...Option) []model.Transaction {
	return NewEngine(AxisLayout(), opts...).Parse(ctx, path, password).Transactions
}
