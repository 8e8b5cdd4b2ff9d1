package statement

import (
	"context"

	"github.com/rentalai/rentalai/internal/model"
)

// ParseGenericStatement reads any statement whose table headers use common
// names. It is meant as a second attempt when a bank driver found nothing.
func ParseGenericStatement(ctx context.Context, path, password string, opts ...Option) []model.Transaction {
	return NewEngine(GenericLayout(), opts...).Parse(ctx, path, password).Transactions
}
