package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Append(ctx context.Context, accountID string, txType TransactionType, amount decimal.Decimal) (Transaction, error)
	ListByAccount(ctx context.Context, accountID string) ([]Transaction, error)
}

// LedgerRepository applies a Posting atomically: the conditional balance
// write and the log append either both happen or neither does.
type LedgerRepository interface {
	Post(ctx context.Context, posting Posting) (Transaction, error)
}
