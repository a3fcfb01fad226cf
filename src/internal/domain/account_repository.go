package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, accountID string) (Account, error)
	GetByUserID(ctx context.Context, userID string) (Account, error)
	UpdateBalance(ctx context.Context, accountID string, expected decimal.Decimal, newBalance decimal.Decimal) error
	ListCustomerAccounts(ctx context.Context) ([]CustomerAccount, error)
}
