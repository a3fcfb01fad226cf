package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/shopspring/decimal"
)

type LedgerService interface {
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (models.BalanceChangeResponse, error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (models.BalanceChangeResponse, error)
	GetDashboard(ctx context.Context, userID string) (models.DashboardResponse, error)
}
