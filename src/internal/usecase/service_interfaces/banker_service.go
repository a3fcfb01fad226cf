package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
)

type BankerService interface {
	ListCustomerAccounts(ctx context.Context) ([]models.CustomerAccountResponse, error)
	GetCustomerTransactions(ctx context.Context, userID string) (models.CustomerTransactionsResponse, error)
	UpdateUser(ctx context.Context, actor auth.Principal, targetUserID string, req models.UpdateUserRequest) (models.UpdateUserResponse, error)
}
