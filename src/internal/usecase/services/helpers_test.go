package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/bank-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

func createUser(t *testing.T, store *memory.Store, username string, password string, role domain.Role) domain.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := store.Users().Create(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@bank.com",
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createCustomer(t *testing.T, store *memory.Store, username string, balance string) (domain.User, domain.Account) {
	t.Helper()

	user := createUser(t, store, username, "123456", domain.RoleCustomer)
	account, err := store.Accounts().Create(context.Background(), domain.Account{
		UserID:        user.ID,
		AccountNumber: "ACC" + username,
		Balance:       decimal.RequireFromString(balance),
	})
	if err != nil {
		t.Fatalf("create account for %s: %v", username, err)
	}
	return user, account
}

type accountRepoStub struct {
	createFn        func(ctx context.Context, account domain.Account) (domain.Account, error)
	getByIDFn       func(ctx context.Context, accountID string) (domain.Account, error)
	getByUserIDFn   func(ctx context.Context, userID string) (domain.Account, error)
	updateBalanceFn func(ctx context.Context, accountID string, expected decimal.Decimal, newBalance decimal.Decimal) error
	listFn          func(ctx context.Context) ([]domain.CustomerAccount, error)
}

func (s *accountRepoStub) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	return s.createFn(ctx, account)
}

func (s *accountRepoStub) GetByID(ctx context.Context, accountID string) (domain.Account, error) {
	return s.getByIDFn(ctx, accountID)
}

func (s *accountRepoStub) GetByUserID(ctx context.Context, userID string) (domain.Account, error) {
	return s.getByUserIDFn(ctx, userID)
}

func (s *accountRepoStub) UpdateBalance(ctx context.Context, accountID string, expected decimal.Decimal, newBalance decimal.Decimal) error {
	return s.updateBalanceFn(ctx, accountID, expected, newBalance)
}

func (s *accountRepoStub) ListCustomerAccounts(ctx context.Context) ([]domain.CustomerAccount, error) {
	return s.listFn(ctx)
}

type transactionRepoStub struct {
	appendFn        func(ctx context.Context, accountID string, txType domain.TransactionType, amount decimal.Decimal) (domain.Transaction, error)
	listByAccountFn func(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

func (s *transactionRepoStub) Append(ctx context.Context, accountID string, txType domain.TransactionType, amount decimal.Decimal) (domain.Transaction, error) {
	return s.appendFn(ctx, accountID, txType, amount)
}

func (s *transactionRepoStub) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.listByAccountFn(ctx, accountID)
}

type ledgerRepoStub struct {
	postFn func(ctx context.Context, posting domain.Posting) (domain.Transaction, error)
}

func (s *ledgerRepoStub) Post(ctx context.Context, posting domain.Posting) (domain.Transaction, error) {
	return s.postFn(ctx, posting)
}
