package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newMemoryBankerService(store *memory.Store, tokens *auth.TokenRegistry) *services.BankerService {
	return services.NewBankerService(store.Users(), store.Accounts(), store.Transactions(), tokens)
}

func TestBankerServiceListCustomerAccounts(t *testing.T) {
	store := memory.NewStore()
	createUser(t, store, "admin", "admin123", domain.RoleBanker)
	createCustomer(t, store, "zara", "5.00")
	createCustomer(t, store, "amit", "1000")
	svc := newMemoryBankerService(store, auth.NewTokenRegistry())

	accounts, err := svc.ListCustomerAccounts(context.Background())
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 customer accounts, got %d", len(accounts))
	}
	if accounts[0].Username != "amit" || accounts[0].Balance != "1000.00" || accounts[1].Username != "zara" {
		t.Fatalf("unexpected accounts %+v", accounts)
	}
}

func TestBankerServiceGetCustomerTransactions(t *testing.T) {
	store := memory.NewStore()
	user, account := createCustomer(t, store, "shubham", "1000.00")
	ledger := newMemoryLedgerService(store)
	svc := newMemoryBankerService(store, auth.NewTokenRegistry())
	ctx := context.Background()

	if _, err := ledger.Deposit(ctx, user.ID, decimal.NewFromInt(250)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := ledger.Withdraw(ctx, user.ID, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	resp, err := svc.GetCustomerTransactions(ctx, user.ID)
	if err != nil {
		t.Fatalf("get customer transactions: %v", err)
	}
	if resp.Customer.Username != "shubham" || resp.Account.AccountID != account.ID || resp.Account.Balance != "1200.00" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.Transactions) != 2 || resp.Transactions[0].Type != "withdrawal" {
		t.Fatalf("expected newest first, got %+v", resp.Transactions)
	}
}

func TestBankerServiceGetCustomerTransactionsNotFound(t *testing.T) {
	store := memory.NewStore()
	banker := createUser(t, store, "admin", "admin123", domain.RoleBanker)
	noAccount := createUser(t, store, "lonely", "123456", domain.RoleCustomer)
	svc := newMemoryBankerService(store, auth.NewTokenRegistry())
	ctx := context.Background()

	if _, err := svc.GetCustomerTransactions(ctx, "missing"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound for unknown id, got %v", err)
	}
	if _, err := svc.GetCustomerTransactions(ctx, banker.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound for banker id, got %v", err)
	}
	if _, err := svc.GetCustomerTransactions(ctx, noAccount.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestBankerServiceUpdateUser(t *testing.T) {
	store := memory.NewStore()
	banker := createUser(t, store, "admin", "admin123", domain.RoleBanker)
	customer, _ := createCustomer(t, store, "shubham", "1000.00")
	tokens := auth.NewTokenRegistry()
	tokens.Register("banker-token", banker.ID, domain.RoleBanker)
	svc := newMemoryBankerService(store, tokens)
	actor := auth.Principal{UserID: banker.ID, Role: domain.RoleBanker}
	ctx := context.Background()

	resp, err := svc.UpdateUser(ctx, actor, customer.ID, models.UpdateUserRequest{Email: strPtr("new@bank.com")})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if resp.Reauthenticate || resp.Message != "User profile updated successfully." {
		t.Fatalf("unexpected response %+v", resp)
	}
	if _, ok := tokens.Resolve("banker-token"); !ok {
		t.Fatal("updating another user must not revoke the banker's session")
	}

	resp, err = svc.UpdateUser(ctx, actor, banker.ID, models.UpdateUserRequest{Username: strPtr("headbanker")})
	if err != nil {
		t.Fatalf("update self: %v", err)
	}
	if !resp.Reauthenticate {
		t.Fatalf("expected reauthenticate on self update, got %+v", resp)
	}
	if _, ok := tokens.Resolve("banker-token"); ok {
		t.Fatal("expected banker token to be revoked")
	}

	if _, err := svc.UpdateUser(ctx, actor, "missing", models.UpdateUserRequest{Username: strPtr("ghost")}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
