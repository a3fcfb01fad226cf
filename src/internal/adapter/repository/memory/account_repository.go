package memory

import (
	"context"
	"sort"
	"time"

	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("memory account repository create", logger.Fields{
		"userId":        account.UserID,
		"accountNumber": account.AccountNumber,
	})

	if account.Balance.IsNegative() {
		return domain.Account{}, domain.ErrNegativeBalance
	}
	if account.Balance.GreaterThan(domain.MaxAmount) {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[account.UserID]; !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	for _, other := range r.store.accounts {
		if other.UserID == account.UserID {
			return domain.Account{}, &domain.DuplicateFieldError{Field: "user"}
		}
		if other.AccountNumber == account.AccountNumber {
			return domain.Account{}, &domain.DuplicateFieldError{Field: "accountNumber"}
		}
	}

	now := time.Now().UTC()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.Balance = account.Balance.Round(2)
	account.CreatedAt = now
	account.UpdatedAt = now
	r.store.accounts[account.ID] = account

	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID string) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) GetByUserID(_ context.Context, userID string) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, account := range r.store.accounts {
		if account.UserID == userID {
			return account, nil
		}
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func (r *AccountRepository) UpdateBalance(_ context.Context, accountID string, expected decimal.Decimal, newBalance decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.swapBalance(accountID, expected, newBalance)
}

func (r *AccountRepository) ListCustomerAccounts(_ context.Context) ([]domain.CustomerAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]domain.CustomerAccount, 0, len(r.store.accounts))
	for _, account := range r.store.accounts {
		owner, ok := r.store.users[account.UserID]
		if !ok || owner.Role != domain.RoleCustomer {
			continue
		}
		out = append(out, domain.CustomerAccount{
			Account:  account,
			Username: owner.Username,
			Email:    owner.Email,
			Role:     owner.Role,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Username < out[j].Username
	})
	return out, nil
}

// swapBalance must be called with the store lock held.
func (s *Store) swapBalance(accountID string, expected decimal.Decimal, newBalance decimal.Decimal) error {
	if newBalance.IsNegative() {
		return domain.ErrNegativeBalance
	}
	if newBalance.GreaterThan(domain.MaxAmount) {
		return domain.ErrInvalidAmount
	}

	account, ok := s.accounts[accountID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if !account.Balance.Equal(expected) {
		return domain.ErrBalanceConflict
	}

	account.Balance = newBalance.Round(2)
	account.UpdatedAt = time.Now().UTC()
	s.accounts[accountID] = account
	return nil
}
