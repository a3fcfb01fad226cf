package seed

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"github.com/shopspring/decimal"
)

const accountNumberAttempts = 3

type demoUser struct {
	username string
	email    string
	password string
	role     domain.Role
	balance  string
}

var demoUsers = []demoUser{
	{username: "admin", email: "adminr@bank.com", password: "admin123", role: domain.RoleBanker},
	{username: "shubham", email: "shubham@bank.com", password: "123456", role: domain.RoleCustomer, balance: "1000.00"},
	{username: "shubham852@gmail.com", email: "shubham852@gmail.com", password: "123456", role: domain.RoleCustomer, balance: "500.00"},
}

// Run clears every user, account and transaction, then creates the demo
// banker and customers. Customers get one account each.
func Run(ctx context.Context, users domain.ResettableUserRepository, accounts domain.AccountRepository) error {
	logger.Info("seed clearing existing data", nil)
	if err := users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	for _, demo := range demoUsers {
		hash, err := auth.HashPassword(demo.password)
		if err != nil {
			return err
		}

		user, err := users.Create(ctx, domain.User{
			Username:     demo.username,
			Email:        demo.email,
			PasswordHash: hash,
			Role:         demo.role,
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", demo.username, err)
		}
		logger.Info("seed user created", logger.Fields{
			"username": user.Username,
			"role":     user.Role,
		})

		if demo.role != domain.RoleCustomer {
			continue
		}
		account, err := createAccount(ctx, accounts, user.ID, decimal.RequireFromString(demo.balance))
		if err != nil {
			return fmt.Errorf("create account for %s: %w", demo.username, err)
		}
		logger.Info("seed account created", logger.Fields{
			"username":      user.Username,
			"accountNumber": account.AccountNumber,
			"balance":       account.Balance.StringFixed(2),
		})
	}

	logger.Info("seed complete", logger.Fields{
		"users": len(demoUsers),
	})
	return nil
}

func createAccount(ctx context.Context, accounts domain.AccountRepository, userID string, balance decimal.Decimal) (domain.Account, error) {
	var lastErr error
	for range accountNumberAttempts {
		number, err := NewAccountNumber()
		if err != nil {
			return domain.Account{}, err
		}

		account, err := accounts.Create(ctx, domain.Account{
			UserID:        userID,
			AccountNumber: number,
			Balance:       balance,
		})
		var dupErr *domain.DuplicateFieldError
		if errors.As(err, &dupErr) && dupErr.Field == "accountNumber" {
			lastErr = err
			continue
		}
		return account, err
	}
	return domain.Account{}, lastErr
}

// NewAccountNumber returns "ACC" followed by nine random digits.
func NewAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000000))
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return fmt.Sprintf("ACC%d", 100000000+n.Int64()), nil
}
