package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, account_number, balance, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"userId":        account.UserID,
		"accountNumber": account.AccountNumber,
	})

	const query = `
INSERT INTO accounts (
	user_id,
	account_number,
	balance
) VALUES ($1, $2, $3)
RETURNING ` + accountColumns

	var created domain.Account
	if err := scanAccount(r.db.QueryRowContext(
		ctx,
		query,
		account.UserID,
		account.AccountNumber,
		account.Balance.Round(2),
	), &created); err != nil {
		err = translateError(err)
		logger.Error("account repository create failed", err, logger.Fields{
			"userId":        account.UserID,
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})

	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID string) (domain.Account, error) {
	return r.getOne(ctx, "id", accountID)
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (domain.Account, error) {
	return r.getOne(ctx, "user_id", userID)
}

func (r *AccountRepository) getOne(ctx context.Context, column string, value string) (domain.Account, error) {
	logger.Info("account repository get", logger.Fields{
		column: value,
	})

	// column is one of two fixed identifiers chosen by the callers above.
	query := `
SELECT ` + accountColumns + `
FROM accounts
WHERE ` + column + `::text = $1`

	var account domain.Account
	if err := scanAccount(r.db.QueryRowContext(ctx, query, value), &account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				column: value,
			})
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			column: value,
		})
		return domain.Account{}, fmt.Errorf("get account by %s: %w", column, err)
	}

	logger.Info("account repository get success", logger.Fields{
		"accountId":     account.ID,
		"accountNumber": account.AccountNumber,
	})

	return account, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, accountID string, expected decimal.Decimal, newBalance decimal.Decimal) error {
	logger.Info("account repository update balance", logger.Fields{
		"accountId":  accountID,
		"expected":   expected,
		"newBalance": newBalance,
	})

	if newBalance.IsNegative() {
		return domain.ErrNegativeBalance
	}

	return swapBalance(ctx, r.db, accountID, expected, newBalance)
}

func (r *AccountRepository) ListCustomerAccounts(ctx context.Context) ([]domain.CustomerAccount, error) {
	logger.Info("account repository list customer accounts", nil)

	const query = `
SELECT a.id, a.user_id, a.account_number, a.balance, a.created_at, a.updated_at,
       u.username, u.email, u.role
FROM accounts a
JOIN users u ON u.id = a.user_id
WHERE u.role = 'customer'
ORDER BY u.username ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("account repository list customer accounts failed", err, nil)
		return nil, fmt.Errorf("list customer accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.CustomerAccount, 0)
	for rows.Next() {
		var item domain.CustomerAccount
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.AccountNumber,
			&item.Balance,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Username,
			&item.Email,
			&item.Role,
		); err != nil {
			logger.Error("account repository scan customer account failed", err, nil)
			return nil, fmt.Errorf("scan customer account: %w", err)
		}
		accounts = append(accounts, item)
	}
	if err := rows.Err(); err != nil {
		logger.Error("account repository iterate customer accounts failed", err, nil)
		return nil, fmt.Errorf("iterate customer accounts: %w", err)
	}

	logger.Info("account repository list customer accounts success", logger.Fields{
		"count": len(accounts),
	})

	return accounts, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// swapBalance writes newBalance only if the stored balance still equals expected.
// It runs on either the pool or an open transaction.
func swapBalance(ctx context.Context, q execer, accountID string, expected decimal.Decimal, newBalance decimal.Decimal) error {
	const query = `
UPDATE accounts
SET balance = $3::numeric,
    updated_at = NOW()
WHERE id::text = $1
  AND balance = $2::numeric`

	result, err := q.ExecContext(ctx, query, accountID, expected.Round(2), newBalance.Round(2))
	if err != nil {
		err = translateError(err)
		logger.Error("account repository swap balance failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id::text = $1)`, accountID).Scan(&exists); err != nil {
			return fmt.Errorf("check account exists: %w", err)
		}
		if !exists {
			return domain.ErrRecordNotFound
		}
		logger.Info("account repository balance conflict", logger.Fields{
			"accountId": accountID,
			"expected":  expected,
		})
		return domain.ErrBalanceConflict
	}

	return nil
}

func scanAccount(row rowScanner, account *domain.Account) error {
	return row.Scan(
		&account.ID,
		&account.UserID,
		&account.AccountNumber,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}
