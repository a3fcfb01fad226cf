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

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Append(ctx context.Context, accountID string, txType domain.TransactionType, amount decimal.Decimal) (domain.Transaction, error) {
	logger.Info("transaction repository append", logger.Fields{
		"accountId": accountID,
		"type":      txType,
		"amount":    amount,
	})

	if err := domain.ValidateEntry(txType, amount); err != nil {
		return domain.Transaction{}, err
	}

	entry, err := insertTransaction(ctx, r.db, accountID, txType, amount)
	if err != nil {
		logger.Error("transaction repository append failed", err, logger.Fields{
			"accountId": accountID,
		})
		return domain.Transaction{}, err
	}

	logger.Info("transaction repository append success", logger.Fields{
		"transactionId": entry.ID,
		"accountId":     accountID,
	})
	return entry, nil
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	logger.Info("transaction repository list by account", logger.Fields{
		"accountId": accountID,
	})

	const query = `
SELECT id, account_id, type, amount, created_at
FROM transactions
WHERE account_id::text = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("transaction repository list by account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var entry domain.Transaction
		if err := rows.Scan(&entry.ID, &entry.AccountID, &entry.Type, &entry.Amount, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	logger.Info("transaction repository list by account success", logger.Fields{
		"accountId": accountID,
		"count":     len(transactions),
	})

	return transactions, nil
}

// LedgerRepository applies postings inside a single database transaction.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Post(ctx context.Context, posting domain.Posting) (entry domain.Transaction, err error) {
	logger.Info("ledger repository post", logger.Fields{
		"accountId":  posting.AccountID,
		"type":       posting.Type,
		"amount":     posting.Amount,
		"expected":   posting.Expected,
		"newBalance": posting.NewBalance,
	})

	if err := posting.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger repository begin tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("begin posting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = swapBalance(ctx, tx, posting.AccountID, posting.Expected, posting.NewBalance); err != nil {
		return domain.Transaction{}, err
	}

	entry, err = insertTransaction(ctx, tx, posting.AccountID, posting.Type, posting.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger repository commit tx failed", err, logger.Fields{
			"accountId": posting.AccountID,
		})
		return domain.Transaction{}, fmt.Errorf("commit posting transaction: %w", err)
	}

	logger.Info("ledger repository post success", logger.Fields{
		"accountId":     posting.AccountID,
		"transactionId": entry.ID,
	})
	return entry, nil
}

func insertTransaction(ctx context.Context, q execer, accountID string, txType domain.TransactionType, amount decimal.Decimal) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	account_id,
	type,
	amount
) VALUES ($1, $2, $3)
RETURNING id, account_id, type, amount, created_at`

	var entry domain.Transaction
	if err := q.QueryRowContext(ctx, query, accountID, txType, amount.Round(2)).Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Type,
		&entry.Amount,
		&entry.Timestamp,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w", translateError(err))
	}
	return entry, nil
}
