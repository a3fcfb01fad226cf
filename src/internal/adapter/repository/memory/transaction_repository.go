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

type TransactionRepository struct {
	store *Store
}

func (r *TransactionRepository) Append(_ context.Context, accountID string, txType domain.TransactionType, amount decimal.Decimal) (domain.Transaction, error) {
	if err := domain.ValidateEntry(txType, amount); err != nil {
		return domain.Transaction{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[accountID]; !ok {
		return domain.Transaction{}, domain.ErrRecordNotFound
	}
	return r.store.appendTransaction(accountID, txType, amount), nil
}

func (r *TransactionRepository) ListByAccount(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := make([]storedTransaction, 0)
	for _, stored := range r.store.transactions {
		if stored.tx.AccountID == accountID {
			matched = append(matched, stored)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.tx.Timestamp.Equal(b.tx.Timestamp) {
			return a.tx.Timestamp.After(b.tx.Timestamp)
		}
		return a.seq > b.seq
	})

	out := make([]domain.Transaction, 0, len(matched))
	for _, stored := range matched {
		out = append(out, stored.tx)
	}
	return out, nil
}

// LedgerRepository posts balance changes and their log entries under the store lock.
type LedgerRepository struct {
	store *Store
}

func (r *LedgerRepository) Post(_ context.Context, posting domain.Posting) (domain.Transaction, error) {
	logger.Info("memory ledger repository post", logger.Fields{
		"accountId": posting.AccountID,
		"type":      posting.Type,
		"amount":    posting.Amount,
	})

	if err := posting.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.swapBalance(posting.AccountID, posting.Expected, posting.NewBalance); err != nil {
		return domain.Transaction{}, err
	}
	return r.store.appendTransaction(posting.AccountID, posting.Type, posting.Amount), nil
}

// appendTransaction must be called with the store lock held.
func (s *Store) appendTransaction(accountID string, txType domain.TransactionType, amount decimal.Decimal) domain.Transaction {
	tx := domain.Transaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Type:      txType,
		Amount:    amount.Round(2),
		Timestamp: time.Now().UTC(),
	}
	s.transactions = append(s.transactions, storedTransaction{seq: s.nextSeq(), tx: tx})
	return tx
}
