package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"github.com/shopspring/decimal"
)

// maxPostAttempts bounds how often a posting is retried after losing a
// compare-and-swap race on the balance.
const maxPostAttempts = 5

type LedgerService struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
	ledgerRepo      domain.LedgerRepository
}

func NewLedgerService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	ledgerRepo domain.LedgerRepository,
) *LedgerService {
	return &LedgerService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		ledgerRepo:      ledgerRepo,
	}
}

func (s *LedgerService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (models.BalanceChangeResponse, error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"userId": userID,
		"amount": amount.String(),
	})

	account, err := s.post(ctx, userID, domain.TransactionDeposit, amount)
	if err != nil {
		return models.BalanceChangeResponse{}, err
	}

	return models.BalanceChangeResponse{
		Message:    "Deposit successful",
		NewBalance: models.FormatMoney(account.Balance),
	}, nil
}

func (s *LedgerService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (models.BalanceChangeResponse, error) {
	logger.Info("ledger service withdraw request", logger.Fields{
		"userId": userID,
		"amount": amount.String(),
	})

	account, err := s.post(ctx, userID, domain.TransactionWithdrawal, amount)
	if err != nil {
		return models.BalanceChangeResponse{}, err
	}

	return models.BalanceChangeResponse{
		Message:    "Withdrawal successful",
		NewBalance: models.FormatMoney(account.Balance),
	}, nil
}

func (s *LedgerService) GetDashboard(ctx context.Context, userID string) (models.DashboardResponse, error) {
	account, err := s.accountForUser(ctx, userID)
	if err != nil {
		return models.DashboardResponse{}, err
	}

	transactions, err := s.transactionRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		logger.Error("ledger service dashboard transactions failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return models.DashboardResponse{}, fmt.Errorf("list transactions: %w", err)
	}

	return models.DashboardResponse{
		Account:      models.NewAccountSummary(account),
		Transactions: models.NewTransactionResponses(transactions),
	}, nil
}

// post applies one balance change to the caller's account. The balance is
// re-read and the posting retried whenever another writer got there first.
func (s *LedgerService) post(ctx context.Context, userID string, txType domain.TransactionType, amount decimal.Decimal) (domain.Account, error) {
	if !domain.WithinLimits(amount) {
		return domain.Account{}, domain.ErrInvalidAmount
	}
	amount = amount.Round(2)
	if err := domain.ValidateEntry(txType, amount); err != nil {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		account, err := s.accountForUser(ctx, userID)
		if err != nil {
			return domain.Account{}, err
		}

		newBalance := account.Balance.Add(txType.Signed(amount))
		if newBalance.IsNegative() {
			logger.Info("ledger service insufficient funds", logger.Fields{
				"accountId": account.ID,
				"balance":   account.Balance.String(),
				"amount":    amount.String(),
			})
			return domain.Account{}, domain.ErrInsufficientFunds
		}
		if newBalance.GreaterThan(domain.MaxAmount) {
			logger.Info("ledger service balance limit exceeded", logger.Fields{
				"accountId": account.ID,
				"balance":   account.Balance.String(),
				"amount":    amount.String(),
			})
			return domain.Account{}, domain.ErrInvalidAmount
		}

		tx, err := s.ledgerRepo.Post(ctx, domain.Posting{
			AccountID:  account.ID,
			Expected:   account.Balance,
			NewBalance: newBalance,
			Type:       txType,
			Amount:     amount,
		})
		if err == nil {
			account.Balance = newBalance
			logger.Info("ledger service post success", logger.Fields{
				"accountId":     account.ID,
				"transactionId": tx.ID,
				"type":          txType,
				"amount":        amount.String(),
				"newBalance":    newBalance.String(),
			})
			return account, nil
		}

		switch {
		case errors.Is(err, domain.ErrBalanceConflict):
			logger.Info("ledger service post conflict", logger.Fields{
				"accountId": account.ID,
				"attempt":   attempt,
			})
			continue
		case errors.Is(err, domain.ErrNegativeBalance):
			return domain.Account{}, domain.ErrInsufficientFunds
		case errors.Is(err, domain.ErrInvalidAmount):
			return domain.Account{}, domain.ErrInvalidAmount
		case errors.Is(err, domain.ErrRecordNotFound):
			return domain.Account{}, domain.ErrAccountNotFound
		default:
			logger.Error("ledger service post failed", err, logger.Fields{
				"accountId": account.ID,
				"type":      txType,
			})
			return domain.Account{}, fmt.Errorf("post %s: %w", txType, err)
		}
	}

	logger.Info("ledger service post retries exhausted", logger.Fields{
		"userId": userID,
		"type":   txType,
	})
	return domain.Account{}, domain.ErrBalanceConflict
}

func (s *LedgerService) accountForUser(ctx context.Context, userID string) (domain.Account, error) {
	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("ledger service account lookup failed", err, logger.Fields{
			"userId": userID,
		})
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}
