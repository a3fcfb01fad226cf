package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/bank-portal/src/internal/adapter/http/models"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"golang.org/x/sync/errgroup"
)

type BankerService struct {
	userRepo        domain.UserRepository
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
	tokens          *auth.TokenRegistry
}

func NewBankerService(
	userRepo domain.UserRepository,
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	tokens *auth.TokenRegistry,
) *BankerService {
	return &BankerService{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		tokens:          tokens,
	}
}

func (s *BankerService) ListCustomerAccounts(ctx context.Context) ([]models.CustomerAccountResponse, error) {
	accounts, err := s.accountRepo.ListCustomerAccounts(ctx)
	if err != nil {
		logger.Error("banker service list accounts failed", err, nil)
		return nil, fmt.Errorf("list customer accounts: %w", err)
	}

	out := make([]models.CustomerAccountResponse, 0, len(accounts))
	for _, item := range accounts {
		out = append(out, models.NewCustomerAccountResponse(item))
	}

	logger.Info("banker service list accounts success", logger.Fields{
		"count": len(out),
	})
	return out, nil
}

func (s *BankerService) GetCustomerTransactions(ctx context.Context, userID string) (models.CustomerTransactionsResponse, error) {
	logger.Info("banker service customer transactions request", logger.Fields{
		"userId": userID,
	})

	var (
		user       domain.User
		account    domain.Account
		hasAccount bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.userRepo.GetByID(gctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.ErrCustomerNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}
		if found.Role != domain.RoleCustomer {
			return domain.ErrCustomerNotFound
		}
		user = found
		return nil
	})
	g.Go(func() error {
		found, err := s.accountRepo.GetByUserID(gctx, userID)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get account: %w", err)
		}
		account, hasAccount = found, true
		return nil
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, domain.ErrCustomerNotFound) {
			logger.Error("banker service customer lookup failed", err, logger.Fields{
				"userId": userID,
			})
		}
		return models.CustomerTransactionsResponse{}, err
	}
	if !hasAccount {
		return models.CustomerTransactionsResponse{}, domain.ErrAccountNotFound
	}

	transactions, err := s.transactionRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		logger.Error("banker service list transactions failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return models.CustomerTransactionsResponse{}, fmt.Errorf("list transactions: %w", err)
	}

	return models.CustomerTransactionsResponse{
		Customer: models.CustomerSummary{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		Account:      models.NewAccountSummary(account),
		Transactions: models.NewTransactionResponses(transactions),
	}, nil
}

// UpdateUser lets a banker change any user's credentials. The banker's own
// sessions are revoked only when they changed their own record.
func (s *BankerService) UpdateUser(ctx context.Context, actor auth.Principal, targetUserID string, req models.UpdateUserRequest) (models.UpdateUserResponse, error) {
	logger.Info("banker service update user request", logger.Fields{
		"actorId":  actor.UserID,
		"targetId": targetUserID,
		"payload":  logger.SanitizePayload(req),
	})

	changed, err := updateUser(ctx, s.userRepo, targetUserID, req)
	if err != nil {
		return models.UpdateUserResponse{}, err
	}

	if changed && actor.UserID == targetUserID {
		removed := s.tokens.InvalidateUser(actor.UserID)
		logger.Info("banker service update own record", logger.Fields{
			"userId":        actor.UserID,
			"revokedTokens": removed,
		})
		return models.UpdateUserResponse{Message: reauthenticateMessage, Reauthenticate: true}, nil
	}

	return models.UpdateUserResponse{Message: "User profile updated successfully."}, nil
}
