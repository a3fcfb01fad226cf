package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/bank-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/bank-portal/src/internal/adapter/repository/postgres"
	"github.com/api-sage/bank-portal/src/internal/config"
	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
)

// Storage bundles the repositories of one backend.
type Storage struct {
	Users        domain.ResettableUserRepository
	Accounts     domain.AccountRepository
	Transactions domain.TransactionRepository
	Ledger       domain.LedgerRepository

	db *sql.DB
}

// OpenStorage connects the configured backend. Postgres is migrated before
// it is returned.
func OpenStorage(ctx context.Context, cfg config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Info("storage using in-memory repositories", nil)
		return NewMemoryStorage(memory.NewStore()), nil
	case config.StorageDriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return &Storage{
			Users:        postgres.NewUserRepository(db),
			Accounts:     postgres.NewAccountRepository(db),
			Transactions: postgres.NewTransactionRepository(db),
			Ledger:       postgres.NewLedgerRepository(db),
			db:           db,
		}, nil
	default:
		return nil, &config.InvalidValueError{Key: "STORAGE_DRIVER", Value: cfg.StorageDriver}
	}
}

func NewMemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Users:        store.Users(),
		Accounts:     store.Accounts(),
		Transactions: store.Transactions(),
		Ledger:       store.Ledger(),
	}
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
