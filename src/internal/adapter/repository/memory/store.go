package memory

import (
	"sync"

	"github.com/api-sage/bank-portal/src/internal/domain"
)

// Store keeps users, accounts and the transaction log in process memory.
// A single mutex guards all three so a ledger posting is atomic.
type Store struct {
	mu           sync.Mutex
	users        map[string]domain.User
	accounts     map[string]domain.Account
	transactions []storedTransaction
	seq          int64
}

type storedTransaction struct {
	seq int64
	tx  domain.Transaction
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		accounts: make(map[string]domain.Account),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s}
}

func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{store: s}
}

func (s *Store) Ledger() *LedgerRepository {
	return &LedgerRepository{store: s}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}
