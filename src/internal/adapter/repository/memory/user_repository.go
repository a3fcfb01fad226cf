package memory

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/bank-portal/src/internal/domain"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"github.com/google/uuid"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	logger.Info("memory user repository create", logger.Fields{
		"username": user.Username,
		"role":     user.Role,
	})

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkUnique("", user.Username, user.Email); err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users[user.ID] = user

	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}
	return user, nil
}

func (r *UserRepository) FindByIdentifier(_ context.Context, identifier string) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// A username match wins over an email match.
	for _, user := range r.store.users {
		if user.Username == identifier {
			return user, nil
		}
	}
	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, identifier) {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrRecordNotFound
}

func (r *UserRepository) Update(_ context.Context, id string, update domain.UserUpdate) (domain.User, error) {
	logger.Info("memory user repository update", logger.Fields{
		"userId": id,
	})

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrRecordNotFound
	}

	updated := update.Apply(user)
	if err := r.checkUnique(id, updated.Username, updated.Email); err != nil {
		return domain.User{}, err
	}

	updated.UpdatedAt = time.Now().UTC()
	r.store.users[id] = updated
	return updated, nil
}

// checkUnique must be called with the store lock held.
func (r *UserRepository) checkUnique(selfID string, username string, email string) error {
	for id, other := range r.store.users {
		if id == selfID {
			continue
		}
		if other.Username == username {
			return &domain.DuplicateFieldError{Field: "username"}
		}
		if strings.EqualFold(other.Email, email) {
			return &domain.DuplicateFieldError{Field: "email"}
		}
	}
	return nil
}

// DeleteAll removes every user together with their accounts and transactions.
func (r *UserRepository) DeleteAll(_ context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clear(r.store.users)
	clear(r.store.accounts)
	r.store.transactions = nil
	return nil
}
